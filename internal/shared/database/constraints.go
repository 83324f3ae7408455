package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints the reservation engine
// depends on. The composite primary key on showtime_seats is what makes a
// multi-row reservation insert all-or-nothing under concurrency; AutoMigrate
// alone does not express it.
func MigrateConstraints(db *gorm.DB) error {
	// One row per (showtime, seat label). A second booking of the same seat
	// violates the key and rolls back the whole reservation statement.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_showtime
		ON showtime_seats (showtime_id, seat_label);
	`).Error
	if err != nil {
		return err
	}

	// Seat layout coordinates are unique within a screen
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_position_per_screen
		ON seats (screen_id, row_label, col);
	`).Error
	if err != nil {
		return err
	}

	// Availability reads scan the booked set by showtime
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_showtime_seats_showtime_id
		ON showtime_seats (showtime_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
