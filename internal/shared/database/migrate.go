package database

import (
	"booko/internal/bookings"
	"booko/internal/movies"
	"booko/internal/payments"
	"booko/internal/screens"
	"booko/internal/showtimes"
	"booko/internal/theaters"
	"booko/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&theaters.Theater{},
		&screens.Screen{},
		&screens.Seat{},
		&showtimes.Showtime{},
		&showtimes.BookedSeat{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&payments.Payment{},
	)
}
