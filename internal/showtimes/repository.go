package showtimes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSeatTaken is the storage-level reservation failure: at least one
// requested seat already had a row in showtime_seats.
var ErrSeatTaken = errors.New("one or more seats already booked")

type Repository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error)
	GetAll(ctx context.Context, query ShowtimeListQuery) ([]Showtime, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Showtime, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Reservation primitives against the booked-seat set.
	ReserveSeats(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) error
	ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) error
	GetBookedSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error)
	GetBookedSeatsIn(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Create(showtime).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&showtime).Error
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) GetAll(ctx context.Context, query ShowtimeListQuery) ([]Showtime, error) {
	var showtimes []Showtime

	db := r.db.WithContext(ctx).Model(&Showtime{})

	if query.MovieID != "" {
		db = db.Where("movie_id = ?", query.MovieID)
	}
	if query.TheaterID != "" {
		db = db.Where("theater_id = ?", query.TheaterID)
	}
	if query.Date != "" {
		db = db.Where("show_date::date = ?", query.Date)
	}

	err := db.Order("show_date ASC, show_time ASC").Find(&showtimes).Error
	if err != nil {
		return nil, err
	}

	return showtimes, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Showtime, error) {
	var showtime Showtime
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&showtime).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&showtime).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &showtime, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Showtime{}).Error
}

// ReserveSeats inserts all requested seats as one multi-row INSERT. The
// composite primary key on (showtime_id, seat_label) makes the statement
// all-or-nothing: if any seat is already held the insert fails as a whole and
// no rows land. There is no application-level read-then-write, so two
// overlapping concurrent reservations can never both succeed.
func (r *repository) ReserveSeats(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) error {
	rows := make([]BookedSeat, 0, len(seatLabels))
	for _, label := range seatLabels {
		rows = append(rows, BookedSeat{
			ShowtimeID: showtimeID,
			SeatLabel:  label,
		})
	}

	err := r.db.WithContext(ctx).Create(&rows).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSeatTaken
		}
		return err
	}

	return nil
}

// ReleaseSeats removes the given seats from the booked set. Deleting an
// absent seat is a no-op, which keeps the operation idempotent.
func (r *repository) ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) error {
	if len(seatLabels) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("showtime_id = ? AND seat_label IN ?", showtimeID, seatLabels).
		Delete(&BookedSeat{}).Error
}

func (r *repository) GetBookedSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	var labels []string
	err := r.db.WithContext(ctx).
		Model(&BookedSeat{}).
		Where("showtime_id = ?", showtimeID).
		Order("seat_label ASC").
		Pluck("seat_label", &labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *repository) GetBookedSeatsIn(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) ([]string, error) {
	var labels []string
	err := r.db.WithContext(ctx).
		Model(&BookedSeat{}).
		Where("showtime_id = ? AND seat_label IN ?", showtimeID, seatLabels).
		Order("seat_label ASC").
		Pluck("seat_label", &labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}
