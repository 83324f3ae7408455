package showtimes

import (
	"time"

	"github.com/google/uuid"
)

type Showtime struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID     uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	TheaterID   uuid.UUID `json:"theater_id" gorm:"type:uuid;not null;index"`
	ScreenID    uuid.UUID `json:"screen_id" gorm:"type:uuid;not null;index"`
	ShowDate    time.Time `json:"show_date" gorm:"not null"`
	ShowTime    string    `json:"show_time" gorm:"not null;size:5"` // "HH:mm"
	TicketPrice float64   `json:"ticket_price" gorm:"not null;check:ticket_price >= 0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Showtime) TableName() string {
	return "showtimes"
}

// BookedSeat is one held seat for one showtime. The composite primary key
// (showtime_id, seat_label) is the mutual-exclusion mechanism: inserting all
// requested seats in a single statement either lands every row or, on any
// duplicate, rolls the whole statement back.
type BookedSeat struct {
	ShowtimeID uuid.UUID `json:"showtime_id" gorm:"type:uuid;primaryKey"`
	SeatLabel  string    `json:"seat_label" gorm:"primaryKey;size:10"`
	BookedAt   time.Time `json:"booked_at" gorm:"autoCreateTime"`
}

func (BookedSeat) TableName() string {
	return "showtime_seats"
}

type ShowtimeResponse struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	TheaterID   string    `json:"theater_id"`
	ScreenID    string    `json:"screen_id"`
	ShowDate    time.Time `json:"show_date"`
	ShowTime    string    `json:"show_time"`
	TicketPrice float64   `json:"ticket_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateShowtimeRequest struct {
	MovieID     string    `json:"movie_id" binding:"required,uuid"`
	TheaterID   string    `json:"theater_id" binding:"required,uuid"`
	ScreenID    string    `json:"screen_id" binding:"required,uuid"`
	ShowDate    time.Time `json:"show_date" binding:"required"`
	ShowTime    string    `json:"show_time" binding:"required"`
	TicketPrice float64   `json:"ticket_price" binding:"min=0"`
}

type UpdateShowtimeRequest struct {
	ShowDate    *time.Time `json:"show_date"`
	ShowTime    *string    `json:"show_time"`
	TicketPrice *float64   `json:"ticket_price" binding:"omitempty,min=0"`
}

type ShowtimeListQuery struct {
	MovieID   string `form:"movie_id" binding:"omitempty,uuid"`
	TheaterID string `form:"theater_id" binding:"omitempty,uuid"`
	Date      string `form:"date"` // "2006-01-02"
}

// CheckAvailabilityRequest asks whether a specific seat selection is free.
type CheckAvailabilityRequest struct {
	Seats []string `json:"seats" binding:"required,min=1"`
}

// AvailabilityCheck is a non-authoritative snapshot: a reservation attempted
// right after an all-available answer can still fail.
type AvailabilityCheck struct {
	AllAvailable     bool     `json:"all_available"`
	UnavailableSeats []string `json:"unavailable_seats"`
}

// SeatAvailability is the full availability picture for one showtime:
// layout minus booked set.
type SeatAvailability struct {
	ShowtimeID     string   `json:"showtime_id"`
	BookedSeats    []string `json:"booked_seats"`
	AvailableSeats []string `json:"available_seats"`
	TotalAvailable int      `json:"total_available"`
}

func (s *Showtime) ToResponse() ShowtimeResponse {
	return ShowtimeResponse{
		ID:          s.ID.String(),
		MovieID:     s.MovieID.String(),
		TheaterID:   s.TheaterID.String(),
		ScreenID:    s.ScreenID.String(),
		ShowDate:    s.ShowDate,
		ShowTime:    s.ShowTime,
		TicketPrice: s.TicketPrice,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
