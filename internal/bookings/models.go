package bookings

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	ShowtimeID    uuid.UUID     `json:"showtime_id" gorm:"type:uuid;not null;index"`
	Seats         []BookingSeat `json:"seats" gorm:"foreignKey:BookingID"`
	TotalAmount   float64       `json:"total_amount" gorm:"not null;check:total_amount >= 0"`
	BookingStatus BookingStatus `json:"booking_status" gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending'"`
	CancelledAt   *time.Time    `json:"cancelled_at"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingSeat records one seat label held by a booking. The authoritative
// booked set lives in showtime_seats; these rows exist so cancellation knows
// what to release.
type BookingSeat struct {
	BookingID uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	SeatLabel string    `json:"seat_label" gorm:"primaryKey;size:10"`
}

func (BookingSeat) TableName() string {
	return "booking_seats"
}

// SeatLabels flattens the seat rows into the canonical label list.
func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Seats))
	for i := range b.Seats {
		labels = append(labels, b.Seats[i].SeatLabel)
	}
	return labels
}

type CreateBookingRequest struct {
	ShowtimeID string   `json:"showtime_id" binding:"required,uuid"`
	Seats      []string `json:"seats" binding:"required,min=1"`
}

type UpdateBookingStatusRequest struct {
	BookingStatus *string `json:"booking_status" binding:"omitempty,oneof=pending confirmed cancelled"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=pending completed failed refunded"`
}

type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	ShowtimeID    string     `json:"showtime_id"`
	Seats         []string   `json:"seats"`
	TotalAmount   float64    `json:"total_amount"`
	BookingStatus string     `json:"booking_status"`
	PaymentStatus string     `json:"payment_status"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		UserID:        b.UserID.String(),
		ShowtimeID:    b.ShowtimeID.String(),
		Seats:         b.SeatLabels(),
		TotalAmount:   b.TotalAmount,
		BookingStatus: string(b.BookingStatus),
		PaymentStatus: string(b.PaymentStatus),
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
