package payments

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
)

// Payment is one attempt to pay for a booking. Rows are append-only: a
// retried payment creates a new record with a fresh transaction id.
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	Amount        float64       `json:"amount" gorm:"not null;check:amount >= 0"`
	Method        string        `json:"method" gorm:"not null;size:50"`
	TransactionID string        `json:"transaction_id" gorm:"uniqueIndex;not null;size:50"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

type ProcessPaymentRequest struct {
	Method string `json:"method" binding:"required,min=2,max=50"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaymentListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=pending completed failed"`
}

type PaginatedPayments struct {
	Payments   []PaymentResponse `json:"payments"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		BookingID:     p.BookingID.String(),
		UserID:        p.UserID.String(),
		Amount:        p.Amount,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
	}
}
