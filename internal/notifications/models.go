package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	TypeBookingCreated   NotificationType = "booking.created"
	TypeBookingCancelled NotificationType = "booking.cancelled"
	TypePaymentProcessed NotificationType = "payment.processed"
)

// Notification is the wire format published to the notifications topic.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`

	BookingID  string `json:"booking_id"`
	UserID     string `json:"user_id"`
	ShowtimeID string `json:"showtime_id,omitempty"`

	Seats         []string `json:"seats,omitempty"`
	TotalAmount   float64  `json:"total_amount,omitempty"`
	TransactionID string   `json:"transaction_id,omitempty"`
	PaymentStatus string   `json:"payment_status,omitempty"`
}

func newNotification(t NotificationType) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		Type:      t,
		CreatedAt: time.Now().UTC(),
	}
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// PartitionKey routes all events of one booking to the same partition so
// consumers see them in order.
func (n *Notification) PartitionKey() string {
	return n.BookingID
}
