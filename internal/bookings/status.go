package bookings

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func IsValidBookingStatus(status string) bool {
	switch BookingStatus(status) {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func IsValidPaymentStatus(status string) bool {
	switch PaymentStatus(status) {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}
