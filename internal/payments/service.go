package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"booko/internal/bookings"
	"booko/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrForbidden       = errors.New("not allowed to pay for this booking")
	ErrAlreadyPaid     = errors.New("booking is already paid")
)

// GatewayDeclinedError is the domain outcome of a declined charge. The
// transaction id is preserved so the client and the audit trail can refer to
// the exact attempt.
type GatewayDeclinedError struct {
	TransactionID string
}

func (e *GatewayDeclinedError) Error() string {
	return fmt.Sprintf("payment declined by gateway (transaction %s)", e.TransactionID)
}

// AsGatewayDeclined unwraps err into a GatewayDeclinedError if it is one.
func AsGatewayDeclined(err error) (*GatewayDeclinedError, bool) {
	var declined *GatewayDeclinedError
	if errors.As(err, &declined) {
		return declined, true
	}
	return nil, false
}

// BookingProvider is the slice of the bookings service payments needs.
type BookingProvider interface {
	GetBookingEntity(ctx context.Context, bookingID uuid.UUID) (*bookings.Booking, error)
	SetStatuses(ctx context.Context, bookingID uuid.UUID, bookingStatus *bookings.BookingStatus, paymentStatus *bookings.PaymentStatus) error
}

// Notifier publishes payment outcomes. Best-effort.
type Notifier interface {
	NotifyPaymentProcessed(ctx context.Context, bookingID, userID, transactionID, status string, amount float64)
}

type Service interface {
	SetNotifier(n Notifier)

	ProcessPayment(ctx context.Context, userID, bookingID uuid.UUID, req ProcessPaymentRequest) (*PaymentResponse, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error)
	GetPaymentsByBooking(ctx context.Context, bookingID uuid.UUID) ([]PaymentResponse, error)
	GetAllPayments(ctx context.Context, query PaymentListQuery) (*PaginatedPayments, error)
}

type service struct {
	repo     Repository
	bookings BookingProvider
	gateway  Gateway
	notifier Notifier
}

func NewService(repo Repository, bookingProvider BookingProvider, gateway Gateway) Service {
	return &service{
		repo:     repo,
		bookings: bookingProvider,
		gateway:  gateway,
	}
}

func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

// ProcessPayment runs one payment attempt for a booking. Only the booking's
// owner may pay; a booking whose payment already completed is rejected before
// the gateway is called. Every attempt leaves a payment record, approved or
// not, and the booking's statuses follow the outcome: approval marks the
// booking confirmed/completed, a decline marks payment failed but keeps the
// seats (the user may retry with a fresh transaction id).
func (s *service) ProcessPayment(ctx context.Context, userID, bookingID uuid.UUID, req ProcessPaymentRequest) (*PaymentResponse, error) {
	booking, err := s.bookings.GetBookingEntity(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, ErrForbidden
	}

	if booking.PaymentStatus == bookings.PaymentCompleted {
		return nil, ErrAlreadyPaid
	}

	result, err := s.gateway.Charge(ctx, booking.TotalAmount, req.Method)
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	status := StatusCompleted
	if !result.Approved {
		status = StatusFailed
	}

	payment := &Payment{
		BookingID:     bookingID,
		UserID:        userID,
		Amount:        booking.TotalAmount,
		Method:        req.Method,
		TransactionID: result.TransactionID,
		Status:        status,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.GetDefault().LogPaymentProcessed(ctx, bookingID.String(), result.TransactionID, string(status))
	if s.notifier != nil {
		s.notifier.NotifyPaymentProcessed(ctx, bookingID.String(), userID.String(), result.TransactionID, string(status), booking.TotalAmount)
	}

	if !result.Approved {
		failed := bookings.PaymentFailed
		if err := s.bookings.SetStatuses(ctx, bookingID, nil, &failed); err != nil {
			return nil, err
		}
		return nil, &GatewayDeclinedError{TransactionID: result.TransactionID}
	}

	confirmed := bookings.BookingConfirmed
	completed := bookings.PaymentCompleted
	if err := s.bookings.SetStatuses(ctx, bookingID, &confirmed, &completed); err != nil {
		return nil, err
	}

	resp := payment.ToResponse()
	return &resp, nil
}

func (s *service) GetPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	resp := payment.ToResponse()
	return &resp, nil
}

func (s *service) GetPaymentsByBooking(ctx context.Context, bookingID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.repo.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, payments[i].ToResponse())
	}
	return responses, nil
}

func (s *service) GetAllPayments(ctx context.Context, query PaymentListQuery) (*PaginatedPayments, error) {
	payments, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, payments[i].ToResponse())
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	return &PaginatedPayments{
		Payments:   responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}
