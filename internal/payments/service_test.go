package payments

import (
	"context"
	"regexp"
	"testing"
	"time"

	"booko/internal/bookings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBookingProvider serves one booking and records status writes.
type fakeBookingProvider struct {
	booking *bookings.Booking
}

func (f *fakeBookingProvider) GetBookingEntity(ctx context.Context, bookingID uuid.UUID) (*bookings.Booking, error) {
	if f.booking == nil || f.booking.ID != bookingID {
		return nil, bookings.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingProvider) SetStatuses(ctx context.Context, bookingID uuid.UUID, bookingStatus *bookings.BookingStatus, paymentStatus *bookings.PaymentStatus) error {
	if f.booking == nil || f.booking.ID != bookingID {
		return bookings.ErrBookingNotFound
	}
	if bookingStatus != nil {
		f.booking.BookingStatus = *bookingStatus
	}
	if paymentStatus != nil {
		f.booking.PaymentStatus = *paymentStatus
	}
	return nil
}

// fakeGateway approves or declines deterministically.
type fakeGateway struct {
	approve bool
	charges int
}

func (f *fakeGateway) Charge(ctx context.Context, amount float64, method string) (*ChargeResult, error) {
	f.charges++
	return &ChargeResult{
		TransactionID: NewTransactionID(),
		Approved:      f.approve,
	}, nil
}

type fakePaymentRepo struct {
	payments []*Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) GetByBooking(ctx context.Context, bookingID uuid.UUID) ([]Payment, error) {
	var out []Payment
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) GetAll(ctx context.Context, query PaymentListQuery) ([]Payment, int64, error) {
	var out []Payment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func newPaymentTestService(t *testing.T, approve bool) (Service, *fakePaymentRepo, *fakeBookingProvider, *fakeGateway) {
	t.Helper()

	owner := uuid.New()
	provider := &fakeBookingProvider{
		booking: &bookings.Booking{
			ID:            uuid.New(),
			UserID:        owner,
			ShowtimeID:    uuid.New(),
			TotalAmount:   25.00,
			BookingStatus: bookings.BookingConfirmed,
			PaymentStatus: bookings.PaymentPending,
		},
	}
	repo := &fakePaymentRepo{}
	gateway := &fakeGateway{approve: approve}
	service := NewService(repo, provider, gateway)

	return service, repo, provider, gateway
}

func TestProcessPayment_Approved(t *testing.T) {
	service, repo, provider, _ := newPaymentTestService(t, true)
	booking := provider.booking

	resp, err := service.ProcessPayment(context.Background(), booking.UserID, booking.ID, ProcessPaymentRequest{
		Method: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, string(StatusCompleted), resp.Status)
	assert.Equal(t, 25.00, resp.Amount)
	assert.NotEmpty(t, resp.TransactionID)

	assert.Equal(t, bookings.BookingConfirmed, booking.BookingStatus)
	assert.Equal(t, bookings.PaymentCompleted, booking.PaymentStatus)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, StatusCompleted, repo.payments[0].Status)
}

func TestProcessPayment_Declined(t *testing.T) {
	service, repo, provider, _ := newPaymentTestService(t, false)
	booking := provider.booking

	_, err := service.ProcessPayment(context.Background(), booking.UserID, booking.ID, ProcessPaymentRequest{
		Method: "card",
	})
	require.Error(t, err)

	declined, ok := AsGatewayDeclined(err)
	require.True(t, ok, "expected a gateway decline, got %v", err)
	assert.NotEmpty(t, declined.TransactionID)

	// A decline still leaves an audit record, carrying the same transaction id
	require.Len(t, repo.payments, 1)
	assert.Equal(t, StatusFailed, repo.payments[0].Status)
	assert.Equal(t, declined.TransactionID, repo.payments[0].TransactionID)

	// Payment failed, but the seats (and the booking) survive for a retry
	assert.Equal(t, bookings.PaymentFailed, booking.PaymentStatus)
	assert.Equal(t, bookings.BookingConfirmed, booking.BookingStatus)
}

func TestProcessPayment_RetryAfterDecline(t *testing.T) {
	service, repo, provider, gateway := newPaymentTestService(t, false)
	booking := provider.booking
	ctx := context.Background()

	_, err := service.ProcessPayment(ctx, booking.UserID, booking.ID, ProcessPaymentRequest{Method: "card"})
	require.Error(t, err)

	gateway.approve = true
	resp, err := service.ProcessPayment(ctx, booking.UserID, booking.ID, ProcessPaymentRequest{Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, string(StatusCompleted), resp.Status)

	// One record per attempt, distinct transaction ids
	require.Len(t, repo.payments, 2)
	assert.NotEqual(t, repo.payments[0].TransactionID, repo.payments[1].TransactionID)
}

func TestProcessPayment_OnlyOwnerMayPay(t *testing.T) {
	service, _, provider, gateway := newPaymentTestService(t, true)

	_, err := service.ProcessPayment(context.Background(), uuid.New(), provider.booking.ID, ProcessPaymentRequest{
		Method: "card",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, gateway.charges, "the gateway must not be called for a foreign booking")
}

func TestProcessPayment_AlreadyPaid(t *testing.T) {
	service, _, provider, gateway := newPaymentTestService(t, true)
	provider.booking.PaymentStatus = bookings.PaymentCompleted

	_, err := service.ProcessPayment(context.Background(), provider.booking.UserID, provider.booking.ID, ProcessPaymentRequest{
		Method: "card",
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Zero(t, gateway.charges, "a completed booking must not be charged again")
}

func TestProcessPayment_BookingNotFound(t *testing.T) {
	service, _, _, _ := newPaymentTestService(t, true)

	_, err := service.ProcessPayment(context.Background(), uuid.New(), uuid.New(), ProcessPaymentRequest{
		Method: "card",
	})
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestGetPaymentsByBooking(t *testing.T) {
	service, _, provider, gateway := newPaymentTestService(t, false)
	booking := provider.booking
	ctx := context.Background()

	_, _ = service.ProcessPayment(ctx, booking.UserID, booking.ID, ProcessPaymentRequest{Method: "card"})
	gateway.approve = true
	_, err := service.ProcessPayment(ctx, booking.UserID, booking.ID, ProcessPaymentRequest{Method: "upi"})
	require.NoError(t, err)

	records, err := service.GetPaymentsByBooking(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestNewTransactionID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN_[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "transaction ids must not repeat: %s", id)
		seen[id] = true
	}
}

func TestSimulatedGateway_RespectsContext(t *testing.T) {
	gateway := NewSimulatedGateway(1.0, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := gateway.Charge(ctx, 10, "card")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
