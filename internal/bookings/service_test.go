package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"booko/internal/showtimes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeEngine stands in for the showtimes service. Reservations succeed unless
// a conflict is configured; every release is recorded.
type fakeEngine struct {
	showtime   *showtimes.Showtime
	conflict   *showtimes.SeatConflictError
	reserved   [][]string
	released   [][]string
	releaseErr error
}

func (f *fakeEngine) GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error) {
	if f.showtime == nil || f.showtime.ID != id {
		return nil, showtimes.ErrShowtimeNotFound
	}
	return f.showtime, nil
}

func (f *fakeEngine) ReserveSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error {
	if f.conflict != nil {
		return f.conflict
	}
	f.reserved = append(f.reserved, seatIDs)
	return nil
}

func (f *fakeEngine) ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = append(f.released, seatIDs)
	return nil
}

type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*Booking
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["booking_status"]; ok {
		booking.BookingStatus = v.(BookingStatus)
	}
	if v, ok := updates["payment_status"]; ok {
		booking.PaymentStatus = v.(PaymentStatus)
	}
	if v, ok := updates["cancelled_at"]; ok {
		booking.CancelledAt = v.(*time.Time)
	}
	return booking, nil
}

func newBookingTestService(t *testing.T) (Service, *fakeBookingRepo, *fakeEngine, *showtimes.Showtime) {
	t.Helper()

	showtime := &showtimes.Showtime{
		ID:          uuid.New(),
		MovieID:     uuid.New(),
		TheaterID:   uuid.New(),
		ScreenID:    uuid.New(),
		ShowDate:    time.Now().AddDate(0, 0, 1),
		ShowTime:    "19:00",
		TicketPrice: 12.50,
	}

	repo := newFakeBookingRepo()
	engine := &fakeEngine{showtime: showtime}
	service := NewService(repo, engine)

	return service, repo, engine, showtime
}

func TestCreateBooking_Success(t *testing.T) {
	service, repo, engine, showtime := newBookingTestService(t)
	userID := uuid.New()

	resp, err := service.CreateBooking(context.Background(), userID, CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"A-1", "A-2", "A-3"},
	})
	require.NoError(t, err)

	assert.Equal(t, string(BookingConfirmed), resp.BookingStatus)
	assert.Equal(t, string(PaymentPending), resp.PaymentStatus)
	assert.Equal(t, 37.50, resp.TotalAmount)
	assert.ElementsMatch(t, []string{"A-1", "A-2", "A-3"}, resp.Seats)

	require.Len(t, engine.reserved, 1)
	assert.Len(t, repo.bookings, 1)
	assert.Empty(t, engine.released)
}

func TestCreateBooking_DuplicateSeatsChargedOnce(t *testing.T) {
	service, _, _, showtime := newBookingTestService(t)

	resp, err := service.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"A-1", "A-1", "A-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 25.0, resp.TotalAmount)
	assert.Len(t, resp.Seats, 2)
}

func TestCreateBooking_SeatConflict(t *testing.T) {
	service, repo, engine, showtime := newBookingTestService(t)
	engine.conflict = &showtimes.SeatConflictError{
		ShowtimeID:       showtime.ID.String(),
		UnavailableSeats: []string{"A-1"},
	}

	_, err := service.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"A-1", "A-2"},
	})
	require.Error(t, err)

	conflict, ok := showtimes.AsSeatConflict(err)
	require.True(t, ok, "expected a seat conflict, got %v", err)
	assert.Equal(t, []string{"A-1"}, conflict.UnavailableSeats)

	// No booking row for a reservation that lost
	assert.Empty(t, repo.bookings)
	assert.Empty(t, engine.released)
}

func TestCreateBooking_ShowtimeNotFound(t *testing.T) {
	service, repo, _, _ := newBookingTestService(t)

	_, err := service.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID: uuid.NewString(),
		Seats:      []string{"A-1"},
	})
	assert.ErrorIs(t, err, showtimes.ErrShowtimeNotFound)
	assert.Empty(t, repo.bookings)
}

func TestCreateBooking_ReleasesSeatsWhenPersistFails(t *testing.T) {
	service, repo, engine, showtime := newBookingTestService(t)
	repo.createErr = errors.New("connection reset")

	_, err := service.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"A-1", "A-2"},
	})
	require.Error(t, err)

	// Reserved seats must be handed back when the booking row never lands
	require.Len(t, engine.released, 1)
	assert.ElementsMatch(t, []string{"A-1", "A-2"}, engine.released[0])
}

func TestGetBookingByID_Authorization(t *testing.T) {
	service, _, _, showtime := newBookingTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := service.CreateBooking(ctx, owner, CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"A-1"},
	})
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	tests := []struct {
		name        string
		requesterID string
		role        string
		wantErr     error
	}{
		{"owner", owner.String(), "USER", nil},
		{"admin", uuid.NewString(), "ADMIN", nil},
		{"stranger", uuid.NewString(), "USER", ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.GetBookingByID(ctx, bookingID, tt.requesterID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateBookingStatus_CancelReleasesSeatsOnce(t *testing.T) {
	service, _, engine, showtime := newBookingTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := service.CreateBooking(ctx, owner, CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"B-1", "B-2"},
	})
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	cancelled := string(BookingCancelled)
	resp, err := service.UpdateBookingStatus(ctx, bookingID, owner.String(), "USER", UpdateBookingStatusRequest{
		BookingStatus: &cancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, string(BookingCancelled), resp.BookingStatus)
	assert.NotNil(t, resp.CancelledAt)

	require.Len(t, engine.released, 1)
	assert.ElementsMatch(t, []string{"B-1", "B-2"}, engine.released[0])

	// Cancelling an already-cancelled booking releases nothing further
	_, err = service.UpdateBookingStatus(ctx, bookingID, owner.String(), "USER", UpdateBookingStatusRequest{
		BookingStatus: &cancelled,
	})
	require.NoError(t, err)
	assert.Len(t, engine.released, 1)
}

func TestUpdateBookingStatus_CancelFailsWhenReleaseFails(t *testing.T) {
	service, repo, engine, showtime := newBookingTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := service.CreateBooking(ctx, owner, CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"B-1"},
	})
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	engine.releaseErr = errors.New("connection reset")

	cancelled := string(BookingCancelled)
	_, err = service.UpdateBookingStatus(ctx, bookingID, owner.String(), "USER", UpdateBookingStatusRequest{
		BookingStatus: &cancelled,
	})
	require.Error(t, err)

	// Status must not flip to cancelled while the seats are still held
	stored, err := repo.GetByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, stored.BookingStatus)
}

func TestUpdateBookingStatus_Forbidden(t *testing.T) {
	service, _, _, showtime := newBookingTestService(t)
	ctx := context.Background()

	created, err := service.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"C-1"},
	})
	require.NoError(t, err)

	cancelled := string(BookingCancelled)
	_, err = service.UpdateBookingStatus(ctx, uuid.MustParse(created.ID), uuid.NewString(), "USER", UpdateBookingStatusRequest{
		BookingStatus: &cancelled,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateBookingStatus_InvalidStatus(t *testing.T) {
	service, _, _, showtime := newBookingTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := service.CreateBooking(ctx, owner, CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"C-2"},
	})
	require.NoError(t, err)

	bogus := "teleported"
	_, err = service.UpdateBookingStatus(ctx, uuid.MustParse(created.ID), owner.String(), "USER", UpdateBookingStatusRequest{
		BookingStatus: &bogus,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatuses(t *testing.T) {
	service, repo, _, showtime := newBookingTestService(t)
	ctx := context.Background()

	created, err := service.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
		ShowtimeID: showtime.ID.String(),
		Seats:      []string{"D-1"},
	})
	require.NoError(t, err)
	bookingID := uuid.MustParse(created.ID)

	completed := PaymentCompleted
	require.NoError(t, service.SetStatuses(ctx, bookingID, nil, &completed))

	stored, err := repo.GetByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, PaymentCompleted, stored.PaymentStatus)
	assert.Equal(t, BookingConfirmed, stored.BookingStatus)
}

func TestSetStatuses_NotFound(t *testing.T) {
	service, _, _, _ := newBookingTestService(t)

	completed := PaymentCompleted
	err := service.SetStatuses(context.Background(), uuid.New(), nil, &completed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
