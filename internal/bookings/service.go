package bookings

import (
	"context"
	"errors"
	"math"
	"time"

	"booko/internal/showtimes"
	"booko/internal/users"
	"booko/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("not allowed to access this booking")
	ErrInvalidStatus   = errors.New("invalid status value")
)

// ReservationEngine is the slice of the showtimes service the booking
// lifecycle needs. Kept as a local interface so tests can fake it.
type ReservationEngine interface {
	GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error)
	ReserveSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error
	ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error
}

// Notifier publishes booking lifecycle events. Best-effort: a broker failure
// never fails the request.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, bookingID, userID, showtimeID string, seats []string, totalAmount float64)
	NotifyBookingCancelled(ctx context.Context, bookingID, userID, showtimeID string, seats []string)
}

type Service interface {
	SetNotifier(n Notifier)

	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID uuid.UUID, requesterID, requesterRole string) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, requesterID, requesterRole string, req UpdateBookingStatusRequest) (*BookingResponse, error)

	// Internal accessors for the payments service; authorization is the
	// caller's responsibility.
	GetBookingEntity(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	SetStatuses(ctx context.Context, bookingID uuid.UUID, bookingStatus *BookingStatus, paymentStatus *PaymentStatus) error
}

type service struct {
	repo     Repository
	engine   ReservationEngine
	notifier Notifier
}

func NewService(repo Repository, engine ReservationEngine) Service {
	return &service{
		repo:   repo,
		engine: engine,
	}
}

func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

// CreateBooking reserves the seats atomically, then persists the booking
// record. A booking row exists only if its seats were won; a reservation
// conflict surfaces as showtimes.SeatConflictError with the overlap.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, showtimes.ErrShowtimeNotFound
	}

	showtime, err := s.engine.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.ReserveSeats(ctx, showtimeID, req.Seats); err != nil {
		return nil, err
	}

	// The reservation deduplicated the request; mirror that here so the
	// amount matches the seats actually held.
	seats := uniqueSeats(req.Seats)
	totalAmount := showtime.TicketPrice * float64(len(seats))

	booking := &Booking{
		UserID:      userID,
		ShowtimeID:  showtimeID,
		TotalAmount: totalAmount,
		// Seats are held the moment they are reserved; payment follows.
		BookingStatus: BookingConfirmed,
		PaymentStatus: PaymentPending,
	}
	for _, label := range seats {
		booking.Seats = append(booking.Seats, BookingSeat{SeatLabel: label})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		// Give the seats back rather than leaving them held by a booking
		// that never existed.
		_ = s.engine.ReleaseSeats(ctx, showtimeID, seats)
		return nil, err
	}

	logger.GetDefault().LogBookingCreated(ctx, booking.ID.String(), showtimeID.String(), userID.String(), seats)

	if s.notifier != nil {
		s.notifier.NotifyBookingCreated(ctx, booking.ID.String(), userID.String(), showtimeID.String(), seats, totalAmount)
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetBookingByID(ctx context.Context, bookingID uuid.UUID, requesterID, requesterRole string) (*BookingResponse, error) {
	booking, err := s.GetBookingEntity(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !canAccess(booking, requesterID, requesterRole) {
		return nil, ErrForbidden
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return responses, nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

// UpdateBookingStatus applies requested status fields. Only the first
// transition into cancelled releases the seats; a repeated cancellation is a
// plain status write with nothing left to release. Release happens before the
// status write, so a failed write leaves seats free rather than locked
// (best-effort, not transactional with the status change).
func (s *service) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, requesterID, requesterRole string, req UpdateBookingStatusRequest) (*BookingResponse, error) {
	booking, err := s.GetBookingEntity(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !canAccess(booking, requesterID, requesterRole) {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})

	if req.BookingStatus != nil {
		if !IsValidBookingStatus(*req.BookingStatus) {
			return nil, ErrInvalidStatus
		}

		newStatus := BookingStatus(*req.BookingStatus)
		if newStatus == BookingCancelled && booking.BookingStatus != BookingCancelled {
			if err := s.engine.ReleaseSeats(ctx, booking.ShowtimeID, booking.SeatLabels()); err != nil {
				return nil, err
			}
			now := time.Now()
			updates["cancelled_at"] = &now

			logger.GetDefault().LogBookingCancelled(ctx, booking.ID.String(), booking.ShowtimeID.String(), booking.UserID.String())
			if s.notifier != nil {
				s.notifier.NotifyBookingCancelled(ctx, booking.ID.String(), booking.UserID.String(), booking.ShowtimeID.String(), booking.SeatLabels())
			}
		}

		updates["booking_status"] = newStatus
	}

	if req.PaymentStatus != nil {
		if !IsValidPaymentStatus(*req.PaymentStatus) {
			return nil, ErrInvalidStatus
		}
		updates["payment_status"] = PaymentStatus(*req.PaymentStatus)
	}

	if len(updates) == 0 {
		resp := booking.ToResponse()
		return &resp, nil
	}

	updated, err := s.repo.UpdateFields(ctx, bookingID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) GetBookingEntity(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *service) SetStatuses(ctx context.Context, bookingID uuid.UUID, bookingStatus *BookingStatus, paymentStatus *PaymentStatus) error {
	updates := make(map[string]interface{})
	if bookingStatus != nil {
		updates["booking_status"] = *bookingStatus
	}
	if paymentStatus != nil {
		updates["payment_status"] = *paymentStatus
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := s.repo.UpdateFields(ctx, bookingID, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookingNotFound
	}
	return err
}

func canAccess(booking *Booking, requesterID, requesterRole string) bool {
	return booking.UserID.String() == requesterID || requesterRole == string(users.RoleAdmin)
}

func uniqueSeats(seatIDs []string) []string {
	seen := make(map[string]bool, len(seatIDs))
	out := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
