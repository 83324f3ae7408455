package showtimes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"booko/internal/screens"
	"booko/internal/shared/constants"
	"booko/pkg/cache"
	"booko/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LayoutProvider supplies a screen's seat layout. Implemented by the screens
// service; kept as a local interface so tests can fake it.
type LayoutProvider interface {
	GetScreenLayout(ctx context.Context, id uuid.UUID) ([]screens.Seat, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetLayoutProvider(provider LayoutProvider)

	CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error)
	GetShowtimeByID(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error)
	GetAllShowtimes(ctx context.Context, query ShowtimeListQuery) ([]ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id uuid.UUID) error

	// Reservation engine.
	ReserveSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error
	ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error
	CheckAvailability(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) (*AvailabilityCheck, error)
	ComputeAvailableSeats(ctx context.Context, showtimeID uuid.UUID) (*SeatAvailability, error)
}

type service struct {
	repo         Repository
	layout       LayoutProvider
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetLayoutProvider(provider LayoutProvider) {
	s.layout = provider
}

func (s *service) CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error) {
	if _, err := time.Parse("15:04", req.ShowTime); err != nil {
		return nil, ErrInvalidShowTime
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}
	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater id: %w", err)
	}
	screenID, err := uuid.Parse(req.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("invalid screen id: %w", err)
	}

	showtime := &Showtime{
		MovieID:     movieID,
		TheaterID:   theaterID,
		ScreenID:    screenID,
		ShowDate:    req.ShowDate,
		ShowTime:    req.ShowTime,
		TicketPrice: req.TicketPrice,
	}

	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := showtime.ToResponse()
	return &resp, nil
}

func (s *service) GetShowtimeByID(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error) {
	showtime, err := s.GetShowtime(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := showtime.ToResponse()
	return &resp, nil
}

// GetShowtime returns the raw entity; the bookings service needs the screen
// reference and ticket price, not the response shape.
func (s *service) GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	showtime, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return showtime, nil
}

func (s *service) GetAllShowtimes(ctx context.Context, query ShowtimeListQuery) ([]ShowtimeResponse, error) {
	showtimes, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]ShowtimeResponse, 0, len(showtimes))
	for i := range showtimes {
		responses = append(responses, showtimes[i].ToResponse())
	}
	return responses, nil
}

func (s *service) UpdateShowtime(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error) {
	updates := make(map[string]interface{})

	if req.ShowDate != nil {
		updates["show_date"] = *req.ShowDate
	}
	if req.ShowTime != nil {
		if _, err := time.Parse("15:04", *req.ShowTime); err != nil {
			return nil, ErrInvalidShowTime
		}
		updates["show_time"] = *req.ShowTime
	}
	if req.TicketPrice != nil {
		updates["ticket_price"] = *req.TicketPrice
	}

	showtime, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := showtime.ToResponse()
	return &resp, nil
}

func (s *service) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetShowtime(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.invalidateAvailabilityCache(ctx, id)
	return nil
}

// ReserveSeats adds all requested seats to the showtime's booked set iff
// none of them are currently held. The atomicity lives in the storage layer;
// this method only validates input, translates the conflict, and keeps the
// availability cache honest.
func (s *service) ReserveSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error {
	seatIDs = dedupe(seatIDs)
	if len(seatIDs) == 0 {
		return ErrNoSeatsRequested
	}

	if _, err := s.GetShowtime(ctx, showtimeID); err != nil {
		return err
	}

	err := s.repo.ReserveSeats(ctx, showtimeID, seatIDs)
	if err != nil {
		if errors.Is(err, ErrSeatTaken) {
			// The insert failed as a whole; report which of the requested
			// seats are held right now.
			unavailable, lookupErr := s.repo.GetBookedSeatsIn(ctx, showtimeID, seatIDs)
			if lookupErr != nil || len(unavailable) == 0 {
				unavailable = seatIDs
			}
			logger.GetDefault().LogSeatConflict(ctx, showtimeID.String(), unavailable)
			return &SeatConflictError{
				ShowtimeID:       showtimeID.String(),
				UnavailableSeats: unavailable,
			}
		}
		return err
	}

	s.invalidateAvailabilityCache(ctx, showtimeID)
	return nil
}

// ReleaseSeats removes seats from the booked set. Safe to call with seats
// that are not held.
func (s *service) ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) error {
	seatIDs = dedupe(seatIDs)
	if len(seatIDs) == 0 {
		return nil
	}

	if err := s.repo.ReleaseSeats(ctx, showtimeID, seatIDs); err != nil {
		return err
	}

	s.invalidateAvailabilityCache(ctx, showtimeID)
	return nil
}

// CheckAvailability intersects the requested seats with the booked set. The
// answer is advisory: a later ReserveSeats can still fail.
func (s *service) CheckAvailability(ctx context.Context, showtimeID uuid.UUID, seatIDs []string) (*AvailabilityCheck, error) {
	seatIDs = dedupe(seatIDs)
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsRequested
	}

	if _, err := s.GetShowtime(ctx, showtimeID); err != nil {
		return nil, err
	}

	unavailable, err := s.repo.GetBookedSeatsIn(ctx, showtimeID, seatIDs)
	if err != nil {
		return nil, err
	}

	return &AvailabilityCheck{
		AllAvailable:     len(unavailable) == 0,
		UnavailableSeats: unavailable,
	}, nil
}

// ComputeAvailableSeats derives availability from the screen layout minus the
// booked set. Every seat of the layout is either booked or available, never
// both.
func (s *service) ComputeAvailableSeats(ctx context.Context, showtimeID uuid.UUID) (*SeatAvailability, error) {
	key := constants.BuildAvailabilityKey(showtimeID.String())

	if s.cacheService != nil {
		var cached SeatAvailability
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	showtime, err := s.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	if s.layout == nil {
		return nil, errors.New("layout provider not configured")
	}

	seats, err := s.layout.GetScreenLayout(ctx, showtime.ScreenID)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.GetBookedSeats(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	bookedSet := make(map[string]bool, len(booked))
	for _, label := range booked {
		bookedSet[label] = true
	}

	available := make([]string, 0, len(seats))
	for _, label := range screens.EnumerateSeats(seats) {
		if !bookedSet[label] {
			available = append(available, label)
		}
	}
	sort.Strings(available)

	availability := &SeatAvailability{
		ShowtimeID:     showtimeID.String(),
		BookedSeats:    booked,
		AvailableSeats: available,
		TotalAvailable: len(available),
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, availability, constants.TTL_SEAT_AVAILABILITY)
	}

	return availability, nil
}

func (s *service) invalidateAvailabilityCache(ctx context.Context, showtimeID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.BuildAvailabilityKey(showtimeID.String()))
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_SHOWTIME_LIST+"*")
}

// dedupe preserves first-seen order while dropping repeats; a request that
// names the same seat twice is one seat, not a self-conflict.
func dedupe(seatIDs []string) []string {
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
