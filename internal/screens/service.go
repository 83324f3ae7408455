package screens

import (
	"context"
	"errors"
	"fmt"

	"booko/internal/shared/constants"
	"booko/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrScreenNotFound  = errors.New("screen not found")
	ErrDuplicateSeat   = errors.New("duplicate seat position in layout")
	ErrInvalidCategory = errors.New("invalid seat category")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateScreen(ctx context.Context, req CreateScreenRequest) (*ScreenResponse, error)
	GetScreenByID(ctx context.Context, id uuid.UUID) (*ScreenResponse, error)
	GetScreenLayout(ctx context.Context, id uuid.UUID) ([]Seat, error)
	GetScreensByTheater(ctx context.Context, theaterID uuid.UUID) ([]ScreenResponse, error)
	UpdateScreen(ctx context.Context, id uuid.UUID, req UpdateScreenRequest) (*ScreenResponse, error)
	DeleteScreen(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// buildSeats validates a layout request and flattens it into seat rows.
// Every (row, col) pair must be unique within the screen.
func buildSeats(rows []RowLayout) ([]Seat, error) {
	seen := make(map[string]bool)
	var seats []Seat

	for _, row := range rows {
		for _, spec := range row.Seats {
			category := spec.Category
			if category == "" {
				category = string(CategoryNormal)
			}
			if !IsValidCategory(category) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
			}

			label := SeatID(row.Row, spec.Col)
			if seen[label] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, label)
			}
			seen[label] = true

			seats = append(seats, Seat{
				RowLabel: row.Row,
				Col:      spec.Col,
				Category: SeatCategory(category),
			})
		}
	}

	return seats, nil
}

func (s *service) CreateScreen(ctx context.Context, req CreateScreenRequest) (*ScreenResponse, error) {
	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater id: %w", err)
	}

	seats, err := buildSeats(req.Rows)
	if err != nil {
		return nil, err
	}

	screen := &Screen{
		TheaterID: theaterID,
		Name:      req.Name,
		// totalSeats is derived from the layout, never taken from the client
		TotalSeats: len(seats),
	}

	if err := s.repo.Create(ctx, screen, seats); err != nil {
		return nil, err
	}

	resp := screen.ToResponse(seats)
	return &resp, nil
}

func (s *service) GetScreenByID(ctx context.Context, id uuid.UUID) (*ScreenResponse, error) {
	screen, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}

	seats, err := s.GetScreenLayout(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := screen.ToResponse(seats)
	return &resp, nil
}

// GetScreenLayout returns the screen's seats, cache-aside. The layout only
// changes on admin edits, so a long TTL is safe.
func (s *service) GetScreenLayout(ctx context.Context, id uuid.UUID) ([]Seat, error) {
	key := constants.BuildScreenLayoutKey(id.String())

	if s.cacheService != nil {
		var cached []Seat
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	seats, err := s.repo.GetSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, seats, constants.TTL_SCREEN_LAYOUT)
	}

	return seats, nil
}

func (s *service) GetScreensByTheater(ctx context.Context, theaterID uuid.UUID) ([]ScreenResponse, error) {
	screens, err := s.repo.GetByTheater(ctx, theaterID)
	if err != nil {
		return nil, err
	}

	responses := make([]ScreenResponse, 0, len(screens))
	for i := range screens {
		responses = append(responses, screens[i].ToResponse(nil))
	}

	return responses, nil
}

func (s *service) UpdateScreen(ctx context.Context, id uuid.UUID, req UpdateScreenRequest) (*ScreenResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if _, err := s.repo.Update(ctx, id, map[string]interface{}{"name": *req.Name}); err != nil {
			return nil, err
		}
	}

	if req.Rows != nil {
		seats, err := buildSeats(req.Rows)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceSeats(ctx, id, seats, len(seats)); err != nil {
			return nil, err
		}
	}

	s.invalidateLayoutCache(ctx, id)
	return s.GetScreenByID(ctx, id)
}

func (s *service) DeleteScreen(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScreenNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateLayoutCache(ctx, id)
	return nil
}

func (s *service) invalidateLayoutCache(ctx context.Context, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.BuildScreenLayoutKey(id.String()))
}
