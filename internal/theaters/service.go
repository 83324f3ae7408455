package theaters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTheaterNotFound = errors.New("theater not found")

type Service interface {
	CreateTheater(ctx context.Context, req CreateTheaterRequest) (*TheaterResponse, error)
	GetTheaterByID(ctx context.Context, id uuid.UUID) (*TheaterResponse, error)
	UpdateTheater(ctx context.Context, id uuid.UUID, req UpdateTheaterRequest) (*TheaterResponse, error)
	DeleteTheater(ctx context.Context, id uuid.UUID) error
	GetAllTheaters(ctx context.Context) ([]TheaterResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTheater(ctx context.Context, req CreateTheaterRequest) (*TheaterResponse, error) {
	theater := &Theater{
		Name:     req.Name,
		Location: req.Location,
	}

	if err := s.repo.Create(ctx, theater); err != nil {
		return nil, err
	}

	resp := theater.ToResponse()
	return &resp, nil
}

func (s *service) GetTheaterByID(ctx context.Context, id uuid.UUID) (*TheaterResponse, error) {
	theater, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}

	resp := theater.ToResponse()
	return &resp, nil
}

func (s *service) UpdateTheater(ctx context.Context, id uuid.UUID, req UpdateTheaterRequest) (*TheaterResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	theater, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}

	resp := theater.ToResponse()
	return &resp, nil
}

func (s *service) DeleteTheater(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTheaterNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) GetAllTheaters(ctx context.Context) ([]TheaterResponse, error) {
	theaters, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TheaterResponse, 0, len(theaters))
	for i := range theaters {
		responses = append(responses, theaters[i].ToResponse())
	}

	return responses, nil
}
