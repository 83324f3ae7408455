package movies

import (
	"context"
	"errors"
	"math"

	"booko/internal/shared/constants"
	"booko/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error)
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

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:       req.Title,
		Description: req.Description,
		Genres:      req.Genres,
		Duration:    req.Duration,
		Language:    req.Language,
		ReleaseDate: req.ReleaseDate,
		PosterImage: req.PosterImage,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	key := constants.BuildMovieDetailKey(id.String())

	if s.cacheService != nil {
		var cached MovieResponse
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	resp := movie.ToResponse()

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, resp, constants.TTL_MOVIE_DETAIL)
	}

	return &resp, nil
}

func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Genres != nil {
		updates["genres"] = req.Genres
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.ReleaseDate != nil {
		updates["release_date"] = *req.ReleaseDate
	}
	if req.PosterImage != nil {
		updates["poster_image"] = *req.PosterImage
	}

	movie, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	s.invalidateMovieCache(ctx, id)

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateMovieCache(ctx, id)
	return nil
}

func (s *service) GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error) {
	movies, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]MovieResponse, 0, len(movies))
	for i := range movies {
		responses = append(responses, movies[i].ToResponse())
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	return &PaginatedMovies{
		Movies:     responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

func (s *service) invalidateMovieCache(ctx context.Context, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.BuildMovieDetailKey(id.String()))
	s.invalidateListCache(ctx)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_MOVIE_LIST+"*")
}
