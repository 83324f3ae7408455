package movies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, query MovieListQuery) ([]Movie, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Movie, error) {
	var movie Movie
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&movie).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	return &movie, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Movie{}).Error
}

func (r *repository) GetAll(ctx context.Context, query MovieListQuery) ([]Movie, int64, error) {
	var movies []Movie
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Movie{})

	if query.Search != "" {
		searchTerm := "%" + query.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", searchTerm, searchTerm)
	}

	if query.Genre != "" {
		// Genres are stored as a JSON array of strings
		db = db.Where("genres::text LIKE ?", "%\""+query.Genre+"\"%")
	}

	if query.Language != "" {
		db = db.Where("language = ?", query.Language)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	err := db.Order("release_date DESC").Offset(offset).Limit(limit).Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, totalCount, nil
}
