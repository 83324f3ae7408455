package theaters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, theater *Theater) error
	GetByID(ctx context.Context, id uuid.UUID) (*Theater, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Theater, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context) ([]Theater, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Create(theater).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Theater, error) {
	var theater Theater
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&theater).Error
	if err != nil {
		return nil, err
	}
	return &theater, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Theater, error) {
	var theater Theater
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&theater).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&theater).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &theater, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Theater{}).Error
}

func (r *repository) GetAll(ctx context.Context) ([]Theater, error) {
	var theaters []Theater
	err := r.db.WithContext(ctx).Order("name ASC").Find(&theaters).Error
	if err != nil {
		return nil, err
	}
	return theaters, nil
}
