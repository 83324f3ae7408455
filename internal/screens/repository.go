package screens

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, screen *Screen, seats []Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Screen, error)
	GetSeats(ctx context.Context, screenID uuid.UUID) ([]Seat, error)
	GetByTheater(ctx context.Context, theaterID uuid.UUID) ([]Screen, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Screen, error)
	ReplaceSeats(ctx context.Context, screenID uuid.UUID, seats []Seat, totalSeats int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, screen *Screen, seats []Seat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(screen).Error; err != nil {
			return err
		}
		for i := range seats {
			seats[i].ScreenID = screen.ID
		}
		if len(seats) > 0 {
			if err := tx.Create(&seats).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Screen, error) {
	var screen Screen
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&screen).Error
	if err != nil {
		return nil, err
	}
	return &screen, nil
}

func (r *repository) GetSeats(ctx context.Context, screenID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("screen_id = ?", screenID).
		Order("row_label ASC, col ASC").
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *repository) GetByTheater(ctx context.Context, theaterID uuid.UUID) ([]Screen, error) {
	var screens []Screen
	err := r.db.WithContext(ctx).
		Where("theater_id = ?", theaterID).
		Order("name ASC").
		Find(&screens).Error
	if err != nil {
		return nil, err
	}
	return screens, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Screen, error) {
	var screen Screen
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&screen).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&screen).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &screen, nil
}

func (r *repository) ReplaceSeats(ctx context.Context, screenID uuid.UUID, seats []Seat, totalSeats int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("screen_id = ?", screenID).Delete(&Seat{}).Error; err != nil {
			return err
		}
		for i := range seats {
			seats[i].ScreenID = screenID
		}
		if len(seats) > 0 {
			if err := tx.Create(&seats).Error; err != nil {
				return err
			}
		}
		return tx.Model(&Screen{}).Where("id = ?", screenID).
			Update("total_seats", totalSeats).Error
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("screen_id = ?", id).Delete(&Seat{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Screen{}).Error
	})
}
