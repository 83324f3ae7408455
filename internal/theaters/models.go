package theaters

import (
	"time"

	"github.com/google/uuid"
)

type Theater struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Location  string    `json:"location" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Theater) TableName() string {
	return "theaters"
}

type TheaterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTheaterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Location string `json:"location" binding:"required,min=2,max=500"`
}

type UpdateTheaterRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Location *string `json:"location" binding:"omitempty,min=2,max=500"`
}

func (t *Theater) ToResponse() TheaterResponse {
	return TheaterResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Location:  t.Location,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
