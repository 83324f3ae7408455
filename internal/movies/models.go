package movies

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Genres      []string  `json:"genres" gorm:"serializer:json;type:jsonb"`
	Duration    int       `json:"duration" gorm:"not null;check:duration > 0"` // minutes
	Language    string    `json:"language" gorm:"not null;size:50"`
	ReleaseDate time.Time `json:"release_date" gorm:"not null"`
	PosterImage string    `json:"poster_image" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genres      []string  `json:"genres"`
	Duration    int       `json:"duration"`
	Language    string    `json:"language"`
	ReleaseDate time.Time `json:"release_date"`
	PosterImage string    `json:"poster_image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateMovieRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	Genres      []string  `json:"genres" binding:"required,min=1"`
	Duration    int       `json:"duration" binding:"required,min=1,max=600"`
	Language    string    `json:"language" binding:"required,min=2,max=50"`
	ReleaseDate time.Time `json:"release_date" binding:"required"`
	PosterImage string    `json:"poster_image" binding:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Genres      []string   `json:"genres"`
	Duration    *int       `json:"duration" binding:"omitempty,min=1,max=600"`
	Language    *string    `json:"language" binding:"omitempty,min=2,max=50"`
	ReleaseDate *time.Time `json:"release_date"`
	PosterImage *string    `json:"poster_image" binding:"omitempty,url"`
}

type MovieListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Genre    string `form:"genre"`
	Language string `form:"language"`
}

type PaginatedMovies struct {
	Movies     []MovieResponse `json:"movies"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (m *Movie) ToResponse() MovieResponse {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		Genres:      genres,
		Duration:    m.Duration,
		Language:    m.Language,
		ReleaseDate: m.ReleaseDate,
		PosterImage: m.PosterImage,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
