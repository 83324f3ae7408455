package screens

import (
	"time"

	"github.com/google/uuid"
)

type Screen struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TheaterID  uuid.UUID `json:"theater_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"not null;size:100"`
	TotalSeats int       `json:"total_seats" gorm:"not null;check:total_seats >= 0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Screen) TableName() string {
	return "screens"
}

// Seat is one position in a screen's layout. Identity for booking purposes
// is (row_label, col), serialized with SeatID.
type Seat struct {
	ID       uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ScreenID uuid.UUID    `json:"screen_id" gorm:"type:uuid;not null;index"`
	RowLabel string       `json:"row" gorm:"column:row_label;not null;size:5"`
	Col      int          `json:"col" gorm:"not null;check:col > 0"`
	Category SeatCategory `json:"category" gorm:"type:varchar(20);not null;default:'NORMAL'"`
}

func (Seat) TableName() string {
	return "seats"
}

type SeatSpec struct {
	Col      int    `json:"col" binding:"required,min=1"`
	Category string `json:"category" binding:"omitempty,oneof=NORMAL PREMIUM VIP"`
}

type RowLayout struct {
	Row   string     `json:"row" binding:"required,min=1,max=5"`
	Seats []SeatSpec `json:"seats" binding:"required,min=1,dive"`
}

type CreateScreenRequest struct {
	TheaterID string      `json:"theater_id" binding:"required,uuid"`
	Name      string      `json:"name" binding:"required,min=1,max=100"`
	Rows      []RowLayout `json:"rows" binding:"required,min=1,dive"`
}

type UpdateScreenRequest struct {
	Name *string     `json:"name" binding:"omitempty,min=1,max=100"`
	Rows []RowLayout `json:"rows" binding:"omitempty,min=1,dive"`
}

type SeatResponse struct {
	Label    string `json:"label"`
	Row      string `json:"row"`
	Col      int    `json:"col"`
	Category string `json:"category"`
}

type ScreenResponse struct {
	ID         string         `json:"id"`
	TheaterID  string         `json:"theater_id"`
	Name       string         `json:"name"`
	TotalSeats int            `json:"total_seats"`
	Seats      []SeatResponse `json:"seats,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (s *Screen) ToResponse(seats []Seat) ScreenResponse {
	resp := ScreenResponse{
		ID:         s.ID.String(),
		TheaterID:  s.TheaterID.String(),
		Name:       s.Name,
		TotalSeats: s.TotalSeats,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	for i := range seats {
		resp.Seats = append(resp.Seats, SeatResponse{
			Label:    seats[i].Label(),
			Row:      seats[i].RowLabel,
			Col:      seats[i].Col,
			Category: string(seats[i].Category),
		})
	}
	return resp
}
