package screens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatID(t *testing.T) {
	tests := []struct {
		row  string
		col  int
		want string
	}{
		{"A", 1, "A-1"},
		{"A", 12, "A-12"},
		{"AA", 3, "AA-3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeatID(tt.row, tt.col))
	}
}

func TestSeatLabel_MatchesSeatID(t *testing.T) {
	seat := Seat{RowLabel: "G", Col: 7, Category: CategoryPremium}
	assert.Equal(t, "G-7", seat.Label())
}

func TestEnumerateSeats(t *testing.T) {
	seats := []Seat{
		{RowLabel: "A", Col: 1},
		{RowLabel: "A", Col: 2},
		{RowLabel: "B", Col: 1},
	}

	assert.Equal(t, []string{"A-1", "A-2", "B-1"}, EnumerateSeats(seats))
}

func TestCategoryByLabel(t *testing.T) {
	seats := []Seat{
		{RowLabel: "A", Col: 1, Category: CategoryNormal},
		{RowLabel: "G", Col: 1, Category: CategoryPremium},
		{RowLabel: "H", Col: 1, Category: CategoryVIP},
	}

	categories := CategoryByLabel(seats)
	assert.Equal(t, CategoryNormal, categories["A-1"])
	assert.Equal(t, CategoryPremium, categories["G-1"])
	assert.Equal(t, CategoryVIP, categories["H-1"])
}

func TestBuildSeats_DefaultsToNormal(t *testing.T) {
	seats, err := buildSeats([]RowLayout{
		{Row: "A", Seats: []SeatSpec{{Col: 1}, {Col: 2, Category: "VIP"}}},
	})
	require.NoError(t, err)
	require.Len(t, seats, 2)

	assert.Equal(t, CategoryNormal, seats[0].Category)
	assert.Equal(t, CategoryVIP, seats[1].Category)
}

func TestBuildSeats_RejectsDuplicatePosition(t *testing.T) {
	_, err := buildSeats([]RowLayout{
		{Row: "A", Seats: []SeatSpec{{Col: 1}, {Col: 1}}},
	})
	assert.ErrorIs(t, err, ErrDuplicateSeat)
}

func TestBuildSeats_RejectsDuplicateAcrossRowEntries(t *testing.T) {
	// The same row listed twice must not smuggle in a duplicate seat
	_, err := buildSeats([]RowLayout{
		{Row: "A", Seats: []SeatSpec{{Col: 1}}},
		{Row: "A", Seats: []SeatSpec{{Col: 1}}},
	})
	assert.ErrorIs(t, err, ErrDuplicateSeat)
}

func TestBuildSeats_RejectsUnknownCategory(t *testing.T) {
	_, err := buildSeats([]RowLayout{
		{Row: "A", Seats: []SeatSpec{{Col: 1, Category: "BALCONY"}}},
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("NORMAL"))
	assert.True(t, IsValidCategory("PREMIUM"))
	assert.True(t, IsValidCategory("VIP"))
	assert.False(t, IsValidCategory("normal"))
	assert.False(t, IsValidCategory(""))
}
