package screens

import "fmt"

// SeatID is the canonical seat label "{row}-{col}". Every place that compares
// seats (reservation, availability, booked-set membership) goes through this
// one form.
func SeatID(row string, col int) string {
	return fmt.Sprintf("%s-%d", row, col)
}

// Label returns the seat's canonical identifier.
func (s *Seat) Label() string {
	return SeatID(s.RowLabel, s.Col)
}

// EnumerateSeats flattens a screen's layout into the set of canonical seat
// labels. Availability is computed as this set minus the booked set.
func EnumerateSeats(seats []Seat) []string {
	labels := make([]string, 0, len(seats))
	for i := range seats {
		labels = append(labels, seats[i].Label())
	}
	return labels
}

// CategoryByLabel maps each seat label to its category, for pricing and
// legend rendering.
func CategoryByLabel(seats []Seat) map[string]SeatCategory {
	m := make(map[string]SeatCategory, len(seats))
	for i := range seats {
		m[seats[i].Label()] = seats[i].Category
	}
	return m
}
