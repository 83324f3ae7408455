package showtimes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrNoSeatsRequested = errors.New("no seats requested")
	ErrInvalidShowTime  = errors.New("show time must be in HH:mm format")
)

// SeatConflictError reports a failed reservation. UnavailableSeats holds the
// overlap between the request and the booked set observed after the failed
// insert, so clients learn which seats to re-pick.
type SeatConflictError struct {
	ShowtimeID       string
	UnavailableSeats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats not available for showtime %s: %s",
		e.ShowtimeID, strings.Join(e.UnavailableSeats, ", "))
}

// AsSeatConflict unwraps err into a SeatConflictError if it is one.
func AsSeatConflict(err error) (*SeatConflictError, bool) {
	var conflict *SeatConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
