package showtimes

import (
	"context"
	"sync"
	"testing"
	"time"

	"booko/internal/screens"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepository keeps showtimes and the booked-seat set in memory. Reserve
// mirrors the database contract: all-or-nothing under a single lock.
type fakeRepository struct {
	mu        sync.Mutex
	showtimes map[uuid.UUID]*Showtime
	booked    map[uuid.UUID]map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		showtimes: make(map[uuid.UUID]*Showtime),
		booked:    make(map[uuid.UUID]map[string]bool),
	}
}

func (f *fakeRepository) addShowtime(showtime *Showtime) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showtimes[showtime.ID] = showtime
	if f.booked[showtime.ID] == nil {
		f.booked[showtime.ID] = make(map[string]bool)
	}
}

func (f *fakeRepository) Create(ctx context.Context, showtime *Showtime) error {
	if showtime.ID == uuid.Nil {
		showtime.ID = uuid.New()
	}
	f.addShowtime(showtime)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	showtime, ok := f.showtimes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return showtime, nil
}

func (f *fakeRepository) GetAll(ctx context.Context, query ShowtimeListQuery) ([]Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Showtime
	for _, s := range f.showtimes {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	showtime, ok := f.showtimes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return showtime, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.showtimes, id)
	delete(f.booked, id)
	return nil
}

func (f *fakeRepository) ReserveSeats(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	set := f.booked[showtimeID]
	if set == nil {
		set = make(map[string]bool)
		f.booked[showtimeID] = set
	}

	for _, label := range seatLabels {
		if set[label] {
			return ErrSeatTaken
		}
	}
	for _, label := range seatLabels {
		set[label] = true
	}
	return nil
}

func (f *fakeRepository) ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, label := range seatLabels {
		delete(f.booked[showtimeID], label)
	}
	return nil
}

func (f *fakeRepository) GetBookedSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var labels []string
	for label := range f.booked[showtimeID] {
		labels = append(labels, label)
	}
	return labels, nil
}

func (f *fakeRepository) GetBookedSeatsIn(ctx context.Context, showtimeID uuid.UUID, seatLabels []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var overlap []string
	for _, label := range seatLabels {
		if f.booked[showtimeID][label] {
			overlap = append(overlap, label)
		}
	}
	return overlap, nil
}

type fakeLayoutProvider struct {
	seats []screens.Seat
}

func (f *fakeLayoutProvider) GetScreenLayout(ctx context.Context, id uuid.UUID) ([]screens.Seat, error) {
	return f.seats, nil
}

func seatGrid(rows []string, cols int) []screens.Seat {
	var seats []screens.Seat
	for _, row := range rows {
		for col := 1; col <= cols; col++ {
			seats = append(seats, screens.Seat{
				RowLabel: row,
				Col:      col,
				Category: screens.CategoryNormal,
			})
		}
	}
	return seats
}

func newTestService(t *testing.T) (Service, *fakeRepository, *Showtime) {
	t.Helper()

	repo := newFakeRepository()
	showtime := &Showtime{
		ID:          uuid.New(),
		MovieID:     uuid.New(),
		TheaterID:   uuid.New(),
		ScreenID:    uuid.New(),
		ShowDate:    time.Now().AddDate(0, 0, 1),
		ShowTime:    "19:00",
		TicketPrice: 10,
	}
	repo.addShowtime(showtime)

	service := NewService(repo)
	service.SetLayoutProvider(&fakeLayoutProvider{seats: seatGrid([]string{"A", "B"}, 5)})

	return service, repo, showtime
}

func TestReserveSeats_Success(t *testing.T) {
	service, repo, showtime := newTestService(t)
	ctx := context.Background()

	err := service.ReserveSeats(ctx, showtime.ID, []string{"A-1", "A-2"})
	require.NoError(t, err)

	booked, err := repo.GetBookedSeats(ctx, showtime.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A-1", "A-2"}, booked)
}

func TestReserveSeats_Conflict(t *testing.T) {
	service, _, showtime := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.ReserveSeats(ctx, showtime.ID, []string{"A-1", "A-2"}))

	err := service.ReserveSeats(ctx, showtime.ID, []string{"A-2", "A-3"})
	require.Error(t, err)

	conflict, ok := AsSeatConflict(err)
	require.True(t, ok, "expected SeatConflictError, got %v", err)
	assert.Equal(t, []string{"A-2"}, conflict.UnavailableSeats)

	// The losing request must not have partially landed
	check, err := service.CheckAvailability(ctx, showtime.ID, []string{"A-3"})
	require.NoError(t, err)
	assert.True(t, check.AllAvailable)
}

func TestReserveSeats_DuplicateLabelsInRequest(t *testing.T) {
	service, repo, showtime := newTestService(t)
	ctx := context.Background()

	// The same seat named twice is one seat, not a self-conflict
	err := service.ReserveSeats(ctx, showtime.ID, []string{"A-1", "A-1"})
	require.NoError(t, err)

	booked, err := repo.GetBookedSeats(ctx, showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A-1"}, booked)
}

func TestReserveSeats_EmptyRequest(t *testing.T) {
	service, _, showtime := newTestService(t)

	err := service.ReserveSeats(context.Background(), showtime.ID, nil)
	assert.ErrorIs(t, err, ErrNoSeatsRequested)
}

func TestReserveSeats_ShowtimeNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.ReserveSeats(context.Background(), uuid.New(), []string{"A-1"})
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

// Two concurrent reservations with overlapping seats: at most one wins, and
// the booked set afterwards holds exactly the winner's seats.
func TestReserveSeats_ConcurrentOverlap(t *testing.T) {
	service, repo, showtime := newTestService(t)
	ctx := context.Background()

	const attempts = 50
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = service.ReserveSeats(ctx, showtime.ID, []string{"B-3", "B-4"})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			_, ok := AsSeatConflict(err)
			assert.True(t, ok, "losers must observe a seat conflict, got %v", err)
		}
	}
	assert.Equal(t, 1, winners)

	booked, err := repo.GetBookedSeats(ctx, showtime.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"B-3", "B-4"}, booked)
}

func TestReleaseSeats_Idempotent(t *testing.T) {
	service, repo, showtime := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.ReserveSeats(ctx, showtime.ID, []string{"A-1"}))
	require.NoError(t, service.ReleaseSeats(ctx, showtime.ID, []string{"A-1"}))

	// Releasing again, or releasing never-held seats, is a no-op
	require.NoError(t, service.ReleaseSeats(ctx, showtime.ID, []string{"A-1", "A-9"}))

	booked, err := repo.GetBookedSeats(ctx, showtime.ID)
	require.NoError(t, err)
	assert.Empty(t, booked)
}

func TestReleaseThenReserveAgain(t *testing.T) {
	service, _, showtime := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.ReserveSeats(ctx, showtime.ID, []string{"A-5"}))
	require.NoError(t, service.ReleaseSeats(ctx, showtime.ID, []string{"A-5"}))
	require.NoError(t, service.ReserveSeats(ctx, showtime.ID, []string{"A-5"}))
}

func TestCheckAvailability(t *testing.T) {
	service, _, showtime := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.ReserveSeats(ctx, showtime.ID, []string{"A-1", "B-2"}))

	tests := []struct {
		name        string
		seats       []string
		wantAll     bool
		wantOverlap []string
	}{
		{"all free", []string{"A-3", "A-4"}, true, nil},
		{"one taken", []string{"A-1", "A-3"}, false, []string{"A-1"}},
		{"all taken", []string{"A-1", "B-2"}, false, []string{"A-1", "B-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := service.CheckAvailability(ctx, showtime.ID, tt.seats)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAll, check.AllAvailable)
			assert.ElementsMatch(t, tt.wantOverlap, check.UnavailableSeats)
		})
	}
}

func TestComputeAvailableSeats_Conservation(t *testing.T) {
	service, _, showtime := newTestService(t)
	ctx := context.Background()

	// Layout is 2 rows x 5 cols = 10 seats
	require.NoError(t, service.ReserveSeats(ctx, showtime.ID, []string{"A-1", "A-2", "B-5"}))

	availability, err := service.ComputeAvailableSeats(ctx, showtime.ID)
	require.NoError(t, err)

	assert.Equal(t, 7, availability.TotalAvailable)
	assert.Len(t, availability.AvailableSeats, 7)
	assert.ElementsMatch(t, []string{"A-1", "A-2", "B-5"}, availability.BookedSeats)

	// Every layout seat is booked or available, never both
	seen := make(map[string]bool)
	for _, label := range availability.BookedSeats {
		seen[label] = true
	}
	for _, label := range availability.AvailableSeats {
		assert.False(t, seen[label], "seat %s is both booked and available", label)
		seen[label] = true
	}
	assert.Len(t, seen, 10)
}

func TestCreateShowtime_RejectsBadTimeFormat(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateShowtime(context.Background(), CreateShowtimeRequest{
		MovieID:     uuid.NewString(),
		TheaterID:   uuid.NewString(),
		ScreenID:    uuid.NewString(),
		ShowDate:    time.Now(),
		ShowTime:    "7pm",
		TicketPrice: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidShowTime)
}
