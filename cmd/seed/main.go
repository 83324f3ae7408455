package main

import (
	"fmt"
	"log"
	"time"

	"booko/internal/movies"
	"booko/internal/screens"
	"booko/internal/shared/config"
	"booko/internal/shared/database"
	"booko/internal/showtimes"
	"booko/internal/theaters"
	"booko/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Booko database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"booking_seats",
		"bookings",
		"showtime_seats",
		"showtimes",
		"seats",
		"screens",
		"theaters",
		"movies",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}

	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	movieIDs, err := s.seedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	theaterID, screenID, err := s.seedTheaterWithScreen()
	if err != nil {
		return fmt.Errorf("failed to seed theaters: %w", err)
	}

	if err := s.seedShowtimes(movieIDs, theaterID, screenID); err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	return nil
}

func (s *Seeder) seedUsers() error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []users.User{
		{
			Name:     "Admin",
			Email:    "admin@booko.dev",
			Password: string(password),
			Role:     users.RoleAdmin,
		},
		{
			Name:     "Alice Example",
			Email:    "alice@example.com",
			Password: string(password),
			Role:     users.RoleUser,
		},
		{
			Name:     "Bob Example",
			Email:    "bob@example.com",
			Password: string(password),
			Role:     users.RoleUser,
		},
	}

	return s.db.PostgreSQL.Create(&seedUsers).Error
}

func (s *Seeder) seedMovies() ([]uuid.UUID, error) {
	seedMovies := []movies.Movie{
		{
			Title:       "The Long Night",
			Description: "A detective chases a case that refuses to close.",
			Genres:      []string{"Thriller", "Drama"},
			Duration:    128,
			Language:    "English",
			ReleaseDate: time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Orbit",
			Description: "Three astronauts, one failing station, no easy way home.",
			Genres:      []string{"Sci-Fi"},
			Duration:    142,
			Language:    "English",
			ReleaseDate: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Monsoon Wedding Crashers",
			Description: "Two strangers, five weddings, one very confused family.",
			Genres:      []string{"Comedy", "Romance"},
			Duration:    115,
			Language:    "Hindi",
			ReleaseDate: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	if err := s.db.PostgreSQL.Create(&seedMovies).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(seedMovies))
	for i := range seedMovies {
		ids = append(ids, seedMovies[i].ID)
	}
	return ids, nil
}

func (s *Seeder) seedTheaterWithScreen() (uuid.UUID, uuid.UUID, error) {
	theater := theaters.Theater{
		Name:     "Grand Central Cinema",
		Location: "12 Station Road, Springfield",
	}
	if err := s.db.PostgreSQL.Create(&theater).Error; err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	// 8 rows of 10 seats: A-F normal, G premium, H vip
	var seats []screens.Seat
	rows := []struct {
		label    string
		category screens.SeatCategory
	}{
		{"A", screens.CategoryNormal},
		{"B", screens.CategoryNormal},
		{"C", screens.CategoryNormal},
		{"D", screens.CategoryNormal},
		{"E", screens.CategoryNormal},
		{"F", screens.CategoryNormal},
		{"G", screens.CategoryPremium},
		{"H", screens.CategoryVIP},
	}
	for _, row := range rows {
		for col := 1; col <= 10; col++ {
			seats = append(seats, screens.Seat{
				RowLabel: row.label,
				Col:      col,
				Category: row.category,
			})
		}
	}

	screen := screens.Screen{
		TheaterID:  theater.ID,
		Name:       "Screen 1",
		TotalSeats: len(seats),
	}
	if err := s.db.PostgreSQL.Create(&screen).Error; err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	for i := range seats {
		seats[i].ScreenID = screen.ID
	}
	if err := s.db.PostgreSQL.Create(&seats).Error; err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return theater.ID, screen.ID, nil
}

func (s *Seeder) seedShowtimes(movieIDs []uuid.UUID, theaterID, screenID uuid.UUID) error {
	showDate := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	slots := []string{"10:00", "14:30", "19:00"}
	prices := []float64{8.50, 10.00, 12.50}

	var seedShowtimes []showtimes.Showtime
	for _, movieID := range movieIDs {
		for i, slot := range slots {
			seedShowtimes = append(seedShowtimes, showtimes.Showtime{
				MovieID:     movieID,
				TheaterID:   theaterID,
				ScreenID:    screenID,
				ShowDate:    showDate,
				ShowTime:    slot,
				TicketPrice: prices[i],
			})
		}
		// Stagger dates so listings have variety
		showDate = showDate.AddDate(0, 0, 1)
	}

	return s.db.PostgreSQL.Create(&seedShowtimes).Error
}
