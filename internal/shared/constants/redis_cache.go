package constants

import (
	"fmt"
	"time"
)

// Centralized Redis cache keys and TTLs.
// Pattern: booko:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Catalog data changes rarely
const (
	TTL_MOVIE_DETAIL   = 2 * time.Hour
	TTL_MOVIE_LIST     = 1 * time.Hour
	TTL_THEATER_DETAIL = 4 * time.Hour
	TTL_SCREEN_LAYOUT  = 4 * time.Hour
	TTL_SHOWTIME_LIST  = 15 * time.Minute
)

// Seat availability is contended state; keep it near-realtime
const (
	TTL_SEAT_AVAILABILITY = 30 * time.Second
)

// ================== REDIS KEY PREFIXES ==================

const CACHE_PREFIX = "booko"

const (
	CACHE_KEY_MOVIE_DETAIL   = CACHE_PREFIX + ":movies:detail:uuid:"    // + movie-id
	CACHE_KEY_MOVIE_LIST     = CACHE_PREFIX + ":movies:list"            // + :genre:X
	CACHE_KEY_THEATER_DETAIL = CACHE_PREFIX + ":theaters:detail:uuid:"  // + theater-id
	CACHE_KEY_SCREEN_LAYOUT  = CACHE_PREFIX + ":screens:layout:uuid:"   // + screen-id
	CACHE_KEY_SHOWTIME_LIST  = CACHE_PREFIX + ":showtimes:list"         // + :movie:X
	CACHE_KEY_AVAILABILITY   = CACHE_PREFIX + ":showtimes:availability" // + :uuid:X
)

// ================== KEY BUILDERS ==================

// BuildAvailabilityKey builds the cache key for a showtime's seat availability
func BuildAvailabilityKey(showtimeID string) string {
	return fmt.Sprintf("%s:uuid:%s", CACHE_KEY_AVAILABILITY, showtimeID)
}

// BuildMovieDetailKey builds the cache key for one movie
func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

// BuildScreenLayoutKey builds the cache key for a screen's seat layout
func BuildScreenLayoutKey(screenID string) string {
	return CACHE_KEY_SCREEN_LAYOUT + screenID
}

// BuildShowtimeListKey builds the cache key for a showtime listing filter
func BuildShowtimeListKey(movieID string) string {
	if movieID == "" {
		return CACHE_KEY_SHOWTIME_LIST + ":all"
	}
	return fmt.Sprintf("%s:movie:%s", CACHE_KEY_SHOWTIME_LIST, movieID)
}
