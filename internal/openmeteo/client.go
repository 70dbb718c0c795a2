package openmeteo

import (
	"context"
	"time"

	"github.com/ngmaloney/poseidon/internal/models"
)

// Fetcher retrieves the marine snapshot for the hour containing now
type Fetcher interface {
	// Fetch returns wave, sea temperature, wind, gust and pressure values
	// for the hourly bucket containing now at the given coordinates
	Fetch(ctx context.Context, lat, lon float64, now time.Time) (*models.MarineSnapshot, error)
}

var (
	_ Fetcher = (*Client)(nil)
	_ Fetcher = (*CachedFetcher)(nil)
	_ Fetcher = (*RateLimitedFetcher)(nil)
)
