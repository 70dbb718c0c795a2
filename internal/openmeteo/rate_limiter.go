package openmeteo

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/ngmaloney/poseidon/internal/models"
)

// RateLimitedFetcher wraps a Fetcher with a token bucket.
// Open-Meteo's free tier asks for fewer than 10,000 calls per day.
type RateLimitedFetcher struct {
	source  Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher allows rps requests per second with the given burst
func NewRateLimitedFetcher(source Fetcher, rps float64, burst int) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for limiter permission or context cancellation, then forwards
func (r *RateLimitedFetcher) Fetch(ctx context.Context, lat, lon float64, now time.Time) (*models.MarineSnapshot, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Reason: ReasonRateLimited, Err: fmt.Errorf("rate limit wait canceled: %w", err)}
	}
	return r.source.Fetch(ctx, lat, lon, now)
}
