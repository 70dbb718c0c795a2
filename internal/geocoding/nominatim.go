// Package geocoding resolves free-text place names to coordinates using
// OpenStreetMap's Nominatim search API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	userAgent    = "Poseidon/1.0 (github.com/ngmaloney/poseidon)" // Required by Nominatim ToS
)

// Geocoder converts place names to coordinates
type Geocoder struct {
	baseURL      string
	countryCodes string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *zap.Logger
}

// Location represents a geocoded location
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// NewGeocoder creates a geocoder restricted to countryCodes (comma
// separated ISO 3166-1 codes, empty for worldwide)
func NewGeocoder(countryCodes string, logger *zap.Logger) *Geocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Geocoder{
		baseURL:      nominatimURL,
		countryCodes: countryCodes,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Nominatim allows at most one request per second
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logger,
	}
}

// nominatimResponse represents the Nominatim API response
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode converts a place name such as "銚子港" to coordinates
func (g *Geocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("q", query)
	if g.countryCodes != "" {
		params.Add("countrycodes", g.countryCodes)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d", resp.StatusCode)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results found for '%s'", query)
	}

	result := results[0]
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude: %w", err)
	}

	g.logger.Debug("Geocoded place",
		zap.String("query", query),
		zap.String("match", result.DisplayName),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      result.DisplayName,
	}, nil
}
