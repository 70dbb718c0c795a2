package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/poseidon/internal/models"
)

const hourLayout = "2006-01-02T15:04"

// Client implements Fetcher using the Open-Meteo marine and forecast APIs
type Client struct {
	marineURL   string
	forecastURL string
	httpClient  *http.Client
	userAgent   string
	loc         *time.Location
	logger      *zap.Logger
}

// NewClient creates a client that requests and selects hourly data in loc.
// The zone name is sent to the API, so loc must be an IANA zone (or nil
// for UTC); time.Local is rejected.
func NewClient(loc *time.Location, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if loc == nil {
		loc = time.UTC
	}
	if loc == time.Local || loc.String() == "Local" {
		return nil, fmt.Errorf("timezone must be an IANA zone name, not %q", loc.String())
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		marineURL:   "https://marine-api.open-meteo.com/v1/marine",
		forecastURL: "https://api.open-meteo.com/v1/forecast",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "Poseidon/1.0 (github.com/ngmaloney/poseidon)",
		loc:       loc,
		logger:    logger,
	}, nil
}

// Fetch queries the marine and atmospheric endpoints concurrently and
// extracts the bucket whose timestamp equals now's hour in the client zone.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, now time.Time) (*models.MarineSnapshot, error) {
	var marine, atmos *hourlyResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		marine, err = c.getHourly(gctx, c.marineURL, lat, lon, "wave_height,sea_surface_temperature", nil)
		return err
	})
	g.Go(func() error {
		var err error
		atmos, err = c.getHourly(gctx, c.forecastURL, lat, lon, "wind_speed_10m,wind_gusts_10m,surface_pressure",
			url.Values{"wind_speed_unit": {"ms"}})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	local := now.In(c.loc)
	hour := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, c.loc)
	key := hour.Format(hourLayout)

	mi, err := marine.indexOf(key, c.marineURL)
	if err != nil {
		return nil, err
	}
	ai, err := atmos.indexOf(key, c.forecastURL)
	if err != nil {
		return nil, err
	}

	snap := &models.MarineSnapshot{Hour: hour, FetchedAt: time.Now()}
	fields := []struct {
		name   string
		series []*float64
		idx    int
		dst    *float64
		from   string
	}{
		{"wave_height", marine.Hourly.WaveHeight, mi, &snap.WaveHeightM, c.marineURL},
		{"sea_surface_temperature", marine.Hourly.SeaSurfaceTemperature, mi, &snap.SeaSurfaceTempC, c.marineURL},
		{"wind_speed_10m", atmos.Hourly.WindSpeed10m, ai, &snap.WindSpeedMS, c.forecastURL},
		{"wind_gusts_10m", atmos.Hourly.WindGusts10m, ai, &snap.WindGustMS, c.forecastURL},
		{"surface_pressure", atmos.Hourly.SurfacePressure, ai, &snap.PressureHPa, c.forecastURL},
	}
	for _, f := range fields {
		if f.idx >= len(f.series) || f.series[f.idx] == nil {
			return nil, &FetchError{
				Reason:   ReasonMissingHour,
				Endpoint: f.from,
				Err:      fmt.Errorf("no %s value for %s", f.name, key),
			}
		}
		*f.dst = *f.series[f.idx]
	}

	c.logger.Debug("Fetched marine snapshot",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.String("hour", key))

	return snap, nil
}

// getHourly performs one GET for a single forecast day
func (c *Client) getHourly(ctx context.Context, endpoint string, lat, lon float64, hourly string, extra url.Values) (*hourlyResponse, error) {
	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Add("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Add("hourly", hourly)
	params.Add("forecast_days", "1")
	params.Add("timezone", c.loc.String())
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	requestURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, &FetchError{Reason: ReasonNetwork, Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Reason: ReasonNetwork, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Reason:   ReasonStatus,
			Endpoint: endpoint,
			Err:      fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var out hourlyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &FetchError{Reason: ReasonDecode, Endpoint: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if out.Error {
		return nil, &FetchError{Reason: ReasonStatus, Endpoint: endpoint, Err: fmt.Errorf("API error: %s", out.Reason)}
	}

	return &out, nil
}

// Internal types for Open-Meteo responses

type hourlyResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
	Hourly struct {
		Time                  []string   `json:"time"`
		WaveHeight            []*float64 `json:"wave_height"`
		SeaSurfaceTemperature []*float64 `json:"sea_surface_temperature"`
		WindSpeed10m          []*float64 `json:"wind_speed_10m"`
		WindGusts10m          []*float64 `json:"wind_gusts_10m"`
		SurfacePressure       []*float64 `json:"surface_pressure"`
	} `json:"hourly"`
}

func (r *hourlyResponse) indexOf(key, endpoint string) (int, error) {
	for i, ts := range r.Hourly.Time {
		if ts == key {
			return i, nil
		}
	}
	return 0, &FetchError{
		Reason:   ReasonMissingHour,
		Endpoint: endpoint,
		Err:      fmt.Errorf("hour %s not in response", key),
	}
}
