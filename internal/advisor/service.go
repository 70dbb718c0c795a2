// Package advisor ties the marine fetcher, the scorer and the catch log
// together for the presentation layer.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/poseidon/internal/areas"
	"github.com/ngmaloney/poseidon/internal/history"
	"github.com/ngmaloney/poseidon/internal/lunar"
	"github.com/ngmaloney/poseidon/internal/models"
	"github.com/ngmaloney/poseidon/internal/openmeteo"
	"github.com/ngmaloney/poseidon/internal/scoring"
)

// ErrUnknownArea is returned when an area name is not in the table
var ErrUnknownArea = errors.New("unknown area")

// nearbyKm is how far a coordinate may be from an area to share its history
const nearbyKm = 10.0

// AreaForecast is the scoring outcome for one area. When the marine data
// could not be fetched Err is set and no score is present.
type AreaForecast struct {
	Area        models.Area
	Snapshot    *models.MarineSnapshot
	Tide        models.TideState
	MoonPhase   float64
	HistoryRate float64
	Result      scoring.ScoreResult
	Err         error
}

// Unavailable reports whether the area could not be scored
func (f AreaForecast) Unavailable() bool {
	return f.Err != nil
}

// Options configures a Service
type Options struct {
	Areas    *areas.Table
	Fetcher  openmeteo.Fetcher
	History  history.Repository
	Scoring  scoring.Table
	Location *time.Location
	Logger   *zap.Logger
	// Concurrency bounds parallel fetches; 0 means one per area
	Concurrency int
}

// Service orchestrates scoring and catch logging
type Service struct {
	areas       *areas.Table
	fetcher     openmeteo.Fetcher
	repo        history.Repository
	table       scoring.Table
	loc         *time.Location
	logger      *zap.Logger
	concurrency int
}

// NewService creates a new advisor service
func NewService(opts Options) *Service {
	if opts.Areas == nil {
		opts.Areas = areas.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		areas:       opts.Areas,
		fetcher:     opts.Fetcher,
		repo:        opts.History,
		table:       opts.Scoring,
		loc:         opts.Location,
		logger:      opts.Logger,
		concurrency: opts.Concurrency,
	}
}

// Areas returns the area table in use
func (s *Service) Areas() *areas.Table {
	return s.areas
}

// ScoreAreas scores every area concurrently. A failed fetch marks only that
// area unavailable. An empty tide is approximated from now.
func (s *Service) ScoreAreas(ctx context.Context, tide models.TideState, now time.Time, species ...string) ([]AreaForecast, error) {
	recs, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	list := s.areas.All()
	out := make([]AreaForecast, len(list))

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, a := range list {
		i, a := i, a
		g.Go(func() error {
			out[i] = s.forecast(gctx, a, recs, tide, now, species)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// ScoreArea scores a single named area
func (s *Service) ScoreArea(ctx context.Context, name string, tide models.TideState, now time.Time, species ...string) (AreaForecast, error) {
	a, ok := s.areas.Lookup(name)
	if !ok {
		return AreaForecast{}, fmt.Errorf("%w: %s", ErrUnknownArea, name)
	}

	recs, err := s.repo.Load(ctx)
	if err != nil {
		return AreaForecast{}, fmt.Errorf("loading history: %w", err)
	}
	return s.forecast(ctx, a, recs, tide, now, species), nil
}

// ScoreCoordinate scores an arbitrary point. History from the closest area
// within 10 km is used when there is one.
func (s *Service) ScoreCoordinate(ctx context.Context, lat, lon float64, tide models.TideState, now time.Time, species ...string) (AreaForecast, error) {
	target := models.Area{Name: fmt.Sprintf("%.4f,%.4f", lat, lon), Latitude: lat, Longitude: lon}

	recs := []models.CatchRecord{}
	if near := s.areas.Nearest(lat, lon, nearbyKm); len(near) > 0 {
		target.Name = near[0].Name
		target.Region = near[0].Region

		var err error
		recs, err = s.repo.Load(ctx)
		if err != nil {
			return AreaForecast{}, fmt.Errorf("loading history: %w", err)
		}
	}
	return s.forecast(ctx, target, recs, tide, now, species), nil
}

func (s *Service) forecast(ctx context.Context, a models.Area, recs []models.CatchRecord, tide models.TideState, now time.Time, species []string) AreaForecast {
	local := now.In(s.loc)
	if tide == "" {
		tide = models.ApproximateTideState(local)
	}

	f := AreaForecast{
		Area:        a,
		Tide:        tide,
		MoonPhase:   lunar.MoonPhase(now),
		HistoryRate: history.SuccessRate(recs, a.Name, ""),
	}

	snap, err := s.fetcher.Fetch(ctx, a.Latitude, a.Longitude, now)
	if err != nil {
		s.logger.Warn("Marine data unavailable",
			zap.String("area", a.Name),
			zap.String("reason", string(openmeteo.ReasonOf(err))),
			zap.Error(err))
		f.Err = err
		return f
	}
	f.Snapshot = snap

	in := scoring.NewInputs(*snap, tide, now, s.loc, f.HistoryRate)
	in.SpeciesRates = s.speciesRates(recs, a.Name, species)
	f.Result = scoring.Score(in, s.table, species...)

	s.logger.Debug("Scored area",
		zap.String("area", a.Name),
		zap.Int("base", f.Result.Base),
		zap.Int("aggregate", f.Result.Aggregate))
	return f
}

func (s *Service) speciesRates(recs []models.CatchRecord, area string, species []string) map[string]float64 {
	if len(species) == 0 {
		species = s.table.Species()
	}
	rates := make(map[string]float64, len(species))
	for _, sp := range species {
		rates[sp] = history.SuccessRate(recs, area, sp)
	}
	return rates
}

// LogCatch validates rec and appends it to the catch log
func (s *Service) LogCatch(ctx context.Context, rec models.CatchRecord) error {
	if err := history.Validate(rec, s.areas); err != nil {
		return err
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		return fmt.Errorf("saving catch: %w", err)
	}

	s.logger.Info("Logged catch",
		zap.String("date", rec.Date),
		zap.String("area", rec.Area),
		zap.String("species", rec.Species),
		zap.Int("count", rec.Count))
	return nil
}

// History returns the success-rate series for area and species; empty
// strings match everything
func (s *Service) History(ctx context.Context, area, species string) ([]history.SeriesPoint, error) {
	recs, err := s.repo.Query(ctx, history.Filter{Area: area, Species: species})
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	return history.SuccessSeries(recs, area, species), nil
}

// SuccessRate returns the success rate for area and species
func (s *Service) SuccessRate(ctx context.Context, area, species string) (float64, error) {
	recs, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading history: %w", err)
	}
	return history.SuccessRate(recs, area, species), nil
}

// Records returns the logged catches matching f
func (s *Service) Records(ctx context.Context, f history.Filter) ([]models.CatchRecord, error) {
	return s.repo.Query(ctx, f)
}
