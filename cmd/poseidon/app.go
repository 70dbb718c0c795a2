package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/poseidon/internal/advisor"
	"github.com/ngmaloney/poseidon/internal/areas"
	"github.com/ngmaloney/poseidon/internal/config"
	"github.com/ngmaloney/poseidon/internal/history"
	"github.com/ngmaloney/poseidon/internal/models"
	"github.com/ngmaloney/poseidon/internal/openmeteo"
)

// app holds the wired services for one command invocation
type app struct {
	svc    *advisor.Service
	repo   history.Repository
	areas  *areas.Table
	loc    *time.Location
	cached *openmeteo.CachedFetcher
	logger *zap.Logger
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	table, err := cfg.AreaTable(logger)
	if err != nil {
		return nil, fmt.Errorf("loading areas: %w", err)
	}

	repo, err := openHistory(cfg, logger)
	if err != nil {
		return nil, err
	}

	client, err := openmeteo.NewClient(loc, cfg.Marine.Timeout, logger)
	if err != nil {
		repo.Close()
		return nil, err
	}
	limited := openmeteo.NewRateLimitedFetcher(client, cfg.Marine.RequestsPerSecond, cfg.Marine.Burst)
	cached := openmeteo.NewCachedFetcher(limited, cfg.Marine.CacheTTL, nil, logger)

	svc := advisor.NewService(advisor.Options{
		Areas:    table,
		Fetcher:  cached,
		History:  repo,
		Scoring:  cfg.Scoring,
		Location: loc,
		Logger:   logger,
	})

	return &app{svc: svc, repo: repo, areas: table, loc: loc, cached: cached, logger: logger}, nil
}

func openHistory(cfg *config.Config, logger *zap.Logger) (history.Repository, error) {
	switch cfg.History.Backend {
	case config.BackendSQLite:
		store, err := history.OpenSQLiteStore(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("opening history database: %w", err)
		}
		return store, nil
	default:
		return history.NewCSVStore(cfg.History.Path, logger), nil
	}
}

func (a *app) Close() error {
	hits, misses := a.cached.CacheStats()
	a.logger.Debug("Marine cache stats", zap.Int("hits", hits), zap.Int("misses", misses))
	return a.repo.Close()
}

func (a *app) now() time.Time {
	return time.Now().In(a.loc)
}

// parseTide turns a flag value into a tide direction; empty means approximate
func parseTide(s string) (models.TideState, error) {
	if s == "" {
		return "", nil
	}
	tide, ok := models.ParseTideState(s)
	if !ok {
		return "", fmt.Errorf("unknown tide %q (use 上げ/rising or 下げ/falling)", s)
	}
	return tide, nil
}
