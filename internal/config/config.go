// Package config loads poseidon.yaml, the optional .env file and the
// POSEIDON_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/poseidon/internal/database"
	"github.com/ngmaloney/poseidon/internal/models"
	"github.com/ngmaloney/poseidon/internal/scoring"
)

// History backends
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Bounds on how long a marine snapshot may be reused
const (
	MinCacheTTL = 600 * time.Second
	MaxCacheTTL = 900 * time.Second
)

// Config is the complete application configuration
type Config struct {
	History   HistoryConfig   `yaml:"history"`
	Database  DatabaseConfig  `yaml:"database"`
	Marine    MarineConfig    `yaml:"marine"`
	Scoring   scoring.Table   `yaml:"scoring"`
	Areas     AreasConfig     `yaml:"areas"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Log       LogConfig       `yaml:"log"`
}

// HistoryConfig selects where the catch log lives
type HistoryConfig struct {
	Backend string `yaml:"backend"`
	// Path is the CSV file; the sqlite backend uses Database.Path
	Path string `yaml:"path"`
}

// DatabaseConfig locates the shared SQLite database
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// MarineConfig controls the upstream marine data client
type MarineConfig struct {
	Timezone          string        `yaml:"timezone"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

// AreasConfig overrides the built-in area table.
// An inline list wins over a shapefile; with neither, areas imported into
// the database are used when present.
type AreasConfig struct {
	List      []models.Area `yaml:"list"`
	Shapefile string        `yaml:"shapefile"`
}

// GeocodingConfig controls place-name lookups
type GeocodingConfig struct {
	// CountryCodes restricts matches, e.g. "jp"; empty searches worldwide
	CountryCodes string `yaml:"country_codes"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Backend: BackendCSV,
			Path:    filepath.Join("data", "catches.csv"),
		},
		Database: DatabaseConfig{
			Path: database.DBPath(),
		},
		Marine: MarineConfig{
			Timezone:          "Asia/Tokyo",
			CacheTTL:          MaxCacheTTL,
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             2,
		},
		Scoring: scoring.DefaultTable(),
		Geocoding: GeocodingConfig{
			CountryCodes: "jp",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Missing files are ignored; variables
// already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("POSEIDON_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("POSEIDON_HISTORY_BACKEND"); v != "" {
		c.History.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("POSEIDON_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("POSEIDON_TIMEZONE"); v != "" {
		c.Marine.Timezone = v
	}
	if v := os.Getenv("POSEIDON_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid POSEIDON_CACHE_TTL %q: %w", v, err)
		}
		c.Marine.CacheTTL = ttl
	}
	if v := os.Getenv("POSEIDON_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// normalize clamps values that have a fixed valid range
func (c *Config) normalize() {
	if c.Marine.CacheTTL < MinCacheTTL {
		c.Marine.CacheTTL = MinCacheTTL
	}
	if c.Marine.CacheTTL > MaxCacheTTL {
		c.Marine.CacheTTL = MaxCacheTTL
	}
	if c.Marine.Burst < 1 {
		c.Marine.Burst = 1
	}
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	switch c.History.Backend {
	case BackendCSV:
		if c.History.Path == "" {
			return fmt.Errorf("history.path is required for the csv backend")
		}
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Marine.RequestsPerSecond <= 0 {
		return fmt.Errorf("marine.requests_per_second must be positive")
	}
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Marine.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Marine.Timezone, err)
	}
	return loc, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
