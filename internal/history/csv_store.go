package history

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"

	"github.com/ngmaloney/poseidon/internal/models"
)

// requiredColumns must be present in every variant of the table
var requiredColumns = []string{"date", "area", "species", "count"}

// CSVStore keeps the catch log in a flat file with a header row
type CSVStore struct {
	path   string
	logger *zap.Logger
}

// NewCSVStore creates a store backed by path. The file is created on first append.
func NewCSVStore(path string, logger *zap.Logger) *CSVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVStore{path: path, logger: logger}
}

// Path returns the backing file path
func (s *CSVStore) Path() string { return s.path }

// Load reads the whole table. Missing files are empty; corrupt files are
// logged and treated as empty.
func (s *CSVStore) Load(ctx context.Context) ([]models.CatchRecord, error) {
	recs, err := s.read()
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			s.logger.Warn("Ignoring unreadable history table",
				zap.String("path", s.path),
				zap.Error(err))
			return []models.CatchRecord{}, nil
		}
		return nil, err
	}
	return recs, nil
}

// Append reloads the table, adds rec and rewrites the file
func (s *CSVStore) Append(ctx context.Context, rec models.CatchRecord) error {
	recs, err := s.read()
	if err != nil {
		return fmt.Errorf("reading %s before append: %w", s.path, err)
	}
	recs = append(recs, rec)

	if err := s.write(recs); err != nil {
		return err
	}

	s.logger.Debug("Appended catch record",
		zap.String("path", s.path),
		zap.String("area", rec.Area),
		zap.String("species", rec.Species),
		zap.Int("rows", len(recs)))
	return nil
}

// Query returns the records matching f
func (s *CSVStore) Query(ctx context.Context, f Filter) ([]models.CatchRecord, error) {
	recs, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(recs, f), nil
}

// Close is a no-op; the file is opened per operation
func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) read() ([]models.CatchRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.CatchRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history table: %w", err)
	}
	return decodeRecords(data)
}

func decodeRecords(data []byte) ([]models.CatchRecord, error) {
	recs := []models.CatchRecord{}

	dec, err := csvutil.NewDecoder(csv.NewReader(bytes.NewReader(data)))
	if errors.Is(err, io.EOF) {
		return recs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	present := make(map[string]bool, len(dec.Header()))
	for _, h := range dec.Header() {
		present[h] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return nil, fmt.Errorf("%w: missing column %q", ErrCorrupt, col)
		}
	}

	if err := dec.Decode(&recs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return recs, nil
}

func (s *CSVStore) write(recs []models.CatchRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}

	data, err := csvutil.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encoding history table: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing history table: %w", err)
	}
	return nil
}
