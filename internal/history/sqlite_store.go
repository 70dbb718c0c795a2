package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ngmaloney/poseidon/internal/database"
	"github.com/ngmaloney/poseidon/internal/models"
)

// SQLiteStore keeps the catch log in the shared SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at dbPath
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an already opened database
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns every record ordered by insertion
func (s *SQLiteStore) Load(ctx context.Context) ([]models.CatchRecord, error) {
	return s.Query(ctx, Filter{})
}

// Append inserts rec at the end of the log
func (s *SQLiteStore) Append(ctx context.Context, rec models.CatchRecord) error {
	query := `
		INSERT INTO catches (date, area, weather, tide, time_of_day, species, size_cm, count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.Date,
		rec.Area,
		string(rec.Weather),
		string(rec.Tide),
		string(rec.TimeOfDay),
		rec.Species,
		rec.SizeCM,
		rec.Count,
	)
	if err != nil {
		return fmt.Errorf("saving catch: %w", err)
	}
	return nil
}

// Query returns the records matching f ordered by insertion
func (s *SQLiteStore) Query(ctx context.Context, f Filter) ([]models.CatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, area, weather, tide, time_of_day, species, size_cm, count
		FROM catches
		WHERE (? = '' OR area = ?) AND (? = '' OR species = ?)
		ORDER BY id
	`, f.Area, f.Area, f.Species, f.Species)
	if err != nil {
		return nil, fmt.Errorf("querying catches: %w", err)
	}
	defer rows.Close()

	recs := []models.CatchRecord{}
	for rows.Next() {
		var r models.CatchRecord
		var weather, tide, tod sql.NullString // older rows may leave these unset

		if err := rows.Scan(&r.Date, &r.Area, &weather, &tide, &tod, &r.Species, &r.SizeCM, &r.Count); err != nil {
			return nil, fmt.Errorf("scanning catch: %w", err)
		}
		r.Weather = models.Weather(weather.String)
		r.Tide = models.TideRange(tide.String)
		r.TimeOfDay = models.TimeOfDay(tod.String)
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catches: %w", err)
	}

	return recs, nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
