// Package history persists the catch log and derives success rates from it.
//
// Stores are append-only: records are never updated or deleted, and a
// record's identity is its position in the table. Appends read the whole
// table and write it back with no locking, so two concurrent submissions
// can lose one of the updates (last writer wins).
package history

import (
	"context"
	"errors"

	"github.com/ngmaloney/poseidon/internal/models"
)

// ErrCorrupt is returned by Append when the existing table cannot be read
var ErrCorrupt = errors.New("history table is corrupt")

// Filter selects records by area and species; empty fields match everything
type Filter struct {
	Area    string
	Species string
}

// Match reports whether r passes the filter
func (f Filter) Match(r models.CatchRecord) bool {
	if f.Area != "" && r.Area != f.Area {
		return false
	}
	if f.Species != "" && r.Species != f.Species {
		return false
	}
	return true
}

// Repository is the catch log contract
type Repository interface {
	// Load returns every record in insertion order. An unreadable table
	// yields an empty slice rather than an error.
	Load(ctx context.Context) ([]models.CatchRecord, error)

	// Append adds one record to the end of the table
	Append(ctx context.Context, rec models.CatchRecord) error

	// Query returns the records matching f in insertion order
	Query(ctx context.Context, f Filter) ([]models.CatchRecord, error)

	Close() error
}

func filter(recs []models.CatchRecord, f Filter) []models.CatchRecord {
	out := make([]models.CatchRecord, 0, len(recs))
	for _, r := range recs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
