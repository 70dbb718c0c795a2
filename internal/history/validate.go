package history

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ngmaloney/poseidon/internal/models"
)

// ErrInvalid marks a catch record rejected at the input boundary
var ErrInvalid = errors.New("invalid catch record")

// AreaSet reports whether an area name is supported
type AreaSet interface {
	Has(name string) bool
}

// ValidationError names the offending field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catch record: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalid
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks rec before it is appended. A nil areas skips the
// membership check. Weather, tide and time of day may be blank but
// otherwise must be one of the form's choices.
func Validate(rec models.CatchRecord, areas AreaSet) error {
	if strings.TrimSpace(rec.Date) == "" {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, err := rec.Day(); err != nil {
		return &ValidationError{Field: "date", Reason: fmt.Sprintf("must be %s", models.DateLayout)}
	}
	if strings.TrimSpace(rec.Area) == "" {
		return &ValidationError{Field: "area", Reason: "is required"}
	}
	if areas != nil && !areas.Has(rec.Area) {
		return &ValidationError{Field: "area", Reason: fmt.Sprintf("%q is not a supported area", rec.Area)}
	}
	if strings.TrimSpace(rec.Species) == "" {
		return &ValidationError{Field: "species", Reason: "is required"}
	}
	if rec.Count < 0 {
		return &ValidationError{Field: "count", Reason: "must not be negative"}
	}
	if rec.SizeCM < 0 {
		return &ValidationError{Field: "size_cm", Reason: "must not be negative"}
	}
	if rec.Weather != "" && !slices.Contains(models.Weathers, rec.Weather) {
		return &ValidationError{Field: "weather", Reason: fmt.Sprintf("%q is not one of %v", rec.Weather, models.Weathers)}
	}
	if rec.Tide != "" && !slices.Contains(models.TideRanges, rec.Tide) {
		return &ValidationError{Field: "tide", Reason: fmt.Sprintf("%q is not one of %v", rec.Tide, models.TideRanges)}
	}
	if rec.TimeOfDay != "" && !slices.Contains(models.TimesOfDay, rec.TimeOfDay) {
		return &ValidationError{Field: "time_of_day", Reason: fmt.Sprintf("%q is not one of %v", rec.TimeOfDay, models.TimesOfDay)}
	}
	return nil
}
