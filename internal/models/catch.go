package models

import "time"

// DateLayout is the calendar-date format used in persisted tables
const DateLayout = "2006-01-02"

// CatchRecord is one row of the catch log.
// Rows are append-only and identified by their position in the table.
type CatchRecord struct {
	Date      string    `csv:"date"`
	Area      string    `csv:"area"`
	Weather   Weather   `csv:"weather"`
	Tide      TideRange `csv:"tide"`
	TimeOfDay TimeOfDay `csv:"time_of_day"`
	Species   string    `csv:"species"`
	SizeCM    float64   `csv:"size_cm"`
	Count     int       `csv:"count"`
}

// Day parses the record date
func (r CatchRecord) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// Success reports whether the outing caught anything
func (r CatchRecord) Success() bool {
	return r.Count > 0
}
