package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/poseidon/internal/models"
)

func TestSuccessRate(t *testing.T) {
	recs := []models.CatchRecord{
		{Date: "2025-06-01", Area: "A", Species: "X", Count: 0},
		{Date: "2025-06-02", Area: "A", Species: "X", Count: 2},
		{Date: "2025-06-03", Area: "A", Species: "X", Count: 0},
		{Date: "2025-06-03", Area: "A", Species: "Y", Count: 1},
		{Date: "2025-06-04", Area: "B", Species: "X", Count: 5},
	}

	tests := []struct {
		name    string
		area    string
		species string
		want    float64
	}{
		{"one success in three outings", "A", "X", 1.0 / 3.0},
		{"all species in area", "A", "", 0.5},
		{"single success", "B", "X", 1},
		{"no matching records", "C", "X", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SuccessRate(recs, tt.area, tt.species), 1e-9)
		})
	}
}

func TestSuccessRateEmpty(t *testing.T) {
	assert.Zero(t, SuccessRate(nil, "A", "X"))
}

func TestSuccessSeries(t *testing.T) {
	recs := []models.CatchRecord{
		{Date: "2025-06-03", Area: "A", Species: "X", Count: 1},
		{Date: "2025-06-01", Area: "A", Species: "X", Count: 0},
		{Date: "2025-06-01", Area: "A", Species: "X", Count: 1},
		{Date: "bad", Area: "A", Species: "X", Count: 1},
		{Date: "2025-06-02", Area: "B", Species: "X", Count: 1},
	}

	series := SuccessSeries(recs, "A", "X")
	require.Len(t, series, 2)

	assert.Equal(t, "2025-06-01", series[0].Date)
	assert.Equal(t, 2, series[0].Outings)
	assert.InDelta(t, 0.5, series[0].Rate, 1e-9)
	assert.InDelta(t, 0.5, series[0].CumulativeRate, 1e-9)

	assert.Equal(t, "2025-06-03", series[1].Date)
	assert.InDelta(t, 1.0, series[1].Rate, 1e-9)
	assert.InDelta(t, 2.0/3.0, series[1].CumulativeRate, 1e-9)
}

func TestSpeciesSeen(t *testing.T) {
	recs := sampleRecords()
	assert.Equal(t, []string{"ヒラメ", "シーバス"}, SpeciesSeen(recs))
}

type areaSet map[string]bool

func (s areaSet) Has(name string) bool { return s[name] }

func TestValidate(t *testing.T) {
	known := areaSet{"大洗": true}
	valid := models.CatchRecord{Date: "2025-06-01", Area: "大洗", Species: "ヒラメ", Count: 0}

	tests := []struct {
		name  string
		edit  func(*models.CatchRecord)
		field string
	}{
		{"valid", func(*models.CatchRecord) {}, ""},
		{"blank date", func(r *models.CatchRecord) { r.Date = "" }, "date"},
		{"bad date", func(r *models.CatchRecord) { r.Date = "06/01/2025" }, "date"},
		{"blank area", func(r *models.CatchRecord) { r.Area = " " }, "area"},
		{"unknown area", func(r *models.CatchRecord) { r.Area = "Atlantis" }, "area"},
		{"blank species", func(r *models.CatchRecord) { r.Species = "" }, "species"},
		{"negative count", func(r *models.CatchRecord) { r.Count = -1 }, "count"},
		{"negative size", func(r *models.CatchRecord) { r.SizeCM = -3 }, "size_cm"},
		{"known choices", func(r *models.CatchRecord) {
			r.Weather, r.Tide, r.TimeOfDay = models.WeatherRain, models.SpringTide, models.Evening
		}, ""},
		{"unknown weather", func(r *models.CatchRecord) { r.Weather = "foo" }, "weather"},
		{"unknown tide", func(r *models.CatchRecord) { r.Tide = "上げ" }, "tide"},
		{"unknown time of day", func(r *models.CatchRecord) { r.TimeOfDay = "深夜" }, "time_of_day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.edit(&rec)
			err := Validate(rec, known)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateWithoutAreaSet(t *testing.T) {
	rec := models.CatchRecord{Date: "2025-06-01", Area: "anywhere", Species: "ヒラメ"}
	assert.NoError(t, Validate(rec, nil))
}
