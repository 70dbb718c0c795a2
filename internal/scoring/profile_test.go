package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/poseidon/internal/models"
)

func TestHourWindow(t *testing.T) {
	night := HourWindow{Start: 18, End: 5}
	for _, h := range []int{18, 21, 23, 0, 4} {
		assert.True(t, night.Contains(h), "hour %d", h)
	}
	for _, h := range []int{5, 9, 12, 17} {
		assert.False(t, night.Contains(h), "hour %d", h)
	}

	day := HourWindow{Start: 6, End: 10}
	assert.True(t, day.Contains(6))
	assert.False(t, day.Contains(10))
}

func TestProfileNightFeeder(t *testing.T) {
	table := DefaultTable()
	seabass, ok := table.Profile("シーバス")
	require.True(t, ok)

	in := kujukuri()
	morning := seabass.Score(in, table.HistoryWeight)

	in.Hour = 22
	night := seabass.Score(in, table.HistoryWeight)

	assert.Equal(t, morning+20, night)
}

func TestProfileClamp(t *testing.T) {
	table := DefaultTable()
	seabass, _ := table.Profile("シーバス")

	in := kujukuri()
	in.Hour = 22
	in.HistoryRate = 1
	assert.Equal(t, 95, seabass.Score(in, table.HistoryWeight))

	bad := Inputs{
		Snapshot: models.MarineSnapshot{WaveHeightM: 5, SeaSurfaceTempC: 5, WindSpeedMS: 20},
		Tide:     models.TideFalling,
		Hour:     12,
	}
	got := seabass.Score(bad, table.HistoryWeight)
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 95)
}

func TestProfileSpeciesRate(t *testing.T) {
	table := DefaultTable()
	hirame, _ := table.Profile("ヒラメ")

	in := kujukuri()
	in.MoonPhase = 8
	in.HistoryRate = 0
	in.SpeciesRates = map[string]float64{"ヒラメ": 0.5}

	// wave 25 + temp 15 + wind 10 + tide 10 + moon 10 + history 10
	assert.Equal(t, 80, hirame.Score(in, table.HistoryWeight))
}

func TestTableValidate(t *testing.T) {
	assert.NoError(t, DefaultTable().Validate())

	tests := []struct {
		name string
		edit func(*Table)
	}{
		{"inverted clamp", func(tb *Table) { tb.Min, tb.Max = 90, 10 }},
		{"max over 100", func(tb *Table) { tb.Max = 120 }},
		{"cap below max", func(tb *Table) { tb.AdjustCap = 50 }},
		{"negative weight", func(tb *Table) { tb.HistoryWeight = -1 }},
		{"duplicate profile", func(tb *Table) { tb.Profiles = append(tb.Profiles, tb.Profiles[0]) }},
		{"unnamed profile", func(tb *Table) { tb.Profiles[0].Species = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := DefaultTable()
			tt.edit(&tb)
			assert.Error(t, tb.Validate())
		})
	}
}
