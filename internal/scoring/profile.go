package scoring

import (
	"github.com/ngmaloney/poseidon/internal/lunar"
	"github.com/ngmaloney/poseidon/internal/models"
)

// Profile is a species-specialised scorer. Each weights a subset of the
// environmental signals and shares the lunar and history bonuses.
type Profile struct {
	Species string `yaml:"species"`

	Wave             Band `yaml:"wave"`
	WaveBonus        int  `yaml:"wave_bonus"`
	Temperature      Band `yaml:"temperature"`
	TemperatureBonus int  `yaml:"temperature_bonus"`
	Wind             Band `yaml:"wind"`
	WindBonus        int  `yaml:"wind_bonus"`

	Tide      models.TideState `yaml:"tide"`
	TideBonus int              `yaml:"tide_bonus"`

	// Feeding is an optional local-hour window, used for night feeders
	Feeding      *HourWindow `yaml:"feeding,omitempty"`
	FeedingBonus int         `yaml:"feeding_bonus,omitempty"`

	Max int `yaml:"max"`
}

// Score rates in for this species, clamped to [0, Max]
func (p Profile) Score(in Inputs, historyWeight int) int {
	s := in.Snapshot
	score := 0

	if p.Wave.Contains(s.WaveHeightM) {
		score += p.WaveBonus
	}
	if p.Temperature.Contains(s.SeaSurfaceTempC) {
		score += p.TemperatureBonus
	}
	if p.Wind.Contains(s.WindSpeedMS) {
		score += p.WindBonus
	}
	if p.Tide != "" && in.Tide == p.Tide {
		score += p.TideBonus
	}
	if p.Feeding != nil && p.Feeding.Contains(in.Hour) {
		score += p.FeedingBonus
	}

	score += lunar.MoonScore(in.MoonPhase)
	score += HistoryBonus(in.rateFor(p.Species), historyWeight)

	return clamp(score, 0, p.Max)
}
