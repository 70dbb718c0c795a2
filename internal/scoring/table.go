package scoring

import (
	"fmt"

	"github.com/ngmaloney/poseidon/internal/models"
)

// Band is an inclusive numeric range
type Band struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies inside the band, ends included
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// HourWindow is a half-open range of local hours [Start, End).
// A window whose End is not after its Start wraps past midnight.
type HourWindow struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Contains reports whether hour falls in the window
func (w HourWindow) Contains(hour int) bool {
	if w.Start < w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

// Table holds every threshold and bonus used by the scorer
type Table struct {
	Wave            Band    `yaml:"wave"`
	WaveBonus       int     `yaml:"wave_bonus"`
	RoughSea        float64 `yaml:"rough_sea"`
	RoughSeaPenalty int     `yaml:"rough_sea_penalty"`

	Wind        Band    `yaml:"wind"`
	WindBonus   int     `yaml:"wind_bonus"`
	GustLimit   float64 `yaml:"gust_limit"`
	GustPenalty int     `yaml:"gust_penalty"`

	Pressure            Band `yaml:"pressure"`
	PressureBonus       int  `yaml:"pressure_bonus"`
	PressureConsolation int  `yaml:"pressure_consolation"`

	Temperature      Band `yaml:"temperature"`
	TemperatureBonus int  `yaml:"temperature_bonus"`

	RisingTideBonus int `yaml:"rising_tide_bonus"`
	HistoryWeight   int `yaml:"history_weight"`

	Min int `yaml:"min"`
	Max int `yaml:"max"`

	// AdjustCap bounds a base score after the species-class bonus
	AdjustCap int `yaml:"adjust_cap"`
	// ClassBonus is the additive bonus per species class
	ClassBonus map[string]int `yaml:"class_bonus"`
	// SpeciesClass maps a species name onto its class
	SpeciesClass map[string]string `yaml:"species_class"`

	Profiles []Profile `yaml:"profiles"`
}

// Species classes
const (
	ClassFlatfish = "flatfish"
	ClassPelagic  = "pelagic"
	ClassInshore  = "inshore"
)

// DefaultTable returns the built-in thresholds
func DefaultTable() Table {
	return Table{
		Wave:            Band{Min: 0.8, Max: 2.0},
		WaveBonus:       20,
		RoughSea:        2.5,
		RoughSeaPenalty: -10,

		Wind:        Band{Min: 3, Max: 8},
		WindBonus:   15,
		GustLimit:   12,
		GustPenalty: -10,

		Pressure:            Band{Min: 1008, Max: 1018},
		PressureBonus:       20,
		PressureConsolation: 5,

		Temperature:      Band{Min: 12, Max: 22},
		TemperatureBonus: 15,

		RisingTideBonus: 10,
		HistoryWeight:   20,

		Min:       5,
		Max:       95,
		AdjustCap: 100,

		ClassBonus: map[string]int{
			ClassFlatfish: 5,
			ClassPelagic:  3,
			ClassInshore:  7,
		},
		SpeciesClass: map[string]string{
			"ヒラメ":  ClassFlatfish,
			"カレイ":  ClassFlatfish,
			"マゴチ":  ClassFlatfish,
			"青物":   ClassPelagic,
			"ブリ":   ClassPelagic,
			"イナダ":  ClassPelagic,
			"ワラサ":  ClassPelagic,
			"サバ":   ClassPelagic,
			"シーバス": ClassInshore,
			"スズキ":  ClassInshore,
			"クロダイ": ClassInshore,
			"メバル":  ClassInshore,
			"カサゴ":  ClassInshore,
		},

		Profiles: DefaultProfiles(),
	}
}

// DefaultProfiles returns the three species-specialised scorers
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Species:          "ヒラメ",
			Wave:             Band{Min: 0.5, Max: 1.5},
			WaveBonus:        25,
			Temperature:      Band{Min: 15, Max: 40},
			TemperatureBonus: 15,
			Wind:             Band{Min: 0, Max: 7},
			WindBonus:        10,
			Tide:             models.TideRising,
			TideBonus:        10,
			Max:              95,
		},
		{
			Species:          "青物",
			Wave:             Band{Min: 1.0, Max: 2.5},
			WaveBonus:        20,
			Temperature:      Band{Min: 18, Max: 40},
			TemperatureBonus: 20,
			Wind:             Band{Min: 3, Max: 10},
			WindBonus:        15,
			Tide:             models.TideFalling,
			TideBonus:        10,
			Max:              95,
		},
		{
			Species:          "シーバス",
			Wave:             Band{Min: 0.8, Max: 2.0},
			WaveBonus:        15,
			Temperature:      Band{Min: 12, Max: 22},
			TemperatureBonus: 15,
			Wind:             Band{Min: 0, Max: 8},
			WindBonus:        10,
			Tide:             models.TideRising,
			TideBonus:        10,
			Feeding:          &HourWindow{Start: 18, End: 5},
			FeedingBonus:     20,
			Max:              95,
		},
	}
}

// Validate rejects tables whose bounds cannot produce a score
func (t Table) Validate() error {
	if t.Min < 0 || t.Max > 100 || t.Min > t.Max {
		return fmt.Errorf("scoring: clamp [%d, %d] must lie within [0, 100]", t.Min, t.Max)
	}
	if t.AdjustCap < t.Max || t.AdjustCap > 100 {
		return fmt.Errorf("scoring: adjust cap %d must lie within [%d, 100]", t.AdjustCap, t.Max)
	}
	if t.HistoryWeight < 0 {
		return fmt.Errorf("scoring: history weight %d is negative", t.HistoryWeight)
	}
	seen := make(map[string]bool, len(t.Profiles))
	for _, p := range t.Profiles {
		if p.Species == "" {
			return fmt.Errorf("scoring: profile without species")
		}
		if seen[p.Species] {
			return fmt.Errorf("scoring: duplicate profile for %s", p.Species)
		}
		seen[p.Species] = true
		if p.Max < 0 || p.Max > 100 {
			return fmt.Errorf("scoring: profile %s max %d outside [0, 100]", p.Species, p.Max)
		}
	}
	return nil
}

// Profile looks up the specialised scorer for species
func (t Table) Profile(species string) (Profile, bool) {
	for _, p := range t.Profiles {
		if p.Species == species {
			return p, true
		}
	}
	return Profile{}, false
}

// Species lists the species with a specialised scorer
func (t Table) Species() []string {
	out := make([]string, len(t.Profiles))
	for i, p := range t.Profiles {
		out[i] = p.Species
	}
	return out
}
