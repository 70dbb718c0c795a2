// Package scoring turns marine conditions into a bite-likelihood percentage.
//
// Every function here is pure; thresholds come from a Table so that the
// same signals can be re-weighted without touching code.
package scoring

import (
	"math"
	"time"

	"github.com/ngmaloney/poseidon/internal/lunar"
	"github.com/ngmaloney/poseidon/internal/models"
)

// Inputs are the signals a score is computed from
type Inputs struct {
	Snapshot  models.MarineSnapshot
	Tide      models.TideState
	MoonPhase float64
	// Hour is the local hour of day, used by feeding windows
	Hour int

	// HistoryRate is the area's success rate over all species
	HistoryRate float64
	// SpeciesRates overrides HistoryRate for individual species
	SpeciesRates map[string]float64
}

// NewInputs derives the moon phase from now and the hour of day from now
// in loc. A nil loc means UTC.
func NewInputs(snap models.MarineSnapshot, tide models.TideState, now time.Time, loc *time.Location, historyRate float64) Inputs {
	if loc == nil {
		loc = time.UTC
	}
	return Inputs{
		Snapshot:    snap,
		Tide:        tide,
		MoonPhase:   lunar.MoonPhase(now),
		Hour:        now.In(loc).Hour(),
		HistoryRate: historyRate,
	}
}

func (in Inputs) rateFor(species string) float64 {
	if r, ok := in.SpeciesRates[species]; ok {
		return r
	}
	return in.HistoryRate
}

// Base is the species-independent score, clamped to [t.Min, t.Max]
func Base(in Inputs, t Table) int {
	return clamp(raw(in, t), t.Min, t.Max)
}

// raw is the unclamped sum of contributions
func raw(in Inputs, t Table) int {
	s := in.Snapshot
	score := 0

	switch {
	case t.Wave.Contains(s.WaveHeightM):
		score += t.WaveBonus
	case s.WaveHeightM > t.RoughSea:
		score += t.RoughSeaPenalty
	}

	if t.Wind.Contains(s.WindSpeedMS) {
		score += t.WindBonus
	}
	if s.WindGustMS > t.GustLimit {
		score += t.GustPenalty
	}

	if t.Pressure.Contains(s.PressureHPa) {
		score += t.PressureBonus
	} else {
		score += t.PressureConsolation
	}

	if t.Temperature.Contains(s.SeaSurfaceTempC) {
		score += t.TemperatureBonus
	}

	if in.Tide == models.TideRising {
		score += t.RisingTideBonus
	}

	score += lunar.MoonScore(in.MoonPhase)
	score += HistoryBonus(in.HistoryRate, t.HistoryWeight)

	return score
}

// HistoryBonus scales a success rate by weight and rounds it
func HistoryBonus(rate float64, weight int) int {
	if rate <= 0 {
		return 0
	}
	if rate > 1 {
		rate = 1
	}
	return int(math.Round(rate * float64(weight)))
}

// Adjust layers the species-class bonus on a base score, capped at t.AdjustCap.
// Species without a class are returned unchanged.
func Adjust(base int, species string, t Table) int {
	class, ok := t.SpeciesClass[species]
	if !ok {
		return clamp(base, 0, t.AdjustCap)
	}
	return clamp(base+t.ClassBonus[class], 0, t.AdjustCap)
}

// Aggregate is the rounded mean of scores, or 0 for none
func Aggregate(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// SpeciesScore is one species' share of a result
type SpeciesScore struct {
	Species string
	// Score comes from the species profile, or equals Adjusted when there is none
	Score    int
	Adjusted int
	Profiled bool
}

// ScoreResult is the full scoring output for one area
type ScoreResult struct {
	Base       int
	PerSpecies []SpeciesScore
	Aggregate  int
}

// Score rates in for each species. With no species given, every profile
// in t is used. The aggregate is the base score when there is nothing to
// average.
func Score(in Inputs, t Table, species ...string) ScoreResult {
	if len(species) == 0 {
		species = t.Species()
	}

	res := ScoreResult{Base: Base(in, t)}
	scores := make([]int, 0, len(species))
	for _, name := range species {
		ss := SpeciesScore{
			Species:  name,
			Adjusted: Adjust(res.Base, name, t),
		}
		if p, ok := t.Profile(name); ok {
			ss.Score = p.Score(in, t.HistoryWeight)
			ss.Profiled = true
		} else {
			ss.Score = ss.Adjusted
		}
		res.PerSpecies = append(res.PerSpecies, ss)
		scores = append(scores, ss.Score)
	}

	if len(scores) == 0 {
		res.Aggregate = res.Base
	} else {
		res.Aggregate = Aggregate(scores)
	}
	return res
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
