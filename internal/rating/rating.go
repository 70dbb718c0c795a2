// Package rating gives a quick verdict for a logged outing from its
// weather, tide range, time of day and catch count.
package rating

import "github.com/ngmaloney/poseidon/internal/models"

// Verdict is the banded outcome of a rating
type Verdict string

const (
	VerdictHot   Verdict = "激アツ"
	VerdictFair  Verdict = "そこそこ"
	VerdictTough Verdict = "厳しい"
)

// Describe is the sentence shown alongside a verdict
func (v Verdict) Describe() string {
	switch v {
	case VerdictHot:
		return "激アツ！爆釣期待度 高"
	case VerdictFair:
		return "そこそこ期待できる"
	default:
		return "厳しいかも"
	}
}

var weatherPoints = map[models.Weather]int{
	models.WeatherCloudy: 2,
	models.WeatherRain:   3,
	models.WeatherSunny:  1,
}

var tidePoints = map[models.TideRange]int{
	models.SpringTide: 3,
	models.MiddleTide: 2,
}

var timePoints = map[models.TimeOfDay]int{
	models.Morning: 3,
	models.Evening: 3,
	models.Night:   1,
}

const (
	hotThreshold  = 8
	fairThreshold = 5
)

// Result is a rating score and its verdict
type Result struct {
	Score   int
	Verdict Verdict
}

// Rate scores an outing. Unknown labels contribute nothing.
func Rate(w models.Weather, tide models.TideRange, tod models.TimeOfDay, count int) Result {
	score := weatherPoints[w] + tidePoints[tide] + timePoints[tod]

	switch {
	case count >= 5:
		score += 2
	case count == 0:
		score--
	}

	return Result{Score: score, Verdict: verdictFor(score)}
}

// RateRecord rates a logged catch
func RateRecord(r models.CatchRecord) Result {
	return Rate(r.Weather, r.Tide, r.TimeOfDay, r.Count)
}

func verdictFor(score int) Verdict {
	switch {
	case score >= hotThreshold:
		return VerdictHot
	case score >= fairThreshold:
		return VerdictFair
	default:
		return VerdictTough
	}
}
