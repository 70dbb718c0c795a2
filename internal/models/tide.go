package models

import "time"

// TideState is the coarse direction of the tide
type TideState string

const (
	TideRising  TideState = "上げ"
	TideFalling TideState = "下げ"
)

// ParseTideState accepts the Japanese labels or their English names
func ParseTideState(s string) (TideState, bool) {
	switch s {
	case string(TideRising), "rising", "flood":
		return TideRising, true
	case string(TideFalling), "falling", "ebb":
		return TideFalling, true
	}
	return "", false
}

// semidiurnalPeriod is the principal lunar tide period (M2)
const semidiurnalPeriod = 12*time.Hour + 25*time.Minute + 14*time.Second

// ApproximateTideState guesses the tide direction from the time of day.
// The first half of each semidiurnal cycle after local midnight is treated
// as rising. It is a placeholder for a real tide table lookup.
func ApproximateTideState(t time.Time) TideState {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	into := t.Sub(midnight) % semidiurnalPeriod
	if into < semidiurnalPeriod/2 {
		return TideRising
	}
	return TideFalling
}

// TideRange is the Japanese tide-range category of a day (潮回り)
type TideRange string

const (
	SpringTide TideRange = "大潮"
	MiddleTide TideRange = "中潮"
	NeapTide   TideRange = "小潮"
	LongTide   TideRange = "長潮"
	YoungTide  TideRange = "若潮"
)

// TideRanges lists the selectable tide ranges in form order
var TideRanges = []TideRange{SpringTide, MiddleTide, NeapTide, LongTide, YoungTide}
