// Package lunar computes the moon phase and the bite bonus it earns.
package lunar

import (
	"math"
	"time"
)

const (
	// SynodicMonth is the phase range in days
	SynodicMonth = 29.53

	lunationOffset  = 0.20439731
	lunationsPerDay = 0.03386319269

	// HighBonus is awarded inside the new-moon and full-moon windows
	HighBonus = 20
	// LowBonus is awarded for every other phase
	LowBonus = 10
)

var epoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// MoonPhase returns the position in the lunar cycle in days, in [0, 29.53).
func MoonPhase(now time.Time) float64 {
	days := now.Sub(epoch).Hours() / 24.0
	lunations := lunationOffset + days*lunationsPerDay

	frac := math.Mod(lunations, 1)
	if frac < 0 {
		frac++
	}
	return frac * SynodicMonth
}

// MoonScore maps a phase onto the lunar bonus.
// Window boundaries are exclusive: 2, 27, 13 and 16 all score low.
func MoonScore(phase float64) int {
	if IsNewMoon(phase) || IsFullMoon(phase) {
		return HighBonus
	}
	return LowBonus
}

// IsNewMoon reports whether phase falls in the new-moon window
func IsNewMoon(phase float64) bool {
	return phase < 2 || phase > 27
}

// IsFullMoon reports whether phase falls in the full-moon window
func IsFullMoon(phase float64) bool {
	return phase > 13 && phase < 16
}

// PhaseName names the phase for display
func PhaseName(phase float64) string {
	switch {
	case phase < 1.84566:
		return "新月"
	case phase < 5.53699:
		return "三日月"
	case phase < 9.22831:
		return "上弦"
	case phase < 12.91963:
		return "十三夜"
	case phase < 16.61096:
		return "満月"
	case phase < 20.30228:
		return "寝待月"
	case phase < 23.99361:
		return "下弦"
	case phase < 27.68493:
		return "有明月"
	default:
		return "新月"
	}
}
