package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/poseidon/internal/history"
)

// maxHistoryRows keeps the chart on one screen
const maxHistoryRows = 14

// renderHistory draws one bar per date, most recent last
func renderHistory(series []history.SeriesPoint, width int) string {
	if len(series) == 0 {
		return mutedStyle.Render("No catches logged yet")
	}

	barWidth := width - 36
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 40 {
		barWidth = 40
	}

	if len(series) > maxHistoryRows {
		series = series[len(series)-maxHistoryRows:]
	}

	var lines []string
	for _, p := range series {
		filled := int(p.Rate*float64(barWidth) + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		lines = append(lines, fmt.Sprintf("%s %s %3.0f%% (%d/%d)",
			labelStyle.Render(p.Date),
			scoreStyle(int(p.Rate*100)).Render(bar),
			p.Rate*100,
			p.Successes,
			p.Outings))
	}

	last := series[len(series)-1]
	lines = append(lines, "", fmt.Sprintf("%s %s",
		labelStyle.Render("通算:"),
		valueStyle.Render(fmt.Sprintf("%.0f%%", last.CumulativeRate*100))))

	return strings.Join(lines, "\n")
}
