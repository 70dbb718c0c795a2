package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/poseidon/internal/advisor"
	"github.com/ngmaloney/poseidon/internal/openmeteo"
)

// areaItem wraps an AreaForecast for use in a list
type areaItem struct {
	forecast advisor.AreaForecast
}

// FilterValue implements list.Item
func (a areaItem) FilterValue() string {
	return a.forecast.Area.Name
}

// Title implements list.DefaultItem
func (a areaItem) Title() string {
	if a.forecast.Unavailable() {
		return fmt.Sprintf("%s  --", a.forecast.Area.Name)
	}
	return fmt.Sprintf("%s  %d%%", a.forecast.Area.Name, a.forecast.Result.Aggregate)
}

// Description implements list.DefaultItem
func (a areaItem) Description() string {
	f := a.forecast
	if f.Unavailable() {
		desc := "データ取得不可"
		if reason := openmeteo.ReasonOf(f.Err); reason != "" {
			desc += fmt.Sprintf(" (%s)", reason)
		}
		return desc
	}

	desc := fmt.Sprintf("波 %.1fm • 風 %.1fm/s • 水温 %.1f℃ • %s",
		f.Snapshot.WaveHeightM,
		f.Snapshot.WindSpeedMS,
		f.Snapshot.SeaSurfaceTempC,
		f.Tide)
	if f.Area.Region != "" {
		desc = f.Area.Region + " • " + desc
	}
	return desc
}

// createAreaList creates a list.Model from scored areas
func createAreaList(forecasts []advisor.AreaForecast, width, height int) list.Model {
	items := make([]list.Item, len(forecasts))
	for i, f := range forecasts {
		items[i] = areaItem{forecast: f}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "釣り場 • 釣れやすさ"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
