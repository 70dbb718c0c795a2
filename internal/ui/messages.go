package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/poseidon/internal/advisor"
	"github.com/ngmaloney/poseidon/internal/history"
	"github.com/ngmaloney/poseidon/internal/models"
)

// Advisor is the part of the advisor service the UI drives
type Advisor interface {
	ScoreAreas(ctx context.Context, tide models.TideState, now time.Time, species ...string) ([]advisor.AreaForecast, error)
	LogCatch(ctx context.Context, rec models.CatchRecord) error
	History(ctx context.Context, area, species string) ([]history.SeriesPoint, error)
}

// Message types for async operations

// forecastsLoadedMsg is sent when every area has been scored
type forecastsLoadedMsg struct {
	forecasts []advisor.AreaForecast
	err       error
}

// catchSavedMsg is sent when a catch has been appended to the log
type catchSavedMsg struct {
	rec models.CatchRecord
	err error
}

// historyLoadedMsg is sent when a success-rate series is ready
type historyLoadedMsg struct {
	area   string
	series []history.SeriesPoint
	err    error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

func loadForecasts(svc Advisor, tide models.TideState, now time.Time, species []string) tea.Cmd {
	return func() tea.Msg {
		forecasts, err := svc.ScoreAreas(context.Background(), tide, now, species...)
		return forecastsLoadedMsg{forecasts: forecasts, err: err}
	}
}

func saveCatch(svc Advisor, rec models.CatchRecord) tea.Cmd {
	return func() tea.Msg {
		err := svc.LogCatch(context.Background(), rec)
		return catchSavedMsg{rec: rec, err: err}
	}
}

func loadHistory(svc Advisor, area string) tea.Cmd {
	return func() tea.Msg {
		series, err := svc.History(context.Background(), area, "")
		return historyLoadedMsg{area: area, series: series, err: err}
	}
}
