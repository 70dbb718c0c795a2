package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/poseidon/internal/advisor"
	"github.com/ngmaloney/poseidon/internal/history"
	"github.com/ngmaloney/poseidon/internal/lunar"
	"github.com/ngmaloney/poseidon/internal/models"
	"github.com/ngmaloney/poseidon/internal/rating"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading   AppState = iota // Scoring every area
	StateAreaList                  // Areas ranked by score
	StateDetail                    // Conditions and species scores for one area
	StateCatchForm                 // Logging a catch
	StateHistory                   // Success-rate chart for one area
	StateError                     // Error state
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	svc     Advisor
	now     func() time.Time
	tide    models.TideState
	species []string

	spinner   spinner.Model
	forecasts []advisor.AreaForecast
	areaList  list.Model
	selected  *advisor.AreaForecast

	form   catchForm
	notice string

	historyArea string
	series      []history.SeriesPoint
	returnTo    AppState
}

// Option customises a Model
type Option func(*Model)

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithTide fixes the tide direction instead of approximating it
func WithTide(tide models.TideState) Option {
	return func(m *Model) { m.tide = tide }
}

// WithSpecies limits scoring to the given species
func WithSpecies(species ...string) Option {
	return func(m *Model) { m.species = species }
}

// NewModel creates a new application model
func NewModel(svc Advisor, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		state:   StateLoading,
		svc:     svc,
		now:     time.Now,
		spinner: s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts scoring every area
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadForecasts(m.svc, m.tide, m.now(), m.species))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateAreaList {
			m.areaList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case forecastsLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("scoring areas failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.forecasts = msg.forecasts
		m.areaList = createAreaList(msg.forecasts, m.listWidth(), m.listHeight())
		m.state = StateAreaList
		return m, nil

	case catchSavedMsg:
		if msg.err != nil {
			m.form.err = msg.err
			return m, nil
		}
		r := rating.RateRecord(msg.rec)
		m.notice = fmt.Sprintf("✓ %s %s を記録しました • %s", msg.rec.Area, msg.rec.Species, r.Verdict.Describe())
		m.state = StateAreaList
		// history changed, so scores may have too
		return m, loadForecasts(m.svc, m.tide, m.now(), m.species)

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading history failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.historyArea = msg.area
		m.series = msg.series
		m.state = StateHistory
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case StateCatchForm:
			return m.handleCatchForm(keyMsg)

		case StateAreaList:
			return m.handleAreaList(msg)

		case StateDetail:
			return m.handleDetail(keyMsg)

		case StateHistory:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			if keyMsg.Type == tea.KeyEsc || keyMsg.String() == "b" {
				m.state = m.returnTo
			}
			return m, nil

		case StateError:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			m.err = nil
			if m.forecasts != nil {
				m.state = StateAreaList
				return m, nil
			}
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, loadForecasts(m.svc, m.tide, m.now(), m.species))

		case StateLoading:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
		}
	}

	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateAreaList:
		m.areaList, cmd = m.areaList.Update(msg)
	}

	return m, cmd
}

// handleAreaList handles keyboard input in the area list
func (m Model) handleAreaList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.areaList.FilterState() != list.Filtering {
		item, hasItem := m.areaList.SelectedItem().(areaItem)

		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			if hasItem {
				f := item.forecast
				m.selected = &f
				m.state = StateDetail
				m.notice = ""
			}
			return m, nil
		case "r":
			m.state = StateLoading
			m.notice = ""
			return m, tea.Batch(m.spinner.Tick, loadForecasts(m.svc, m.tide, m.now(), m.species))
		case "c":
			if hasItem {
				return m.openCatchForm(item.forecast.Area.Name)
			}
			return m, nil
		case "h":
			if hasItem {
				m.returnTo = StateAreaList
				return m, loadHistory(m.svc, item.forecast.Area.Name)
			}
			return m, nil
		}
	}

	m.areaList, cmd = m.areaList.Update(msg)
	return m, cmd
}

// handleDetail handles keyboard input on the area detail screen
func (m Model) handleDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		m.state = StateAreaList
		return m, nil
	case "c":
		if m.selected != nil {
			return m.openCatchForm(m.selected.Area.Name)
		}
	case "h":
		if m.selected != nil {
			m.returnTo = StateDetail
			return m, loadHistory(m.svc, m.selected.Area.Name)
		}
	}
	return m, nil
}

func (m Model) openCatchForm(area string) (tea.Model, tea.Cmd) {
	m.form = newCatchForm(area, m.now())
	m.state = StateCatchForm
	m.notice = ""
	return m, nil
}

// handleCatchForm handles keyboard input while logging a catch
func (m Model) handleCatchForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.state = StateAreaList
		return m, nil
	}

	form, cmd, submit := m.form.update(msg)
	m.form = form
	if !submit {
		return m, cmd
	}

	rec, err := m.form.record()
	if err != nil {
		m.form.err = err
		return m, nil
	}
	return m, saveCatch(m.svc, rec)
}

func (m Model) listWidth() int {
	if m.width < 24 {
		return 80
	}
	return m.width - 4
}

func (m Model) listHeight() int {
	if m.height < 16 {
		return 20
	}
	return m.height - 8
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateAreaList:
		return m.viewAreaList()
	case StateDetail:
		return m.viewDetail()
	case StateCatchForm:
		return m.viewCatchForm()
	case StateHistory:
		return m.viewHistory()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewLoading renders the spinner while areas are scored
func (m Model) viewLoading() string {
	title := titleStyle.Render("🎣 Poseidon")
	status := mutedStyle.Render("海況データを取得中...")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		title,
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), status),
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to continue • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewAreaList renders the ranked area list
func (m Model) viewAreaList() string {
	phase := lunar.MoonPhase(m.now())
	subtitle := mutedStyle.Render(fmt.Sprintf("%s • 月齢 %.1f (%s)",
		m.now().Format("2006-01-02 15:04"), phase, lunar.PhaseName(phase)))

	help := helpStyle.Render("↑/↓: Navigate • Enter: Detail • C: Log catch • H: History • R: Refresh • Q: Quit")

	sections := []string{subtitle, "", m.areaList.View()}
	if m.notice != "" {
		sections = append(sections, successStyle.Render(m.notice))
	}
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewDetail renders conditions and per-species scores for the selected area
func (m Model) viewDetail() string {
	if m.selected == nil {
		return "No area selected"
	}
	f := m.selected

	var sections []string

	headerStyle := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1).
		MarginBottom(1)
	sections = append(sections, headerStyle.Render(fmt.Sprintf("🎣 %s", f.Area.Name)))

	if f.Area.Region != "" {
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("📍 %s (%.3f, %.3f)", f.Area.Region, f.Area.Latitude, f.Area.Longitude)))
	}

	sections = append(sections,
		sectionHeaderStyle.Render("🌊 海況"),
		renderConditions(*f),
		sectionHeaderStyle.Render("🐟 魚種別"),
		renderSpecies(*f),
		"",
		helpStyle.Render("C: Log catch • H: History • Esc: Back • Q: Quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewCatchForm renders the catch entry form
func (m Model) viewCatchForm() string {
	title := titleStyle.Render(fmt.Sprintf("📝 釣果記録 • %s", m.form.area))
	help := helpStyle.Render("Tab/↑/↓: Field • ←/→: Choose • Enter on last field or Ctrl+S: Save • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.view(), help)
}

// viewHistory renders the success-rate chart
func (m Model) viewHistory() string {
	title := titleStyle.Render(fmt.Sprintf("📈 %s 釣果率", m.historyArea))
	chart := renderHistory(m.series, m.width)
	help := helpStyle.Render("Esc: Back • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", chart, help)
}

// renderConditions lists the marine snapshot behind a score
func renderConditions(f advisor.AreaForecast) string {
	if f.Unavailable() {
		return errorStyle.Render("データ取得不可: ") + mutedStyle.Render(f.Err.Error())
	}

	s := f.Snapshot
	rows := [][2]string{
		{"波高", fmt.Sprintf("%.2f m", s.WaveHeightM)},
		{"風速", fmt.Sprintf("%.1f m/s (最大 %.1f)", s.WindSpeedMS, s.WindGustMS)},
		{"気圧", fmt.Sprintf("%.0f hPa", s.PressureHPa)},
		{"水温", fmt.Sprintf("%.1f ℃", s.SeaSurfaceTempC)},
		{"潮", string(f.Tide)},
		{"月齢", fmt.Sprintf("%.1f (%s)", f.MoonPhase, lunar.PhaseName(f.MoonPhase))},
		{"実績", fmt.Sprintf("%.0f%%", f.HistoryRate*100)},
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines, labelStyle.Width(6).Render(r[0])+" "+valueStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

// renderSpecies lists per-species scores with the base and aggregate
func renderSpecies(f advisor.AreaForecast) string {
	if f.Unavailable() {
		return mutedStyle.Render("No score available")
	}

	var lines []string
	for _, sp := range f.Result.PerSpecies {
		lines = append(lines, fmt.Sprintf("  %s %s",
			labelStyle.Width(10).Render(sp.Species),
			scoreStyle(sp.Score).Render(fmt.Sprintf("%3d%%", sp.Score))))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("  %s %s", labelStyle.Width(10).Render("基本"), scoreStyle(f.Result.Base).Render(fmt.Sprintf("%3d%%", f.Result.Base))),
		fmt.Sprintf("  %s %s", labelStyle.Width(10).Render("総合"), scoreStyle(f.Result.Aggregate).Render(fmt.Sprintf("%3d%%", f.Result.Aggregate))),
	)
	return strings.Join(lines, "\n")
}
