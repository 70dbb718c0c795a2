package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/poseidon/internal/advisor"
	"github.com/ngmaloney/poseidon/internal/history"
	"github.com/ngmaloney/poseidon/internal/models"
	"github.com/ngmaloney/poseidon/internal/scoring"
)

type mockAdvisor struct {
	forecasts []advisor.AreaForecast
	scoreErr  error
	logged    []models.CatchRecord
	logErr    error
	series    []history.SeriesPoint
}

func (m *mockAdvisor) ScoreAreas(ctx context.Context, tide models.TideState, now time.Time, species ...string) ([]advisor.AreaForecast, error) {
	return m.forecasts, m.scoreErr
}

func (m *mockAdvisor) LogCatch(ctx context.Context, rec models.CatchRecord) error {
	if m.logErr != nil {
		return m.logErr
	}
	m.logged = append(m.logged, rec)
	return nil
}

func (m *mockAdvisor) History(ctx context.Context, area, species string) ([]history.SeriesPoint, error) {
	return m.series, nil
}

var fixedNow = time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)

func testForecasts() []advisor.AreaForecast {
	return []advisor.AreaForecast{
		{
			Area:     models.Area{Name: "九十九里", Region: "千葉", Latitude: 35.55, Longitude: 140.45},
			Snapshot: &models.MarineSnapshot{WaveHeightM: 1.5, WindSpeedMS: 5, PressureHPa: 1012, SeaSurfaceTempC: 16},
			Tide:     models.TideRising,
			Result: scoring.ScoreResult{
				Base:       95,
				PerSpecies: []scoring.SpeciesScore{{Species: "ヒラメ", Score: 80}},
				Aggregate:  80,
			},
		},
		{
			Area: models.Area{Name: "銚子", Region: "千葉"},
			Err:  errors.New("connection refused"),
		},
	}
}

func newTestModel(svc *mockAdvisor) Model {
	m := NewModel(svc, WithClock(func() time.Time { return fixedNow }))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func loaded(t *testing.T, svc *mockAdvisor) Model {
	t.Helper()
	m := newTestModel(svc)
	updated, _ := m.Update(forecastsLoadedMsg{forecasts: svc.forecasts})
	m = updated.(Model)
	if m.state != StateAreaList {
		t.Fatalf("after forecasts loaded, state = %v, want StateAreaList", m.state)
	}
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := NewModel(&mockAdvisor{})

	if m.state != StateLoading {
		t.Errorf("NewModel() state = %v, want StateLoading", m.state)
	}
	if m.Init() == nil {
		t.Error("Init() should start loading forecasts")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := newTestModel(&mockAdvisor{})

	if m.width != 120 {
		t.Errorf("After WindowSizeMsg, width = %d, want 120", m.width)
	}
	if m.height != 40 {
		t.Errorf("After WindowSizeMsg, height = %d, want 40", m.height)
	}
}

func TestModel_Update_ErrorMsg(t *testing.T) {
	m := newTestModel(&mockAdvisor{})

	updated, _ := m.Update(errMsg{err: tea.ErrProgramKilled})
	m = updated.(Model)

	if m.state != StateError {
		t.Errorf("After errMsg, state = %v, want StateError", m.state)
	}
	if m.err == nil {
		t.Error("After errMsg, err should not be nil")
	}
}

func TestModel_ScoreFailureShowsError(t *testing.T) {
	m := newTestModel(&mockAdvisor{})

	updated, _ := m.Update(forecastsLoadedMsg{err: errors.New("history unreadable")})
	m = updated.(Model)

	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}

	// any key retries
	m = press(m, "x")
	if m.state != StateLoading {
		t.Errorf("after keypress, state = %v, want StateLoading", m.state)
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := newTestModel(&mockAdvisor{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected Ctrl+C to return quit command")
	}
}

func TestModel_AreaListShowsUnavailable(t *testing.T) {
	svc := &mockAdvisor{forecasts: testForecasts()}
	m := loaded(t, svc)

	view := m.View()
	if !strings.Contains(view, "九十九里") {
		t.Error("area list should include 九十九里")
	}
	if !strings.Contains(view, "80%") {
		t.Error("area list should show the aggregate score")
	}
	if !strings.Contains(view, "データ取得不可") {
		t.Error("area list should mark 銚子 as unavailable")
	}
}

func TestModel_DetailAndBack(t *testing.T) {
	svc := &mockAdvisor{forecasts: testForecasts()}
	m := loaded(t, svc)

	m = press(m, "enter")
	if m.state != StateDetail {
		t.Fatalf("after enter, state = %v, want StateDetail", m.state)
	}
	if m.selected == nil || m.selected.Area.Name != "九十九里" {
		t.Fatalf("selected = %+v, want 九十九里", m.selected)
	}

	view := m.View()
	for _, want := range []string{"ヒラメ", "1.50 m", "上げ"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}

	m = press(m, "esc")
	if m.state != StateAreaList {
		t.Errorf("after esc, state = %v, want StateAreaList", m.state)
	}
}

func TestModel_LogCatch(t *testing.T) {
	svc := &mockAdvisor{forecasts: testForecasts()}
	m := loaded(t, svc)

	m = press(m, "c")
	if m.state != StateCatchForm {
		t.Fatalf("after c, state = %v, want StateCatchForm", m.state)
	}
	if got := m.form.inputs[fieldDate].Value(); got != "2025-07-01" {
		t.Errorf("date defaults to %q, want 2025-07-01", got)
	}

	// species, size, count
	m = press(m, "tab", "ヒラメ", "tab", "52", "tab", "2", "tab", "right")

	rec, err := m.form.record()
	if err != nil {
		t.Fatalf("record() error = %v", err)
	}
	if rec.Area != "九十九里" || rec.Species != "ヒラメ" || rec.SizeCM != 52 || rec.Count != 2 {
		t.Errorf("record() = %+v", rec)
	}
	if rec.Weather != models.Weathers[1] {
		t.Errorf("weather = %q, want %q", rec.Weather, models.Weathers[1])
	}
	if rec.TimeOfDay != models.Morning {
		t.Errorf("time of day = %q, want %q", rec.TimeOfDay, models.Morning)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("submitting the form should return a save command")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if len(svc.logged) != 1 {
		t.Fatalf("logged %d records, want 1", len(svc.logged))
	}
	if m.state != StateAreaList {
		t.Errorf("after save, state = %v, want StateAreaList", m.state)
	}
	if !strings.Contains(m.notice, "ヒラメ") {
		t.Errorf("notice = %q, want it to mention the species", m.notice)
	}
}

func TestModel_LogCatchRejected(t *testing.T) {
	svc := &mockAdvisor{forecasts: testForecasts(), logErr: history.ErrInvalid}
	m := loaded(t, svc)

	m = press(m, "c", "tab", "ヒラメ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.state != StateCatchForm {
		t.Errorf("state = %v, want to stay in StateCatchForm", m.state)
	}
	if !errors.Is(m.form.err, history.ErrInvalid) {
		t.Errorf("form err = %v, want ErrInvalid", m.form.err)
	}
}

func TestModel_LogCatchBadNumber(t *testing.T) {
	svc := &mockAdvisor{forecasts: testForecasts()}
	m := loaded(t, svc)

	m = press(m, "c", "tab", "ヒラメ", "tab", "tab", "many", "ctrl+s")

	if m.form.err == nil {
		t.Error("expected a parse error for a non-numeric count")
	}
	if len(svc.logged) != 0 {
		t.Error("nothing should be logged")
	}
}

func TestModel_History(t *testing.T) {
	svc := &mockAdvisor{
		forecasts: testForecasts(),
		series: []history.SeriesPoint{
			{Date: "2025-06-01", Outings: 2, Successes: 1, Rate: 0.5, CumulativeRate: 0.5},
			{Date: "2025-06-08", Outings: 1, Successes: 1, Rate: 1, CumulativeRate: 2.0 / 3.0},
		},
	}
	m := loaded(t, svc)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("h should load history")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.state != StateHistory {
		t.Fatalf("state = %v, want StateHistory", m.state)
	}
	view := m.View()
	if !strings.Contains(view, "2025-06-08") || !strings.Contains(view, "67%") {
		t.Errorf("history view missing rows:\n%s", view)
	}

	m = press(m, "esc")
	if m.state != StateAreaList {
		t.Errorf("after esc, state = %v, want StateAreaList", m.state)
	}
}

func TestModel_View_States(t *testing.T) {
	tests := []struct {
		name  string
		state AppState
	}{
		{"loading", StateLoading},
		{"detail", StateDetail},
		{"catch form", StateCatchForm},
		{"history", StateHistory},
		{"error", StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(&mockAdvisor{})
			m.state = tt.state
			m.form = newCatchForm("大洗", fixedNow)
			if tt.state == StateDetail {
				f := testForecasts()[1]
				m.selected = &f
			}

			if view := m.View(); view == "" {
				t.Errorf("View() returned empty string for state %v", tt.state)
			}
		})
	}
}

func TestModel_View_InitialLoading(t *testing.T) {
	m := NewModel(&mockAdvisor{})

	if view := m.View(); view != "Loading..." {
		t.Errorf("View() before window size = %q, want 'Loading...'", view)
	}
}

func TestAppState_Constants(t *testing.T) {
	if StateLoading != 0 {
		t.Errorf("StateLoading = %d, want 0", StateLoading)
	}
	if StateAreaList != 1 {
		t.Errorf("StateAreaList = %d, want 1", StateAreaList)
	}
	if StateError != 5 {
		t.Errorf("StateError = %d, want 5", StateError)
	}
}
