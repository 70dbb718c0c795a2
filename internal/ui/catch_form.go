package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/poseidon/internal/models"
)

// Form field order; text inputs come first, then the choice fields
const (
	fieldDate = iota
	fieldSpecies
	fieldSize
	fieldCount
	fieldWeather
	fieldTide
	fieldTimeOfDay
	numFields
)

const numInputs = fieldCount + 1

// choice is a field cycled with left and right
type choice struct {
	options []string
	index   int
}

func (c *choice) next() { c.index = (c.index + 1) % len(c.options) }
func (c *choice) prev() { c.index = (c.index + len(c.options) - 1) % len(c.options) }

func (c choice) value() string { return c.options[c.index] }

func newChoice(options []string, selected string) choice {
	c := choice{options: options}
	for i, o := range options {
		if o == selected {
			c.index = i
		}
	}
	return c
}

// catchForm collects one catch record for an area
type catchForm struct {
	area    string
	inputs  []textinput.Model
	choices [numFields - numInputs]choice
	focus   int
	err     error
}

var fieldLabels = [numFields]string{"日付", "魚種", "サイズ(cm)", "匹数", "天気", "潮", "時間帯"}

func newCatchForm(area string, now time.Time) catchForm {
	inputs := make([]textinput.Model, numInputs)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 32
		ti.Width = 24
		inputs[i] = ti
	}
	inputs[fieldDate].SetValue(now.Format(models.DateLayout))
	inputs[fieldDate].Placeholder = models.DateLayout
	inputs[fieldSpecies].Placeholder = "ヒラメ"
	inputs[fieldSize].Placeholder = "0"
	inputs[fieldCount].Placeholder = "0"
	inputs[fieldDate].Focus()

	f := catchForm{area: area, inputs: inputs}
	f.choices[fieldWeather-numInputs] = newChoice(stringsOf(models.Weathers), "")
	f.choices[fieldTide-numInputs] = newChoice(stringsOf(models.TideRanges), "")
	f.choices[fieldTimeOfDay-numInputs] = newChoice(stringsOf(models.TimesOfDay), string(models.TimeOfDayAt(now)))
	return f
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// setFocus moves focus to field i, wrapping around
func (f *catchForm) setFocus(i int) tea.Cmd {
	f.focus = (i + numFields) % numFields
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// onLastField reports whether enter should submit
func (f catchForm) onLastField() bool {
	return f.focus == numFields-1
}

// update handles a key; submit is true when the form should be saved
func (f catchForm) update(msg tea.KeyMsg) (catchForm, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+s":
		return f, nil, true
	case "enter":
		if f.onLastField() {
			return f, nil, true
		}
		cmd := f.setFocus(f.focus + 1)
		return f, cmd, false
	case "tab", "down":
		cmd := f.setFocus(f.focus + 1)
		return f, cmd, false
	case "shift+tab", "up":
		cmd := f.setFocus(f.focus - 1)
		return f, cmd, false
	}

	if f.focus >= numInputs {
		c := &f.choices[f.focus-numInputs]
		switch msg.String() {
		case "right", "l", " ":
			c.next()
		case "left", "h":
			c.prev()
		}
		return f, nil, false
	}

	f.err = nil
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// record parses the form into a catch record
func (f catchForm) record() (models.CatchRecord, error) {
	rec := models.CatchRecord{
		Date:      strings.TrimSpace(f.inputs[fieldDate].Value()),
		Area:      f.area,
		Species:   strings.TrimSpace(f.inputs[fieldSpecies].Value()),
		Weather:   models.Weather(f.choices[fieldWeather-numInputs].value()),
		Tide:      models.TideRange(f.choices[fieldTide-numInputs].value()),
		TimeOfDay: models.TimeOfDay(f.choices[fieldTimeOfDay-numInputs].value()),
	}

	if v := strings.TrimSpace(f.inputs[fieldSize].Value()); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return rec, fmt.Errorf("サイズ must be a number")
		}
		rec.SizeCM = size
	}

	if v := strings.TrimSpace(f.inputs[fieldCount].Value()); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil {
			return rec, fmt.Errorf("匹数 must be a whole number")
		}
		rec.Count = count
	}

	return rec, nil
}

func (f catchForm) view() string {
	var rows []string
	for i := 0; i < numFields; i++ {
		label := labelStyle.Width(12).Render(fieldLabels[i])
		if i == f.focus {
			label = focusedFieldStyle.Width(12).Render("› " + fieldLabels[i])
		}

		var value string
		if i < numInputs {
			value = f.inputs[i].View()
		} else {
			value = fmt.Sprintf("‹ %s ›", f.choices[i-numInputs].value())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}

	body := strings.Join(rows, "\n")
	if f.err != nil {
		body += "\n\n" + errorStyle.Render("✗ "+f.err.Error())
	}
	return sectionBoxStyle.Render(body)
}
