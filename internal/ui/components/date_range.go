package components

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

// ErrReversedRange is returned when the start date is after the end date.
var ErrReversedRange = errors.New("start date is after end date")

// DateRangeInput edits a [from, to] calendar range with two text inputs.
type DateRangeInput struct {
	from    textinput.Model
	to      textinput.Model
	focused int
	active  bool
}

func newDateInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = models.DateLayout
	ti.CharLimit = len(models.DateLayout)
	ti.Width = len(models.DateLayout) + 1
	ti.PromptStyle = styles.HelpDescStyle
	ti.TextStyle = styles.FocusedStyle
	return ti
}

// NewDateRangeInput creates an inactive editor.
func NewDateRangeInput() DateRangeInput {
	return DateRangeInput{
		from: newDateInput("from "),
		to:   newDateInput("to "),
	}
}

// Active reports whether the editor is taking keyboard input.
func (d DateRangeInput) Active() bool {
	return d.active
}

// Start fills the inputs from the given range and focuses the first one.
func (d *DateRangeInput) Start(from, to time.Time) tea.Cmd {
	d.from.SetValue(from.Format(models.DateLayout))
	d.to.SetValue(to.Format(models.DateLayout))
	d.from.CursorEnd()
	d.to.CursorEnd()
	d.active = true
	d.focused = 0
	d.to.Blur()
	return d.from.Focus()
}

// Stop leaves editing mode without touching the values.
func (d *DateRangeInput) Stop() {
	d.active = false
	d.from.Blur()
	d.to.Blur()
}

// FocusNext moves focus to the other input.
func (d *DateRangeInput) FocusNext() tea.Cmd {
	if d.focused == 0 {
		d.focused = 1
		d.from.Blur()
		return d.to.Focus()
	}
	d.focused = 0
	d.to.Blur()
	return d.from.Focus()
}

// Update forwards msg to the focused input.
func (d DateRangeInput) Update(msg tea.Msg) (DateRangeInput, tea.Cmd) {
	if !d.active {
		return d, nil
	}
	var cmd tea.Cmd
	if d.focused == 0 {
		d.from, cmd = d.from.Update(msg)
	} else {
		d.to, cmd = d.to.Update(msg)
	}
	return d, cmd
}

// Parse validates both inputs and returns the range.
func (d DateRangeInput) Parse() (from, to time.Time, err error) {
	return ParseDateRange(d.from.Value(), d.to.Value())
}

// ParseDateRange parses two dates in models.DateLayout and checks their order.
func ParseDateRange(fromStr, toStr string) (from, to time.Time, err error) {
	from, err = models.ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	to, err = models.ParseDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrReversedRange
	}
	return from, to, nil
}

// View renders both inputs side by side.
func (d DateRangeInput) View() string {
	fromStyle, toStyle := styles.BlurredBorderStyle, styles.BlurredBorderStyle
	if d.focused == 0 {
		fromStyle = styles.FocusedBorderStyle
	} else {
		toStyle = styles.FocusedBorderStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		fromStyle.Render(d.from.View()),
		" ",
		toStyle.Render(d.to.View()),
	)
}
