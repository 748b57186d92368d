package components

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

// LoadStage is what a loading view is waiting on.
type LoadStage int

const (
	// StageDataset covers reading the rentals CSV.
	StageDataset LoadStage = iota
	// StageReport covers the first aggregation after a load.
	StageReport
)

func (s LoadStage) String() string {
	if s == StageReport {
		return "Computing report"
	}
	return "Loading dataset"
}

// LoadingSpinner shows the current load stage and the dataset it concerns.
type LoadingSpinner struct {
	spinner spinner.Model
	stage   LoadStage
	source  string
	style   lipgloss.Style
}

// NewSpinner creates a spinner in the dataset stage.
func NewSpinner() LoadingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return LoadingSpinner{
		spinner: s,
		stage:   StageDataset,
		style:   lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

// Init starts the spinner animation.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update handles spinner tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// SetStage switches the caption to stage.
func (l *LoadingSpinner) SetStage(stage LoadStage) {
	l.stage = stage
}

// SetSource names the dataset file being loaded. Only the base name is shown.
func (l *LoadingSpinner) SetSource(path string) {
	if path == "" {
		l.source = ""
		return
	}
	l.source = filepath.Base(path)
}

// Label returns the caption, e.g. "Computing report · final_data.csv...".
func (l LoadingSpinner) Label() string {
	label := l.stage.String()
	if l.source != "" {
		label += " · " + l.source
	}
	return label + "..."
}

// ViewWithLabel renders the spinner with its caption.
func (l LoadingSpinner) ViewWithLabel() string {
	return l.spinner.View() + " " + l.style.Render(l.Label())
}

// RenderSpinnerCentered renders a spinner centered in a given width and height.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.ViewWithLabel(), width, height)
}
