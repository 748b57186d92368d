package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

// ShareBar renders the registered/casual split of a rental total as a single
// two-colored bar: registered fills from the left, casual takes the rest.
type ShareBar struct {
	progress progress.Model
}

// NewShareBar creates a share bar with the series colors.
func NewShareBar(width int) ShareBar {
	p := progress.New(
		progress.WithSolidFill(string(styles.Registered)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	p.Full = '█'
	p.Empty = '█'
	p.EmptyColor = string(styles.Casual)
	return ShareBar{progress: p}
}

// SetWidth sets the bar width.
func (b *ShareBar) SetWidth(width int) {
	b.progress.Width = max(width, 1)
}

// Width returns the bar width.
func (b ShareBar) Width() int {
	return b.progress.Width
}

// RegisteredShare returns registered/(casual+registered), or 0 with no rentals.
func RegisteredShare(casual, registered int64) float64 {
	total := casual + registered
	if total <= 0 {
		return 0
	}
	return float64(registered) / float64(total)
}

// View renders the bar followed by the registered and casual percentages.
func (b ShareBar) View(casual, registered int64, loc models.Locale) string {
	if casual+registered <= 0 {
		return styles.HelpStyle.Render(NoDataText)
	}
	share := RegisteredShare(casual, registered)

	label := fmt.Sprintf(" %s %.0f%%  %s %.0f%%",
		lipgloss.NewStyle().Foreground(styles.Registered).Render(models.UserRegistered.Label(loc)),
		share*100,
		lipgloss.NewStyle().Foreground(styles.Casual).Render(models.UserCasual.Label(loc)),
		(1-share)*100,
	)
	return b.progress.ViewAs(share) + label
}
