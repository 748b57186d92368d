package app

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/logger"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/pipeline"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that reads the dataset summary and
// restores the last applied filter.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		info := mgr.DatasetInfo()
		last, err := mgr.LastFilter()
		if err != nil {
			logger.Warn("failed to read last filter", "error", err)
		}
		return DatasetLoadedMsg{
			Info:     info,
			Criteria: restoreCriteria(info, last),
		}
	}
}

// restoreCriteria adapts a stored filter to the current dataset. The date
// range is clamped to the dataset bounds, codes the data no longer contains
// fall back to "all", and anything unusable yields the default criteria.
func restoreCriteria(info models.DatasetInfo, last *models.FilterHistoryEntry) models.FilterCriteria {
	def := models.DefaultCriteria(info)
	if last == nil {
		return def
	}

	c := last.Criteria.Clamp(info.FirstDate, info.LastDate)
	if c.Season != models.SeasonAll && !slices.Contains(info.Seasons, c.Season) {
		c.Season = models.SeasonAll
	}
	if c.Weather != models.WeatherAll && !slices.Contains(info.Weathers, c.Weather) {
		c.Weather = models.WeatherAll
	}
	if !c.Valid() {
		return def
	}
	return c
}

// computeReportCmd runs the pipeline for criteria off the UI goroutine.
func computeReportCmd(mgr *services.Manager, c models.FilterCriteria) tea.Cmd {
	return func() tea.Msg {
		report, err := mgr.Compute(c)
		return ReportComputedMsg{Report: report, Err: err}
	}
}

// reloadDatasetCmd re-reads the dataset file.
func reloadDatasetCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return DatasetReloadedMsg{Err: mgr.Reload()}
	}
}

// exportReportCmd writes report into the configured export directory.
func exportReportCmd(mgr *services.Manager, report *pipeline.Report) tea.Cmd {
	return func() tea.Msg {
		dir := ""
		if cfg := mgr.Config(); cfg != nil {
			dir = cfg.ExportDir
		}
		path, err := mgr.ExportReport(report, dir)
		return ExportResultMsg{
			Path:    path,
			Success: err == nil,
			Error:   err,
		}
	}
}

// loadStatsCmd returns a command that loads statistics.
func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return StatsLoadedMsg{Stats: mgr.GetStats()}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}
