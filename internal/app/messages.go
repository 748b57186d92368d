package app

import (
	"time"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/pipeline"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// DatasetLoadedMsg carries the dataset metadata and the filter restored at startup.
type DatasetLoadedMsg struct {
	Info     models.DatasetInfo
	Criteria models.FilterCriteria
}

// ApplyFilterMsg requests a pipeline run with new criteria.
type ApplyFilterMsg struct {
	Criteria models.FilterCriteria
}

// ReportComputedMsg contains the result of a pipeline run.
type ReportComputedMsg struct {
	Report *pipeline.Report
	Err    error
}

// ReloadDatasetMsg requests a manual reload of the dataset file.
type ReloadDatasetMsg struct{}

// DatasetReloadedMsg contains the result of a manual reload.
type DatasetReloadedMsg struct {
	Err error
}

// ExportReportMsg requests exporting the current report.
type ExportReportMsg struct{}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path    string
	Success bool
	Error   error
}

// StatsLoadedMsg contains loaded statistics.
type StatsLoadedMsg struct {
	Stats services.StatsEvent
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
