// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/pipeline"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// Loading resources understood by SetLoading.
const (
	ResourceInitial = "initial"
	ResourceReport  = "report"
	ResourceReload  = "reload"
	ResourceExport  = "export"
)

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Report  bool
	Reload  bool
	Export  bool
}

// State is the shared, lock-protected view state read by every tab.
type State struct {
	mu sync.RWMutex

	DatasetInfo models.DatasetInfo
	Criteria    models.FilterCriteria
	Report      *pipeline.Report
	ReportError error
	Stats       *services.StatsEvent
	Locale      models.Locale

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState returns a state in the initial loading phase.
func NewState() *State {
	return &State{
		Locale:        models.LocaleEnglish,
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceInitial:
		s.Loading.Initial = loading
	case ResourceReport:
		s.Loading.Report = loading
	case ResourceReload:
		s.Loading.Reload = loading
	case ResourceExport:
		s.Loading.Export = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Report ||
		s.Loading.Reload ||
		s.Loading.Export
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// IsLoading reports whether a single resource is loading.
func (s *State) IsLoading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch resource {
	case ResourceInitial:
		return s.Loading.Initial
	case ResourceReport:
		return s.Loading.Report
	case ResourceReload:
		return s.Loading.Reload
	case ResourceExport:
		return s.Loading.Export
	}
	return false
}

// SetDatasetInfo records the metadata of the loaded dataset.
func (s *State) SetDatasetInfo(info models.DatasetInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DatasetInfo = info
	s.LastUpdated = time.Now()
}

// GetDatasetInfo returns the metadata of the loaded dataset.
func (s *State) GetDatasetInfo() models.DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DatasetInfo
}

// SetCriteria replaces the active filter.
func (s *State) SetCriteria(c models.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Criteria = c
}

// GetCriteria returns the active filter.
func (s *State) GetCriteria() models.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Criteria
}

// SetReport stores the latest pipeline result. A non-nil err keeps the
// previous report on screen.
func (s *State) SetReport(r *pipeline.Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ReportError = err
	if err != nil {
		return
	}
	s.Report = r
	s.LastUpdated = time.Now()
}

// GetReport returns the latest pipeline result, or nil before the first run.
func (s *State) GetReport() *pipeline.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Report
}

// GetReportError returns the error of the last failed computation.
func (s *State) GetReportError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ReportError
}

// SetLocale sets the label locale.
func (s *State) SetLocale(loc models.Locale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Locale = loc
}

// GetLocale returns the label locale.
func (s *State) GetLocale() models.Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Locale
}

// SetStats updates the statistics.
func (s *State) SetStats(stats services.StatsEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats = &stats
}

// GetStats returns the current statistics.
func (s *State) GetStats() *services.StatsEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}
