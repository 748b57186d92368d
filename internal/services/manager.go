// Package services provides service orchestration for the TUI.
package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/config"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/db"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/logger"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/dataset"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/pipeline"
)

// ErrClosed is returned by operations on a closed Manager.
var ErrClosed = errors.New("service manager closed")

type (
	// DatasetChangedEvent is emitted when a dataset is loaded or reloaded.
	DatasetChangedEvent struct {
		Info     models.DatasetInfo
		Reloaded bool
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent is emitted when session statistics change.
	StatsEvent struct {
		Records        int
		FiltersApplied int
		Reloads        int
		Exports        int
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}
func (StatsEvent) isServiceEvent()          {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu             sync.RWMutex
	cfg            *config.Config
	dataset        *dataset.Service
	database       *db.DB
	sessionID      string
	stopChan       chan struct{}
	closeOnce      sync.Once
	closed         atomic.Bool
	subscribers    []chan<- ServiceEvent
	filtersApplied atomic.Int64
	pruned         atomic.Int64
	lastRecorded   *models.FilterCriteria
	notify         func(title, message string) error
}

// NewManager creates a new service manager. A dataset that fails to load is
// fatal.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		sessionID: uuid.NewString(),
		stopChan:  make(chan struct{}),
		notify:    desktopNotify,
	}

	var err error
	m.dataset, err = dataset.New(cfg.DatasetPath, dataset.Options{
		Watch:    cfg.WatchDataset,
		Debounce: cfg.ReloadDebounce,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		_ = m.dataset.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := m.database.InsertSessionEvent(m.sessionID, db.EventSessionStarted, cfg.DatasetPath); err != nil {
		logger.Warn("failed to record session start", "error", err)
	}

	go m.routeEvents()

	return m, nil
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.dataset.Events():
			m.handleDatasetEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleDatasetEvent converts and broadcasts dataset events.
func (m *Manager) handleDatasetEvent(event dataset.Event) {
	switch event.Type {
	case dataset.EventDatasetLoaded:
		m.broadcast(DatasetChangedEvent{Info: event.Info})

	case dataset.EventDatasetReloaded:
		m.broadcast(DatasetChangedEvent{Info: event.Info, Reloaded: true})
		m.recordSessionEvent(db.EventDatasetReload, event.Info.Path)
		m.notifyReload(event.Info)
		m.broadcast(m.GetStats())

	case dataset.EventError:
		m.broadcast(ErrorEvent{
			Service: "dataset",
			Error:   event.Error,
		})
	}
}

func (m *Manager) notifyReload(info models.DatasetInfo) {
	if m.cfg == nil || !m.cfg.DesktopNotifications || m.notify == nil {
		return
	}
	title := "Dataset reloaded"
	body := fmt.Sprintf("%s: %d records", filepath.Base(info.Path), info.Records)
	if err := m.notify(title, body); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

func (m *Manager) recordSessionEvent(eventType, detail string) {
	if m.database == nil {
		return
	}
	if err := m.database.InsertSessionEvent(m.sessionID, eventType, detail); err != nil {
		logger.Warn("failed to record session event", "type", eventType, "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
func (m *Manager) Subscribe() chan ServiceEvent {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Dataset returns the currently loaded dataset.
func (m *Manager) Dataset() models.Dataset {
	return m.dataset.Dataset()
}

// DatasetInfo summarizes the currently loaded dataset.
func (m *Manager) DatasetInfo() models.DatasetInfo {
	return m.dataset.Info()
}

// Locale returns the configured label locale.
func (m *Manager) Locale() models.Locale {
	if m.cfg == nil || m.cfg.Locale == "" {
		return models.LocaleEnglish
	}
	return m.cfg.Locale
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// SessionID identifies this run in the history store.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Compute runs the full pipeline for criteria and records the filter in
// history. History failures are logged, never returned.
func (m *Manager) Compute(criteria models.FilterCriteria) (*pipeline.Report, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	report := pipeline.Run(m.dataset.Dataset(), criteria, m.Locale())
	m.filtersApplied.Add(1)
	m.recordFilter(report)

	return report, nil
}

// recordFilter stores criteria unless they repeat the last stored entry.
func (m *Manager) recordFilter(report *pipeline.Report) {
	if m.database == nil || !report.Criteria.Valid() {
		return
	}

	m.mu.Lock()
	if m.lastRecorded != nil && *m.lastRecorded == report.Criteria {
		m.mu.Unlock()
		return
	}
	c := report.Criteria
	m.lastRecorded = &c
	m.mu.Unlock()

	entry := &models.FilterHistoryEntry{
		SessionID:    m.sessionID,
		AppliedAt:    time.Now(),
		Criteria:     report.Criteria,
		RecordCount:  report.RecordCount,
		TotalRentals: report.Totals.TotalRentals,
	}
	if err := m.database.InsertFilterHistory(entry); err != nil {
		logger.Warn("failed to record filter history", "error", err)
		return
	}

	if m.cfg != nil && m.cfg.HistoryLimit > 0 {
		n, err := m.database.PruneFilterHistory(m.cfg.HistoryLimit)
		if err != nil {
			logger.Warn("failed to prune filter history", "error", err)
			return
		}
		m.pruned.Add(n)
	}
}

// RecentFilters returns up to limit history entries, newest first.
func (m *Manager) RecentFilters(limit int) ([]models.FilterHistoryEntry, error) {
	if m.database == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return m.database.GetRecentFilters(limit)
}

// LastFilter returns the most recently applied filter from any session.
func (m *Manager) LastFilter() (*models.FilterHistoryEntry, error) {
	if m.database == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return m.database.GetLastFilter()
}

// Reload re-reads the dataset from disk. On failure the previous dataset is
// kept and the error returned.
func (m *Manager) Reload() error {
	if m.closed.Load() {
		return ErrClosed
	}
	return m.dataset.Reload()
}

// reportDocument is the on-disk YAML layout of an exported report.
type reportDocument struct {
	GeneratedAt time.Time        `yaml:"generated_at"`
	SessionID   string           `yaml:"session_id"`
	Dataset     string           `yaml:"dataset"`
	Filter      reportFilter     `yaml:"filter"`
	Report      *pipeline.Report `yaml:"report"`
}

type reportFilter struct {
	DateFrom string `yaml:"date_from"`
	DateTo   string `yaml:"date_to"`
	Season   string `yaml:"season"`
	Weather  string `yaml:"weather"`
}

// ExportReport writes report as YAML into dir and returns the file path.
func (m *Manager) ExportReport(report *pipeline.Report, dir string) (string, error) {
	if report == nil {
		return "", fmt.Errorf("no report to export")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	now := time.Now()
	doc := reportDocument{
		GeneratedAt: now.UTC().Truncate(time.Second),
		SessionID:   m.sessionID,
		Dataset:     m.DatasetInfo().Path,
		Filter: reportFilter{
			DateFrom: report.Criteria.DateFrom.Format(models.DateLayout),
			DateTo:   report.Criteria.DateTo.Format(models.DateLayout),
			Season:   report.Criteria.Season.Label(report.Locale),
			Weather:  report.Criteria.Weather.Label(report.Locale),
		},
		Report: report,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("pedalgo-report-%s.yaml", now.Format("20060102-150405.000")))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	m.recordSessionEvent(db.EventReportExported, path)
	m.broadcast(m.GetStats())
	return path, nil
}

// GetStats returns session statistics.
func (m *Manager) GetStats() StatsEvent {
	stats := StatsEvent{FiltersApplied: int(m.filtersApplied.Load())}
	if m.dataset != nil {
		stats.Records = m.dataset.Info().Records
	}
	if m.database != nil {
		if n, err := m.database.CountSessionEvents(m.sessionID, db.EventDatasetReload); err == nil {
			stats.Reloads = n
		}
		if n, err := m.database.CountSessionEvents(m.sessionID, db.EventReportExported); err == nil {
			stats.Exports = n
		}
	}
	return stats
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		m.closed.Store(true)
		if m.stopChan != nil {
			close(m.stopChan)
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.dataset != nil {
			if err := m.dataset.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if m.database != nil {
			if m.pruned.Load() > 0 {
				if err := m.database.Vacuum(); err != nil {
					logger.Warn("failed to vacuum history database", "error", err)
				}
			}
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}

