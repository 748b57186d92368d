package dataset

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/logger"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Event represents a dataset service event.
type Event struct {
	Type  EventType
	Error error
	Info  models.DatasetInfo
}

// EventType defines the type of dataset event.
type EventType int

const (
	EventDatasetLoaded EventType = iota
	EventDatasetReloaded
	EventError
)

// Options configures a Service.
type Options struct {
	Watch    bool
	Debounce time.Duration
}

// Service owns the loaded dataset and reloads it when the file changes.
type Service struct {
	mu            sync.RWMutex
	dataset       models.Dataset
	info          models.DatasetInfo
	filePath      string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	timerMu       sync.Mutex
	debounceTimer *time.Timer
}

// New loads the dataset at filePath. A load failure is returned as is; no
// service is created without a valid dataset.
func New(filePath string, opts Options) (*Service, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	s := &Service{
		filePath:  filePath,
		debounce:  opts.Debounce,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	ds, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	s.swap(ds)

	if opts.Watch {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	s.sendEvent(Event{Type: EventDatasetLoaded, Info: s.Info()})
	return s, nil
}

// Events returns the event channel for subscribing to dataset changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Dataset returns the current dataset. Callers must not modify it; a reload
// replaces the slice rather than mutating it.
func (s *Service) Dataset() models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Info returns a summary of the current dataset.
func (s *Service) Info() models.DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Path returns the watched file path.
func (s *Service) Path() string {
	return s.filePath
}

// Reload re-reads the file. On failure the previous dataset stays active.
func (s *Service) Reload() error {
	ds, err := Load(s.filePath)
	if err != nil {
		logger.Warn("dataset reload failed, keeping previous data", "path", s.filePath, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}
	s.swap(ds)
	info := s.Info()
	logger.Info("dataset reloaded", "path", s.filePath, "records", info.Records)
	s.sendEvent(Event{Type: EventDatasetReloaded, Info: info})
	return nil
}

func (s *Service) swap(ds models.Dataset) {
	info := ds.Describe(s.filePath, time.Now())
	s.mu.Lock()
	s.dataset = ds
	s.info = info
	s.mu.Unlock()
}

// startWatcher watches the dataset's directory so atomic renames are seen.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		s.watcher = nil
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.scheduleReload()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) scheduleReload() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		select {
		case <-s.stopChan:
			return
		default:
		}
		_ = s.Reload()
	})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.timerMu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.timerMu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
