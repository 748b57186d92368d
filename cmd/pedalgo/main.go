// Package main is the entry point for the PedalGo dashboard TUI.
// It loads configuration and the dataset, then runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/app"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/config"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/logger"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/tabs/dashboard"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/tabs/history"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/tabs/rankings"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The TUI owns the terminal, so logs go to LOG_PATH or nowhere.
	logCloser, err := logger.Init(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	logger.Info("starting", "version", version.GetVersion(), "dataset", cfg.DatasetPath)

	// Loads the dataset; a missing or malformed file stops here.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Tab order must match app.TabDashboard..app.TabInfo.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		rankings.New(state),
		history.New(state, svcManager),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	logger.Info("exiting")
	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`PedalGo Dashboard TUI - bike-sharing rentals explorer

Usage:
  pedalgo [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch tabs (Dashboard, Rankings, History, Info)
  Tab/Shift+Tab   Navigate between tabs
  d               Edit the date range (dashboard)
  s/S, w/W        Cycle season / weather filter (dashboard)
  x               Reset filters (dashboard)
  c               Toggle total / casual vs registered chart (dashboard)
  o               Ranked / clock order for hours (rankings)
  Enter           Re-apply a filter (history)
  R               Reload the dataset from disk
  e               Export the current report as YAML
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATASET_PATH           Dataset CSV path (default: final_data.csv)
  DATABASE_PATH          Filter history database (default: ~/.config/pedalgo/history.db)
  LABEL_LOCALE           Label language: en or id (default: en)
  WATCH_DATASET          Reload when the dataset changes on disk (default: true)
  RELOAD_DEBOUNCE        Delay before reloading a changed dataset (default: 500ms)
  DESKTOP_NOTIFICATIONS  Notify on dataset reload (default: false)
  EXPORT_DIR             Directory for exported reports (default: current directory)
  HISTORY_LIMIT          Filter history entries to keep (default: 20)
  LOG_PATH               Log file (default: logging disabled)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/pedalgo/.env
  - ~/.pedalgo/.env
  - Parent directory`)
}
