// Package main is the entry point for the Interaction Sector Viewer.
// It loads configuration, starts the services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/interaction-sector-viewer/internal/app"
	"github.com/j-veylop/interaction-sector-viewer/internal/config"
	"github.com/j-veylop/interaction-sector-viewer/internal/logger"
	"github.com/j-veylop/interaction-sector-viewer/internal/services"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/tabs/dashboard"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/tabs/history"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/tabs/info"
	"github.com/j-veylop/interaction-sector-viewer/internal/ui/tabs/timeline"
	"github.com/j-veylop/interaction-sector-viewer/internal/version"
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

	logCloser, err := logger.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logCloser.Close()

	logger.Info("starting", "version", version.Info(), "source", cfg.SourceURL)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	logger.Info("services ready",
		"source", svcManager.SourceName(),
		"history", svcManager.HistoryEnabled(),
		"watching", svcManager.Watching(),
	)

	model := app.NewModel(svcManager, cfg)

	// Tabs only read the shared state; the root model owns every write.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		timeline.New(state),
		history.New(state, cfg),
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

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Interaction Sector Viewer - interactions by sector in your terminal

Usage:
  isv [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Sectors, Timeline, History, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll or move the selection
  v               Toggle pie chart / share bars
  e               Export the chart as PNG
  c               Copy the data source (Info tab)
  r               Fetch again
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  INTERACTIONS_URL  Data source: http(s) URL, file:// URL or path
  FETCH_TIMEOUT     Request timeout (default: 10s)
  FETCH_RETRIES     Retries on network errors, 0-5 (default: 0)
  DATABASE_PATH     SQLite fetch history path
  HISTORY_ENABLED   Record each fetch (default: true)
  WATCH_SOURCE      Refetch when a file source changes (default: true)
  NOTIFY_ON_ERROR   Desktop notification when no data (default: false)
  EXPORT_DIR        Directory for PNG exports (default: current directory)
  LOG_FILE          Write logs to this file (default: off)
  LOG_LEVEL         debug, info, warn or error (default: info)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/isv/.env
  - ~/.isv/.env`)
}
