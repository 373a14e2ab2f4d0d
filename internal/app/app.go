package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/assetnav/internal/backend"
	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/history"
	"github.com/atomicstack/assetnav/internal/logging"
	"github.com/atomicstack/assetnav/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const watchInterval = 500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Tool        string
	DownloadDir string
	WatchDir    string
	HistoryPath string
	CacheTTL    time.Duration
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	gw := gateway.New(cfg.Tool)
	if _, err := gw.Preflight(); err != nil {
		return err
	}

	var store *history.Store
	if cfg.HistoryPath != "" {
		s, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer s.Close()
		store = s
	}

	watcher := startWatcher(cfg.WatchDir)
	if watcher != nil {
		defer watcher.Stop()
	}

	model := ui.NewModel(gw, options(cfg, watcher, store))
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// startWatcher returns nil when dir cannot be watched; uploads then work
// without suggestions.
func startWatcher(dir string) *backend.Watcher {
	if dir == "" {
		return nil
	}
	w, err := backend.NewWatcher(dir, watchInterval)
	if err != nil {
		logging.Error(fmt.Errorf("watch %s: %w", dir, err))
		return nil
	}
	return w
}

func options(cfg Config, watcher *backend.Watcher, store *history.Store) ui.Options {
	return ui.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Verbose:     cfg.Verbose,
		Animate:     true,
		DownloadDir: cfg.DownloadDir,
		CacheTTL:    cfg.CacheTTL,
		Watcher:     watcher,
		History:     store,
	}
}
