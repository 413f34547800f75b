package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popular-movies/internal/backend"
	"github.com/atomicstack/popular-movies/internal/catalog"
	"github.com/atomicstack/popular-movies/internal/logging"
	"github.com/atomicstack/popular-movies/internal/logging/events"
	"github.com/atomicstack/popular-movies/internal/netcheck"
	"github.com/atomicstack/popular-movies/internal/tmdb"
	"github.com/atomicstack/popular-movies/internal/ui"
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model, cleanup, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Exit("killed")
		return nil
	}
	if err != nil {
		events.App.Exit(err.Error())
		return err
	}
	events.App.Exit("quit")
	return nil
}

// NewModel wires the API client, connectivity gate, controller and watcher
// into a UI model. The returned cleanup stops the watcher, cancels in-flight
// requests and closes the transport.
func NewModel(cfg Config) (*ui.Model, func(), error) {
	builder, err := tmdb.NewURLBuilder(cfg.BaseURL, cfg.APIKey, tmdb.WithLanguage(cfg.Language))
	if err != nil {
		return nil, nil, fmt.Errorf("configure api: %w", err)
	}
	transport := tmdb.NewRestyTransport(cfg.Timeout, tmdb.WithLogger(logging.HTTPLogger{}))
	gate := netcheck.New(cfg.Connectivity, builder.Host(), netcheck.DefaultProbeTimeout)
	ctrl := catalog.New(builder, tmdb.NewClient(transport), gate, catalog.WithSort(cfg.Sort))
	watcher := backend.NewWatcher(gate, cfg.StatusInterval)
	ctx, cancel := context.WithCancel(context.Background())
	model := ui.NewModel(ctrl, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Columns:    cfg.Columns,
		ShowFooter: cfg.ShowFooter,
		Watcher:    watcher,
		Context:    ctx,
	})
	cleanup := func() {
		watcher.Stop()
		cancel()
		if err := transport.Close(); err != nil {
			logging.Error(fmt.Errorf("close transport: %w", err))
		}
	}
	return model, cleanup, nil
}
