// Package tui provides the interactive terminal interface: the list of
// saved maps, the new-map dialog, the creation screen and the map detail
// view.
//
// The TUI codebase is split into multiple files:
// - executor.go: program lifecycle
// - model.go: core model structure and state
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - listview.go: the main list, which is the presenter's view
// - overlay.go: overlay stack and toast placement
// - styles.go: color schemes and styling
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/mymaps/pkg/app"
	"github.com/entrhq/mymaps/pkg/logging"
)

// Options customizes the interface.
type Options struct {
	// ToastDuration is how long notifications stay visible.
	ToastDuration time.Duration
	// DetailStyle is the chroma style of the detail view.
	DetailStyle string
}

// Executor runs the interactive interface for an App.
type Executor struct {
	app     *app.App
	opts    Options
	logger  *logging.Logger
	program *tea.Program
}

// NewExecutor creates a TUI executor. The app's store must already be
// loaded. logger may be nil.
func NewExecutor(a *app.App, opts Options, logger *logging.Logger) *Executor {
	return &Executor{app: a, opts: opts, logger: logger}
}

// Run starts the TUI and blocks until the user exits or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.app, e.opts, e.logger)
	m.debugf("TUI starting with %d maps from %s", e.app.Store().Len(), e.app.Store().Path())

	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := e.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	m.debugf("TUI exited")
	return nil
}
