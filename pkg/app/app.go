// Package app wires the map store to the creation flow. It is the single
// place where a submitted title turns into a saved map.
package app

import (
	"context"
	"fmt"

	"github.com/entrhq/mymaps/pkg/creation"
	"github.com/entrhq/mymaps/pkg/logging"
	"github.com/entrhq/mymaps/pkg/maps"
	"github.com/entrhq/mymaps/pkg/maps/store"
)

// InvalidTitleMessage is the user-facing text for maps.ErrInvalidTitle.
const InvalidTitleMessage = "Map must have non-empty title"

// Outcome reports what SubmitTitle did.
type Outcome struct {
	// Created is false when the creation flow was abandoned.
	Created bool
	// Position of the new map in the collection, -1 when nothing was created.
	Position int
	// Map is a copy of the saved map.
	Map maps.Map
}

// Cancelled is the Outcome of an abandoned creation flow.
var Cancelled = Outcome{Position: -1}

// App runs the create and open flows against a Store.
type App struct {
	store   *store.Store
	creator creation.Creator
	logger  *logging.Logger
}

// New returns an App. logger may be nil.
func New(st *store.Store, creator creation.Creator, logger *logging.Logger) *App {
	if creator == nil {
		creator = creation.Cancelled
	}
	return &App{store: st, creator: creator, logger: logger}
}

// Store returns the underlying store.
func (a *App) Store() *store.Store {
	return a.store
}

// SubmitTitle validates title, asks the creator for a map and appends it.
// An invalid title fails with maps.ErrInvalidTitle before the creator or the
// store is touched. A cancelled flow leaves everything unchanged.
func (a *App) SubmitTitle(ctx context.Context, title string) (Outcome, error) {
	return a.SubmitTitleWith(ctx, title, a.creator)
}

// SubmitTitleWith is SubmitTitle with a one-off creator.
func (a *App) SubmitTitleWith(ctx context.Context, title string, creator creation.Creator) (Outcome, error) {
	if err := maps.ValidateTitle(title); err != nil {
		a.debugf("rejected title %q", title)
		return Cancelled, err
	}

	m, ok, err := creator.Create(ctx, title)
	if err != nil {
		a.errorf("creation failed for %q: %v", title, err)
		return Cancelled, fmt.Errorf("app: create map: %w", err)
	}
	if !ok {
		a.debugf("creation cancelled for %q", title)
		return Cancelled, nil
	}

	return a.Add(m)
}

// Add appends an already built map. This is the response half of the
// creation request, used when the flow finishes asynchronously.
func (a *App) Add(m maps.Map) (Outcome, error) {
	if err := m.Validate(); err != nil {
		return Cancelled, err
	}
	pos, err := a.store.Append(m)
	if err != nil {
		a.errorf("append %q: %v", m.Title, err)
		return Cancelled, err
	}
	a.infof("created map %q with %d places at position %d", m.Title, len(m.Places), pos)
	return Outcome{Created: true, Position: pos, Map: m.Clone()}, nil
}

// Open returns a copy of the map at pos for display.
func (a *App) Open(pos int) (maps.Map, error) {
	m, err := a.store.At(pos)
	if err != nil {
		return maps.Map{}, err
	}
	a.debugf("opened map %q at position %d", m.Title, pos)
	return m, nil
}

func (a *App) debugf(format string, v ...interface{}) {
	if a.logger != nil {
		a.logger.Debugf(format, v...)
	}
}

func (a *App) infof(format string, v ...interface{}) {
	if a.logger != nil {
		a.logger.Infof(format, v...)
	}
}

func (a *App) errorf(format string, v ...interface{}) {
	if a.logger != nil {
		a.logger.Errorf(format, v...)
	}
}
