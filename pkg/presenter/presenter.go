// Package presenter projects the map store onto a positional list view and
// turns position-based selections back into map values.
//
// The presenter owns no authoritative state. It keeps the last snapshot it
// rendered so it can resolve a selected position, and that snapshot always
// equals the store's collection after each notification.
package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/entrhq/mymaps/pkg/maps"
	"github.com/entrhq/mymaps/pkg/maps/store"
)

// ErrNoSuchItem is returned by Select for a position that is not rendered.
var ErrNoSuchItem = errors.New("presenter: no item at position")

// Item is what a view shows for one map.
type Item struct {
	Position    int
	ID          string
	Title       string
	Description string
}

func itemFor(pos int, m maps.Map) Item {
	return Item{Position: pos, ID: m.ID, Title: m.Title, Description: m.Summary()}
}

// View is implemented by whatever draws the list.
type View interface {
	// Render replaces everything shown with items, in order.
	Render(items []Item)
	// Insert adds one item at pos, which is always the previous length.
	Insert(pos int, item Item)
}

// SelectFunc receives the selected map by value.
type SelectFunc func(pos int, m maps.Map)

// Presenter implements store.Observer and drives a View.
type Presenter struct {
	view     View
	onSelect SelectFunc

	mu       sync.Mutex
	rendered store.Collection
}

var _ store.Observer = (*Presenter)(nil)

// New creates a presenter for view. onSelect may be nil.
func New(view View, onSelect SelectFunc) *Presenter {
	return &Presenter{view: view, onSelect: onSelect}
}

// Reloaded re-renders the whole list.
func (p *Presenter) Reloaded(c store.Collection) {
	p.mu.Lock()
	p.rendered = c.Clone()
	items := itemsFor(p.rendered)
	p.mu.Unlock()

	p.view.Render(items)
}

// Inserted applies a single-append hint. A hint that is not an append at the
// end cannot come from the store; the presenter falls back to a full render
// rather than show a list that differs from the collection.
func (p *Presenter) Inserted(pos int, c store.Collection) {
	p.mu.Lock()
	prev := len(p.rendered)
	p.rendered = c.Clone()
	valid := pos == prev && pos == len(c)-1
	var item Item
	if valid {
		item = itemFor(pos, p.rendered[pos])
	}
	items := itemsFor(p.rendered)
	p.mu.Unlock()

	if !valid {
		slog.Warn("presenter: unexpected insertion hint, re-rendering", "pos", pos, "previous_len", prev, "len", len(c))
		p.view.Render(items)
		return
	}
	p.view.Insert(pos, item)
}

// Select resolves pos against the rendered list and fires the select
// callback with a copy of the map.
func (p *Presenter) Select(pos int) (maps.Map, error) {
	p.mu.Lock()
	if pos < 0 || pos >= len(p.rendered) {
		n := len(p.rendered)
		p.mu.Unlock()
		return maps.Map{}, fmt.Errorf("%w: %d (have %d)", ErrNoSuchItem, pos, n)
	}
	m := p.rendered[pos].Clone()
	p.mu.Unlock()

	if p.onSelect != nil {
		p.onSelect(pos, m.Clone())
	}
	return m, nil
}

// Titles returns the titles currently rendered, in order.
func (p *Presenter) Titles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rendered.Titles()
}

// Len returns the number of rendered items.
func (p *Presenter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rendered)
}

func itemsFor(c store.Collection) []Item {
	items := make([]Item, len(c))
	for i, m := range c {
		items[i] = itemFor(i, m)
	}
	return items
}
