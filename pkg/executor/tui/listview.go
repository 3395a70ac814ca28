package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
	"github.com/entrhq/mymaps/pkg/presenter"
)

// mapItem adapts presenter.Item to list.Item
type mapItem struct {
	item presenter.Item
}

func (i mapItem) Title() string       { return i.item.Title }
func (i mapItem) Description() string { return i.item.Description }
func (i mapItem) FilterValue() string { return i.item.Title }

// mapList is the main screen list. It is the presenter's view, so it only
// changes through Render and Insert.
//
// While a filter is set the list re-filters asynchronously; the command that
// does it is held in pending until the update loop collects it with flush.
type mapList struct {
	list.Model
	pending tea.Cmd
}

var _ presenter.View = (*mapList)(nil)

func newMapList() *mapList {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(types.SalmonPink).
		BorderForeground(types.SalmonPink)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(types.MutedGray).
		BorderForeground(types.SalmonPink)

	l := list.New(nil, d, 0, 0)
	l.Title = "My Maps"
	l.Styles.Title = listTitleStyle
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("map", "maps")
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new map")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		}
	}

	return &mapList{Model: l}
}

// Render replaces every item.
func (l *mapList) Render(items []presenter.Item) {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = mapItem{item: it}
	}
	l.queue(l.SetItems(out))
}

// Insert adds one item without touching the others.
func (l *mapList) Insert(pos int, item presenter.Item) {
	l.queue(l.InsertItem(pos, mapItem{item: item}))
}

func (l *mapList) queue(cmd tea.Cmd) {
	l.pending = tea.Batch(l.pending, cmd)
}

// flush returns the commands queued by Render and Insert.
func (l *mapList) flush() tea.Cmd {
	cmd := l.pending
	l.pending = nil
	return cmd
}

// selected returns the highlighted item, if any.
func (l *mapList) selected() (presenter.Item, bool) {
	it, ok := l.SelectedItem().(mapItem)
	if !ok {
		return presenter.Item{}, false
	}
	return it.item, true
}

// titles returns the titles of every item, ignoring any filter.
func (l *mapList) titles() []string {
	items := l.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.(mapItem).item.Title
	}
	return out
}
