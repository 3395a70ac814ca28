package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/mymaps/pkg/executor/tui/overlay"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
)

const (
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyHelp  = "?"
	keyNew   = "n"
	keyQuit  = "q"
)

// Init shows a warning toast when the data file had to be quarantined.
func (m *model) Init() tea.Cmd {
	moved := m.app.Store().Quarantined()
	if moved == "" {
		return nil
	}
	return func() tea.Msg {
		return types.ToastMsg{
			Message: "Data file was unreadable",
			Details: fmt.Sprintf("Moved to %s; starting with an empty list", moved),
			Icon:    "⚠",
			IsError: true,
		}
	}
}

// Update handles all state updates for the TUI model.
//
// Uses pointer receiver to ensure overlay mutations via ActionHandler persist.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Check if quit was requested by an overlay or component
	if m.shouldQuit {
		return m, tea.Quit
	}

	cmd := m.update(msg)
	if m.shouldQuit {
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, m.scheduleToastExpiry())
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	return tea.Batch(m.route(msg), m.list.flush())
}

func (m *model) route(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case types.ToastMsg:
		m.ShowToast(msg.Message, msg.Details, msg.Icon, msg.IsError)
		return nil

	case types.ToastExpiredMsg:
		if msg.Seq == m.toast.seq {
			m.toast.active = false
		}
		return nil

	case types.TitleSubmittedMsg:
		return m.handleTitleSubmitted(msg)

	case types.MapCreatedMsg:
		return m.handleMapCreated(msg)

	case types.CreationCancelledMsg:
		m.debugf("creation of %q cancelled", msg.Title)
		return nil

	case list.FilterMatchesMsg:
		// results of a re-filter queued by the list, even behind an overlay
		var cmd tea.Cmd
		m.list.Model, cmd = m.list.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.overlay.isActive() {
		return m.updateOverlay(msg)
	}
	var cmd tea.Cmd
	m.list.Model, cmd = m.list.Update(msg)
	return cmd
}

// updateOverlay forwards msg to the active overlay. A nil overlay from
// Update means it closed; its command still runs.
func (m *model) updateOverlay(msg tea.Msg) tea.Cmd {
	updated, cmd := m.overlay.overlay.Update(msg, m, m)
	if updated == nil {
		closed := m.overlay.mode
		m.ClearOverlay()
		m.debugf("closed %s overlay, %d still open", closed, m.overlay.depth())
		return cmd
	}
	m.overlay.replace(updated)
	return cmd
}

func (m *model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if m.overlay.isActive() {
		return m.updateOverlay(msg)
	}

	if msg.String() == keyCtrlC {
		m.Quit()
		return nil
	}

	// While the filter prompt is open every key belongs to it
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list.Model, cmd = m.list.Update(msg)
		return cmd
	}

	switch msg.String() {
	case keyQuit:
		m.Quit()
		return nil
	case keyNew:
		m.overlay.activateAndClearStack(types.OverlayModeTitle, overlay.NewTitleDialog())
		return textinput.Blink
	case keyHelp:
		m.overlay.activateAndClearStack(types.OverlayModeHelp, overlay.NewHelpOverlay("Keys", overlay.HelpText))
		return nil
	case keyEnter:
		return m.openSelected()
	}

	var cmd tea.Cmd
	m.list.Model, cmd = m.list.Update(msg)
	return cmd
}

// openSelected resolves the highlighted row through the presenter, which
// calls openDetail with a copy of the map.
func (m *model) openSelected() tea.Cmd {
	item, ok := m.list.selected()
	if !ok {
		return nil
	}
	if _, err := m.presenter.Select(item.Position); err != nil {
		m.errorf("select position %d: %v", item.Position, err)
		m.ShowToast("Cannot open map", err.Error(), "✗", true)
	}
	return nil
}

// handleTitleSubmitted starts the creation request for a validated title.
func (m *model) handleTitleSubmitted(msg types.TitleSubmittedMsg) tea.Cmd {
	m.debugf("creating map %q", msg.Title)
	m.overlay.activateAndClearStack(types.OverlayModeCreate, overlay.NewCreateOverlay(msg.Title))
	return textinput.Blink
}

// handleMapCreated is the response half of the creation request.
func (m *model) handleMapCreated(msg types.MapCreatedMsg) tea.Cmd {
	// a saved map is always shown, so drop any filter that could hide it
	if m.list.FilterState() != list.Unfiltered {
		m.list.ResetFilter()
	}
	out, err := m.app.Add(msg.Map)
	if err != nil {
		m.ShowToast("Could not save map", err.Error(), "✗", true)
		return nil
	}
	m.list.Select(m.visibleIndex(out.Position))
	m.ShowToast("Map saved", fmt.Sprintf("%q (%s)", out.Map.Title, out.Map.Summary()), "✓", false)
	return nil
}

// visibleIndex maps a collection position to a row in the possibly
// filtered list.
func (m *model) visibleIndex(pos int) int {
	for i, it := range m.list.VisibleItems() {
		if mi, ok := it.(mapItem); ok && mi.item.Position == pos {
			return i
		}
	}
	m.debugf("map at position %d is not visible; keeping row %d", pos, m.list.Index())
	return m.list.Index()
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.list.SetSize(msg.Width, max(msg.Height-statusBarHeight, 3))
	m.ready = true

	if m.overlay.isActive() {
		return m.updateOverlay(msg)
	}
	return nil
}

// scheduleToastExpiry issues one expiry tick per new toast.
func (m *model) scheduleToastExpiry() tea.Cmd {
	if !m.toast.active || m.toast.scheduled == m.toast.seq {
		return nil
	}
	m.toast.scheduled = m.toast.seq
	seq := m.toast.seq
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return types.ToastExpiredMsg{Seq: seq}
	})
}
