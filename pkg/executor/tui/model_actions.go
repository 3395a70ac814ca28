package tui

import (
	"time"

	"github.com/entrhq/mymaps/pkg/executor/tui/types"
)

var (
	_ types.ActionHandler = (*model)(nil)
	_ types.StateProvider = (*model)(nil)
)

// SetOverlay activates an overlay
func (m *model) SetOverlay(mode types.OverlayMode, overlay types.Overlay) {
	m.overlay.activate(mode, overlay)
}

// PushOverlay shows overlay on top of the current one
func (m *model) PushOverlay(mode types.OverlayMode, overlay types.Overlay) {
	m.overlay.pushOverlay(mode, overlay)
}

// ClearOverlay closes the current overlay, returning to the previous one
// when overlays were stacked.
func (m *model) ClearOverlay() {
	m.overlay.popOverlay()
}

// ShowToast displays a toast notification
func (m *model) ShowToast(message, details, icon string, isError bool) {
	m.toast.active = true
	m.toast.message = message
	m.toast.details = details
	m.toast.icon = icon
	m.toast.isError = isError
	m.toast.showUntil = time.Now().Add(m.toastDuration)
	m.toast.seq++
}

// Quit triggers application exit by setting a flag that will be checked in the Update loop.
// This allows overlays and other components to request app termination without directly
// returning tea.Quit (which would break the Bubble Tea command chain).
func (m *model) Quit() {
	m.shouldQuit = true
}

// WindowSize returns the terminal size
func (m *model) WindowSize() (int, int) {
	return m.width, m.height
}

// DataFile returns the path of the maps data file
func (m *model) DataFile() string {
	return m.app.Store().Path()
}
