package types

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal component drawn over the main list. Update returns nil
// to ask the caller to close it.
type Overlay interface {
	Update(msg tea.Msg, state StateProvider, actions ActionHandler) (Overlay, tea.Cmd)
	View() string
	Width() int
	Height() int
	Focused() bool
}

// StateProvider exposes read-only model state to overlays.
type StateProvider interface {
	WindowSize() (width, height int)
	DataFile() string
}

// ActionHandler lets overlays act on the model without holding it.
type ActionHandler interface {
	SetOverlay(mode OverlayMode, overlay Overlay)
	PushOverlay(mode OverlayMode, overlay Overlay)
	ClearOverlay()
	ShowToast(message, details, icon string, isError bool)
	Quit()
}
