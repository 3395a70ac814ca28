package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
)

// overlayState is the modal layer above the map list. The visible overlay
// is mode/overlay; stack holds the ones it covers, e.g. a help overlay
// pushed over the creation screen.
type overlayState struct {
	mode    types.OverlayMode
	overlay types.Overlay
	stack   []overlayEntry
}

type overlayEntry struct {
	mode    types.OverlayMode
	overlay types.Overlay
}

func newOverlayState() *overlayState {
	return &overlayState{mode: types.OverlayModeNone}
}

// activate swaps the visible overlay and leaves the stack alone.
func (o *overlayState) activate(mode types.OverlayMode, overlay types.Overlay) {
	o.mode = mode
	o.overlay = overlay
}

// activateAndClearStack starts a new modal flow from the list.
func (o *overlayState) activateAndClearStack(mode types.OverlayMode, overlay types.Overlay) {
	o.stack = nil
	o.activate(mode, overlay)
}

// pushOverlay covers the visible overlay with a new one.
func (o *overlayState) pushOverlay(mode types.OverlayMode, overlay types.Overlay) {
	if o.isActive() {
		o.stack = append(o.stack, overlayEntry{mode: o.mode, overlay: o.overlay})
	}
	o.activate(mode, overlay)
}

// popOverlay uncovers the previous overlay. It returns false when the
// list is visible again.
func (o *overlayState) popOverlay() bool {
	n := len(o.stack)
	if n == 0 {
		o.activate(types.OverlayModeNone, nil)
		return false
	}
	prev := o.stack[n-1]
	o.stack = o.stack[:n-1]
	o.activate(prev.mode, prev.overlay)
	return true
}

// replace stores the overlay returned by the visible overlay's Update.
func (o *overlayState) replace(overlay types.Overlay) {
	o.overlay = overlay
}

// depth counts the visible overlay plus those under it.
func (o *overlayState) depth() int {
	if !o.isActive() {
		return 0
	}
	return len(o.stack) + 1
}

func (o *overlayState) isActive() bool {
	if o.mode == types.OverlayModeNone {
		return false
	}
	// a mode without an overlay would panic on Update; treat it as closed
	if o.overlay == nil {
		o.mode = types.OverlayModeNone
		return false
	}
	return true
}

// renderOverlay centers overlay on a blank screen of width x height.
func renderOverlay(baseView string, overlay types.Overlay, width, height int) string {
	if overlay == nil {
		return baseView
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay.View(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}

// renderToastOverlay paints toast right-aligned over the lines of baseView
// that sit just above the bottom reserved lines. Lines it covers are
// replaced whole, so the base layout keeps its height.
func renderToastOverlay(baseView, toast string, width, reserved int) string {
	if toast == "" {
		return baseView
	}

	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(strings.TrimRight(toast, "\n"), "\n")
	limit := len(baseLines) - reserved
	start := max(limit-len(toastLines), 0)

	for i, line := range toastLines {
		row := start + i
		if row >= limit {
			break
		}
		pad := max(width-lipgloss.Width(line)-1, 0)
		baseLines[row] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(baseLines, "\n")
}
