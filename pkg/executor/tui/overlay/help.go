package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
)

// HelpText lists the main screen key bindings.
const HelpText = `Main screen
  n          new map
  enter      open the selected map
  /          filter maps by title
  up/down    move the selection
  ?          this help
  q, ctrl+c  quit

New map
  enter      accept the title
  tab        next field
  shift+tab  previous field
  ctrl+a     add the place being edited
  ctrl+s     save the map
  esc        cancel without saving

Map detail
  y          copy as YAML
  up/down    scroll
  esc, q     close`

// HelpOverlay displays help information in a modal dialog
type HelpOverlay struct {
	*BaseOverlay
	title string
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(title, content string) *HelpOverlay {
	const (
		viewportWidth  = 56
		viewportHeight = 20
		overlayWidth   = 60
		overlayHeight  = 28
	)

	overlay := &HelpOverlay{title: title}
	overlay.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		Width:          overlayWidth,
		Height:         overlayHeight,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Content:        content,
		RenderHeader:   overlay.renderHeader,
		RenderFooter:   overlay.renderFooter,
	})
	return overlay
}

// Update closes on Enter as well as the usual close keys
func (h *HelpOverlay) Update(msg tea.Msg, state types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == keyEnter {
		return nil, nil
	}
	closed, cmd := h.BaseOverlay.Update(msg, actions)
	if closed {
		return nil, cmd
	}
	return h, cmd
}

func (h *HelpOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render(h.title)
}

func (h *HelpOverlay) renderFooter() string {
	return types.OverlayHelpStyle.Render("Press ESC or Enter to close")
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	return h.BaseOverlay.View(h.BaseOverlay.Viewport().Width)
}
