package overlay

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
	"github.com/entrhq/mymaps/pkg/maps"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// DefaultDetailStyle is the chroma style used when none is configured.
const DefaultDetailStyle = "monokai"

// DetailOverlay shows one map as highlighted YAML.
type DetailOverlay struct {
	*BaseOverlay
	m    maps.Map
	yaml string
}

// NewDetailOverlay renders m for a window of the given size. style names a
// chroma style; unknown names fall back to chroma's own default.
func NewDetailOverlay(m maps.Map, style string, width, height int) (*DetailOverlay, error) {
	raw, err := maps.DetailYAML(m)
	if err != nil {
		return nil, err
	}

	overlayWidth := min(max(width-8, 40), 100)
	overlayHeight := max(height-4, 12)

	o := &DetailOverlay{m: m, yaml: string(raw)}
	o.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		Width:          overlayWidth,
		Height:         overlayHeight,
		ViewportWidth:  overlayWidth - 6,
		ViewportHeight: overlayHeight - 8,
		Content:        highlightYAML(o.yaml, style),
		OnCustomKey:    o.handleKey,
		RenderHeader:   o.renderHeader,
		RenderFooter:   o.renderFooter,
	})
	return o, nil
}

// highlightYAML colors src for a 256-color terminal. Highlighting is
// cosmetic, so any failure returns src unchanged.
func highlightYAML(src, style string) string {
	if style == "" {
		style = DefaultDetailStyle
	}
	var b strings.Builder
	if err := quick.Highlight(&b, src, "yaml", "terminal256", style); err != nil {
		return src
	}
	return b.String()
}

func (o *DetailOverlay) handleKey(msg tea.KeyMsg, actions types.ActionHandler) (bool, tea.Cmd) {
	if msg.String() != keyCopy {
		return false, nil
	}
	if err := clipboardWriteAll(o.yaml); err != nil {
		actions.ShowToast("Copy failed", err.Error(), "✗", true)
		return true, nil
	}
	actions.ShowToast("Copied", fmt.Sprintf("%q copied to the clipboard as YAML", o.m.Title), "✓", false)
	return true, nil
}

// Map returns the map being shown.
func (o *DetailOverlay) Map() maps.Map {
	return o.m.Clone()
}

// YAML returns the unhighlighted document.
func (o *DetailOverlay) YAML() string {
	return o.yaml
}

// Update handles scrolling, copy and close
func (o *DetailOverlay) Update(msg tea.Msg, state types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	closed, cmd := o.BaseOverlay.Update(msg, actions)
	if closed {
		return nil, cmd
	}
	return o, cmd
}

func (o *DetailOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render(o.m.Title) + "\n" +
		types.OverlaySubtitleStyle.Render(fmt.Sprintf("%s • created %s", o.m.Summary(), o.m.CreatedAt.Local().Format("2 Jan 2006 15:04")))
}

func (o *DetailOverlay) renderFooter() string {
	return types.OverlayHelpStyle.Render("y copy YAML • ↑/↓ scroll • Esc close")
}

// View renders the detail overlay
func (o *DetailOverlay) View() string {
	return o.BaseOverlay.View(o.BaseOverlay.Viewport().Width)
}
