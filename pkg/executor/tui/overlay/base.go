package overlay

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
)

// BaseOverlay is the scrollable frame shared by the read-only overlays. It
// owns the viewport, the size and the close keys.
type BaseOverlay struct {
	viewport viewport.Model
	width    int
	height   int

	onCustomKey  func(msg tea.KeyMsg, actions types.ActionHandler) (bool, tea.Cmd) // returns (handled, cmd)
	renderHeader func() string
	renderFooter func() string
}

// BaseOverlayConfig configures a base overlay
type BaseOverlayConfig struct {
	Width          int
	Height         int
	ViewportWidth  int
	ViewportHeight int
	Content        string
	OnCustomKey    func(msg tea.KeyMsg, actions types.ActionHandler) (bool, tea.Cmd)
	RenderHeader   func() string
	RenderFooter   func() string
}

// NewBaseOverlay creates a new base overlay with the given configuration
func NewBaseOverlay(config BaseOverlayConfig) *BaseOverlay {
	vp := viewport.New(config.ViewportWidth, config.ViewportHeight)
	vp.Style = lipgloss.NewStyle()
	if config.Content != "" {
		vp.SetContent(config.Content)
	}

	return &BaseOverlay{
		viewport:     vp,
		width:        config.Width,
		height:       config.Height,
		onCustomKey:  config.OnCustomKey,
		renderHeader: config.RenderHeader,
		renderFooter: config.RenderFooter,
	}
}

// Update handles window resizes, scrolling and the close keys. closed is
// true when the user asked to leave the overlay.
func (b *BaseOverlay) Update(msg tea.Msg, actions types.ActionHandler) (closed bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isCloseKey(msg) {
			return true, nil
		}
		if b.onCustomKey != nil {
			if handled, cmd := b.onCustomKey(msg, actions); handled {
				return false, cmd
			}
		}
		if isScrollKey(msg) {
			b.viewport, cmd = b.viewport.Update(msg)
			return false, cmd
		}
	case tea.MouseMsg:
		b.viewport, cmd = b.viewport.Update(msg)
		return false, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	}
	return false, nil
}

// resize keeps the frame inside a window of the given size
func (b *BaseOverlay) resize(width, height int) {
	b.width = min(b.width, width)
	b.height = min(b.height, height)
	b.viewport.Width = max(b.width-6, 10)
	b.viewport.Height = max(b.height-8, 3)
}

func isCloseKey(msg tea.KeyMsg) bool {
	return msg.String() == keyEsc || msg.String() == keyCtrlC || msg.String() == "q"
}

func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		return true
	}
	return msg.String() == "j" || msg.String() == "k"
}

// View renders the header, the viewport and the footer inside the
// overlay container.
func (b *BaseOverlay) View(contentWidth int) string {
	var sections []string
	if b.renderHeader != nil {
		sections = append(sections, b.renderHeader())
	}
	sections = append(sections, b.viewport.View())
	if b.renderFooter != nil {
		sections = append(sections, b.renderFooter())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return types.CreateOverlayContainerStyle(contentWidth).Render(content)
}

// SetContent updates the viewport content
func (b *BaseOverlay) SetContent(content string) {
	b.viewport.SetContent(content)
}

// Viewport returns the underlying viewport for advanced manipulation
func (b *BaseOverlay) Viewport() *viewport.Model {
	return &b.viewport
}

// Focused always reports true; read-only overlays take all input.
func (b *BaseOverlay) Focused() bool {
	return true
}

// Width returns the overlay width
func (b *BaseOverlay) Width() int {
	return b.width
}

// Height returns the overlay height
func (b *BaseOverlay) Height() int {
	return b.height
}
