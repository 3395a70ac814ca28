package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
)

const statusBarHeight = 1

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := m.list.View()
	if m.presenter.Len() == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left,
			listTitleStyle.Render("My Maps"),
			emptyStyle.Render("No maps yet. Press n to create one."),
		)
		body = lipgloss.NewStyle().Height(max(m.height-statusBarHeight, 1)).Render(body)
	}

	baseView := lipgloss.JoinVertical(lipgloss.Left, body, m.buildStatusBar())
	return m.applyOverlays(baseView)
}

// buildStatusBar shows the data file and the number of maps
func (m *model) buildStatusBar() string {
	left := fmt.Sprintf("%d saved • %s", m.presenter.Len(), m.app.Store().Path())
	right := "n new • ? help • q quit"
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return statusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// applyOverlays layers the modal overlay and the toast over the base view
func (m *model) applyOverlays(baseView string) string {
	if m.overlay.isActive() {
		baseView = renderOverlay(baseView, m.overlay.overlay, m.width, m.height)
	}
	if m.toast.active && time.Now().Before(m.toast.showUntil) {
		baseView = renderToastOverlay(baseView, m.renderToast(), m.width, statusBarHeight+1)
	}
	return baseView
}

// renderToast renders a toast notification
func (m *model) renderToast() string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("%s %s", m.toast.icon, m.toast.message))
	if m.toast.details != "" {
		content.WriteString("\n")
		content.WriteString(m.toast.details)
	}

	style := toastStyle.Width(max(min(m.width-4, 80), 30))
	if m.toast.isError {
		style = style.BorderForeground(types.ErrorRed)
	}
	return style.Render(content.String())
}
