package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
)

// Main screen styles. Colors come from the shared palette in types.
var (
	listTitleStyle = lipgloss.NewStyle().
			Foreground(types.SalmonPink).
			Bold(true).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray).
			Padding(1, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray).
			Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(types.SalmonPink).
			Padding(0, 1)
)
