package types

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the main screen and the overlays.
var (
	SalmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	CoralPink   = lipgloss.Color("#FFCCCB") // secondary accent
	MintGreen   = lipgloss.Color("#A8E6CF") // success states
	MutedGray   = lipgloss.Color("#6B7280") // secondary text
	BrightWhite = lipgloss.Color("#F9FAFB") // primary text
	ErrorRed    = lipgloss.Color("203")
)

var (
	// OverlayTitleStyle is used for main overlay titles
	OverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SalmonPink)

	// OverlaySubtitleStyle is used for overlay subtitles and secondary text
	OverlaySubtitleStyle = lipgloss.NewStyle().
				Foreground(MutedGray)

	// OverlayHelpStyle is used for help text and hints
	OverlayHelpStyle = lipgloss.NewStyle().
				Foreground(MutedGray).
				Italic(true)

	// OverlayErrorStyle is used for inline validation messages
	OverlayErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorRed)

	// OverlayLabelStyle is used for form field labels
	OverlayLabelStyle = lipgloss.NewStyle().
				Foreground(CoralPink).
				Bold(true)
)

// CreateOverlayContainerStyle returns the bordered box overlays are drawn in.
// The border and padding add 6 columns to width.
func CreateOverlayContainerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SalmonPink).
		Padding(1, 2).
		Width(width)
}
