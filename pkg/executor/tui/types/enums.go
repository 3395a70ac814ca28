package types

// OverlayMode represents the current overlay state
type OverlayMode int

const (
	// OverlayModeNone indicates no overlay is active
	OverlayModeNone OverlayMode = iota
	// OverlayModeTitle shows the new-map title dialog
	OverlayModeTitle
	// OverlayModeCreate shows the map creation screen
	OverlayModeCreate
	// OverlayModeDetail shows a single map
	OverlayModeDetail
	// OverlayModeHelp shows the help overlay
	OverlayModeHelp
)

// String returns a short name for logs.
func (m OverlayMode) String() string {
	switch m {
	case OverlayModeNone:
		return "none"
	case OverlayModeTitle:
		return "title"
	case OverlayModeCreate:
		return "create"
	case OverlayModeDetail:
		return "detail"
	case OverlayModeHelp:
		return "help"
	default:
		return "unknown"
	}
}
