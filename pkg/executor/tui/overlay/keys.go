package overlay

// Key binding constants shared by the overlays
const (
	keyCtrlA     = "ctrl+a"
	keyCtrlC     = "ctrl+c"
	keyCtrlS     = "ctrl+s"
	keyTab       = "tab"
	keyShiftTab  = "shift+tab"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keyCopy      = "y"
	keyDown      = "down"
	keyUp        = "up"
)
