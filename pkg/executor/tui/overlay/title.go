package overlay

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/mymaps/pkg/app"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
	"github.com/entrhq/mymaps/pkg/maps"
)

// EmptyTitleMessage is shown when the title dialog is submitted blank.
const EmptyTitleMessage = app.InvalidTitleMessage

const titleDialogWidth = 50

// TitleDialog asks for the title of a new map. It only closes on a valid
// title or on cancel; a blank title keeps it open with an inline message.
type TitleDialog struct {
	input   textinput.Model
	message string
}

// NewTitleDialog returns a focused, empty title dialog.
func NewTitleDialog() *TitleDialog {
	ti := textinput.New()
	ti.Placeholder = "Weekend in Lisbon"
	ti.CharLimit = 120
	ti.Width = titleDialogWidth - 4
	ti.Prompt = "› "
	ti.Focus()

	return &TitleDialog{input: ti}
}

// Update handles typing, Enter and Esc.
func (d *TitleDialog) Update(msg tea.Msg, state types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyEsc, keyCtrlC:
			return nil, nil
		case keyEnter:
			title := d.input.Value()
			if err := maps.ValidateTitle(title); err != nil {
				if errors.Is(err, maps.ErrInvalidTitle) {
					d.message = EmptyTitleMessage
				} else {
					d.message = err.Error()
				}
				return d, nil
			}
			return nil, func() tea.Msg {
				return types.TitleSubmittedMsg{Title: strings.TrimSpace(title)}
			}
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok && d.message != "" && strings.TrimSpace(d.input.Value()) != "" {
		d.message = ""
	}
	return d, cmd
}

// Message returns the inline validation message, if any.
func (d *TitleDialog) Message() string {
	return d.message
}

// View renders the dialog
func (d *TitleDialog) View() string {
	sections := []string{
		types.OverlayTitleStyle.Render("New map"),
		types.OverlaySubtitleStyle.Render("Enter a title for your map"),
		"",
		d.input.View(),
	}
	if d.message != "" {
		sections = append(sections, types.OverlayErrorStyle.Render(d.message))
	}
	sections = append(sections, "", types.OverlayHelpStyle.Render("Enter to continue • Esc to cancel"))

	return types.CreateOverlayContainerStyle(titleDialogWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Width returns the dialog width
func (d *TitleDialog) Width() int { return titleDialogWidth + 6 }

// Height returns the dialog height
func (d *TitleDialog) Height() int { return 10 }

// Focused reports that the dialog takes all input
func (d *TitleDialog) Focused() bool { return true }
