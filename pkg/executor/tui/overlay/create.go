package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/mymaps/pkg/creation"
	"github.com/entrhq/mymaps/pkg/executor/tui/types"
	"github.com/entrhq/mymaps/pkg/maps"
)

const createWidth = 64

const (
	fieldTitle = iota
	fieldDescription
	fieldLatitude
	fieldLongitude
	fieldCount
)

var fieldLabels = [fieldCount]string{"Place", "Description", "Latitude", "Longitude"}

// CreateOverlay is the map creation screen. It answers the creation request
// for one title with exactly one of MapCreatedMsg or CreationCancelledMsg.
type CreateOverlay struct {
	title   string
	inputs  [fieldCount]textinput.Model
	focus   int
	places  []maps.Place
	message string
}

// NewCreateOverlay opens the creation screen for title.
func NewCreateOverlay(title string) *CreateOverlay {
	o := &CreateOverlay{title: title}
	placeholders := [fieldCount]string{"Belém Tower", "optional", "38.6916", "-9.2160"}
	for i := range o.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = createWidth - 18
		ti.Prompt = ""
		o.inputs[i] = ti
	}
	o.inputs[fieldTitle].Focus()
	return o
}

// Places returns the places added so far.
func (o *CreateOverlay) Places() []maps.Place {
	out := make([]maps.Place, len(o.places))
	copy(out, o.places)
	return out
}

// Message returns the inline error, if any.
func (o *CreateOverlay) Message() string {
	return o.message
}

// Update handles field editing and the add, save and cancel keys.
func (o *CreateOverlay) Update(msg tea.Msg, state types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		o.inputs[o.focus], cmd = o.inputs[o.focus].Update(msg)
		return o, cmd
	}

	switch key.String() {
	case keyEsc, keyCtrlC:
		title := o.title
		return nil, func() tea.Msg { return types.CreationCancelledMsg{Title: title} }
	case keyTab, keyDown, keyEnter:
		o.setFocus((o.focus + 1) % fieldCount)
		return o, nil
	case keyShiftTab, keyUp:
		o.setFocus((o.focus + fieldCount - 1) % fieldCount)
		return o, nil
	case keyCtrlA:
		o.addPending()
		return o, nil
	case keyCtrlS:
		return o.save()
	}

	var cmd tea.Cmd
	o.inputs[o.focus], cmd = o.inputs[o.focus].Update(msg)
	return o, cmd
}

func (o *CreateOverlay) setFocus(i int) {
	o.inputs[o.focus].Blur()
	o.focus = i
	o.inputs[o.focus].Focus()
}

func (o *CreateOverlay) pendingEmpty() bool {
	for _, in := range o.inputs {
		if strings.TrimSpace(in.Value()) != "" {
			return false
		}
	}
	return true
}

// addPending validates the form and moves it into the place list.
func (o *CreateOverlay) addPending() bool {
	p, err := creation.NewPlace(
		o.inputs[fieldTitle].Value(),
		o.inputs[fieldDescription].Value(),
		o.inputs[fieldLatitude].Value(),
		o.inputs[fieldLongitude].Value(),
	)
	if err != nil {
		o.message = err.Error()
		return false
	}
	o.places = append(o.places, p)
	o.message = ""
	for i := range o.inputs {
		o.inputs[i].Reset()
	}
	o.setFocus(fieldTitle)
	return true
}

// save finishes the request. A half-filled form is added first and blocks
// the save if it is invalid.
func (o *CreateOverlay) save() (types.Overlay, tea.Cmd) {
	if !o.pendingEmpty() && !o.addPending() {
		return o, nil
	}
	m, err := maps.New(o.title, o.places)
	if err != nil {
		o.message = err.Error()
		return o, nil
	}
	return nil, func() tea.Msg { return types.MapCreatedMsg{Map: m} }
}

// View renders the form and the places added so far
func (o *CreateOverlay) View() string {
	sections := []string{
		types.OverlayTitleStyle.Render(o.title),
		types.OverlaySubtitleStyle.Render("Add places to your new map"),
		"",
	}

	if len(o.places) == 0 {
		sections = append(sections, types.OverlaySubtitleStyle.Render("No places yet"))
	}
	for i, p := range o.places {
		sections = append(sections, fmt.Sprintf("%2d. %s (%.4f, %.4f)", i+1, p.Title, p.Latitude, p.Longitude))
	}
	sections = append(sections, "")

	for i, in := range o.inputs {
		label := fmt.Sprintf("%-12s", fieldLabels[i])
		if i == o.focus {
			label = types.OverlayLabelStyle.Render(label)
		} else {
			label = types.OverlaySubtitleStyle.Render(label)
		}
		sections = append(sections, label+" "+in.View())
	}

	if o.message != "" {
		sections = append(sections, "", types.OverlayErrorStyle.Render(o.message))
	}
	sections = append(sections, "",
		types.OverlayHelpStyle.Render("Tab next field • Ctrl+A add place • Ctrl+S save • Esc cancel"))

	return types.CreateOverlayContainerStyle(createWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Width returns the overlay width
func (o *CreateOverlay) Width() int { return createWidth + 6 }

// Height returns the overlay height
func (o *CreateOverlay) Height() int { return 16 + len(o.places) }

// Focused reports that the form takes all input
func (o *CreateOverlay) Focused() bool { return true }
