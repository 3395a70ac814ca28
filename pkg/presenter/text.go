package presenter

import (
	"fmt"
	"io"

	"github.com/entrhq/mymaps/pkg/maps"
)

// TextView writes a numbered list to w. Positions are shown 1-based.
type TextView struct {
	w      io.Writer
	filter *maps.Matcher
}

// NewTextView creates a view writing to w. If filter is non-nil only items
// whose title matches are printed, keeping their original numbers.
func NewTextView(w io.Writer, filter *maps.Matcher) *TextView {
	return &TextView{w: w, filter: filter}
}

// Render prints every item.
func (v *TextView) Render(items []Item) {
	if len(items) == 0 {
		fmt.Fprintln(v.w, "No maps yet. Create one with: mymaps create <title>")
		return
	}
	for _, it := range items {
		v.Insert(it.Position, it)
	}
}

// Insert prints one item.
func (v *TextView) Insert(pos int, it Item) {
	if v.filter != nil && !v.filter.MatchTitle(it.Title) {
		return
	}
	fmt.Fprintf(v.w, "%3d. %s (%s)\n", pos+1, it.Title, it.Description)
}
