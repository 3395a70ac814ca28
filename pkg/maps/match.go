package maps

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher selects maps by a case-insensitive glob over their titles.
type Matcher struct {
	pattern string
	g       glob.Glob
}

// NewMatcher compiles pattern. An empty pattern matches every map.
func NewMatcher(pattern string) (*Matcher, error) {
	if pattern == "" {
		pattern = "*"
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("maps: invalid title pattern %q: %w", pattern, err)
	}
	return &Matcher{pattern: pattern, g: g}, nil
}

// Match reports whether m's title matches.
func (mt *Matcher) Match(m Map) bool {
	return mt.MatchTitle(m.Title)
}

// MatchTitle reports whether title matches.
func (mt *Matcher) MatchTitle(title string) bool {
	return mt.g.Match(strings.ToLower(title))
}

// Indices returns the positions in ms whose titles match, in order.
// Positions refer to the original slice so callers can still select by them.
func (mt *Matcher) Indices(ms []Map) []int {
	var out []int
	for i, m := range ms {
		if mt.Match(m) {
			out = append(out, i)
		}
	}
	return out
}

// String returns the source pattern.
func (mt *Matcher) String() string {
	return mt.pattern
}
