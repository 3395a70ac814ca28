package store

import "github.com/entrhq/mymaps/pkg/maps"

// Collection is an ordered list of maps. Insertion order is display order
// and persistence order.
type Collection []maps.Map

// Clone returns a deep copy of c. The copy of a nil collection is empty, not nil.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, m := range c {
		out[i] = m.Clone()
	}
	return out
}

// Titles returns the map titles in order.
func (c Collection) Titles() []string {
	out := make([]string, len(c))
	for i, m := range c {
		out[i] = m.Title
	}
	return out
}
