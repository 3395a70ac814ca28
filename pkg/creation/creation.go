// Package creation defines the boundary to the map-creation flow: a request
// carrying a title that answers with either one finished map or nothing.
package creation

import (
	"context"

	"github.com/entrhq/mymaps/pkg/maps"
)

// Creator builds a new map for a validated title. ok is false when the user
// abandoned the flow; that is not an error and the caller must not change
// anything in response.
type Creator interface {
	Create(ctx context.Context, title string) (m maps.Map, ok bool, err error)
}

// Func adapts a function to Creator.
type Func func(ctx context.Context, title string) (maps.Map, bool, error)

// Create calls f.
func (f Func) Create(ctx context.Context, title string) (maps.Map, bool, error) {
	return f(ctx, title)
}

// Cancelled is a Creator that always reports an abandoned flow.
var Cancelled Creator = Func(func(context.Context, string) (maps.Map, bool, error) {
	return maps.Map{}, false, nil
})
