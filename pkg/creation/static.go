package creation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/entrhq/mymaps/pkg/maps"
)

// placeFieldSep separates the fields of a place given on the command line.
const placeFieldSep = "|"

// Static is a non-interactive Creator that builds the map from places known
// up front, as the CLI create command does.
type Static struct {
	Places []maps.Place
}

// Create returns a new map with the configured places. A cancelled context
// counts as an abandoned flow.
func (s Static) Create(ctx context.Context, title string) (maps.Map, bool, error) {
	if ctx.Err() != nil {
		return maps.Map{}, false, nil
	}
	m, err := maps.New(title, s.Places)
	if err != nil {
		return maps.Map{}, false, err
	}
	return m, true, nil
}

// ParsePlace parses "title|description|latitude|longitude". The description
// may be empty; "title|latitude|longitude" is accepted too.
func ParsePlace(s string) (maps.Place, error) {
	parts := strings.Split(s, placeFieldSep)
	var title, desc, latRaw, lonRaw string
	switch len(parts) {
	case 3:
		title, latRaw, lonRaw = parts[0], parts[1], parts[2]
	case 4:
		title, desc, latRaw, lonRaw = parts[0], parts[1], parts[2], parts[3]
	default:
		return maps.Place{}, fmt.Errorf("creation: place %q: want title|description|lat|lon", s)
	}

	p, err := NewPlace(title, desc, latRaw, lonRaw)
	if err != nil {
		return maps.Place{}, fmt.Errorf("creation: place %q: %w", s, err)
	}
	return p, nil
}

// NewPlace builds a validated place from form or flag text.
func NewPlace(title, description, latitude, longitude string) (maps.Place, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latitude), 64)
	if err != nil {
		return maps.Place{}, fmt.Errorf("latitude %q is not a number", strings.TrimSpace(latitude))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(longitude), 64)
	if err != nil {
		return maps.Place{}, fmt.Errorf("longitude %q is not a number", strings.TrimSpace(longitude))
	}

	p := maps.Place{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Latitude:    lat,
		Longitude:   lon,
	}
	if err := p.Validate(); err != nil {
		return maps.Place{}, err
	}
	return p, nil
}
