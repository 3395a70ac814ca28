// Package maps defines the saved-map value types shared by the store, the
// presenter and the user interfaces.
package maps

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTitle is returned when a map or place title is empty or whitespace-only.
var ErrInvalidTitle = errors.New("maps: title must not be empty")

var timeNow = time.Now // injected for testability

// Place is a single marker on a map.
type Place struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
}

// Validate ensures the place has a title and coordinates within WGS 84 range.
func (p Place) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("maps: place: %w", ErrInvalidTitle)
	}
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("maps: place %q: latitude %v out of range [-90, 90]", p.Title, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("maps: place %q: longitude %v out of range [-180, 180]", p.Title, p.Longitude)
	}
	return nil
}

// Map is one saved map. Treat it as an immutable value once created; use
// Clone before handing it to code that may modify the Places slice.
type Map struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Places    []Place   `json:"places" yaml:"places"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// New validates the title and places and returns a new map with a fresh ID.
// The title is trimmed of surrounding whitespace.
func New(title string, places []Place) (Map, error) {
	if err := ValidateTitle(title); err != nil {
		return Map{}, err
	}
	for _, p := range places {
		if err := p.Validate(); err != nil {
			return Map{}, err
		}
	}
	ps := make([]Place, len(places))
	copy(ps, places)
	return Map{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Places:    ps,
		CreatedAt: timeNow().UTC(),
	}, nil
}

// ValidateTitle rejects empty and whitespace-only titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// Validate checks the invariants a persisted map must hold.
func (m Map) Validate() error {
	if err := ValidateTitle(m.Title); err != nil {
		return err
	}
	for _, p := range m.Places {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m Map) Clone() Map {
	out := m
	if m.Places != nil {
		out.Places = make([]Place, len(m.Places))
		copy(out.Places, m.Places)
	}
	return out
}

// Summary is a one-line description used by list views.
func (m Map) Summary() string {
	switch n := len(m.Places); n {
	case 0:
		return "no places"
	case 1:
		return "1 place"
	default:
		return fmt.Sprintf("%d places", n)
	}
}
