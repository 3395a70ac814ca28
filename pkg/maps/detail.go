package maps

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// detailDoc is the shape shown by detail views: the map plus derived extent.
type detailDoc struct {
	Map    `yaml:",inline"`
	Bounds *Bounds   `yaml:"bounds,omitempty"`
	Center []float64 `yaml:"center,omitempty,flow"`
}

// DetailYAML renders m as a YAML document for display. Maps with places also
// get their bounding box and its center.
func DetailYAML(m Map) ([]byte, error) {
	doc := detailDoc{Map: m.Clone()}
	if b, ok := m.Bounds(); ok {
		doc.Bounds = &b
		lat, lon := b.Center()
		doc.Center = []float64{lat, lon}
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("maps: render %q: %w", m.Title, err)
	}
	return out, nil
}
