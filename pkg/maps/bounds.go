package maps

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
}

// Bounds returns the box enclosing every place of m. ok is false when the
// map has no places.
func (m Map) Bounds() (b Bounds, ok bool) {
	if len(m.Places) == 0 {
		return Bounds{}, false
	}
	first := m.Places[0]
	b = Bounds{MinLat: first.Latitude, MaxLat: first.Latitude, MinLon: first.Longitude, MaxLon: first.Longitude}
	for _, p := range m.Places[1:] {
		b.MinLat = min(b.MinLat, p.Latitude)
		b.MaxLat = max(b.MaxLat, p.Latitude)
		b.MinLon = min(b.MinLon, p.Longitude)
		b.MaxLon = max(b.MaxLon, p.Longitude)
	}
	return b, true
}

// Center returns the midpoint of the box.
func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}
