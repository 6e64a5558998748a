package types

// Location represents a confirmed home location with coordinates.
// Address suggestions come from an external autocomplete provider; only the
// confirmed result is stored.
type Location struct {
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	City     string  `json:"city,omitempty"`
	Province string  `json:"province,omitempty"`
}

// WithCoordinates returns a copy with geographic coordinates set
func (l Location) WithCoordinates(lat, lng float64) Location {
	l.Lat = lat
	l.Lng = lng
	return l
}

// IsZero checks if the location is unset
func (l Location) IsZero() bool {
	return l == Location{}
}
