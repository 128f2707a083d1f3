package area

import "math"

// Area is a normalized administrative designation. Both fields are
// required before the pipeline may proceed.
type Area struct {
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
}

// BoundingBox is the minimal axis-aligned rectangle enclosing an
// administrative boundary, in (minLon, minLat, maxLon, maxLat) order.
type BoundingBox struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// Valid reports whether all four coordinates are finite and ordered.
func (b BoundingBox) Valid() bool {
	for _, v := range []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.MinLon <= b.MaxLon && b.MinLat <= b.MaxLat
}

// NormalizedAddress mirrors the relevant parts of the address
// normalization payload. Absent fields decode as empty strings.
type NormalizedAddress struct {
	Prefecture string `json:"pref"`
	City       string `json:"city"`
}
