package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// world is the valid lng/lat range.
var world = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// ValidCoordinate rejects NaN, infinities and points off the globe. Reference
// data is checked with it when the catalog is loaded.
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}

	return world.Contains(orb.Point{lng, lat})
}
