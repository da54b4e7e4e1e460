// Package geo turns a location into a distance from the studio base and the
// packages the studio offers at that distance.
package geo

import (
	"math"

	"studio/internal/domain/entity"

	"github.com/paulmach/orb"
)

const (
	// EarthRadiusKm is the mean Earth radius used for every distance.
	EarthRadiusKm = 6371.0

	LocalMaxKm   = 15.0
	MidMaxKm     = 30.0
	ServiceMaxKm = 50.0
)

// Base is the studio's home coordinate (Vosloorus), lng/lat order.
var Base = orb.Point{28.2018, -26.3465}

// Distance band labels.
const (
	BandLocal      = "0-15km (Local)"
	BandMidRange   = "15-30km (Mid-Range)"
	BandFarRange   = "31-50km (Far Range)"
	BandOutOfRange = "Beyond 50km (Out of Service Area)"
)

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b orb.Point) float64 {
	lat1Rad := a.Lat() * math.Pi / 180
	lat2Rad := b.Lat() * math.Pi / 180
	deltaLat := (b.Lat() - a.Lat()) * math.Pi / 180
	deltaLng := (b.Lon() - a.Lon()) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DistanceFromBase is total: any finite pair yields a distance.
func DistanceFromBase(lat, lng float64) float64 {
	return Haversine(Base, orb.Point{lng, lat})
}

// EligiblePackages returns the packages offered at km, in catalog order.
// Band boundaries belong to the lower band.
func EligiblePackages(km float64) []entity.PackageID {
	switch {
	case km <= LocalMaxKm:
		return []entity.PackageID{entity.PackageBundle, entity.PackageDeluxe, entity.PackageFull}
	case km <= MidMaxKm:
		return []entity.PackageID{entity.PackageDeluxe, entity.PackageFull}
	case km <= ServiceMaxKm:
		return []entity.PackageID{entity.PackageFull}
	default:
		return []entity.PackageID{}
	}
}

func IsEligible(km float64, id entity.PackageID) bool {
	for _, p := range EligiblePackages(km) {
		if p == id {
			return true
		}
	}

	return false
}

func DistanceBand(km float64) string {
	switch {
	case km <= LocalMaxKm:
		return BandLocal
	case km <= MidMaxKm:
		return BandMidRange
	case km <= ServiceMaxKm:
		return BandFarRange
	default:
		return BandOutOfRange
	}
}

// IsMeetHalfwayEligible is kept for callers that still ask; meeting halfway
// is not currently offered at any distance.
func IsMeetHalfwayEligible(float64) bool {
	return false
}

func InServiceArea(km float64) bool {
	return km <= ServiceMaxKm
}

// RoundKm rounds to one decimal for the stored snapshot.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// Quote is everything the booking form shows for a location.
type Quote struct {
	Location          entity.Location
	DistanceKm        float64
	Band              string
	EligiblePackages  []entity.PackageID
	MeetHalfway       bool
	WithinServiceArea bool
}

// QuoteFor computes the quote from the unrounded distance.
func QuoteFor(loc entity.Location) Quote {
	km := DistanceFromBase(loc.Lat, loc.Lng)

	return Quote{
		Location:          loc,
		DistanceKm:        km,
		Band:              DistanceBand(km),
		EligiblePackages:  EligiblePackages(km),
		MeetHalfway:       IsMeetHalfwayEligible(km),
		WithinServiceArea: InServiceArea(km),
	}
}
