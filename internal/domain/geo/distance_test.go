package geo

import (
	"math"
	"testing"

	"studio/internal/domain/entity"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
)

func TestDistanceFromBase_KnownLocations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lat    float64
		lng    float64
		wantKm float64
	}{
		{name: "Vosloorus is the base", lat: -26.3465, lng: 28.2018, wantKm: 0},
		{name: "Alberton", lat: -26.2674, lng: 28.1216, wantKm: 11.886},
		{name: "Germiston", lat: -26.2253, lng: 28.1770, wantKm: 13.702},
		{name: "Boksburg", lat: -26.2123, lng: 28.2620, wantKm: 16.084},
		{name: "Johannesburg CBD", lat: -26.2041, lng: 28.0473, wantKm: 22.091},
		{name: "Sandton", lat: -26.1076, lng: 28.0567, wantKm: 30.251},
		{name: "Midrand", lat: -25.9953, lng: 28.1211, wantKm: 39.873},
		{name: "Krugersdorp", lat: -26.0853, lng: 27.7738, wantKm: 51.638},
		{name: "Centurion", lat: -25.8601, lng: 28.1894, wantKm: 54.099},
		{name: "Pretoria CBD", lat: -25.7479, lng: 28.2293, wantKm: 66.618},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.wantKm, DistanceFromBase(tt.lat, tt.lng), 0.01)
		})
	}
}

func TestDistanceFromBase_MatchesIndependentHaversine(t *testing.T) {
	t.Parallel()

	// orb uses a 6378.137 km radius, so agreement within half a kilometre is expected at this range.
	for _, p := range []orb.Point{
		{28.2293, -25.7479}, // Pretoria CBD
		{28.1894, -25.8601}, // Centurion
		{27.8585, -26.2678}, // Soweto
	} {
		reference := orbgeo.DistanceHaversine(Base, p) / 1000
		assert.InDelta(t, reference, DistanceFromBase(p.Lat(), p.Lon()), 0.5)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	t.Parallel()

	a := orb.Point{28.0473, -26.2041}
	b := orb.Point{31.0218, -29.8587}

	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
	assert.Zero(t, Haversine(a, a))
	assert.Zero(t, DistanceFromBase(Base.Lat(), Base.Lon()))
}

func TestEligiblePackages_Bands(t *testing.T) {
	t.Parallel()

	all := []entity.PackageID{entity.PackageBundle, entity.PackageDeluxe, entity.PackageFull}
	mid := []entity.PackageID{entity.PackageDeluxe, entity.PackageFull}
	far := []entity.PackageID{entity.PackageFull}

	tests := []struct {
		km       float64
		wantPkgs []entity.PackageID
		wantBand string
	}{
		{km: 0, wantPkgs: all, wantBand: BandLocal},
		{km: 14.99, wantPkgs: all, wantBand: BandLocal},
		{km: 15, wantPkgs: all, wantBand: BandLocal},
		{km: 15.01, wantPkgs: mid, wantBand: BandMidRange},
		{km: 30, wantPkgs: mid, wantBand: BandMidRange},
		{km: 30.01, wantPkgs: far, wantBand: BandFarRange},
		{km: 45, wantPkgs: far, wantBand: BandFarRange},
		{km: 50, wantPkgs: far, wantBand: BandFarRange},
		{km: 50.01, wantPkgs: []entity.PackageID{}, wantBand: BandOutOfRange},
		{km: 61, wantPkgs: []entity.PackageID{}, wantBand: BandOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.wantBand, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantPkgs, EligiblePackages(tt.km), "km=%v", tt.km)
			assert.Equal(t, tt.wantBand, DistanceBand(tt.km), "km=%v", tt.km)
		})
	}
}

func TestIsEligible(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEligible(45, entity.PackageFull))
	assert.False(t, IsEligible(45, entity.PackageBundle))
	assert.False(t, IsEligible(61, entity.PackageFull))
	assert.False(t, IsEligible(5, entity.PackageID("platinum")))
}

func TestIsMeetHalfwayEligible_AlwaysFalse(t *testing.T) {
	t.Parallel()

	for _, km := range []float64{0, 15, 30, 50, 55, 60, 61, 1000} {
		assert.False(t, IsMeetHalfwayEligible(km), "km=%v", km)
	}
}

func TestRoundKm(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 66.6, RoundKm(66.618))
	assert.Equal(t, 30.3, RoundKm(30.251))
	assert.Equal(t, 0.0, RoundKm(0.04))
}

func TestQuoteFor(t *testing.T) {
	t.Parallel()

	centurion := QuoteFor(entity.Location{Name: "Centurion", Province: "Gauteng", Lat: -25.8601, Lng: 28.1894})
	assert.InDelta(t, 54.1, centurion.DistanceKm, 0.05)
	assert.Empty(t, centurion.EligiblePackages)
	assert.False(t, centurion.WithinServiceArea)
	assert.Equal(t, BandOutOfRange, centurion.Band)

	boksburg := QuoteFor(entity.Location{Name: "Boksburg", Province: "Gauteng", Lat: -26.2123, Lng: 28.2620})
	assert.Equal(t, []entity.PackageID{entity.PackageDeluxe, entity.PackageFull}, boksburg.EligiblePackages)
	assert.True(t, boksburg.WithinServiceArea)
	assert.False(t, boksburg.MeetHalfway)
}

func TestValidCoordinate(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidCoordinate(-26.3465, 28.2018))
	assert.False(t, ValidCoordinate(91, 0))
	assert.False(t, ValidCoordinate(0, -181))
	assert.False(t, ValidCoordinate(math.NaN(), 0))
	assert.False(t, ValidCoordinate(0, math.Inf(1)))
}
