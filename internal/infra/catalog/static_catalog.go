// Package catalog holds the studio's fixed reference data: service packages
// and the places a session can be held at.
package catalog

import (
	"slices"

	"studio/internal/domain/entity"
	"studio/internal/domain/geo"
	"studio/internal/domain/repository"
	"studio/internal/errors"
)

// SelectableProvince is the only province offered on the booking form.
const SelectableProvince = "Gauteng"

var packages = []entity.Package{
	{
		ID:         entity.PackageBundle,
		Title:      "Cinematic Bundle",
		Price:      400,
		PhotoCount: 18,
		Duration:   "1 hour",
		Features: []string{
			"18 fully edited cinematic portraits",
			"1-hour photoshoot",
			"Guided posing and direction",
			"Professional color grading",
			"3–5 day delivery",
		},
		Description: "Perfect for portraits, personal branding, or your social aesthetic.",
	},
	{
		ID:         entity.PackageDeluxe,
		Title:      "Cinematic Deluxe",
		Price:      700,
		PhotoCount: 30,
		Duration:   "1.5 hours",
		Features: []string{
			"30 edited cinematic photos",
			"1.5-hour session",
			"Short cinematic video clips (slow motion)",
			"Advanced retouching and color grading",
			"3–5 day delivery",
		},
		Description: "For models, artists, and creators who want both photos and cinematic motion.",
	},
	{
		ID:         entity.PackageFull,
		Title:      "Full Cinematic Experience",
		Price:      1200,
		PhotoCount: 50,
		Duration:   "2 hours",
		Features: []string{
			"50 edited portraits",
			"2-hour shoot with full creative direction",
			"Cinematic video reel (30–60 seconds)",
			"Multiple outfit changes",
			"Priority 5–10 day delivery",
		},
		Description: "Perfect for campaigns, portfolios, or anyone ready for a full cinematic experience.",
	},
}

var locations = []entity.Location{
	{Name: "Pretoria CBD", Province: "Gauteng", Lat: -25.7479, Lng: 28.2293},
	{Name: "Pretoria East", Province: "Gauteng", Lat: -25.7829, Lng: 28.3447},
	{Name: "Centurion", Province: "Gauteng", Lat: -25.8601, Lng: 28.1894},
	{Name: "Johannesburg CBD", Province: "Gauteng", Lat: -26.2041, Lng: 28.0473},
	{Name: "Sandton", Province: "Gauteng", Lat: -26.1076, Lng: 28.0567},
	{Name: "Rosebank", Province: "Gauteng", Lat: -26.1467, Lng: 28.0407},
	{Name: "Randburg", Province: "Gauteng", Lat: -26.0939, Lng: 27.9826},
	{Name: "Roodepoort", Province: "Gauteng", Lat: -26.1624, Lng: 27.8724},
	{Name: "Soweto", Province: "Gauteng", Lat: -26.2678, Lng: 27.8585},
	{Name: "Midrand", Province: "Gauteng", Lat: -25.9953, Lng: 28.1211},
	{Name: "Benoni", Province: "Gauteng", Lat: -26.1885, Lng: 28.3207},
	{Name: "Boksburg", Province: "Gauteng", Lat: -26.2123, Lng: 28.2620},
	{Name: "Germiston", Province: "Gauteng", Lat: -26.2253, Lng: 28.1770},
	{Name: "Springs", Province: "Gauteng", Lat: -26.2539, Lng: 28.4421},
	{Name: "Krugersdorp", Province: "Gauteng", Lat: -26.0853, Lng: 27.7738},
	{Name: "Alberton", Province: "Gauteng", Lat: -26.2674, Lng: 28.1216},
	{Name: "Vosloorus", Province: "Gauteng", Lat: -26.3465, Lng: 28.2018},

	{Name: "Cape Town CBD", Province: "Western Cape", Lat: -33.9249, Lng: 18.4241},
	{Name: "Stellenbosch", Province: "Western Cape", Lat: -33.9321, Lng: 18.8602},
	{Name: "Paarl", Province: "Western Cape", Lat: -33.7269, Lng: 18.9648},
	{Name: "Durban", Province: "KwaZulu-Natal", Lat: -29.8587, Lng: 31.0218},
	{Name: "Pietermaritzburg", Province: "KwaZulu-Natal", Lat: -29.6003, Lng: 30.3794},
	{Name: "Port Elizabeth", Province: "Eastern Cape", Lat: -33.9608, Lng: 25.6022},
	{Name: "East London", Province: "Eastern Cape", Lat: -33.0153, Lng: 27.9116},
	{Name: "Bloemfontein", Province: "Free State", Lat: -29.0852, Lng: 26.1596},
	{Name: "Rustenburg", Province: "North West", Lat: -25.6672, Lng: 27.2421},
	{Name: "Nelspruit", Province: "Mpumalanga", Lat: -25.4753, Lng: 30.9706},
	{Name: "Polokwane", Province: "Limpopo", Lat: -23.9045, Lng: 29.4689},
	{Name: "Kimberley", Province: "Northern Cape", Lat: -28.7282, Lng: 24.7499},
}

type staticCatalog struct {
	packages   []entity.Package
	all        []entity.Location
	selectable []entity.Location
}

// NewStaticCatalog validates the built-in reference data once.
func NewStaticCatalog() (repository.CatalogRepository, error) {
	return newCatalog(packages, locations)
}

func newCatalog(pkgs []entity.Package, locs []entity.Location) (*staticCatalog, error) {
	for _, loc := range locs {
		if !geo.ValidCoordinate(loc.Lat, loc.Lng) {
			return nil, errors.Errorf("location %q has invalid coordinates", loc.Name)
		}
	}
	for _, pkg := range pkgs {
		if !pkg.ID.IsValid() {
			return nil, errors.Errorf("unknown package id %q", pkg.ID)
		}
	}

	selectable := make([]entity.Location, 0, len(locs))
	for _, loc := range locs {
		if loc.Province == SelectableProvince {
			selectable = append(selectable, loc)
		}
	}

	return &staticCatalog{
		packages:   slices.Clone(pkgs),
		all:        slices.Clone(locs),
		selectable: selectable,
	}, nil
}

func (c *staticCatalog) Packages() []entity.Package {
	return slices.Clone(c.packages)
}

func (c *staticCatalog) FindPackage(id entity.PackageID) (entity.Package, bool) {
	for _, pkg := range c.packages {
		if pkg.ID == id {
			return pkg, true
		}
	}

	return entity.Package{}, false
}

func (c *staticCatalog) Locations() []entity.Location {
	return slices.Clone(c.selectable)
}

func (c *staticCatalog) AllLocations() []entity.Location {
	return slices.Clone(c.all)
}

func (c *staticCatalog) FindLocation(name string) (entity.Location, bool) {
	for _, loc := range c.selectable {
		if loc.NameEquals(name) {
			return loc, true
		}
	}

	return entity.Location{}, false
}
