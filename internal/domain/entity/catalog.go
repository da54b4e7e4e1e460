package entity

import "strings"

// PackageID identifies one of the fixed service packages.
type PackageID string

const (
	PackageBundle PackageID = "bundle"
	PackageDeluxe PackageID = "deluxe"
	PackageFull   PackageID = "full"
)

// AllPackages lists the package ids in catalog order.
var AllPackages = []PackageID{PackageBundle, PackageDeluxe, PackageFull}

func (id PackageID) IsValid() bool {
	switch id {
	case PackageBundle, PackageDeluxe, PackageFull:
		return true
	default:
		return false
	}
}

// Package is a catalog entry. Price is in Rand.
type Package struct {
	ID          PackageID `json:"id"`
	Title       string    `json:"title"`
	Price       int       `json:"price"`
	PhotoCount  int       `json:"photoCount"`
	Duration    string    `json:"duration"`
	Features    []string  `json:"features"`
	Description string    `json:"description"`
}

// Location is a selectable place a session can be held at.
type Location struct {
	Name     string  `json:"name"`
	Province string  `json:"province"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// NameEquals compares names case-insensitively, ignoring surrounding space.
func (l Location) NameEquals(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), l.Name)
}

// ProvinceGroup is one province with its locations, in reference-data order.
type ProvinceGroup struct {
	Province  string     `json:"province"`
	Locations []Location `json:"locations"`
}

// GroupByProvince keeps the first-seen order of provinces.
func GroupByProvince(locations []Location) []ProvinceGroup {
	index := make(map[string]int)
	groups := make([]ProvinceGroup, 0)

	for _, loc := range locations {
		i, ok := index[loc.Province]
		if !ok {
			i = len(groups)
			index[loc.Province] = i
			groups = append(groups, ProvinceGroup{Province: loc.Province})
		}
		groups[i].Locations = append(groups[i].Locations, loc)
	}

	return groups
}
