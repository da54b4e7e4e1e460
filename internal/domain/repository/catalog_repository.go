package repository

import "studio/internal/domain/entity"

// CatalogRepository serves immutable reference data. Implementations load
// once and never change afterwards.
type CatalogRepository interface {
	Packages() []entity.Package
	FindPackage(id entity.PackageID) (entity.Package, bool)

	// Locations are the ones a client may pick on the booking form.
	Locations() []entity.Location
	// AllLocations includes places outside the selectable province.
	AllLocations() []entity.Location
	// FindLocation matches selectable locations by name, case-insensitively.
	FindLocation(name string) (entity.Location, bool)
}
