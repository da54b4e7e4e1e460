// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"

	"studio/internal/domain/entity"
	domainerrors "studio/internal/domain/errors"
	"studio/internal/domain/geo"
	"studio/internal/domain/repository"
	"studio/internal/usecase"
)

type catalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) usecase.CatalogUsecase {
	return &catalogService{catalog: catalog}
}

func (srv *catalogService) ListPackages(_ context.Context) []entity.Package {
	return srv.catalog.Packages()
}

func (srv *catalogService) ListLocations(_ context.Context, serviceableOnly bool) []entity.Location {
	locations := srv.catalog.Locations()
	if !serviceableOnly {
		return locations
	}

	serviceable := make([]entity.Location, 0, len(locations))
	for _, loc := range locations {
		if geo.InServiceArea(geo.DistanceFromBase(loc.Lat, loc.Lng)) {
			serviceable = append(serviceable, loc)
		}
	}

	return serviceable
}

func (srv *catalogService) LocationsByProvince(_ context.Context) []entity.ProvinceGroup {
	return entity.GroupByProvince(srv.catalog.AllLocations())
}

func (srv *catalogService) GetPackage(_ context.Context, id entity.PackageID) (*entity.Package, error) {
	pkg, ok := srv.catalog.FindPackage(id)
	if !ok {
		return nil, domainerrors.ErrPackageNotFound.WrapMessage(string(id))
	}

	return &pkg, nil
}

// Quote reports the rounded distance and the full records of every package
// offered at that distance.
func (srv *catalogService) Quote(_ context.Context, locationName string) (*usecase.EligibilityQuote, error) {
	loc, ok := srv.catalog.FindLocation(locationName)
	if !ok {
		return nil, domainerrors.ErrLocationNotFound.WrapMessage(locationName)
	}

	q := geo.QuoteFor(loc)
	packages := make([]entity.Package, 0, len(q.EligiblePackages))
	for _, id := range q.EligiblePackages {
		if pkg, ok := srv.catalog.FindPackage(id); ok {
			packages = append(packages, pkg)
		}
	}

	return &usecase.EligibilityQuote{
		Location:          loc,
		DistanceKm:        geo.RoundKm(q.DistanceKm),
		DistanceBand:      q.Band,
		WithinServiceArea: q.WithinServiceArea,
		MeetHalfway:       q.MeetHalfway,
		Packages:          packages,
	}, nil
}
