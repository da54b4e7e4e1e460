// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"studio/internal/domain/entity"
)

// CatalogUsecase exposes the reference data and the distance quote the
// booking form is built from.
type CatalogUsecase interface {
	ListPackages(ctx context.Context) []entity.Package
	// ListLocations returns the selectable locations; serviceableOnly drops
	// the ones beyond the service radius.
	ListLocations(ctx context.Context, serviceableOnly bool) []entity.Location
	LocationsByProvince(ctx context.Context) []entity.ProvinceGroup
	GetPackage(ctx context.Context, id entity.PackageID) (*entity.Package, error)
	Quote(ctx context.Context, locationName string) (*EligibilityQuote, error)
}

// EligibilityQuote is what a client sees after choosing a location.
type EligibilityQuote struct {
	Location          entity.Location  `json:"location"`
	DistanceKm        float64          `json:"distanceKm"`
	DistanceBand      string           `json:"distanceBand"`
	WithinServiceArea bool             `json:"withinServiceArea"`
	MeetHalfway       bool             `json:"meetHalfwayEligible"`
	Packages          []entity.Package `json:"packages"`
}
