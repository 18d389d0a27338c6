// Package browse implements the public, read-only view of the travel
// catalog: the package listing and the package detail page with its
// ordered itinerary.
package browse

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/travelia/travelia-backend/internal/client"
	"github.com/travelia/travelia-backend/internal/model"
)

// API is the slice of the HTTP client the catalog needs.
type API interface {
	ListPackages(ctx context.Context) ([]model.TravelPackage, error)
	GetPackage(ctx context.Context, id string) (*model.PackageDetail, error)
}

// Catalog serves public catalog views over the API.
type Catalog struct {
	api API
	log zerolog.Logger
}

// NewCatalog creates a catalog over the given API client.
func NewCatalog(api API, log zerolog.Logger) *Catalog {
	return &Catalog{
		api: api,
		log: log.With().Str("component", "catalog").Logger(),
	}
}

// Packages returns all packages for the listing view. Fetch failures
// collapse to an empty list so the page still renders; the error is
// logged, not surfaced.
func (c *Catalog) Packages(ctx context.Context) []model.TravelPackage {
	packages, err := c.api.ListPackages(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to fetch package list")
		return []model.TravelPackage{}
	}
	if packages == nil {
		return []model.TravelPackage{}
	}
	return packages
}

// Detail is the package detail view: the package, its itinerary in day
// order, and an error message when the package could not be loaded.
type Detail struct {
	Package   *model.TravelPackage
	Itinerary []model.ItineraryDay
	Err       string
}

// PackageDetail fetches a single package for the detail view. A failed
// fetch yields a Detail whose Err carries the server's message
// verbatim, so "Package not found" renders as sent.
func (c *Catalog) PackageDetail(ctx context.Context, id string) Detail {
	detail, err := c.api.GetPackage(ctx, id)
	if err != nil {
		c.log.Warn().Err(err).Str("package_id", id).Msg("Failed to fetch package detail")

		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return Detail{Err: apiErr.Message}
		}
		return Detail{Err: "Unable to load package"}
	}

	days := detail.Itinerary
	model.SortItineraryDays(days)
	return Detail{Package: &detail.Package, Itinerary: days}
}
