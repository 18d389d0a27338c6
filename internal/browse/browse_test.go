package browse_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/travelia/travelia-backend/internal/browse"
	"github.com/travelia/travelia-backend/internal/client"
	"github.com/travelia/travelia-backend/internal/model"
)

type fakeAPI struct {
	listFn func(ctx context.Context) ([]model.TravelPackage, error)
	getFn  func(ctx context.Context, id string) (*model.PackageDetail, error)
}

func (f *fakeAPI) ListPackages(ctx context.Context) ([]model.TravelPackage, error) {
	return f.listFn(ctx)
}

func (f *fakeAPI) GetPackage(ctx context.Context, id string) (*model.PackageDetail, error) {
	return f.getFn(ctx, id)
}

// TestPackages_errorCollapsesToEmpty verifies a failed fetch renders as
// an empty listing rather than an error page.
func TestPackages_errorCollapsesToEmpty(t *testing.T) {
	catalog := browse.NewCatalog(&fakeAPI{
		listFn: func(ctx context.Context) ([]model.TravelPackage, error) {
			return nil, errors.New("connection refused")
		},
	}, zerolog.Nop())

	packages := catalog.Packages(context.Background())
	require.NotNil(t, packages)
	require.Empty(t, packages)
}

// TestPackages verifies the happy path passes packages through.
func TestPackages(t *testing.T) {
	catalog := browse.NewCatalog(&fakeAPI{
		listFn: func(ctx context.Context) ([]model.TravelPackage, error) {
			return []model.TravelPackage{{Title: "Bali Escape"}}, nil
		},
	}, zerolog.Nop())

	packages := catalog.Packages(context.Background())
	require.Len(t, packages, 1)
	require.Equal(t, "Bali Escape", packages[0].Title)
}

// TestPackageDetail_notFound verifies the server's message lands in the
// view state verbatim.
func TestPackageDetail_notFound(t *testing.T) {
	catalog := browse.NewCatalog(&fakeAPI{
		getFn: func(ctx context.Context, id string) (*model.PackageDetail, error) {
			return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "Package not found"}
		},
	}, zerolog.Nop())

	detail := catalog.PackageDetail(context.Background(), "missing")
	require.Nil(t, detail.Package)
	require.Equal(t, "Package not found", detail.Err)
}

// TestPackageDetail_transportError verifies non-API failures use a
// generic message instead of leaking transport detail.
func TestPackageDetail_transportError(t *testing.T) {
	catalog := browse.NewCatalog(&fakeAPI{
		getFn: func(ctx context.Context, id string) (*model.PackageDetail, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}, zerolog.Nop())

	detail := catalog.PackageDetail(context.Background(), "any")
	require.Equal(t, "Unable to load package", detail.Err)
}

// TestPackageDetail_sortsItinerary verifies days render in day order
// even when the payload is shuffled.
func TestPackageDetail_sortsItinerary(t *testing.T) {
	catalog := browse.NewCatalog(&fakeAPI{
		getFn: func(ctx context.Context, id string) (*model.PackageDetail, error) {
			return &model.PackageDetail{
				Package: model.TravelPackage{Title: "Bali Escape"},
				Itinerary: []model.ItineraryDay{
					{DayNumber: 2, Title: "Temples"},
					{DayNumber: 1, Title: "Arrival"},
				},
			}, nil
		},
	}, zerolog.Nop())

	detail := catalog.PackageDetail(context.Background(), "id")
	require.Empty(t, detail.Err)
	require.Equal(t, 1, detail.Itinerary[0].DayNumber)
	require.Equal(t, 2, detail.Itinerary[1].DayNumber)
}
