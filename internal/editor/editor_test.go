package editor_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/travelia/travelia-backend/internal/client"
	"github.com/travelia/travelia-backend/internal/editor"
	"github.com/travelia/travelia-backend/internal/model"
)

// fakeAPI implements editor.API with overridable functions and counts
// every call so tests can assert nothing hit the network.
type fakeAPI struct {
	calls int

	getPackageFn func(ctx context.Context, id string) (*model.PackageDetail, error)
	createFn     func(ctx context.Context, form client.PackageForm) (*model.TravelPackage, error)
	updateFn     func(ctx context.Context, id string, form client.PackageForm) (*model.TravelPackage, error)
	createDayFn  func(ctx context.Context, req model.CreateItineraryDayRequest) (*model.ItineraryDay, error)
	updateDayFn  func(ctx context.Context, id string, req model.UpdateItineraryDayRequest) (*model.ItineraryDay, error)
	createTourFn func(ctx context.Context, packageID string, form client.TourForm) ([]model.SimilarTour, error)
	updateTourFn func(ctx context.Context, packageID string, index int, form client.TourForm) ([]model.SimilarTour, error)
}

func (f *fakeAPI) GetPackage(ctx context.Context, id string) (*model.PackageDetail, error) {
	f.calls++
	return f.getPackageFn(ctx, id)
}

func (f *fakeAPI) CreatePackage(ctx context.Context, form client.PackageForm) (*model.TravelPackage, error) {
	f.calls++
	return f.createFn(ctx, form)
}

func (f *fakeAPI) UpdatePackage(ctx context.Context, id string, form client.PackageForm) (*model.TravelPackage, error) {
	f.calls++
	return f.updateFn(ctx, id, form)
}

func (f *fakeAPI) DeletePackage(ctx context.Context, id string) error {
	f.calls++
	return nil
}

func (f *fakeAPI) CreateItineraryDay(ctx context.Context, req model.CreateItineraryDayRequest) (*model.ItineraryDay, error) {
	f.calls++
	return f.createDayFn(ctx, req)
}

func (f *fakeAPI) UpdateItineraryDay(ctx context.Context, id string, req model.UpdateItineraryDayRequest) (*model.ItineraryDay, error) {
	f.calls++
	return f.updateDayFn(ctx, id, req)
}

func (f *fakeAPI) DeleteItineraryDay(ctx context.Context, id string) error {
	f.calls++
	return nil
}

func (f *fakeAPI) CreateSimilarTour(ctx context.Context, packageID string, form client.TourForm) ([]model.SimilarTour, error) {
	f.calls++
	return f.createTourFn(ctx, packageID, form)
}

func (f *fakeAPI) UpdateSimilarTour(ctx context.Context, packageID string, index int, form client.TourForm) ([]model.SimilarTour, error) {
	f.calls++
	return f.updateTourFn(ctx, packageID, index, form)
}

func (f *fakeAPI) DeleteSimilarTour(ctx context.Context, packageID string, index int) error {
	f.calls++
	return nil
}

func pngImage(t *testing.T, name string, size int) *editor.ImageFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, size, size))))
	return &editor.ImageFile{Name: name, Data: buf.Bytes()}
}

func detailWithTours(tours int) *model.PackageDetail {
	pkg := model.TravelPackage{
		ID:       uuid.New(),
		Title:    "Bali Escape",
		Route:    "Denpasar - Ubud",
		Duration: 5,
		Price:    1299,
		Status:   model.PackageStatusActive,
	}
	for i := 0; i < tours; i++ {
		pkg.SimilarTours = append(pkg.SimilarTours, model.SimilarTour{Title: "Tour"})
	}
	return &model.PackageDetail{Package: pkg}
}

func loadEditor(t *testing.T, api *fakeAPI, detail *model.PackageDetail) *editor.PackageEditor {
	t.Helper()
	api.getPackageFn = func(ctx context.Context, id string) (*model.PackageDetail, error) {
		return detail, nil
	}
	ed := editor.New(api, 0, zerolog.Nop())
	require.NoError(t, ed.Load(context.Background(), detail.Package.ID.String()))
	api.calls = 0
	return ed
}

// TestSaveTour_limitRejectedLocally verifies a fourth tour never leaves
// the editor: no request is made at all.
func TestSaveTour_limitRejectedLocally(t *testing.T) {
	api := &fakeAPI{}
	ed := loadEditor(t, api, detailWithTours(3))

	_, err := ed.SaveTour(context.Background(), -1, "One more", "desc", pngImage(t, "a.png", 10))
	require.ErrorIs(t, err, editor.ErrTourLimit)
	require.Zero(t, api.calls)
}

// TestSaveTour_requiresImageOnAdd verifies adding without an image is a
// local validation failure.
func TestSaveTour_requiresImageOnAdd(t *testing.T) {
	api := &fakeAPI{}
	ed := loadEditor(t, api, detailWithTours(0))

	_, err := ed.SaveTour(context.Background(), -1, "Tour", "desc", nil)
	var fieldErrs editor.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "image")
	require.Zero(t, api.calls)
}

// TestSaveTour_updateKeepsStoredImage verifies an update with no image
// still goes through, leaving the stored image untouched server-side.
func TestSaveTour_updateKeepsStoredImage(t *testing.T) {
	api := &fakeAPI{}
	ed := loadEditor(t, api, detailWithTours(2))

	var gotForm client.TourForm
	api.updateTourFn = func(ctx context.Context, packageID string, index int, form client.TourForm) ([]model.SimilarTour, error) {
		require.Equal(t, 1, index)
		gotForm = form
		return []model.SimilarTour{{Title: "Updated"}, {Title: "Tour"}}, nil
	}

	_, err := ed.SaveTour(context.Background(), 1, "Updated", "new desc", nil)
	require.NoError(t, err)
	require.Nil(t, gotForm.Image)
}

// TestAttachImage_rejectsOversize verifies the 5 MB ceiling applies
// before any request.
func TestAttachImage_rejectsOversize(t *testing.T) {
	api := &fakeAPI{}
	ed := loadEditor(t, api, detailWithTours(0))

	big := &editor.ImageFile{Name: "big.png", Data: make([]byte, editor.DefaultMaxImageBytes+1)}
	require.ErrorIs(t, ed.AttachImage(big), editor.ErrImageTooLarge)
	require.Zero(t, api.calls)
	require.Nil(t, ed.PendingImage())
}

// TestAttachImage_rejectsNonImage verifies sniffed non-image content is
// refused.
func TestAttachImage_rejectsNonImage(t *testing.T) {
	api := &fakeAPI{}
	ed := loadEditor(t, api, detailWithTours(0))

	text := &editor.ImageFile{Name: "notes.png", Data: []byte("just some text, wrong extension")}
	require.ErrorIs(t, ed.AttachImage(text), editor.ErrUnsupportedImage)
	require.Zero(t, api.calls)
}

// TestSavePackage_validation verifies missing fields surface as field
// errors without a request.
func TestSavePackage_validation(t *testing.T) {
	api := &fakeAPI{}
	ed := editor.New(api, 0, zerolog.Nop())
	ed.NewPackage()
	ed.SetFields(editor.PackageFields{Duration: 0, Price: -1})

	_, err := ed.SavePackage(context.Background())
	var fieldErrs editor.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "title")
	require.Contains(t, fieldErrs, "route")
	require.Contains(t, fieldErrs, "duration")
	require.Contains(t, fieldErrs, "price")
	require.Zero(t, api.calls)
}

// TestSavePackage_createThenRefetch verifies a create flow posts the
// staged state and refetches the saved package.
func TestSavePackage_createThenRefetch(t *testing.T) {
	saved := detailWithTours(0)

	api := &fakeAPI{}
	api.createFn = func(ctx context.Context, form client.PackageForm) (*model.TravelPackage, error) {
		require.Equal(t, "Bali Escape", form.Title)
		require.NotNil(t, form.Image)
		return &saved.Package, nil
	}
	api.getPackageFn = func(ctx context.Context, id string) (*model.PackageDetail, error) {
		require.Equal(t, saved.Package.ID.String(), id)
		return saved, nil
	}

	ed := editor.New(api, 0, zerolog.Nop())
	ed.NewPackage()
	ed.SetFields(editor.PackageFields{
		Title:    "Bali Escape",
		Route:    "Denpasar - Ubud",
		Duration: 5,
		Price:    1299,
		Status:   model.PackageStatusActive,
	})
	require.NoError(t, ed.AttachImage(pngImage(t, "hero.png", 10)))

	pkg, err := ed.SavePackage(context.Background())
	require.NoError(t, err)
	require.Equal(t, saved.Package.ID, pkg.ID)
	require.NotNil(t, ed.Current())
	require.Nil(t, ed.PendingImage())
}

// TestSaveDay_createVsUpdate verifies the ID decides between the create
// and update endpoints.
func TestSaveDay_createVsUpdate(t *testing.T) {
	detail := detailWithTours(0)
	api := &fakeAPI{}
	ed := loadEditor(t, api, detail)

	var created, updated bool
	api.createDayFn = func(ctx context.Context, req model.CreateItineraryDayRequest) (*model.ItineraryDay, error) {
		created = true
		require.Equal(t, detail.Package.ID.String(), req.PackageID)
		return &model.ItineraryDay{DayNumber: req.DayNumber, Title: req.Title}, nil
	}
	api.updateDayFn = func(ctx context.Context, id string, req model.UpdateItineraryDayRequest) (*model.ItineraryDay, error) {
		updated = true
		require.Equal(t, "day-1", id)
		return &model.ItineraryDay{DayNumber: req.DayNumber, Title: req.Title}, nil
	}

	_, err := ed.SaveDay(context.Background(), editor.DayForm{DayNumber: 1, Title: "Arrival"})
	require.NoError(t, err)
	require.True(t, created)
	require.False(t, updated)

	_, err = ed.SaveDay(context.Background(), editor.DayForm{ID: "day-1", DayNumber: 2, Title: "Temples"})
	require.NoError(t, err)
	require.True(t, updated)
}

// TestAddIncluded verifies blanks and case-insensitive duplicates are
// skipped.
func TestAddIncluded(t *testing.T) {
	ed := editor.New(&fakeAPI{}, 0, zerolog.Nop())
	ed.NewPackage()

	require.True(t, ed.AddIncluded("Hotel"))
	require.True(t, ed.AddIncluded("Breakfast"))
	require.False(t, ed.AddIncluded("hotel"))
	require.False(t, ed.AddIncluded("   "))
	require.Equal(t, []string{"Hotel", "Breakfast"}, ed.Included())

	ed.RemoveIncluded(0)
	require.Equal(t, []string{"Breakfast"}, ed.Included())
}
