// Package editor implements the admin-side editing workflow for travel
// packages: staging field and image changes locally, validating them,
// and pushing them to the API with a refetch after every write so the
// local copy always reflects server state.
package editor

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/travelia/travelia-backend/internal/client"
	"github.com/travelia/travelia-backend/internal/model"
)

// ErrNoPackageLoaded is returned by operations that need a loaded package.
var ErrNoPackageLoaded = errors.New("no package loaded")

// ErrTourLimit is returned when a fourth similar tour is staged.
var ErrTourLimit = errors.New("similar tour limit reached")

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

// API is the slice of the HTTP client the editor needs.
type API interface {
	GetPackage(ctx context.Context, id string) (*model.PackageDetail, error)
	CreatePackage(ctx context.Context, form client.PackageForm) (*model.TravelPackage, error)
	UpdatePackage(ctx context.Context, id string, form client.PackageForm) (*model.TravelPackage, error)
	DeletePackage(ctx context.Context, id string) error
	CreateItineraryDay(ctx context.Context, req model.CreateItineraryDayRequest) (*model.ItineraryDay, error)
	UpdateItineraryDay(ctx context.Context, id string, req model.UpdateItineraryDayRequest) (*model.ItineraryDay, error)
	DeleteItineraryDay(ctx context.Context, id string) error
	CreateSimilarTour(ctx context.Context, packageID string, form client.TourForm) ([]model.SimilarTour, error)
	UpdateSimilarTour(ctx context.Context, packageID string, index int, form client.TourForm) ([]model.SimilarTour, error)
	DeleteSimilarTour(ctx context.Context, packageID string, index int) error
}

// PackageFields is the editable scalar state of a package form.
type PackageFields struct {
	Title       string
	Route       string
	Duration    int
	Description string
	Price       float64
	Status      model.PackageStatus
	BrochureURL string
}

// DayForm is the editable state of an itinerary day. An empty ID means
// the day is new and will be created rather than updated.
type DayForm struct {
	ID          string
	DayNumber   int
	Title       string
	Description string
	Activities  []string
}

// PackageEditor stages edits for a single package at a time.
type PackageEditor struct {
	api           API
	maxImageBytes int64
	log           zerolog.Logger

	detail       *model.PackageDetail
	fields       PackageFields
	included     []string
	pendingImage *ImageFile
}

// New creates an editor. maxImageBytes of zero applies the default
// 5 MB ceiling.
func New(api API, maxImageBytes int64, log zerolog.Logger) *PackageEditor {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &PackageEditor{
		api:           api,
		maxImageBytes: maxImageBytes,
		log:           log.With().Str("component", "editor").Logger(),
	}
}

// Load fetches a package and resets the editing state to mirror it.
func (e *PackageEditor) Load(ctx context.Context, id string) error {
	detail, err := e.api.GetPackage(ctx, id)
	if err != nil {
		return err
	}
	e.reset(detail)
	return nil
}

// NewPackage clears the editor for a create flow.
func (e *PackageEditor) NewPackage() {
	e.reset(nil)
	e.fields.Status = model.PackageStatusActive
}

// Current returns the loaded package detail, or nil in a create flow.
func (e *PackageEditor) Current() *model.PackageDetail {
	return e.detail
}

// Fields returns the staged scalar fields.
func (e *PackageEditor) Fields() PackageFields {
	return e.fields
}

// SetFields replaces the staged scalar fields.
func (e *PackageEditor) SetFields(fields PackageFields) {
	e.fields = fields
}

// Included returns the staged inclusion list.
func (e *PackageEditor) Included() []string {
	out := make([]string, len(e.included))
	copy(out, e.included)
	return out
}

// AddIncluded appends an inclusion item, skipping blanks and
// duplicates. It reports whether the item was added.
func (e *PackageEditor) AddIncluded(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}
	for _, existing := range e.included {
		if strings.EqualFold(existing, item) {
			return false
		}
	}
	e.included = append(e.included, item)
	return true
}

// RemoveIncluded drops the inclusion item at the given position.
func (e *PackageEditor) RemoveIncluded(index int) {
	if index < 0 || index >= len(e.included) {
		return
	}
	e.included = append(e.included[:index], e.included[index+1:]...)
}

// AttachImage stages a hero image after validating its type and size.
// Nothing is sent to the server until SavePackage.
func (e *PackageEditor) AttachImage(img *ImageFile) error {
	if err := validateImage(img, e.maxImageBytes); err != nil {
		return err
	}
	e.pendingImage = img
	return nil
}

// PendingImage returns the staged hero image, if any.
func (e *PackageEditor) PendingImage() *ImageFile {
	return e.pendingImage
}

// SavePackage validates the staged state and pushes it to the server,
// creating or updating depending on whether a package is loaded. On
// success the editor refetches the package and clears the pending image.
func (e *PackageEditor) SavePackage(ctx context.Context) (*model.TravelPackage, error) {
	if errs := e.validateFields(); len(errs) > 0 {
		return nil, errs
	}

	form := client.PackageForm{
		Title:       strings.TrimSpace(e.fields.Title),
		Route:       strings.TrimSpace(e.fields.Route),
		Duration:    e.fields.Duration,
		Description: strings.TrimSpace(e.fields.Description),
		Price:       e.fields.Price,
		Included:    e.included,
		Status:      e.fields.Status,
		BrochureURL: e.fields.BrochureURL,
	}
	if e.detail != nil {
		form.HeroImage = e.detail.Package.HeroImage
	}
	if e.pendingImage != nil {
		form.Image = attachmentFor(e.pendingImage)
	}

	var (
		saved *model.TravelPackage
		err   error
	)
	if e.detail == nil {
		saved, err = e.api.CreatePackage(ctx, form)
	} else {
		saved, err = e.api.UpdatePackage(ctx, e.detail.Package.ID.String(), form)
	}
	if err != nil {
		return nil, err
	}

	if refreshErr := e.Load(ctx, saved.ID.String()); refreshErr != nil {
		e.log.Warn().Err(refreshErr).Msg("Refetch after save failed")
	}
	e.pendingImage = nil
	return saved, nil
}

// SaveDay creates or updates an itinerary day and refetches the package.
func (e *PackageEditor) SaveDay(ctx context.Context, day DayForm) (*model.ItineraryDay, error) {
	if e.detail == nil {
		return nil, ErrNoPackageLoaded
	}
	if errs := validateDay(day); len(errs) > 0 {
		return nil, errs
	}

	var (
		saved *model.ItineraryDay
		err   error
	)
	if day.ID == "" {
		saved, err = e.api.CreateItineraryDay(ctx, model.CreateItineraryDayRequest{
			PackageID:   e.detail.Package.ID.String(),
			DayNumber:   day.DayNumber,
			Title:       strings.TrimSpace(day.Title),
			Description: strings.TrimSpace(day.Description),
			Activities:  day.Activities,
		})
	} else {
		saved, err = e.api.UpdateItineraryDay(ctx, day.ID, model.UpdateItineraryDayRequest{
			DayNumber:   day.DayNumber,
			Title:       strings.TrimSpace(day.Title),
			Description: strings.TrimSpace(day.Description),
			Activities:  day.Activities,
		})
	}
	if err != nil {
		return nil, err
	}

	e.refetch(ctx)
	return saved, nil
}

// DeleteDay removes an itinerary day and refetches the package.
func (e *PackageEditor) DeleteDay(ctx context.Context, dayID string) error {
	if e.detail == nil {
		return ErrNoPackageLoaded
	}
	if err := e.api.DeleteItineraryDay(ctx, dayID); err != nil {
		return err
	}
	e.refetch(ctx)
	return nil
}

// SaveTour adds a similar tour when index is negative, or updates the
// tour at index otherwise. Adding requires an image and respects the
// three-tour ceiling before any request is made; updating with a nil
// image keeps the stored one.
func (e *PackageEditor) SaveTour(ctx context.Context, index int, title, description string, img *ImageFile) ([]model.SimilarTour, error) {
	if e.detail == nil {
		return nil, ErrNoPackageLoaded
	}

	errs := FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(description) == "" {
		errs["description"] = "Description is required"
	}

	adding := index < 0
	if adding {
		if len(e.detail.Package.SimilarTours) >= model.MaxSimilarTours {
			return nil, ErrTourLimit
		}
		if img == nil {
			errs["image"] = "Image is required"
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if img != nil {
		if err := validateImage(img, e.maxImageBytes); err != nil {
			return nil, err
		}
	}

	form := client.TourForm{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	if img != nil {
		form.Image = attachmentFor(img)
	}

	var (
		tours []model.SimilarTour
		err   error
	)
	packageID := e.detail.Package.ID.String()
	if adding {
		tours, err = e.api.CreateSimilarTour(ctx, packageID, form)
	} else {
		tours, err = e.api.UpdateSimilarTour(ctx, packageID, index, form)
	}
	if err != nil {
		return nil, err
	}

	e.refetch(ctx)
	return tours, nil
}

// DeleteTour removes the similar tour at the given position.
func (e *PackageEditor) DeleteTour(ctx context.Context, index int) error {
	if e.detail == nil {
		return ErrNoPackageLoaded
	}
	if err := e.api.DeleteSimilarTour(ctx, e.detail.Package.ID.String(), index); err != nil {
		return err
	}
	e.refetch(ctx)
	return nil
}

// DeletePackage removes the loaded package and clears the editor.
func (e *PackageEditor) DeletePackage(ctx context.Context) error {
	if e.detail == nil {
		return ErrNoPackageLoaded
	}
	if err := e.api.DeletePackage(ctx, e.detail.Package.ID.String()); err != nil {
		return err
	}
	e.reset(nil)
	return nil
}

func (e *PackageEditor) validateFields() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(e.fields.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(e.fields.Route) == "" {
		errs["route"] = "Route is required"
	}
	if e.fields.Duration < 1 {
		errs["duration"] = "Duration must be at least 1 day"
	}
	if e.fields.Price < 0 {
		errs["price"] = "Price must not be negative"
	}
	if e.fields.Status != "" && !model.ValidStatus(string(e.fields.Status)) {
		errs["status"] = "Status must be active or inactive"
	}
	return errs
}

func validateDay(day DayForm) FieldErrors {
	errs := FieldErrors{}
	if day.DayNumber < 1 {
		errs["dayNumber"] = "Day number must be at least 1"
	}
	if strings.TrimSpace(day.Title) == "" {
		errs["title"] = "Title is required"
	}
	return errs
}

func (e *PackageEditor) reset(detail *model.PackageDetail) {
	e.detail = detail
	e.pendingImage = nil
	if detail == nil {
		e.fields = PackageFields{}
		e.included = nil
		return
	}

	pkg := detail.Package
	e.fields = PackageFields{
		Title:       pkg.Title,
		Route:       pkg.Route,
		Duration:    pkg.Duration,
		Description: pkg.Description,
		Price:       pkg.Price,
		Status:      pkg.Status,
		BrochureURL: pkg.BrochureURL,
	}
	e.included = make([]string, len(pkg.Included))
	copy(e.included, pkg.Included)
}

// refetch refreshes the loaded package after a write so itinerary and
// tour state track the server.
func (e *PackageEditor) refetch(ctx context.Context) {
	if e.detail == nil {
		return
	}
	if err := e.Load(ctx, e.detail.Package.ID.String()); err != nil {
		e.log.Warn().Err(err).Msg("Refetch after write failed")
	}
}

func attachmentFor(img *ImageFile) *client.FileAttachment {
	return &client.FileAttachment{Filename: img.Name, Reader: bytes.NewReader(img.Data)}
}
