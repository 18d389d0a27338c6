package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/travelia/travelia-backend/internal/model"
)

// FileAttachment is an image payload for multipart requests.
type FileAttachment struct {
	Filename string
	Reader   io.Reader
}

// PackageForm carries the fields for creating or updating a package.
// Image is optional; when nil the server keeps the stored hero image.
type PackageForm struct {
	Title       string
	Route       string
	Duration    int
	Description string
	Price       float64
	Included    []string
	Status      model.PackageStatus
	HeroImage   string
	BrochureURL string
	Image       *FileAttachment
}

// ListPackages fetches all travel packages.
func (c *Client) ListPackages(ctx context.Context) ([]model.TravelPackage, error) {
	var result []model.TravelPackage
	if err := c.doJSON(ctx, http.MethodGet, "/packages", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPackage fetches a single package together with its itinerary.
func (c *Client) GetPackage(ctx context.Context, id string) (*model.PackageDetail, error) {
	var result model.PackageDetail
	if err := c.doJSON(ctx, http.MethodGet, "/packages/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ItineraryByPackage fetches the ordered itinerary for a package.
func (c *Client) ItineraryByPackage(ctx context.Context, packageID string) ([]model.ItineraryDay, error) {
	var result []model.ItineraryDay
	if err := c.doJSON(ctx, http.MethodGet, "/packages/"+packageID+"/itinerary", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePackage creates a package from a multipart form.
func (c *Client) CreatePackage(ctx context.Context, form PackageForm) (*model.TravelPackage, error) {
	body, contentType, err := encodePackageForm(form)
	if err != nil {
		return nil, err
	}

	var result model.TravelPackage
	if err := c.doMultipart(ctx, http.MethodPost, "/admin/packages", body, contentType, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePackage updates a package from a multipart form.
func (c *Client) UpdatePackage(ctx context.Context, id string, form PackageForm) (*model.TravelPackage, error) {
	body, contentType, err := encodePackageForm(form)
	if err != nil {
		return nil, err
	}

	var result model.TravelPackage
	if err := c.doMultipart(ctx, http.MethodPut, "/admin/packages/"+id, body, contentType, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePackageJSON updates a package with a JSON payload, for callers
// that have no image to attach.
func (c *Client) UpdatePackageJSON(ctx context.Context, id string, req model.UpdatePackageRequest) (*model.TravelPackage, error) {
	var result model.TravelPackage
	if err := c.doJSON(ctx, http.MethodPut, "/admin/packages/"+id, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePackage deletes a package and its itinerary.
func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/packages/"+id, nil, nil)
}

func encodePackageForm(form PackageForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       form.Title,
		"route":       form.Route,
		"duration":    strconv.Itoa(form.Duration),
		"description": form.Description,
		"price":       strconv.FormatFloat(form.Price, 'f', -1, 64),
		"heroImage":   form.HeroImage,
		"brochureUrl": form.BrochureURL,
	}
	if form.Status != "" {
		fields["status"] = string(form.Status)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	included, err := json.Marshal(form.Included)
	if err != nil {
		return nil, "", fmt.Errorf("encode included list: %w", err)
	}
	if err := w.WriteField("included", string(included)); err != nil {
		return nil, "", fmt.Errorf("write form field included: %w", err)
	}

	if form.Image != nil {
		part, err := w.CreateFormFile("image", form.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, form.Image.Reader); err != nil {
			return nil, "", fmt.Errorf("copy image data: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
