package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/travelia/travelia-backend/internal/model"
)

// TourForm carries the fields for creating or updating a similar tour.
// Image is required on create; on update a nil Image keeps the stored
// tour image.
type TourForm struct {
	Title       string
	Description string
	Image       *FileAttachment
}

// SimilarTours fetches the similar tours attached to a package.
func (c *Client) SimilarTours(ctx context.Context, packageID string) ([]model.SimilarTour, error) {
	var result []model.SimilarTour
	if err := c.doJSON(ctx, http.MethodGet, "/similar-tours/"+packageID, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSimilarTour appends a tour to a package. The server rejects the
// call once the package already holds three tours.
func (c *Client) CreateSimilarTour(ctx context.Context, packageID string, form TourForm) ([]model.SimilarTour, error) {
	body, contentType, err := encodeTourForm(form)
	if err != nil {
		return nil, err
	}

	var result []model.SimilarTour
	if err := c.doMultipart(ctx, http.MethodPost, "/similar-tours/"+packageID, body, contentType, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateSimilarTour replaces the tour at the given position.
func (c *Client) UpdateSimilarTour(ctx context.Context, packageID string, index int, form TourForm) ([]model.SimilarTour, error) {
	body, contentType, err := encodeTourForm(form)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/similar-tours/%s/%d", packageID, index)
	var result []model.SimilarTour
	if err := c.doMultipart(ctx, http.MethodPut, path, body, contentType, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSimilarTour removes the tour at the given position.
func (c *Client) DeleteSimilarTour(ctx context.Context, packageID string, index int) error {
	path := fmt.Sprintf("/similar-tours/%s/%d", packageID, index)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func encodeTourForm(form TourForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", form.Title); err != nil {
		return nil, "", fmt.Errorf("write form field title: %w", err)
	}
	if err := w.WriteField("description", form.Description); err != nil {
		return nil, "", fmt.Errorf("write form field description: %w", err)
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
