package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload describes a stored image returned by the upload endpoint.
type Upload struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	PublicID     string `json:"publicId"`
}

// UploadImage stores a standalone image and returns its public URL and
// deletion handle.
func (c *Client) UploadImage(ctx context.Context, file FileAttachment) (*Upload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", file.Filename)
	if err != nil {
		return nil, fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, fmt.Errorf("copy image data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	var result Upload
	if err := c.doMultipart(ctx, http.MethodPost, "/admin/upload/image", &buf, w.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteImage removes a previously uploaded image by its public ID.
func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	payload := struct {
		PublicID string `json:"publicId"`
	}{PublicID: publicID}
	return c.doJSON(ctx, http.MethodDelete, "/admin/upload/image", payload, nil)
}
