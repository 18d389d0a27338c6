package editor

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// Image validation errors, raised before anything reaches the network.
var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
)

// DefaultMaxImageBytes matches the server's upload ceiling (5 MB).
const DefaultMaxImageBytes = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ImageFile is an in-memory image selected for upload.
type ImageFile struct {
	Name string
	Data []byte
}

// LoadImageFile reads an image from disk into memory. Validation
// happens separately so callers can surface both errors.
func LoadImageFile(path string) (*ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return &ImageFile{Name: filepath.Base(path), Data: data}, nil
}

// validateImage checks content type and size against the server's
// limits so bad files are rejected without a round trip.
func validateImage(img *ImageFile, maxBytes int64) error {
	if int64(len(img.Data)) > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, len(img.Data), maxBytes)
	}

	contentType := http.DetectContentType(img.Data)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
	return nil
}
