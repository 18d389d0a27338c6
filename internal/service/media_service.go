package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/travelia/travelia-backend/internal/config"
)

// Sentinel errors for media uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUploadNotFound      = errors.New("upload not found")
)

// Allowed image MIME types.
var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// thumbWidth is the pixel width of generated thumbnails; height follows the
// source aspect ratio.
const thumbWidth = 400

// Upload describes a stored image. PublicID addresses the upload for
// deletion; URLs are relative paths served from the uploads static group.
type Upload struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	PublicID     string `json:"publicId"`
}

// MediaService handles image upload, thumbnail generation and deletion.
type MediaService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config, log zerolog.Logger) *MediaService {
	return &MediaService{
		cfg: cfg,
		log: log.With().Str("component", "media_service").Logger(),
	}
}

// SaveUpload validates and stores an uploaded image under a UUID filename,
// then generates a thumbnail. The thumbnail is best-effort: a file that
// stores fine but fails to decode still yields a usable upload.
func (s *MediaService) SaveUpload(file multipart.File, header *multipart.FileHeader) (*Upload, error) {
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(allowedTypes(), ", "))
	}

	if header.Size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	destPath := filepath.Join(s.cfg.UploadDir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	upload := &Upload{
		URL:      "/uploads/" + filename,
		PublicID: filename,
	}

	if thumbName, err := s.generateThumbnail(destPath, filename); err != nil {
		s.log.Warn().Err(err).Str("file", filename).Msg("thumbnail generation failed")
	} else {
		upload.ThumbnailURL = "/uploads/thumbs/" + thumbName
	}

	return upload, nil
}

// Delete removes a stored upload and its thumbnail by public id.
func (s *MediaService) Delete(publicID string) error {
	// The public id is a bare filename; reject anything path-like.
	if publicID == "" || publicID != filepath.Base(publicID) {
		return ErrUploadNotFound
	}

	path := filepath.Join(s.cfg.UploadDir, publicID)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrUploadNotFound
		}
		return fmt.Errorf("remove upload: %w", err)
	}

	// Thumbnail may legitimately be absent.
	thumbPath := filepath.Join(s.cfg.UploadDir, "thumbs", thumbName(publicID))
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("file", publicID).Msg("thumbnail removal failed")
	}

	return nil
}

func (s *MediaService) generateThumbnail(srcPath, filename string) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	thumbDir := filepath.Join(s.cfg.UploadDir, "thumbs")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", fmt.Errorf("create thumb dir: %w", err)
	}

	name := thumbName(filename)
	if err := imaging.Save(resized, filepath.Join(thumbDir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return name, nil
}

func thumbName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
}

func allowedTypes() []string {
	types := make([]string, 0, len(allowedMIMETypes))
	for t := range allowedMIMETypes {
		types = append(types, t)
	}
	return types
}
