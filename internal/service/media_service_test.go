package service_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/travelia/travelia-backend/internal/config"
	"github.com/travelia/travelia-backend/internal/service"
)

func newMediaService(t *testing.T, maxBytes int64) *service.MediaService {
	t.Helper()
	cfg := &config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: maxBytes,
	}
	return service.NewMediaService(cfg, zerolog.Nop())
}

// encodePNG produces a real decodable image so thumbnail generation runs.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// uploadRequest builds a parsed multipart form so the service sees the
// same multipart.File and header a Gin handler would hand it.
func uploadRequest(t *testing.T, filename, contentType string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/upload", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

// TestSaveUpload verifies a PNG is stored under a generated name and a
// thumbnail appears next to it.
func TestSaveUpload(t *testing.T) {
	svc := newMediaService(t, 5<<20)
	data := encodePNG(t, 800, 600)

	file, header := uploadRequest(t, "hero.png", "image/png", data)
	defer file.Close()

	upload, err := svc.SaveUpload(file, header)
	require.NoError(t, err)
	require.NotEmpty(t, upload.PublicID)
	require.Equal(t, "/uploads/"+upload.PublicID, upload.URL)
	require.NotEmpty(t, upload.ThumbnailURL)
}

// TestSaveUpload_rejectsContentType verifies non-image uploads never
// reach disk.
func TestSaveUpload_rejectsContentType(t *testing.T) {
	svc := newMediaService(t, 5<<20)

	file, header := uploadRequest(t, "readme.pdf", "application/pdf", []byte("%PDF-1.4"))
	defer file.Close()

	_, err := svc.SaveUpload(file, header)
	require.ErrorIs(t, err, service.ErrUnsupportedFileType)
}

// TestSaveUpload_rejectsOversize verifies the size ceiling applies.
func TestSaveUpload_rejectsOversize(t *testing.T) {
	svc := newMediaService(t, 64) // tiny ceiling for the test

	file, header := uploadRequest(t, "big.png", "image/png", encodePNG(t, 100, 100))
	defer file.Close()

	_, err := svc.SaveUpload(file, header)
	require.ErrorIs(t, err, service.ErrFileTooLarge)
}

// TestDelete verifies delete removes the stored file and rejects
// path-like public ids.
func TestDelete(t *testing.T) {
	cfg := &config.Config{UploadDir: t.TempDir(), MaxUploadBytes: 5 << 20}
	svc := service.NewMediaService(cfg, zerolog.Nop())

	file, header := uploadRequest(t, "hero.png", "image/png", encodePNG(t, 100, 100))
	defer file.Close()

	upload, err := svc.SaveUpload(file, header)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(upload.PublicID))
	_, statErr := os.Stat(filepath.Join(cfg.UploadDir, upload.PublicID))
	require.True(t, os.IsNotExist(statErr))

	require.ErrorIs(t, svc.Delete(upload.PublicID), service.ErrUploadNotFound)
	require.ErrorIs(t, svc.Delete("../etc/passwd"), service.ErrUploadNotFound)
}
