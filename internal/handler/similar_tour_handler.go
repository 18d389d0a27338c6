package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/response"
	"github.com/travelia/travelia-backend/internal/service"
)

// SimilarTourHandler handles the positional similar-tours collection of a
// package. Entries are addressed by index into the stored list, so callers
// are expected to re-fetch after every write.
type SimilarTourHandler struct {
	packageService *service.PackageService
	mediaService   *service.MediaService
}

// NewSimilarTourHandler creates a new SimilarTourHandler.
func NewSimilarTourHandler(packageService *service.PackageService, mediaService *service.MediaService) *SimilarTourHandler {
	return &SimilarTourHandler{
		packageService: packageService,
		mediaService:   mediaService,
	}
}

// List godoc
// GET /api/similar-tours/:packageId
func (h *SimilarTourHandler) List(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("packageId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	tours, err := h.packageService.SimilarTours(c.Request.Context(), packageID)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPackageNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, tours)
}

// Create godoc
// POST /api/similar-tours/:packageId (multipart)
// Image is required when adding; the cap of three entries is enforced.
func (h *SimilarTourHandler) Create(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("packageId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	tour, ok := h.parseTourForm(c, true)
	if !ok {
		return
	}

	if err := h.packageService.AddSimilarTour(c.Request.Context(), packageID, tour); err != nil {
		h.failTourError(c, err)
		return
	}

	h.respondTours(c, http.StatusCreated, packageID)
}

// Update godoc
// PUT /api/similar-tours/:packageId/:index (multipart)
// Image is optional on edit; an omitted image keeps the stored one.
func (h *SimilarTourHandler) Update(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("packageId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	tour, ok := h.parseTourForm(c, false)
	if !ok {
		return
	}

	if err := h.packageService.UpdateSimilarTour(c.Request.Context(), packageID, index, tour); err != nil {
		h.failTourError(c, err)
		return
	}

	h.respondTours(c, http.StatusOK, packageID)
}

// Delete godoc
// DELETE /api/similar-tours/:packageId/:index
func (h *SimilarTourHandler) Delete(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("packageId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.packageService.DeleteSimilarTour(c.Request.Context(), packageID, index); err != nil {
		h.failTourError(c, err)
		return
	}

	h.respondTours(c, http.StatusOK, packageID)
}

// respondTours answers a write with the package's current tour list so
// clients can render without a second request.
func (h *SimilarTourHandler) respondTours(c *gin.Context, status int, packageID uuid.UUID) {
	tours, err := h.packageService.SimilarTours(c.Request.Context(), packageID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, status, tours)
}

// parseTourForm reads the multipart title/description/image fields. When
// imageRequired is false an absent file leaves Image empty, which preserves
// the stored image on update. Returns ok=false after writing a response.
func (h *SimilarTourHandler) parseTourForm(c *gin.Context, imageRequired bool) (model.SimilarTour, bool) {
	tour := model.SimilarTour{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}

	fields := make(map[string]string)
	if imageRequired || tour.Title == "" {
		if tour.Title == "" {
			fields["title"] = "title is a required field"
		}
	}
	if imageRequired || tour.Description == "" {
		if tour.Description == "" {
			fields["description"] = "description is a required field"
		}
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		if imageRequired {
			fields["image"] = "an image file is required"
		}
	} else {
		defer file.Close()
		upload, err := h.mediaService.SaveUpload(file, header)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnsupportedFileType):
				response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
			case errors.Is(err, service.ErrFileTooLarge):
				response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			default:
				response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			}
			return tour, false
		}
		tour.Image = upload.URL
	}

	if len(fields) > 0 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return tour, false
	}

	return tour, true
}

func (h *SimilarTourHandler) failTourError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrPackageNotFound)
	case errors.Is(err, service.ErrTourLimit):
		response.Fail(c, http.StatusConflict, response.ErrTourLimitReached)
	case errors.Is(err, service.ErrTourIndex):
		response.Fail(c, http.StatusNotFound, response.ErrTourIndexInvalid)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
