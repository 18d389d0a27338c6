package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/travelia/travelia-backend/internal/response"
	"github.com/travelia/travelia-backend/internal/service"
	"github.com/travelia/travelia-backend/internal/validator"
)

// MediaHandler handles standalone image upload endpoints.
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// deleteImageRequest addresses a previously uploaded image.
type deleteImageRequest struct {
	PublicID string `json:"publicId" binding:"required"`
}

// Upload godoc
// POST /api/admin/upload/image
// Uploads an image file and returns its URL, thumbnail URL and public id.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
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
		return
	}

	response.Success(c, http.StatusOK, upload)
}

// Delete godoc
// DELETE /api/admin/upload/image
// Removes an uploaded image (and its thumbnail) by public id.
func (h *MediaHandler) Delete(c *gin.Context) {
	var req deleteImageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.mediaService.Delete(req.PublicID); err != nil {
		if errors.Is(err, service.ErrUploadNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "image deleted successfully"})
}
