package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/response"
	"github.com/travelia/travelia-backend/internal/service"
	"github.com/travelia/travelia-backend/internal/validator"
)

// PackageHandler handles public package reads and admin package writes.
type PackageHandler struct {
	packageService *service.PackageService
	mediaService   *service.MediaService
}

// NewPackageHandler creates a new PackageHandler.
func NewPackageHandler(packageService *service.PackageService, mediaService *service.MediaService) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
		mediaService:   mediaService,
	}
}

// List godoc
// GET /api/packages
func (h *PackageHandler) List(c *gin.Context) {
	packages, err := h.packageService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if packages == nil {
		packages = []model.TravelPackage{}
	}

	response.Success(c, http.StatusOK, packages)
}

// Get godoc
// GET /api/packages/:id
// Returns the package + itinerary aggregate; itinerary ordered by day number.
func (h *PackageHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.packageService.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPackageNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Create godoc
// POST /api/admin/packages (multipart)
// Accepts package fields plus an optional image file for the hero slot.
func (h *PackageHandler) Create(c *gin.Context) {
	pkg, fields := h.parsePackageForm(c)
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !h.attachHeroImage(c, pkg) {
		return // Response already written.
	}

	if err := h.packageService.Create(c.Request.Context(), pkg); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, pkg)
}

// Update godoc
// PUT /api/admin/packages/:id (multipart or JSON)
// Multipart carries the same fields as Create; JSON is the image-less form.
func (h *PackageHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var pkg *model.TravelPackage

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req model.UpdatePackageRequest
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
		pkg = &model.TravelPackage{
			Title:       req.Title,
			Route:       req.Route,
			Duration:    req.Duration,
			Description: req.Description,
			Price:       req.Price,
			Included:    req.Included,
			HeroImage:   req.HeroImage,
			BrochureURL: req.BrochureURL,
			Status:      model.PackageStatus(req.Status),
		}
		if pkg.Status == "" {
			pkg.Status = model.PackageStatusActive
		}
	} else {
		var fields map[string]string
		pkg, fields = h.parsePackageForm(c)
		if fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
		if !h.attachHeroImage(c, pkg) {
			return
		}
	}

	// An update without a new image and without a heroImage field keeps the
	// stored image rather than clearing it.
	if pkg.HeroImage == "" {
		existing, err := h.packageService.GetDetail(c.Request.Context(), id)
		if err == nil {
			pkg.HeroImage = existing.Package.HeroImage
		}
	}

	pkg.ID = id
	if err := h.packageService.Update(c.Request.Context(), pkg); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPackageNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, pkg)
}

// Delete godoc
// DELETE /api/admin/packages/:id
func (h *PackageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.packageService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPackageNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "package deleted successfully"})
}

// parsePackageForm reads the multipart form fields shared by Create and
// Update. The included list arrives as a JSON-encoded string, matching the
// admin panel's submission format.
func (h *PackageHandler) parsePackageForm(c *gin.Context) (*model.TravelPackage, map[string]string) {
	fields := make(map[string]string)

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		fields["title"] = "title is a required field"
	}

	route := strings.TrimSpace(c.PostForm("route"))
	if route == "" {
		fields["route"] = "route is a required field"
	}

	duration, err := strconv.Atoi(c.PostForm("duration"))
	if err != nil || duration < 1 {
		fields["duration"] = "duration must be a positive number of days"
	}

	description := strings.TrimSpace(c.PostForm("description"))
	if description == "" {
		fields["description"] = "description is a required field"
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		fields["price"] = "price must be a non-negative number"
	}

	included := []string{}
	if raw := c.PostForm("included"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &included); err != nil {
			fields["included"] = "included must be a JSON array of strings"
		}
	}

	status := c.DefaultPostForm("status", string(model.PackageStatusActive))
	if !model.ValidStatus(status) {
		fields["status"] = "status must be one of: active, inactive"
	}

	if len(fields) > 0 {
		return nil, fields
	}

	return &model.TravelPackage{
		Title:       title,
		Route:       route,
		Duration:    duration,
		Description: description,
		Price:       price,
		Included:    included,
		HeroImage:   c.PostForm("heroImage"),
		BrochureURL: c.PostForm("brochureUrl"),
		Status:      model.PackageStatus(status),
	}, nil
}

// attachHeroImage stores an uploaded image file, if any, and points the
// package's hero slot at it. Returns false after writing an error response.
func (h *PackageHandler) attachHeroImage(c *gin.Context, pkg *model.TravelPackage) bool {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return true // No file submitted; the heroImage field governs.
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
		return false
	}

	pkg.HeroImage = upload.URL
	return true
}
