package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/response"
	"github.com/travelia/travelia-backend/internal/service"
	"github.com/travelia/travelia-backend/internal/validator"
)

// ItineraryHandler handles itinerary day endpoints.
type ItineraryHandler struct {
	itineraryService *service.ItineraryService
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(itineraryService *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

// ListByPackage godoc
// GET /api/packages/:id/itinerary
func (h *ItineraryHandler) ListByPackage(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	days, err := h.itineraryService.ListByPackage(c.Request.Context(), packageID)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPackageNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, days)
}

// Create godoc
// POST /api/admin/itinerary
func (h *ItineraryHandler) Create(c *gin.Context) {
	var req model.CreateItineraryDayRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	day := &model.ItineraryDay{
		PackageID:   packageID,
		DayNumber:   req.DayNumber,
		Title:       req.Title,
		Description: req.Description,
		Activities:  req.Activities,
	}

	if err := h.itineraryService.Create(c.Request.Context(), day); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPackageNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, day)
}

// Update godoc
// PUT /api/admin/itinerary/:id
func (h *ItineraryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateItineraryDayRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	day := &model.ItineraryDay{
		ID:          id,
		DayNumber:   req.DayNumber,
		Title:       req.Title,
		Description: req.Description,
		Activities:  req.Activities,
	}

	if err := h.itineraryService.Update(c.Request.Context(), day); err != nil {
		if errors.Is(err, service.ErrItineraryDayNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, day)
}

// Delete godoc
// DELETE /api/admin/itinerary/:id
func (h *ItineraryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.itineraryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrItineraryDayNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "itinerary day deleted successfully"})
}
