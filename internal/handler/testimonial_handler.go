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

// TestimonialHandler handles testimonial endpoints.
type TestimonialHandler struct {
	testimonialService *service.TestimonialService
}

// NewTestimonialHandler creates a new TestimonialHandler.
func NewTestimonialHandler(testimonialService *service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService}
}

// List godoc
// GET /api/testimonials
func (h *TestimonialHandler) List(c *gin.Context) {
	testimonials, err := h.testimonialService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if testimonials == nil {
		testimonials = []model.Testimonial{}
	}

	response.Success(c, http.StatusOK, testimonials)
}

// Create godoc
// POST /api/admin/testimonials
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req model.CreateTestimonialRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	t := &model.Testimonial{
		Name:   req.Name,
		Text:   req.Text,
		Rating: req.Rating,
	}

	if err := h.testimonialService.Create(c.Request.Context(), t); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, t)
}

// Delete godoc
// DELETE /api/admin/testimonials/:id
func (h *TestimonialHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.testimonialService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTestimonialNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "testimonial deleted successfully"})
}
