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

// InquiryHandler handles contact form endpoints.
type InquiryHandler struct {
	inquiryService *service.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// Create godoc
// POST /api/contact
// Accepts a public contact form submission.
func (h *InquiryHandler) Create(c *gin.Context) {
	var req model.CreateInquiryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	inquiry := &model.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.inquiryService.Create(c.Request.Context(), inquiry); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, inquiry)
}

// List godoc
// GET /api/admin/inquiries
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.inquiryService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}

	response.Success(c, http.StatusOK, inquiries)
}

// Delete godoc
// DELETE /api/admin/inquiries/:id
func (h *InquiryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.inquiryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "inquiry deleted successfully"})
}
