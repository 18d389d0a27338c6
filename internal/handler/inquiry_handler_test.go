package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/travelia/travelia-backend/internal/handler"
	"github.com/travelia/travelia-backend/internal/service"
	"github.com/travelia/travelia-backend/internal/validator"
)

func newInquiryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	// Validation and id parsing reject before the repository is touched,
	// so these routes never need a database.
	inquiryService := service.NewInquiryService(nil, zerolog.Nop())
	h := handler.NewInquiryHandler(inquiryService)

	r := gin.New()
	r.POST("/api/contact", h.Create)
	r.DELETE("/api/admin/inquiries/:id", h.Delete)
	return r
}

type fieldsResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// TestCreateInquiry_validation verifies an empty contact submission is
// rejected with per-field errors.
func TestCreateInquiry_validation(t *testing.T) {
	router := newInquiryRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp fieldsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Contains(t, resp.Fields, "name")
	require.Contains(t, resp.Fields, "email")
	require.Contains(t, resp.Fields, "message")
}

// TestCreateInquiry_badEmail verifies a malformed email is caught.
func TestCreateInquiry_badEmail(t *testing.T) {
	router := newInquiryRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		bytes.NewBufferString(`{"name":"Putu","email":"not-an-email","message":"Do you run night tours?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp fieldsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Contains(t, resp.Fields, "email")
	require.NotContains(t, resp.Fields, "name")
}

// TestDeleteInquiry_rejectsNonUUID verifies a non-UUID path id is a 400.
// Inquiry ids are UUIDs, so a bare number is not addressable.
func TestDeleteInquiry_rejectsNonUUID(t *testing.T) {
	router := newInquiryRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/inquiries/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
