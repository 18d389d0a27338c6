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

func newTestimonialRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	testimonialService := service.NewTestimonialService(nil, zerolog.Nop())
	h := handler.NewTestimonialHandler(testimonialService)

	r := gin.New()
	r.POST("/api/admin/testimonials", h.Create)
	r.DELETE("/api/admin/testimonials/:id", h.Delete)
	return r
}

// TestCreateTestimonial_ratingBounds verifies a rating outside 1..5 is
// rejected with a field error.
func TestCreateTestimonial_ratingBounds(t *testing.T) {
	router := newTestimonialRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/testimonials",
		bytes.NewBufferString(`{"name":"Made","text":"Wonderful trip, would go again.","rating":9}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp fieldsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Contains(t, resp.Fields, "rating")
}

// TestCreateTestimonial_validation verifies name and text are required.
func TestCreateTestimonial_validation(t *testing.T) {
	router := newTestimonialRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/testimonials",
		bytes.NewBufferString(`{"rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp fieldsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Contains(t, resp.Fields, "name")
	require.Contains(t, resp.Fields, "text")
}

// TestDeleteTestimonial_rejectsNonUUID verifies a non-UUID path id is a
// 400. Testimonial ids are UUIDs, so a bare number is not addressable.
func TestDeleteTestimonial_rejectsNonUUID(t *testing.T) {
	router := newTestimonialRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/testimonials/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
