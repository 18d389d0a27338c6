package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/travelia/travelia-backend/internal/client"
	"github.com/travelia/travelia-backend/internal/model"
)

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// TestLogin verifies a successful login decodes the token and installs
// it for later calls.
func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "admin@travelia.test", req.Email)

		respond(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "tok-123",
				"admin": map[string]any{"id": 1, "username": "admin", "role": "admin"},
			},
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api", srv.Client(), zerolog.Nop())

	result, err := c.Login(context.Background(), "admin@travelia.test", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok-123", result.Token)
	require.Equal(t, "admin", result.Admin.Username)
	require.Equal(t, "tok-123", c.Token())
}

// TestAuthorizationHeader verifies the bearer token travels on
// authenticated calls.
func TestAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		respond(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api", srv.Client(), zerolog.Nop())
	c.SetToken("tok-123")

	_, err := c.ListPackages(context.Background())
	require.NoError(t, err)
}

// TestAPIError verifies a success=false envelope surfaces the server's
// message verbatim.
func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "Package not found",
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api", srv.Client(), zerolog.Nop())

	_, err := c.GetPackage(context.Background(), "missing-id")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Package not found", apiErr.Message)
}

// TestStatusError verifies a non-envelope body (e.g. a proxy error page)
// maps to StatusError rather than a decode failure.
func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api", srv.Client(), zerolog.Nop())

	_, err := c.ListPackages(context.Background())
	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

// TestCreatePackage_multipart verifies the form fields and image part
// arrive as multipart form data.
func TestCreatePackage_multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/admin/packages", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(10<<20))
		require.Equal(t, "Bali Escape", r.FormValue("title"))
		require.Equal(t, "Denpasar - Ubud", r.FormValue("route"))
		require.Equal(t, "5", r.FormValue("duration"))
		require.Equal(t, "1299.5", r.FormValue("price"))
		require.JSONEq(t, `["Hotel","Breakfast"]`, r.FormValue("included"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "hero.jpg", header.Filename)

		respond(w, http.StatusCreated, map[string]any{
			"success": true,
			"data":    map[string]any{"title": "Bali Escape"},
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api", srv.Client(), zerolog.Nop())

	pkg, err := c.CreatePackage(context.Background(), client.PackageForm{
		Title:    "Bali Escape",
		Route:    "Denpasar - Ubud",
		Duration: 5,
		Price:    1299.5,
		Included: []string{"Hotel", "Breakfast"},
		Status:   model.PackageStatusActive,
		Image: &client.FileAttachment{
			Filename: "hero.jpg",
			Reader:   strings.NewReader("fake-image-bytes"),
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Bali Escape", pkg.Title)
}

// TestSimilarTourPaths verifies positional tour addressing builds the
// expected URL.
func TestSimilarTourPaths(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		respond(w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api", srv.Client(), zerolog.Nop())

	require.NoError(t, c.DeleteSimilarTour(context.Background(), "pkg-1", 2))
	require.Equal(t, "/api/similar-tours/pkg-1/2", gotPath)
	require.Equal(t, http.MethodDelete, gotMethod)
}
