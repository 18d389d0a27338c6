package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/travelia/travelia-backend/internal/config"
	"github.com/travelia/travelia-backend/internal/handler"
	"github.com/travelia/travelia-backend/internal/middleware"
	"github.com/travelia/travelia-backend/internal/response"
	"github.com/travelia/travelia-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Package     *handler.PackageHandler
	Itinerary   *handler.ItineraryHandler
	SimilarTour *handler.SimilarTourHandler
	Media       *handler.MediaHandler
	Inquiry     *handler.InquiryHandler
	Testimonial *handler.TestimonialHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally for log correlation.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Rate Limited) ──────────────────────────────────
	auth := router.Group("/api/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated session routes
		auth.GET("/verify",
			middleware.RequireAdminJWT(authService),
			middleware.CheckActiveSession(authService),
			handlers.Auth.Verify,
		)
		auth.POST("/logout",
			middleware.RequireAdminJWT(authService),
			handlers.Auth.Logout,
		)
	}

	// ─── 2. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api")
	{
		public.GET("/packages", handlers.Package.List)
		public.GET("/packages/:id", handlers.Package.Get)
		public.GET("/packages/:id/itinerary", handlers.Itinerary.ListByPackage)
		public.GET("/testimonials", handlers.Testimonial.List)
		public.POST("/contact", handlers.Inquiry.Create)
	}

	// ─── 3. Similar Tours (JWT + Active Session) ───────────────────────
	similar := router.Group("/api/similar-tours")
	similar.Use(
		middleware.RequireAdminJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		similar.GET("/:packageId", handlers.SimilarTour.List)
		similar.POST("/:packageId", handlers.SimilarTour.Create)
		similar.PUT("/:packageId/:index", handlers.SimilarTour.Update)
		similar.DELETE("/:packageId/:index", handlers.SimilarTour.Delete)
	}

	// ─── 4. Admin Group (JWT + Active Session) ─────────────────────────
	adminAPI := router.Group("/api/admin")
	adminAPI.Use(
		middleware.RequireAdminJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		// Package management
		adminAPI.POST("/packages", handlers.Package.Create)
		adminAPI.PUT("/packages/:id", handlers.Package.Update)
		adminAPI.DELETE("/packages/:id", handlers.Package.Delete)

		// Itinerary management
		adminAPI.POST("/itinerary", handlers.Itinerary.Create)
		adminAPI.PUT("/itinerary/:id", handlers.Itinerary.Update)
		adminAPI.DELETE("/itinerary/:id", handlers.Itinerary.Delete)

		// Standalone image uploads
		adminAPI.POST("/upload/image", handlers.Media.Upload)
		adminAPI.DELETE("/upload/image", handlers.Media.Delete)

		// Contact inquiries
		adminAPI.GET("/inquiries", handlers.Inquiry.List)
		adminAPI.DELETE("/inquiries/:id", handlers.Inquiry.Delete)

		// Testimonials
		adminAPI.POST("/testimonials", handlers.Testimonial.Create)
		adminAPI.DELETE("/testimonials/:id", handlers.Testimonial.Delete)
	}

	return router
}
