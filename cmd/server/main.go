package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/travelia/travelia-backend/internal/config"
	"github.com/travelia/travelia-backend/internal/database"
	"github.com/travelia/travelia-backend/internal/handler"
	"github.com/travelia/travelia-backend/internal/logger"
	"github.com/travelia/travelia-backend/internal/repository"
	"github.com/travelia/travelia-backend/internal/router"
	"github.com/travelia/travelia-backend/internal/service"
	"github.com/travelia/travelia-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Travelia Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	packageRepo := repository.NewPackageRepository(pool)
	itineraryRepo := repository.NewItineraryRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	inquiryRepo := repository.NewInquiryRepository(pool)
	testimonialRepo := repository.NewTestimonialRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	adminService := service.NewAdminService(adminRepo)
	packageService := service.NewPackageService(packageRepo, itineraryRepo, rdb, cfg, log)
	itineraryService := service.NewItineraryService(itineraryRepo, packageRepo, rdb, log)
	mediaService := service.NewMediaService(cfg, log)
	inquiryService := service.NewInquiryService(inquiryRepo, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, adminService),
		Package:     handler.NewPackageHandler(packageService, mediaService),
		Itinerary:   handler.NewItineraryHandler(itineraryService),
		SimilarTour: handler.NewSimilarTourHandler(packageService, mediaService),
		Media:       handler.NewMediaHandler(mediaService),
		Inquiry:     handler.NewInquiryHandler(inquiryService),
		Testimonial: handler.NewTestimonialHandler(testimonialService),
	}

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load the public package list into Redis BEFORE accepting traffic
	// so the first page hit never pays the database round trip.
	if err := packageService.PrewarmListCache(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
