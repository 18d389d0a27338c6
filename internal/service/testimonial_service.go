package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/repository"
)

// ErrTestimonialNotFound is returned when the referenced testimonial is absent.
var ErrTestimonialNotFound = errors.New("testimonial not found")

// TestimonialService owns customer testimonials shown on the marketing site.
type TestimonialService struct {
	testimonialRepo *repository.TestimonialRepository
	log             zerolog.Logger
}

// NewTestimonialService creates a new TestimonialService.
func NewTestimonialService(testimonialRepo *repository.TestimonialRepository, log zerolog.Logger) *TestimonialService {
	return &TestimonialService{
		testimonialRepo: testimonialRepo,
		log:             log.With().Str("component", "testimonial_service").Logger(),
	}
}

// List returns all testimonials, newest first.
func (s *TestimonialService) List(ctx context.Context) ([]model.Testimonial, error) {
	return s.testimonialRepo.List(ctx)
}

// Create publishes a new testimonial.
func (s *TestimonialService) Create(ctx context.Context, t *model.Testimonial) error {
	return s.testimonialRepo.Create(ctx, t)
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.testimonialRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTestimonialNotFound
		}
		return err
	}
	return nil
}
