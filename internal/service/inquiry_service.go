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

// ErrInquiryNotFound is returned when the referenced inquiry is absent.
var ErrInquiryNotFound = errors.New("inquiry not found")

// InquiryService owns contact form submissions.
type InquiryService struct {
	inquiryRepo *repository.InquiryRepository
	log         zerolog.Logger
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(inquiryRepo *repository.InquiryRepository, log zerolog.Logger) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		log:         log.With().Str("component", "inquiry_service").Logger(),
	}
}

// Create stores a new inquiry from the public contact form.
func (s *InquiryService) Create(ctx context.Context, q *model.Inquiry) error {
	if err := s.inquiryRepo.Create(ctx, q); err != nil {
		return err
	}
	s.log.Info().Str("email", q.Email).Msg("contact inquiry received")
	return nil
}

// List returns all inquiries, newest first.
func (s *InquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	return s.inquiryRepo.List(ctx)
}

// Delete removes an inquiry.
func (s *InquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInquiryNotFound
		}
		return err
	}
	return nil
}
