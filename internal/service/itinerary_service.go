package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/travelia/travelia-backend/internal/config"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/repository"
)

// ErrItineraryDayNotFound is returned when the referenced day is absent.
var ErrItineraryDayNotFound = errors.New("itinerary day not found")

// ItineraryService owns itinerary day CRUD. Days belong to exactly one
// package; day numbers are not required to be unique within it.
type ItineraryService struct {
	itineraryRepo *repository.ItineraryRepository
	packageRepo   *repository.PackageRepository
	rdb           *redis.Client
	log           zerolog.Logger
}

// NewItineraryService creates a new ItineraryService.
func NewItineraryService(
	itineraryRepo *repository.ItineraryRepository,
	packageRepo *repository.PackageRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ItineraryService {
	return &ItineraryService{
		itineraryRepo: itineraryRepo,
		packageRepo:   packageRepo,
		rdb:           rdb,
		log:           log.With().Str("component", "itinerary_service").Logger(),
	}
}

// ListByPackage returns a package's days ordered by day number.
func (s *ItineraryService) ListByPackage(ctx context.Context, packageID uuid.UUID) ([]model.ItineraryDay, error) {
	if _, err := s.packageRepo.GetByID(ctx, packageID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	days, err := s.itineraryRepo.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []model.ItineraryDay{}
	}
	return days, nil
}

// Create adds a day to a package after verifying the package exists.
func (s *ItineraryService) Create(ctx context.Context, d *model.ItineraryDay) error {
	if _, err := s.packageRepo.GetByID(ctx, d.PackageID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPackageNotFound
		}
		return err
	}
	if d.Activities == nil {
		d.Activities = []string{}
	}
	if err := s.itineraryRepo.Create(ctx, d); err != nil {
		return err
	}
	s.invalidateDetailCache(ctx, d.PackageID)
	return nil
}

// Update rewrites an existing day.
func (s *ItineraryService) Update(ctx context.Context, d *model.ItineraryDay) error {
	existing, err := s.itineraryRepo.GetByID(ctx, d.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrItineraryDayNotFound
		}
		return err
	}
	d.PackageID = existing.PackageID
	if d.Activities == nil {
		d.Activities = []string{}
	}
	if err := s.itineraryRepo.Update(ctx, d); err != nil {
		return err
	}
	s.invalidateDetailCache(ctx, d.PackageID)
	return nil
}

// Delete removes a day.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.itineraryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrItineraryDayNotFound
		}
		return err
	}
	if err := s.itineraryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateDetailCache(ctx, existing.PackageID)
	return nil
}

// The public detail page aggregates the package row with its days, so any
// day write has to drop that cache entry.
func (s *ItineraryService) invalidateDetailCache(ctx context.Context, packageID uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.PackageDetailKey(packageID)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("package detail cache invalidation failed")
	}
}
