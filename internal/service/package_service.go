package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/travelia/travelia-backend/internal/config"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/repository"
)

// Sentinel errors for package operations.
var (
	ErrPackageNotFound = errors.New("package not found")
	ErrTourLimit       = errors.New("similar tour limit reached")
	ErrTourIndex       = errors.New("similar tour index out of range")
)

// PackageService owns travel package CRUD, the embedded similar-tours list
// and the Redis-backed public list cache.
type PackageService struct {
	packageRepo   *repository.PackageRepository
	itineraryRepo *repository.ItineraryRepository
	rdb           *redis.Client
	cfg           *config.Config
	log           zerolog.Logger
}

// NewPackageService creates a new PackageService.
func NewPackageService(
	packageRepo *repository.PackageRepository,
	itineraryRepo *repository.ItineraryRepository,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *PackageService {
	return &PackageService{
		packageRepo:   packageRepo,
		itineraryRepo: itineraryRepo,
		rdb:           rdb,
		cfg:           cfg,
		log:           log.With().Str("component", "package_service").Logger(),
	}
}

// List returns all packages, served from the Redis cache when warm.
func (s *PackageService) List(ctx context.Context) ([]model.TravelPackage, error) {
	key := config.CacheKey.PackageListKey()

	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var packages []model.TravelPackage
		if err := json.Unmarshal(cached, &packages); err == nil {
			return packages, nil
		}
		// Corrupt cache entry; fall through to the database.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("package list cache read failed")
	}

	packages, err := s.packageRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(packages); err == nil {
		if err := s.rdb.Set(ctx, key, payload, s.cfg.PackageCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("package list cache write failed")
		}
	}

	return packages, nil
}

// GetDetail returns the package + itinerary aggregate for the detail page,
// served from the Redis cache when warm. Itinerary days come back ordered by
// day number.
func (s *PackageService) GetDetail(ctx context.Context, id uuid.UUID) (*model.PackageDetail, error) {
	key := config.CacheKey.PackageDetailKey(id)

	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var detail model.PackageDetail
		if err := json.Unmarshal(cached, &detail); err == nil {
			return &detail, nil
		}
		// Corrupt cache entry; fall through to the database.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("package detail cache read failed")
	}

	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	days, err := s.itineraryRepo.ListByPackage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list itinerary: %w", err)
	}
	if days == nil {
		days = []model.ItineraryDay{}
	}

	detail := &model.PackageDetail{Package: *pkg, Itinerary: days}

	if payload, err := json.Marshal(detail); err == nil {
		if err := s.rdb.Set(ctx, key, payload, s.cfg.PackageCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("package detail cache write failed")
		}
	}

	return detail, nil
}

// Create inserts a new package and invalidates the list cache.
func (s *PackageService) Create(ctx context.Context, pkg *model.TravelPackage) error {
	if pkg.HeroImage == "" {
		pkg.HeroImage = model.DefaultHeroImage
	}
	if pkg.Status == "" {
		pkg.Status = model.PackageStatusActive
	}
	if pkg.Included == nil {
		pkg.Included = []string{}
	}
	if pkg.SimilarTours == nil {
		pkg.SimilarTours = []model.SimilarTour{}
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

// Update rewrites a package's editable fields and invalidates the list cache.
func (s *PackageService) Update(ctx context.Context, pkg *model.TravelPackage) error {
	if _, err := s.packageRepo.GetByID(ctx, pkg.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPackageNotFound
		}
		return err
	}
	if pkg.Included == nil {
		pkg.Included = []string{}
	}

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	s.invalidateDetailCache(ctx, pkg.ID)
	return nil
}

// Delete removes a package and invalidates the list cache.
func (s *PackageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.packageRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPackageNotFound
		}
		return err
	}

	if err := s.packageRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	s.invalidateDetailCache(ctx, id)
	return nil
}

// ─── Similar tours ─────────────────────────────────────────────────────

// SimilarTours returns a package's cross-sell entries.
func (s *PackageService) SimilarTours(ctx context.Context, packageID uuid.UUID) ([]model.SimilarTour, error) {
	tours, err := s.packageRepo.GetSimilarTours(ctx, packageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if tours == nil {
		tours = []model.SimilarTour{}
	}
	return tours, nil
}

// AddSimilarTour appends an entry, enforcing the cap of three. The append is
// guarded in SQL so two concurrent adds cannot overshoot the cap.
func (s *PackageService) AddSimilarTour(ctx context.Context, packageID uuid.UUID, tour model.SimilarTour) error {
	if _, err := s.packageRepo.GetByID(ctx, packageID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPackageNotFound
		}
		return err
	}

	appended, err := s.packageRepo.AppendSimilarTour(ctx, packageID, tour)
	if err != nil {
		return err
	}
	if !appended {
		return ErrTourLimit
	}

	s.invalidateListCache(ctx)
	s.invalidateDetailCache(ctx, packageID)
	return nil
}

// UpdateSimilarTour replaces the entry at the given position. Empty fields on
// the replacement keep the stored value, so an edit without a new image
// preserves the existing one.
func (s *PackageService) UpdateSimilarTour(ctx context.Context, packageID uuid.UUID, index int, tour model.SimilarTour) error {
	tours, err := s.SimilarTours(ctx, packageID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(tours) {
		return ErrTourIndex
	}

	if tour.Title != "" {
		tours[index].Title = tour.Title
	}
	if tour.Description != "" {
		tours[index].Description = tour.Description
	}
	if tour.Image != "" {
		tours[index].Image = tour.Image
	}

	if err := s.packageRepo.SetSimilarTours(ctx, packageID, tours); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	s.invalidateDetailCache(ctx, packageID)
	return nil
}

// DeleteSimilarTour removes the entry at the given position. Entries after it
// shift down, which is why positional addressing is fragile under concurrent
// edits; the admin UI re-fetches after every write to compensate.
func (s *PackageService) DeleteSimilarTour(ctx context.Context, packageID uuid.UUID, index int) error {
	tours, err := s.SimilarTours(ctx, packageID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(tours) {
		return ErrTourIndex
	}

	tours = append(tours[:index], tours[index+1:]...)
	if err := s.packageRepo.SetSimilarTours(ctx, packageID, tours); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	s.invalidateDetailCache(ctx, packageID)
	return nil
}

// PrewarmListCache loads the package list into Redis before accepting traffic.
func (s *PackageService) PrewarmListCache(ctx context.Context) error {
	_, err := s.List(ctx)
	return err
}

func (s *PackageService) invalidateListCache(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.PackageListKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("package list cache invalidation failed")
	}
}

func (s *PackageService) invalidateDetailCache(ctx context.Context, id uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.PackageDetailKey(id)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("package detail cache invalidation failed")
	}
}
