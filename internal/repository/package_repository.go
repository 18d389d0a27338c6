package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/travelia/travelia-backend/internal/model"
)

// PackageRepository handles travel package data access, including the
// embedded similar-tours list stored as a jsonb column.
type PackageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository(pool *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{pool: pool}
}

const packageColumns = `id, title, route, duration, description, price, included,
	hero_image, brochure_url, status, similar_tours, created_at, updated_at`

func scanPackage(row interface{ Scan(...any) error }, p *model.TravelPackage) error {
	return row.Scan(&p.ID, &p.Title, &p.Route, &p.Duration, &p.Description, &p.Price,
		&p.Included, &p.HeroImage, &p.BrochureURL, &p.Status, &p.SimilarTours,
		&p.CreatedAt, &p.UpdatedAt)
}

// List retrieves all packages, newest first.
func (r *PackageRepository) List(ctx context.Context) ([]model.TravelPackage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+packageColumns+` FROM packages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []model.TravelPackage
	for rows.Next() {
		var p model.TravelPackage
		if err := scanPackage(rows, &p); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

// GetByID retrieves a single package. Returns pgx.ErrNoRows when absent.
func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TravelPackage, error) {
	var p model.TravelPackage
	row := r.pool.QueryRow(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id)
	if err := scanPackage(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new package and fills in server-assigned fields.
func (r *PackageRepository) Create(ctx context.Context, p *model.TravelPackage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO packages (title, route, duration, description, price, included,
			hero_image, brochure_url, status, similar_tours)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		p.Title, p.Route, p.Duration, p.Description, p.Price, p.Included,
		p.HeroImage, p.BrochureURL, p.Status, p.SimilarTours,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update rewrites all editable package fields.
func (r *PackageRepository) Update(ctx context.Context, p *model.TravelPackage) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE packages SET title = $1, route = $2, duration = $3, description = $4,
			price = $5, included = $6, hero_image = $7, brochure_url = $8, status = $9,
			updated_at = NOW()
		 WHERE id = $10`,
		p.Title, p.Route, p.Duration, p.Description, p.Price, p.Included,
		p.HeroImage, p.BrochureURL, p.Status, p.ID)
	return err
}

// Delete removes a package. Itinerary days cascade at the database level.
func (r *PackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	return err
}

// GetSimilarTours reads only the similar-tours list of a package.
func (r *PackageRepository) GetSimilarTours(ctx context.Context, id uuid.UUID) ([]model.SimilarTour, error) {
	var tours []model.SimilarTour
	err := r.pool.QueryRow(ctx,
		`SELECT similar_tours FROM packages WHERE id = $1`, id).Scan(&tours)
	if err != nil {
		return nil, err
	}
	return tours, nil
}

// SetSimilarTours replaces the similar-tours list of a package.
// AppendSimilarTour pushes one entry onto the stored list, but only while the
// list is below the cap. The length check lives in the UPDATE itself so
// concurrent appends cannot race past it. Returns false when the cap held the
// write back.
func (r *PackageRepository) AppendSimilarTour(ctx context.Context, id uuid.UUID, tour model.SimilarTour) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packages
		 SET similar_tours = similar_tours || $1, updated_at = NOW()
		 WHERE id = $2 AND jsonb_array_length(similar_tours) < $3`,
		tour, id, model.MaxSimilarTours)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PackageRepository) SetSimilarTours(ctx context.Context, id uuid.UUID, tours []model.SimilarTour) error {
	if tours == nil {
		tours = []model.SimilarTour{}
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE packages SET similar_tours = $1, updated_at = NOW() WHERE id = $2`,
		tours, id)
	return err
}
