package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/travelia/travelia-backend/internal/model"
)

// ItineraryRepository handles itinerary day data access.
type ItineraryRepository struct {
	pool *pgxpool.Pool
}

// NewItineraryRepository creates a new ItineraryRepository.
func NewItineraryRepository(pool *pgxpool.Pool) *ItineraryRepository {
	return &ItineraryRepository{pool: pool}
}

// ListByPackage retrieves all days for a package ordered by day number.
// Duplicate day numbers are allowed; insertion order breaks ties.
func (r *ItineraryRepository) ListByPackage(ctx context.Context, packageID uuid.UUID) ([]model.ItineraryDay, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, package_id, day_number, title, description, activities, created_at, updated_at
		 FROM itinerary_days WHERE package_id = $1
		 ORDER BY day_number, created_at`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []model.ItineraryDay
	for rows.Next() {
		var d model.ItineraryDay
		if err := rows.Scan(&d.ID, &d.PackageID, &d.DayNumber, &d.Title, &d.Description,
			&d.Activities, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// GetByID retrieves a single itinerary day. Returns pgx.ErrNoRows when absent.
func (r *ItineraryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ItineraryDay, error) {
	var d model.ItineraryDay
	err := r.pool.QueryRow(ctx,
		`SELECT id, package_id, day_number, title, description, activities, created_at, updated_at
		 FROM itinerary_days WHERE id = $1`, id).
		Scan(&d.ID, &d.PackageID, &d.DayNumber, &d.Title, &d.Description,
			&d.Activities, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new itinerary day.
func (r *ItineraryRepository) Create(ctx context.Context, d *model.ItineraryDay) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO itinerary_days (package_id, day_number, title, description, activities)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		d.PackageID, d.DayNumber, d.Title, d.Description, d.Activities,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// Update rewrites an existing itinerary day.
func (r *ItineraryRepository) Update(ctx context.Context, d *model.ItineraryDay) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE itinerary_days SET day_number = $1, title = $2, description = $3,
			activities = $4, updated_at = NOW()
		 WHERE id = $5`,
		d.DayNumber, d.Title, d.Description, d.Activities, d.ID)
	return err
}

// Delete removes an itinerary day.
func (r *ItineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM itinerary_days WHERE id = $1`, id)
	return err
}
