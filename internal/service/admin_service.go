package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/repository"
)

// ErrAdminNotFound is returned when the referenced admin is absent.
var ErrAdminNotFound = errors.New("admin not found")

// AdminService owns administrator account lookups and creation.
type AdminService struct {
	adminRepo *repository.AdminRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// GetByEmail looks up an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// GetByID looks up an admin by id.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// Create inserts a new admin account. The caller provides the password hash.
func (s *AdminService) Create(ctx context.Context, admin *model.Admin) error {
	if admin.Role == "" {
		admin.Role = "admin"
	}
	return s.adminRepo.Create(ctx, admin)
}
