package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
)

// ErrAdminNotFound is returned when an admin id does not resolve.
var ErrAdminNotFound = errors.New("admin not found")

// AdminUserService handles admin account management.
type AdminUserService struct {
	adminRepo *repository.AdminRepository
	auth      *AuthService
}

// NewAdminUserService creates a new AdminUserService.
func NewAdminUserService(adminRepo *repository.AdminRepository, auth *AuthService) *AdminUserService {
	return &AdminUserService{adminRepo: adminRepo, auth: auth}
}

// ListAdmins retrieves all admin accounts.
func (s *AdminUserService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.adminRepo.List(ctx)
}

// CreateAdmin creates a new admin account.
func (s *AdminUserService) CreateAdmin(ctx context.Context, req *model.CreateAdminRequest) (*model.Admin, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	// Reload to pick up the joined role name.
	return s.adminRepo.GetByID(ctx, admin.ID)
}

// UpdateAdmin applies a partial update to an admin account. An empty password
// leaves the current one in place.
func (s *AdminUserService) UpdateAdmin(ctx context.Context, id int, req *model.UpdateAdminRequest) (*model.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		admin.Name = req.Name
	}
	if req.Email != "" {
		admin.Email = req.Email
	}
	if req.RoleID > 0 {
		admin.RoleID = req.RoleID
	}
	admin.PasswordHash = ""
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return s.adminRepo.GetByID(ctx, id)
}

// DeleteAdmin removes an admin account.
func (s *AdminUserService) DeleteAdmin(ctx context.Context, id int) error {
	return s.adminRepo.Delete(ctx, id)
}
