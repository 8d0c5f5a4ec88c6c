package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/model"
)

// ErrDuplicateAdminEmail is returned when an admin email is already taken.
var ErrDuplicateAdminEmail = errors.New("admin with this email already exists")

// AdminRepository handles admin data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.email, a.name, a.password_hash, a.role_id, r.name, a.created_at, a.updated_at
		 FROM admins a JOIN roles r ON a.role_id = r.id
		 WHERE a.id = $1`, id,
	).Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByEmail retrieves an admin by their unique email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.email, a.name, a.password_hash, a.role_id, r.name, a.created_at, a.updated_at
		 FROM admins a JOIN roles r ON a.role_id = r.id
		 WHERE a.email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List retrieves all admins ordered by name.
func (r *AdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.email, a.name, a.password_hash, a.role_id, r.name, a.created_at, a.updated_at
		 FROM admins a JOIN roles r ON a.role_id = r.id
		 ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.RoleID,
			&a.RoleName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// Create inserts a new admin.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admins (email, name, password_hash, role_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		a.Email, a.Name, a.PasswordHash, a.RoleID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdminEmail
		}
		return err
	}
	return nil
}

// Update modifies an existing admin. An empty password hash leaves the
// current password untouched.
func (r *AdminRepository) Update(ctx context.Context, a *model.Admin) error {
	var err error
	if a.PasswordHash != "" {
		_, err = r.pool.Exec(ctx,
			`UPDATE admins SET email = $1, name = $2, password_hash = $3, role_id = $4, updated_at = NOW()
			 WHERE id = $5`,
			a.Email, a.Name, a.PasswordHash, a.RoleID, a.ID)
	} else {
		_, err = r.pool.Exec(ctx,
			`UPDATE admins SET email = $1, name = $2, role_id = $3, updated_at = NOW()
			 WHERE id = $4`,
			a.Email, a.Name, a.RoleID, a.ID)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdminEmail
		}
	}
	return err
}

// Delete removes an admin by ID.
func (r *AdminRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	return err
}
