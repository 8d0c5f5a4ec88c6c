package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/model"
)

// ErrDuplicateEmail is returned when a profile email is already registered.
var ErrDuplicateEmail = errors.New("profile with this email already exists")

// ProfileRepository handles student profile data access.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, institution, level, password_hash, created_at, updated_at
		 FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Institution, &p.Level,
		&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByEmail retrieves a profile by its unique email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, institution, level, password_hash, created_at, updated_at
		 FROM profiles WHERE email = $1`, email,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Institution, &p.Level,
		&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new profile.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (name, email, phone, institution, level, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Email, p.Phone, p.Institution, p.Level, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// ListPaginated retrieves profiles with pagination and optional level filter.
func (r *ProfileRepository) ListPaginated(ctx context.Context, level *model.ExamType, limit, offset int) ([]model.Profile, int, error) {
	countQuery := `SELECT COUNT(*) FROM profiles`
	var countArgs []interface{}
	if level != nil {
		countQuery += ` WHERE level = $1`
		countArgs = append(countArgs, *level)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, email, phone, institution, level, password_hash, created_at, updated_at FROM profiles`
	var args []interface{}
	if level != nil {
		query += ` WHERE level = $1 ORDER BY name LIMIT $2 OFFSET $3`
		args = append(args, *level, limit, offset)
	} else {
		query += ` ORDER BY name LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Institution,
			&p.Level, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

// Update modifies a profile's basic info (excluding password).
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE profiles SET name = $1, phone = $2, institution = $3, level = $4, updated_at = NOW()
		 WHERE id = $5`,
		p.Name, p.Phone, p.Institution, p.Level, p.ID)
	return err
}

// Delete removes a profile by ID.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	return err
}
