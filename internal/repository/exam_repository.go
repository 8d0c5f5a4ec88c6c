package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/model"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, title, type, subject, duration_minutes, total_marks,
	instructions, security, created_by, origin, status, created_at, updated_at`

func scanExam(row interface{ Scan(...any) error }, e *model.Exam) error {
	return row.Scan(&e.ID, &e.Title, &e.Type, &e.Subject, &e.DurationMinutes,
		&e.TotalMarks, &e.Instructions, &e.Security, &e.CreatedBy, &e.Origin,
		&e.Status, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID retrieves an exam by its UUID.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id), e)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ExamFilter narrows exam listings.
type ExamFilter struct {
	Type    *model.ExamType
	Subject *string
	Status  *model.ExamStatus
}

// ListPaginated retrieves exams matching the filter with pagination.
func (r *ExamRepository) ListPaginated(ctx context.Context, f ExamFilter, limit, offset int) ([]model.Exam, int, error) {
	where := ""
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		if where == "" {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		where += cond + `$` + strconv.Itoa(len(args))
	}
	if f.Type != nil {
		add(`type = `, *f.Type)
	}
	if f.Subject != nil {
		add(`subject = `, *f.Subject)
	}
	if f.Status != nil {
		add(`status = `, *f.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + examColumns + ` FROM exams` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := scanExam(rows, &e); err != nil {
			return nil, 0, err
		}
		exams = append(exams, e)
	}
	return exams, total, rows.Err()
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (title, type, subject, duration_minutes, total_marks, instructions, security, created_by, origin, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Type, e.Subject, e.DurationMinutes, e.TotalMarks,
		e.Instructions, e.Security, e.CreatedBy, e.Origin, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update modifies an existing exam.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams
		 SET title = $1, type = $2, subject = $3, duration_minutes = $4,
		     total_marks = $5, instructions = $6, security = $7, updated_at = NOW()
		 WHERE id = $8`,
		e.Title, e.Type, e.Subject, e.DurationMinutes, e.TotalMarks,
		e.Instructions, e.Security, e.ID)
	return err
}

// UpdateStatus updates an exam's status.
func (r *ExamRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ExamStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	return err
}

// Delete removes an exam by ID. Questions cascade at the DB level.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}

// ListActive returns all exams with ACTIVE status.
// Used for cache prewarming on application startup.
func (r *ExamRepository) ListActive(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams WHERE status = $1
		 ORDER BY created_at DESC`, model.ExamStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := scanExam(rows, &e); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
