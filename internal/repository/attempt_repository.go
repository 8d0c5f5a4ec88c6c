package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/model"
)

// Sentinel errors distinguishing DB constraint classes for attempt writes.
var (
	ErrExamNotFound     = errors.New("referenced exam does not exist")
	ErrDuplicateAttempt = errors.New("attempt with this key already exists")
)

// AttemptRepository handles exam attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create inserts a new attempt row. Foreign key violations (bad exam id) and
// unique violations are mapped to distinct sentinel errors so callers can
// surface different messages.
func (r *AttemptRepository) Create(ctx context.Context, a *model.ExamAttempt) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exam_attempts (exam_id, user_id, score, total_marks, percentage, time_taken_seconds, answers, proctoring_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		a.ExamID, a.UserID, a.Score, a.TotalMarks, a.Percentage,
		a.TimeTakenSeconds, a.Answers, a.ProctoringData,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return ErrExamNotFound
			case "23505":
				return ErrDuplicateAttempt
			}
		}
		return err
	}
	return nil
}

// GetByID retrieves an attempt by its UUID.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamAttempt, error) {
	a := &model.ExamAttempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, user_id, score, total_marks, percentage, time_taken_seconds, answers, proctoring_data, created_at
		 FROM exam_attempts WHERE id = $1`, id,
	).Scan(&a.ID, &a.ExamID, &a.UserID, &a.Score, &a.TotalMarks, &a.Percentage,
		&a.TimeTakenSeconds, &a.Answers, &a.ProctoringData, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetLatestByExam returns the most recent attempt for an exam, ordered by
// creation time. Violation attribution resolves through this lookup rather
// than an explicit session-attempt link, so concurrent sessions on the same
// exam can misattribute events. Kept for compatibility with existing clients.
func (r *AttemptRepository) GetLatestByExam(ctx context.Context, examID uuid.UUID) (*model.ExamAttempt, error) {
	a := &model.ExamAttempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, user_id, score, total_marks, percentage, time_taken_seconds, answers, proctoring_data, created_at
		 FROM exam_attempts WHERE exam_id = $1
		 ORDER BY created_at DESC LIMIT 1`, examID,
	).Scan(&a.ID, &a.ExamID, &a.UserID, &a.Score, &a.TotalMarks, &a.Percentage,
		&a.TimeTakenSeconds, &a.Answers, &a.ProctoringData, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByUser retrieves all attempts for a user, newest first, joined with the
// exam's subject for the analytics scan.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AttemptForDashboard, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.exam_id, e.subject, a.percentage, a.created_at
		 FROM exam_attempts a JOIN exams e ON a.exam_id = e.id
		 WHERE a.user_id = $1
		 ORDER BY a.created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.AttemptForDashboard
	for rows.Next() {
		var a model.AttemptForDashboard
		if err := rows.Scan(&a.ExamID, &a.Subject, &a.Percentage, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ListFullByUser retrieves full attempt rows for a user, newest first.
func (r *AttemptRepository) ListFullByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ExamAttempt, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam_attempts WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, user_id, score, total_marks, percentage, time_taken_seconds, answers, proctoring_data, created_at
		 FROM exam_attempts WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var attempts []model.ExamAttempt
	for rows.Next() {
		var a model.ExamAttempt
		if err := rows.Scan(&a.ID, &a.ExamID, &a.UserID, &a.Score, &a.TotalMarks,
			&a.Percentage, &a.TimeTakenSeconds, &a.Answers, &a.ProctoringData, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		attempts = append(attempts, a)
	}
	return attempts, total, rows.Err()
}

// UpdateProctoringData merges a proctoring summary blob into an attempt.
func (r *AttemptRepository) UpdateProctoringData(ctx context.Context, id uuid.UUID, data []byte) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exam_attempts SET proctoring_data = $1 WHERE id = $2`,
		data, id)
	return err
}
