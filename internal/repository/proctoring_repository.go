package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/model"
)

// ErrDuplicateSession is returned when a caller-generated session id collides.
var ErrDuplicateSession = errors.New("proctoring session with this id already exists")

// ProctoringRepository handles proctoring session and violation data access.
type ProctoringRepository struct {
	pool *pgxpool.Pool
}

// NewProctoringRepository creates a new ProctoringRepository.
func NewProctoringRepository(pool *pgxpool.Pool) *ProctoringRepository {
	return &ProctoringRepository{pool: pool}
}

// CreateSession inserts a new ACTIVE session row.
func (r *ProctoringRepository) CreateSession(ctx context.Context, s *model.ProctoringSession) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO proctoring_sessions (session_id, exam_id, user_id, status, config, device_info)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING started_at`,
		s.SessionID, s.ExamID, s.UserID, s.Status, s.Config, s.DeviceInfo,
	).Scan(&s.StartedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSession
		}
		return err
	}
	return nil
}

// GetSession retrieves a session by its caller-generated id.
func (r *ProctoringRepository) GetSession(ctx context.Context, sessionID string) (*model.ProctoringSession, error) {
	s := &model.ProctoringSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT session_id, exam_id, user_id, status, config, device_info,
		        keystroke_count, click_count, tab_switch_count, violation_count,
		        risk_score, started_at, ended_at
		 FROM proctoring_sessions WHERE session_id = $1`, sessionID,
	).Scan(&s.SessionID, &s.ExamID, &s.UserID, &s.Status, &s.Config, &s.DeviceInfo,
		&s.KeystrokeCount, &s.ClickCount, &s.TabSwitchCount, &s.ViolationCount,
		&s.RiskScore, &s.StartedAt, &s.EndedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// AddViolation appends one violation row and bumps the session counter.
func (r *ProctoringRepository) AddViolation(ctx context.Context, v *model.ProctoringViolation) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO proctoring_violations (session_id, attempt_id, type, severity, description, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, recorded_at`,
		v.SessionID, v.AttemptID, v.Type, v.Severity, v.Description, v.Metadata,
	).Scan(&v.ID, &v.RecordedAt)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE proctoring_sessions SET violation_count = violation_count + 1
		 WHERE session_id = $1`, v.SessionID)
	return err
}

// ListViolations returns all violations of a session in recording order.
func (r *ProctoringRepository) ListViolations(ctx context.Context, sessionID string) ([]model.ProctoringViolation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, attempt_id, type, severity, description, metadata, recorded_at
		 FROM proctoring_violations WHERE session_id = $1
		 ORDER BY recorded_at ASC, id ASC`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var violations []model.ProctoringViolation
	for rows.Next() {
		var v model.ProctoringViolation
		if err := rows.Scan(&v.ID, &v.SessionID, &v.AttemptID, &v.Type, &v.Severity,
			&v.Description, &v.Metadata, &v.RecordedAt); err != nil {
			return nil, err
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}

// CompleteSession marks a session COMPLETED with final counters and risk score.
func (r *ProctoringRepository) CompleteSession(ctx context.Context, sessionID string, keystrokes, clicks, tabSwitches, riskScore int, endedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE proctoring_sessions
		 SET status = $1, keystroke_count = $2, click_count = $3,
		     tab_switch_count = $4, risk_score = $5, ended_at = $6
		 WHERE session_id = $7`,
		model.ProctoringStatusCompleted, keystrokes, clicks, tabSwitches,
		riskScore, endedAt, sessionID)
	return err
}

// SetRiskScore stores the current computed risk score for a session.
func (r *ProctoringRepository) SetRiskScore(ctx context.Context, sessionID string, riskScore int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE proctoring_sessions SET risk_score = $1 WHERE session_id = $2`,
		riskScore, sessionID)
	return err
}

// ListSessionsByExam returns sessions for an exam, newest first.
func (r *ProctoringRepository) ListSessionsByExam(ctx context.Context, examID uuid.UUID) ([]model.ProctoringSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT session_id, exam_id, user_id, status, config, device_info,
		        keystroke_count, click_count, tab_switch_count, violation_count,
		        risk_score, started_at, ended_at
		 FROM proctoring_sessions WHERE exam_id = $1
		 ORDER BY started_at DESC`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.ProctoringSession
	for rows.Next() {
		var s model.ProctoringSession
		if err := rows.Scan(&s.SessionID, &s.ExamID, &s.UserID, &s.Status, &s.Config,
			&s.DeviceInfo, &s.KeystrokeCount, &s.ClickCount, &s.TabSwitchCount,
			&s.ViolationCount, &s.RiskScore, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
