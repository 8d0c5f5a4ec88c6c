package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the admin dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalExams, totalQuestions, totalAttempts int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM exams),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM exam_attempts)`,
	).Scan(&totalStudents, &totalExams, &totalQuestions, &totalAttempts)
	return
}

// GetExamStatusCounts retrieves the distribution of exams by status.
func (r *DashboardRepository) GetExamStatusCounts(ctx context.Context) (map[model.ExamStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM exams GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ExamStatus]int)
	for rows.Next() {
		var status model.ExamStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// DashboardRecentExam represents minimal data for recently attempted exams.
type DashboardRecentExam struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Subject        string     `json:"subject"`
	LastAttemptAt  *time.Time `json:"last_attempt_at"`
	AttemptCount   int        `json:"attempt_count"`
	AveragePercent *float64   `json:"average_percentage"`
}

// GetRecentExamActivity retrieves the last N exams by attempt recency with
// aggregate attempt stats.
func (r *DashboardRepository) GetRecentExamActivity(ctx context.Context, limit int) ([]DashboardRecentExam, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			e.id,
			e.title,
			e.subject,
			MAX(a.created_at) AS last_attempt_at,
			COUNT(a.id) AS attempt_count,
			AVG(a.percentage) AS average_percentage
		FROM exams e
		JOIN exam_attempts a ON e.id = a.exam_id
		GROUP BY e.id, e.title, e.subject
		ORDER BY last_attempt_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DashboardRecentExam
	for rows.Next() {
		var e DashboardRecentExam
		if err := rows.Scan(&e.ID, &e.Title, &e.Subject, &e.LastAttemptAt,
			&e.AttemptCount, &e.AveragePercent); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	if results == nil {
		results = []DashboardRecentExam{}
	}
	return results, rows.Err()
}

// GetHighRiskSessions returns recently completed proctoring sessions with a
// risk score at or above the threshold.
func (r *DashboardRepository) GetHighRiskSessions(ctx context.Context, threshold, limit int) ([]model.ProctoringSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT session_id, exam_id, user_id, status, config, device_info,
		        keystroke_count, click_count, tab_switch_count, violation_count,
		        risk_score, started_at, ended_at
		 FROM proctoring_sessions
		 WHERE status = $1 AND risk_score >= $2
		 ORDER BY ended_at DESC
		 LIMIT $3`,
		model.ProctoringStatusCompleted, threshold, limit)
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
	if sessions == nil {
		sessions = []model.ProctoringSession{}
	}
	return sessions, rows.Err()
}
