package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Proctoring lifecycle errors.
var (
	ErrSessionNotFound  = errors.New("proctoring session not found")
	ErrSessionNotActive = errors.New("proctoring session is not active")
)

// maxRiskScore caps the heuristic risk score.
const maxRiskScore = 100

// crossedHighRisk reports whether the score moved over highRiskThreshold
// with this update. The score is monotone within a session, so the crossing
// happens at most once.
func crossedHighRisk(prev, next int) bool {
	return prev < highRiskThreshold && next >= highRiskThreshold
}

// severityWeight maps violation severities onto risk score contributions.
var severityWeight = map[model.ViolationSeverity]int{
	model.SeverityLow:    1,
	model.SeverityMedium: 3,
	model.SeverityHigh:   5,
}

// ComputeRiskScore sums severity weights over the violation list, capped at
// 100. The score is monotone non-decreasing as violations accumulate.
func ComputeRiskScore(violations []model.ProctoringViolation) int {
	score := 0
	for _, v := range violations {
		score += severityWeight[v.Severity]
	}
	if score > maxRiskScore {
		score = maxRiskScore
	}
	return score
}

// BuildSummary groups violations by type and renders a human-readable
// one-line summary.
func BuildSummary(sessionID string, riskScore int, violations []model.ProctoringViolation) model.ProctoringSummary {
	byType := make(map[string]int)
	for _, v := range violations {
		byType[v.Type]++
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s x%d", t, byType[t]))
	}
	summary := "No violations recorded"
	if len(parts) > 0 {
		summary = fmt.Sprintf("%d violation(s): %s", len(violations), strings.Join(parts, ", "))
	}

	return model.ProctoringSummary{
		SessionID:      sessionID,
		RiskScore:      riskScore,
		ViolationCount: len(violations),
		ByType:         byType,
		Summary:        summary,
	}
}

// violationEvent is the payload published to the invigilator feed channel.
type violationEvent struct {
	SessionID  string     `json:"session_id"`
	ExamID     uuid.UUID  `json:"exam_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Type       string     `json:"type"`
	Severity   string     `json:"severity"`
	RiskScore  int        `json:"risk_score"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// telemetryPayload is the queue entry consumed by the telemetry worker.
type telemetryPayload struct {
	SessionID   string `json:"session_id"`
	Keystrokes  int    `json:"keystrokes"`
	Clicks      int    `json:"clicks"`
	TabSwitches int    `json:"tab_switches"`
	Timestamp   int64  `json:"timestamp"`
}

// ProctoringService drives the proctoring session lifecycle: start, violation
// reporting with live fan-out, telemetry queueing, and session completion
// with risk scoring.
type ProctoringService struct {
	proctoringRepo   *repository.ProctoringRepository
	attemptRepo      *repository.AttemptRepository
	notificationRepo *repository.NotificationRepository
	rdb              *redis.Client
	logger           zerolog.Logger
}

// NewProctoringService creates a new ProctoringService.
func NewProctoringService(
	proctoringRepo *repository.ProctoringRepository,
	attemptRepo *repository.AttemptRepository,
	notificationRepo *repository.NotificationRepository,
	rdb *redis.Client,
	logger zerolog.Logger,
) *ProctoringService {
	return &ProctoringService{
		proctoringRepo:   proctoringRepo,
		attemptRepo:      attemptRepo,
		notificationRepo: notificationRepo,
		rdb:              rdb,
		logger:           logger.With().Str("component", "proctoring_service").Logger(),
	}
}

// StartSession opens an ACTIVE session under the caller-generated id.
func (s *ProctoringService) StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.ProctoringSession, error) {
	session := &model.ProctoringSession{
		SessionID:  req.SessionID,
		ExamID:     req.ExamID,
		UserID:     req.UserID,
		Status:     model.ProctoringStatusActive,
		Config:     req.Config,
		DeviceInfo: req.DeviceInfo,
	}
	if err := s.proctoringRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by id.
func (s *ProctoringService) GetSession(ctx context.Context, sessionID string) (*model.ProctoringSession, error) {
	session, err := s.proctoringRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// ReportViolation appends a violation to an active session, updates the
// running risk score, and publishes the event to the exam's invigilator
// channel. The violation is attributed to the most recent attempt for the
// exam; a missing attempt is tolerated and leaves the reference null.
func (s *ProctoringService) ReportViolation(ctx context.Context, sessionID string, req *model.ReportViolationRequest) (*model.ProctoringViolation, int, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if session.Status != model.ProctoringStatusActive {
		return nil, 0, ErrSessionNotActive
	}

	violation := &model.ProctoringViolation{
		SessionID:   sessionID,
		Type:        req.Type,
		Severity:    model.ViolationSeverity(req.Severity),
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	if attempt, err := s.attemptRepo.GetLatestByExam(ctx, req.ExamID); err == nil {
		violation.AttemptID = &attempt.ID
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, err
	}

	if err := s.proctoringRepo.AddViolation(ctx, violation); err != nil {
		return nil, 0, err
	}

	violations, err := s.proctoringRepo.ListViolations(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	riskScore := ComputeRiskScore(violations)
	if err := s.proctoringRepo.SetRiskScore(ctx, sessionID, riskScore); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("risk score update failed")
	}

	if crossedHighRisk(session.RiskScore, riskScore) && session.UserID != nil {
		s.notifyHighRisk(ctx, *session.UserID, sessionID, riskScore)
	}

	s.publishViolation(ctx, session, violation, riskScore)
	return violation, riskScore, nil
}

// notifyHighRisk drops a feed notification for the student when the session
// crosses the high-risk threshold. Best-effort: failure is logged only.
func (s *ProctoringService) notifyHighRisk(ctx context.Context, userID uuid.UUID, sessionID string, riskScore int) {
	n := &model.Notification{
		UserID: userID,
		Title:  "Proctoring alert",
		Body:   fmt.Sprintf("Your exam session has been flagged for review (risk score %d).", riskScore),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("high-risk notification failed")
	}
}

// publishViolation fans the event out to invigilators watching the exam.
// Best-effort: a Pub/Sub failure never fails the report.
func (s *ProctoringService) publishViolation(ctx context.Context, session *model.ProctoringSession, v *model.ProctoringViolation, riskScore int) {
	event := violationEvent{
		SessionID:  session.SessionID,
		ExamID:     session.ExamID,
		UserID:     session.UserID,
		Type:       v.Type,
		Severity:   string(v.Severity),
		RiskScore:  riskScore,
		RecordedAt: v.RecordedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	channel := config.CacheKey.ProctoringChannel(session.ExamID.String())
	if err := s.rdb.Publish(ctx, channel, data).Err(); err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.SessionID).Msg("violation publish failed")
	}
}

// EnqueueTelemetry pushes activity counter deltas onto the worker queue.
// The request path never touches Postgres for telemetry.
func (s *ProctoringService) EnqueueTelemetry(ctx context.Context, sessionID string, req *model.TelemetryEventRequest) error {
	payload := telemetryPayload{
		SessionID:   sessionID,
		Keystrokes:  req.Keystrokes,
		Clicks:      req.Clicks,
		TabSwitches: req.TabSwitches,
		Timestamp:   time.Now().Unix(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, config.WorkerKey.PersistTelemetryQueue, data).Err()
}

// EndSession completes a session: stores final counters, computes the risk
// score and summary, and merges the summary into the related attempt's
// proctoring data. The attempt merge is best-effort; a session without any
// attributable attempt still completes.
func (s *ProctoringService) EndSession(ctx context.Context, sessionID string, req *model.EndSessionRequest) (*model.ProctoringSummary, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.ProctoringStatusActive {
		return nil, ErrSessionNotActive
	}

	violations, err := s.proctoringRepo.ListViolations(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	riskScore := ComputeRiskScore(violations)
	summary := BuildSummary(sessionID, riskScore, violations)

	if err := s.proctoringRepo.CompleteSession(ctx, sessionID,
		req.KeystrokeCount, req.ClickCount, req.TabSwitchCount,
		riskScore, time.Now()); err != nil {
		return nil, err
	}

	s.mergeIntoAttempt(ctx, session.ExamID, &summary, violations)
	return &summary, nil
}

// mergeIntoAttempt writes the session outcome into the most recent attempt
// for the exam. Failure to find or update the attempt is logged, not fatal.
func (s *ProctoringService) mergeIntoAttempt(ctx context.Context, examID uuid.UUID, summary *model.ProctoringSummary, violations []model.ProctoringViolation) {
	attempt, err := s.attemptRepo.GetLatestByExam(ctx, examID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().Err(err).Str("session_id", summary.SessionID).Msg("attempt lookup failed during merge")
		}
		return
	}

	merged := struct {
		model.ProctoringSummary
		Violations []model.ProctoringViolation `json:"violations"`
	}{*summary, violations}

	data, err := json.Marshal(merged)
	if err != nil {
		return
	}
	if err := s.attemptRepo.UpdateProctoringData(ctx, attempt.ID, data); err != nil {
		s.logger.Warn().Err(err).Str("attempt_id", attempt.ID.String()).Msg("proctoring data merge failed")
	}
}

// ListViolations returns a session's violations.
func (s *ProctoringService) ListViolations(ctx context.Context, sessionID string) ([]model.ProctoringViolation, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.proctoringRepo.ListViolations(ctx, sessionID)
}

// ListExamSessions returns all sessions recorded for an exam.
func (s *ProctoringService) ListExamSessions(ctx context.Context, examID uuid.UUID) ([]model.ProctoringSession, error) {
	return s.proctoringRepo.ListSessionsByExam(ctx, examID)
}
