package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Common exam errors.
var (
	ErrExamNotFound      = errors.New("exam not found")
	ErrExamNotActive     = errors.New("exam is not active")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// examCacheTTL bounds staleness if an exam is edited without re-activation.
const examCacheTTL = 12 * time.Hour

// ExamService handles exam catalog business logic and the Redis payload
// cache for active exams.
type ExamService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	logger       zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
	logger zerolog.Logger,
) *ExamService {
	return &ExamService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		rdb:          rdb,
		logger:       logger.With().Str("component", "exam_service").Logger(),
	}
}

// GetExam retrieves a single exam with its question count.
func (s *ExamService) GetExam(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	count, err := s.questionRepo.CountByExam(ctx, id)
	if err != nil {
		return nil, err
	}
	exam.QuestionCount = count
	return exam, nil
}

// ListExams retrieves exams matching the filter with pagination.
func (s *ExamService) ListExams(ctx context.Context, f repository.ExamFilter, limit, offset int) ([]model.Exam, int, error) {
	return s.examRepo.ListPaginated(ctx, f, limit, offset)
}

// CreateExam creates an exam, optionally with an inline question batch.
// Question inserts are independent; partial failure is reported per item and
// never rolls back the exam or the already-saved questions.
func (s *ExamService) CreateExam(ctx context.Context, req *model.CreateExamRequest, createdBy *int) (*model.Exam, []model.QuestionBatchResult, error) {
	origin := model.ExamOriginAdmin
	if req.Origin != "" {
		origin = model.ExamOrigin(req.Origin)
	}
	if createdBy == nil && origin == model.ExamOriginAdmin {
		origin = model.ExamOriginStudent
	}

	exam := &model.Exam{
		Title:           req.Title,
		Type:            model.ExamType(req.Type),
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		Instructions:    req.Instructions,
		Security:        req.Security,
		CreatedBy:       createdBy,
		Origin:          origin,
		Status:          model.ExamStatusDraft,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, nil, err
	}

	var results []model.QuestionBatchResult
	if len(req.Questions) > 0 {
		results = s.insertQuestionBatch(ctx, exam.ID, req.Questions)
		for _, r := range results {
			if r.Saved {
				exam.QuestionCount++
			}
		}
	}
	return exam, results, nil
}

// insertQuestionBatch inserts questions one by one, recording per-item
// outcomes. Items whose correct answer is not among the options are rejected
// before touching the database.
func (s *ExamService) insertQuestionBatch(ctx context.Context, examID uuid.UUID, reqs []model.AddQuestionRequest) []model.QuestionBatchResult {
	results := make([]model.QuestionBatchResult, 0, len(reqs))
	for i, qr := range reqs {
		q := buildQuestion(examID, i, qr)
		if !q.HasCorrectOption() {
			results = append(results, model.QuestionBatchResult{
				Index: i, Saved: false, ErrorMsg: "correct_answer must be one of the options",
			})
			continue
		}
		if err := s.questionRepo.Create(ctx, q); err != nil {
			s.logger.Error().Err(err).Str("exam_id", examID.String()).Int("index", i).
				Msg("question insert failed")
			results = append(results, model.QuestionBatchResult{
				Index: i, Saved: false, ErrorMsg: err.Error(),
			})
			continue
		}
		id := q.ID
		results = append(results, model.QuestionBatchResult{Index: i, ID: &id, Saved: true})
	}
	return results
}

// UpdateExam applies a partial update to a draft or active exam. An active
// exam's cached payload is rebuilt afterwards.
func (s *ExamService) UpdateExam(ctx context.Context, id uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Type != "" {
		exam.Type = model.ExamType(req.Type)
	}
	if req.Subject != "" {
		exam.Subject = req.Subject
	}
	if req.DurationMinutes > 0 {
		exam.DurationMinutes = req.DurationMinutes
	}
	if req.TotalMarks > 0 {
		exam.TotalMarks = req.TotalMarks
	}
	if req.Instructions != nil {
		exam.Instructions = *req.Instructions
	}
	if req.Security != nil {
		exam.Security = req.Security
	}

	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}

	if exam.Status == model.ExamStatusActive {
		if err := s.warmCache(ctx, exam); err != nil {
			s.logger.Warn().Err(err).Str("exam_id", id.String()).Msg("cache rebuild failed after update")
		}
	}
	return exam, nil
}

// ChangeStatus moves an exam through DRAFT → ACTIVE → ARCHIVED. Activation
// warms the Redis payload cache; archiving evicts it.
func (s *ExamService) ChangeStatus(ctx context.Context, id uuid.UUID, next model.ExamStatus) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	if !validExamTransition(exam.Status, next) {
		return nil, ErrInvalidTransition
	}

	if err := s.examRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	exam.Status = next

	switch next {
	case model.ExamStatusActive:
		if err := s.warmCache(ctx, exam); err != nil {
			s.logger.Warn().Err(err).Str("exam_id", id.String()).Msg("cache warm failed on activate")
		}
	case model.ExamStatusArchived:
		s.evictCache(ctx, id)
	}
	return exam, nil
}

func validExamTransition(from, to model.ExamStatus) bool {
	switch from {
	case model.ExamStatusDraft:
		return to == model.ExamStatusActive || to == model.ExamStatusArchived
	case model.ExamStatusActive:
		return to == model.ExamStatusArchived || to == model.ExamStatusDraft
	default:
		return false
	}
}

// DeleteExam removes an exam and evicts its cache entries.
func (s *ExamService) DeleteExam(ctx context.Context, id uuid.UUID) error {
	if err := s.examRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.evictCache(ctx, id)
	return nil
}

// GetExamForStudent returns the student-facing payload (no correct answers),
// cache-first. Only active exams are served.
func (s *ExamService) GetExamForStudent(ctx context.Context, id uuid.UUID) (*model.ExamPayload, error) {
	cached, err := s.rdb.Get(ctx, config.CacheKey.ExamPayloadKey(id.String())).Result()
	if err == nil {
		payload := &model.ExamPayload{}
		if json.Unmarshal([]byte(cached), payload) == nil {
			return payload, nil
		}
		// Corrupt cache entry, fall through to DB.
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn().Err(err).Msg("exam payload cache read failed")
	}

	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	if exam.Status != model.ExamStatusActive {
		return nil, ErrExamNotActive
	}

	payload, err := s.buildPayload(ctx, exam)
	if err != nil {
		return nil, err
	}
	if err := s.cachePayload(ctx, payload); err != nil {
		s.logger.Warn().Err(err).Str("exam_id", id.String()).Msg("payload cache write failed")
	}
	return payload, nil
}

// PrewarmActiveExams loads every active exam's payload into Redis.
// Called once at startup.
func (s *ExamService) PrewarmActiveExams(ctx context.Context) error {
	exams, err := s.examRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active exams: %w", err)
	}
	for i := range exams {
		if err := s.warmCache(ctx, &exams[i]); err != nil {
			s.logger.Warn().Err(err).Str("exam_id", exams[i].ID.String()).Msg("prewarm failed")
		}
	}
	s.logger.Info().Int("count", len(exams)).Msg("active exam cache prewarmed")
	return nil
}

func (s *ExamService) buildPayload(ctx context.Context, exam *model.Exam) (*model.ExamPayload, error) {
	questions, err := s.questionRepo.ListByExam(ctx, exam.ID)
	if err != nil {
		return nil, err
	}

	payload := &model.ExamPayload{
		ExamID:       exam.ID,
		Title:        exam.Title,
		Type:         exam.Type,
		Subject:      exam.Subject,
		Duration:     exam.DurationMinutes,
		TotalMarks:   exam.TotalMarks,
		Instructions: exam.Instructions,
		Security:     exam.Security,
		Questions:    make([]model.QuestionForStudent, 0, len(questions)),
	}
	for _, q := range questions {
		payload.Questions = append(payload.Questions, model.QuestionForStudent{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			Marks:        q.Marks,
			OrderNum:     q.OrderNum,
		})
	}
	return payload, nil
}

// warmCache writes the student payload for an exam into Redis. Grading is
// client-side, so correct answers stay in Postgres only.
func (s *ExamService) warmCache(ctx context.Context, exam *model.Exam) error {
	payload, err := s.buildPayload(ctx, exam)
	if err != nil {
		return err
	}
	return s.cachePayload(ctx, payload)
}

func (s *ExamService) cachePayload(ctx context.Context, payload *model.ExamPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, config.CacheKey.ExamPayloadKey(payload.ExamID.String()), data, examCacheTTL).Err()
}

func (s *ExamService) evictCache(ctx context.Context, id uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.ExamPayloadKey(id.String())).Err(); err != nil {
		s.logger.Warn().Err(err).Str("exam_id", id.String()).Msg("cache evict failed")
	}
}
