package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrAnswerNotInOptions rejects a question whose correct answer is missing
// from its option list.
var ErrAnswerNotInOptions = errors.New("correct_answer must be one of the options")

// QuestionService handles question management for exams.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	examService  *ExamService
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, examService *ExamService, logger zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		examService:  examService,
		logger:       logger.With().Str("component", "question_service").Logger(),
	}
}

func buildQuestion(examID uuid.UUID, index int, req model.AddQuestionRequest) *model.Question {
	marks := req.Marks
	if marks <= 0 {
		marks = 1
	}
	difficulty := model.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	order := req.OrderNum
	if order == 0 {
		order = index + 1
	}
	return &model.Question{
		ExamID:        examID,
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Marks:         marks,
		Difficulty:    difficulty,
		Explanation:   req.Explanation,
		Tags:          req.Tags,
		OrderNum:      order,
	}
}

// ListQuestions returns all questions of an exam in order, including correct
// answers. Admin-facing; students get the stripped payload from ExamService.
func (s *QuestionService) ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	if _, err := s.examService.GetExam(ctx, examID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByExam(ctx, examID)
}

// AddQuestion appends a single question to an exam.
func (s *QuestionService) AddQuestion(ctx context.Context, examID uuid.UUID, req model.AddQuestionRequest) (*model.Question, error) {
	exam, err := s.examService.GetExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	q := buildQuestion(examID, exam.QuestionCount, req)
	if !q.HasCorrectOption() {
		return nil, ErrAnswerNotInOptions
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	s.refreshActiveCache(ctx, exam)
	return q, nil
}

// AddQuestionBatch inserts several questions with per-item outcomes. Partial
// failure does not abort the batch.
func (s *QuestionService) AddQuestionBatch(ctx context.Context, examID uuid.UUID, reqs []model.AddQuestionRequest) ([]model.QuestionBatchResult, error) {
	exam, err := s.examService.GetExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	results := s.examService.insertQuestionBatch(ctx, examID, reqs)
	s.refreshActiveCache(ctx, exam)
	return results, nil
}

// ReplaceQuestions deletes an exam's questions and inserts the new set.
// Delete and inserts are independent statements; a failed insert leaves the
// earlier ones in place and is reported in the per-item results.
func (s *QuestionService) ReplaceQuestions(ctx context.Context, examID uuid.UUID, reqs []model.AddQuestionRequest) ([]model.QuestionBatchResult, error) {
	exam, err := s.examService.GetExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.DeleteByExam(ctx, examID); err != nil {
		return nil, err
	}
	results := s.examService.insertQuestionBatch(ctx, examID, reqs)
	s.refreshActiveCache(ctx, exam)
	return results, nil
}

// refreshActiveCache rebuilds the student payload cache when the exam is
// already live. Failure is logged, never surfaced.
func (s *QuestionService) refreshActiveCache(ctx context.Context, exam *model.Exam) {
	if exam.Status != model.ExamStatusActive {
		return
	}
	if err := s.examService.warmCache(ctx, exam); err != nil {
		s.logger.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("cache refresh failed")
	}
}
