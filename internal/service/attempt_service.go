package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Attempt validation errors.
var (
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrAttemptNotFound      = errors.New("attempt not found")
)

// AttemptService records and retrieves exam attempts.
type AttemptService struct {
	attemptRepo *repository.AttemptRepository
	logger      zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attemptRepo *repository.AttemptRepository, logger zerolog.Logger) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		logger:      logger.With().Str("component", "attempt_service").Logger(),
	}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RecordAttempt validates and persists one attempt. Score and percentage are
// rounded to two decimals before storage; the stored percentage is always
// within [0,100].
func (s *AttemptService) RecordAttempt(ctx context.Context, req *model.CreateAttemptRequest) (*model.ExamAttempt, error) {
	percentage := round2(*req.Percentage)
	if percentage < 0 || percentage > 100 {
		return nil, ErrPercentageOutOfRange
	}

	attempt := &model.ExamAttempt{
		ExamID:           req.ExamID,
		UserID:           req.UserID,
		Score:            round2(*req.Score),
		TotalMarks:       round2(*req.TotalMarks),
		Percentage:       percentage,
		TimeTakenSeconds: req.TimeTakenSeconds,
		Answers:          req.Answers,
		ProctoringData:   req.Proctoring,
	}

	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// GetAttempt retrieves one attempt by ID.
func (s *AttemptService) GetAttempt(ctx context.Context, id uuid.UUID) (*model.ExamAttempt, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}

// ListUserAttempts retrieves a user's attempts with pagination.
func (s *AttemptService) ListUserAttempts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ExamAttempt, int, error) {
	return s.attemptRepo.ListFullByUser(ctx, userID, limit, offset)
}
