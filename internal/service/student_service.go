package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrProfileNotFound is returned when a student id does not resolve.
var ErrProfileNotFound = errors.New("student profile not found")

// StudentService handles student registration, login and profile management.
type StudentService struct {
	profileRepo      *repository.ProfileRepository
	notificationRepo *repository.NotificationRepository
	auth             *AuthService
	logger           zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	profileRepo *repository.ProfileRepository,
	notificationRepo *repository.NotificationRepository,
	auth *AuthService,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		auth:             auth,
		logger:           logger.With().Str("component", "student_service").Logger(),
	}
}

// Register creates a new student profile and inserts a welcome notification.
// The notification is best-effort; its failure never fails registration.
func (s *StudentService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Institution:  req.Institution,
		Level:        model.ExamType(req.Level),
		PasswordHash: hash,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	welcome := &model.Notification{
		UserID: profile.ID,
		Title:  "Welcome to Porikkha",
		Body:   "Your account is ready. Browse the exam catalog and take your first model test.",
	}
	if err := s.notificationRepo.Create(ctx, welcome); err != nil {
		s.logger.Warn().Err(err).Str("user_id", profile.ID.String()).Msg("welcome notification insert failed")
	}

	return profile, nil
}

// Login verifies credentials and issues a session token. Only one device may
// hold an active session at a time.
func (s *StudentService) Login(ctx context.Context, req *model.StudentLoginRequest) (*model.StudentLoginResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.auth.CheckPassword(profile.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateStudentToken(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &model.StudentLoginResponse{Token: token, Profile: *profile}, nil
}

// Logout clears the student's active session.
func (s *StudentService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.auth.ResetStudentSession(ctx, userID.String())
}

// GetProfile retrieves a student profile by id.
func (s *StudentService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// ListStudents retrieves student profiles with an optional level filter.
func (s *StudentService) ListStudents(ctx context.Context, level *model.ExamType, limit, offset int) ([]model.Profile, int, error) {
	return s.profileRepo.ListPaginated(ctx, level, limit, offset)
}

// UpdateProfile applies a partial update to a student profile.
func (s *StudentService) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.RegisterRequest) (*model.Profile, error) {
	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Email != "" {
		profile.Email = req.Email
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.Institution != nil {
		profile.Institution = req.Institution
	}
	if req.Level != "" {
		profile.Level = model.ExamType(req.Level)
	}
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		profile.PasswordHash = hash
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteStudent removes a student profile and resets any active session.
func (s *StudentService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.auth.ResetStudentSession(ctx, id.String()); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("session reset failed on delete")
	}
	return nil
}

// ListNotifications returns a student's recent notifications.
func (s *StudentService) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notificationRepo.ListByUser(ctx, userID, limit)
}

// MarkNotificationRead flags one notification as read.
func (s *StudentService) MarkNotificationRead(ctx context.Context, id int64, userID uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}
