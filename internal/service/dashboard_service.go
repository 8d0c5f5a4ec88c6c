package service

import (
	"context"

	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
)

// highRiskThreshold flags sessions worth an invigilator's review; crossing
// it also notifies the student that the session has been flagged.
const highRiskThreshold = 15

// AdminDashboardData consolidates all metrics for the admin dashboard.
type AdminDashboardData struct {
	TotalStudents    int                                `json:"total_students"`
	TotalExams       int                                `json:"total_exams"`
	TotalQuestions   int                                `json:"total_questions"`
	TotalAttempts    int                                `json:"total_attempts"`
	ExamStatusCounts map[model.ExamStatus]int           `json:"exam_status_counts"`
	RecentExams      []repository.DashboardRecentExam   `json:"recent_exams"`
	HighRiskSessions []model.ProctoringSession          `json:"high_risk_sessions"`
}

// DashboardService handles admin dashboard business logic.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetDashboardData fetches all dashboard metrics.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*AdminDashboardData, error) {
	students, exams, questions, attempts, err := s.repo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.repo.GetExamStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.GetRecentExamActivity(ctx, 5)
	if err != nil {
		return nil, err
	}

	highRisk, err := s.repo.GetHighRiskSessions(ctx, highRiskThreshold, 5)
	if err != nil {
		return nil, err
	}

	return &AdminDashboardData{
		TotalStudents:    students,
		TotalExams:       exams,
		TotalQuestions:   questions,
		TotalAttempts:    attempts,
		ExamStatusCounts: statusCounts,
		RecentExams:      recent,
		HighRiskSessions: highRisk,
	}, nil
}
