package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
)

// StudentDashboard consolidates all per-student metrics.
type StudentDashboard struct {
	ExamCount         int             `json:"exam_count"`
	AttemptCount      int             `json:"attempt_count"`
	AveragePercentage float64         `json:"average_percentage"`
	CurrentStreak     int             `json:"current_streak"`
	Trend             []TrendPoint    `json:"trend"`
	Subjects          []SubjectRollup `json:"subjects"`
}

// TrendPoint is one calendar day's average percentage.
type TrendPoint struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	AttemptCount      int     `json:"attempt_count"`
	AveragePercentage float64 `json:"average_percentage"`
}

// SubjectRollup aggregates attempts per subject.
type SubjectRollup struct {
	Subject           string  `json:"subject"`
	AttemptCount      int     `json:"attempt_count"`
	AveragePercentage float64 `json:"average_percentage"`
	Best              float64 `json:"best"`
	Worst             float64 `json:"worst"`
}

// AnalyticsService computes the student dashboard from the attempt history.
// All aggregation is a single O(n) pass over the list already in memory.
type AnalyticsService struct {
	attemptRepo *repository.AttemptRepository
	trendDays   int
}

// NewAnalyticsService creates a new AnalyticsService. trendDays is the
// default trend window when the caller does not specify one.
func NewAnalyticsService(attemptRepo *repository.AttemptRepository, trendDays int) *AnalyticsService {
	return &AnalyticsService{attemptRepo: attemptRepo, trendDays: trendDays}
}

// GetStudentDashboard loads a user's attempts and computes all metrics.
func (s *AnalyticsService) GetStudentDashboard(ctx context.Context, userID uuid.UUID, trendDays int) (*StudentDashboard, error) {
	if trendDays <= 0 {
		trendDays = s.trendDays
	}
	attempts, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(attempts, trendDays, time.Now()), nil
}

// BuildDashboard computes every dashboard metric from an attempt list.
// Factored out of the service for direct testing with a fixed clock.
func BuildDashboard(attempts []model.AttemptForDashboard, trendDays int, now time.Time) *StudentDashboard {
	dash := &StudentDashboard{
		AttemptCount: len(attempts),
		Trend:        BuildTrend(attempts, trendDays, now),
		Subjects:     BuildSubjectRollup(attempts),
	}

	exams := make(map[uuid.UUID]struct{})
	sum := 0.0
	for _, a := range attempts {
		exams[a.ExamID] = struct{}{}
		sum += a.Percentage
	}
	dash.ExamCount = len(exams)
	if len(attempts) > 0 {
		dash.AveragePercentage = round2(sum / float64(len(attempts)))
	}
	dash.CurrentStreak = ComputeStreak(attempts, now)
	return dash
}

// ComputeStreak counts consecutive calendar days with at least one attempt,
// ending today. A day counts only at its exact offset from today, so the
// streak breaks at the first gap. No attempt today means streak zero.
func ComputeStreak(attempts []model.AttemptForDashboard, now time.Time) int {
	days := make(map[string]struct{}, len(attempts))
	for _, a := range attempts {
		days[a.CreatedAt.Format("2006-01-02")] = struct{}{}
	}

	streak := 0
	for {
		day := now.AddDate(0, 0, -streak).Format("2006-01-02")
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// BuildTrend buckets attempts per calendar day over the window ending today
// and averages percentage within each bucket. Days without attempts are
// omitted.
func BuildTrend(attempts []model.AttemptForDashboard, days int, now time.Time) []TrendPoint {
	cutoff := now.AddDate(0, 0, -days)

	type bucket struct {
		count int
		sum   float64
	}
	buckets := make(map[string]*bucket)
	for _, a := range attempts {
		if a.CreatedAt.Before(cutoff) {
			continue
		}
		day := a.CreatedAt.Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.count++
		b.sum += a.Percentage
	}

	points := make([]TrendPoint, 0, len(buckets))
	for day, b := range buckets {
		points = append(points, TrendPoint{
			Date:              day,
			AttemptCount:      b.count,
			AveragePercentage: round2(b.sum / float64(b.count)),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// BuildSubjectRollup groups attempts by subject in a single linear scan.
func BuildSubjectRollup(attempts []model.AttemptForDashboard) []SubjectRollup {
	groups := make(map[string]*SubjectRollup)
	sums := make(map[string]float64)
	for _, a := range attempts {
		g, ok := groups[a.Subject]
		if !ok {
			g = &SubjectRollup{Subject: a.Subject, Best: a.Percentage, Worst: a.Percentage}
			groups[a.Subject] = g
		}
		g.AttemptCount++
		sums[a.Subject] += a.Percentage
		if a.Percentage > g.Best {
			g.Best = a.Percentage
		}
		if a.Percentage < g.Worst {
			g.Worst = a.Percentage
		}
	}

	rollups := make([]SubjectRollup, 0, len(groups))
	for subject, g := range groups {
		g.AveragePercentage = round2(sums[subject] / float64(g.AttemptCount))
		rollups = append(rollups, *g)
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].Subject < rollups[j].Subject })
	return rollups
}
