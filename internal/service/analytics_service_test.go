package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/model"
)

func attemptAt(subject string, percentage float64, t time.Time) model.AttemptForDashboard {
	return model.AttemptForDashboard{
		ExamID:     uuid.New(),
		Subject:    subject,
		Percentage: percentage,
		CreatedAt:  t,
	}
}

func TestComputeStreakConsecutiveDays(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	attempts := []model.AttemptForDashboard{
		attemptAt("Physics", 80, now),
		attemptAt("Physics", 70, now.AddDate(0, 0, -1)),
		attemptAt("Math", 60, now.AddDate(0, 0, -2)),
	}

	if got := ComputeStreak(attempts, now); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestComputeStreakBreaksAtGap(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	attempts := []model.AttemptForDashboard{
		attemptAt("Physics", 80, now),
		attemptAt("Math", 60, now.AddDate(0, 0, -2)),
	}

	if got := ComputeStreak(attempts, now); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestComputeStreakZeroWithoutAttemptToday(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	attempts := []model.AttemptForDashboard{
		attemptAt("Physics", 80, now.AddDate(0, 0, -1)),
		attemptAt("Math", 60, now.AddDate(0, 0, -2)),
	}

	if got := ComputeStreak(attempts, now); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestComputeStreakMultipleAttemptsSameDay(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	attempts := []model.AttemptForDashboard{
		attemptAt("Physics", 80, now),
		attemptAt("Math", 40, now.Add(-2*time.Hour)),
	}

	if got := ComputeStreak(attempts, now); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestBuildSubjectRollup(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	attempts := []model.AttemptForDashboard{
		attemptAt("Physics", 80, now),
		attemptAt("Physics", 60, now.AddDate(0, 0, -1)),
		attemptAt("Math", 90, now),
	}

	rollups := BuildSubjectRollup(attempts)
	if len(rollups) != 2 {
		t.Fatalf("rollup count = %d, want 2", len(rollups))
	}

	// Sorted alphabetically: Math, then Physics.
	if rollups[0].Subject != "Math" || rollups[1].Subject != "Physics" {
		t.Fatalf("rollup order = %q, %q", rollups[0].Subject, rollups[1].Subject)
	}

	phys := rollups[1]
	if phys.AttemptCount != 2 {
		t.Errorf("physics attempts = %d, want 2", phys.AttemptCount)
	}
	if phys.AveragePercentage != 70 {
		t.Errorf("physics average = %v, want 70", phys.AveragePercentage)
	}
	if phys.Best != 80 || phys.Worst != 60 {
		t.Errorf("physics best/worst = %v/%v, want 80/60", phys.Best, phys.Worst)
	}
}

func TestBuildTrendWindowAndBuckets(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	attempts := []model.AttemptForDashboard{
		attemptAt("Physics", 80, now),
		attemptAt("Physics", 40, now.Add(-time.Hour)),
		attemptAt("Math", 90, now.AddDate(0, 0, -1)),
		attemptAt("Math", 10, now.AddDate(0, 0, -45)), // outside the window
	}

	points := BuildTrend(attempts, 30, now)
	if len(points) != 2 {
		t.Fatalf("trend points = %d, want 2", len(points))
	}

	// Sorted ascending by date.
	if points[0].Date != "2026-08-27" || points[1].Date != "2026-08-28" {
		t.Fatalf("trend dates = %q, %q", points[0].Date, points[1].Date)
	}
	if points[1].AttemptCount != 2 || points[1].AveragePercentage != 60 {
		t.Errorf("today's bucket = %d attempts avg %v, want 2 attempts avg 60",
			points[1].AttemptCount, points[1].AveragePercentage)
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	dash := BuildDashboard(nil, 30, now)

	if dash.AttemptCount != 0 || dash.ExamCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", dash.AttemptCount, dash.ExamCount)
	}
	if dash.AveragePercentage != 0 {
		t.Errorf("average = %v, want 0", dash.AveragePercentage)
	}
	if dash.CurrentStreak != 0 {
		t.Errorf("streak = %d, want 0", dash.CurrentStreak)
	}
	if len(dash.Trend) != 0 || len(dash.Subjects) != 0 {
		t.Errorf("trend/subjects should be empty")
	}
}

func TestBuildDashboardDistinctExams(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	examID := uuid.New()
	attempts := []model.AttemptForDashboard{
		{ExamID: examID, Subject: "Physics", Percentage: 50, CreatedAt: now},
		{ExamID: examID, Subject: "Physics", Percentage: 70, CreatedAt: now},
		{ExamID: uuid.New(), Subject: "Math", Percentage: 90, CreatedAt: now},
	}

	dash := BuildDashboard(attempts, 30, now)
	if dash.ExamCount != 2 {
		t.Errorf("exam count = %d, want 2", dash.ExamCount)
	}
	if dash.AttemptCount != 3 {
		t.Errorf("attempt count = %d, want 3", dash.AttemptCount)
	}
	if dash.AveragePercentage != 70 {
		t.Errorf("average = %v, want 70", dash.AveragePercentage)
	}
}
