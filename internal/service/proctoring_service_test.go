package service

import (
	"strings"
	"testing"

	"github.com/porikkha/porikkha-backend/internal/model"
)

func violations(severities ...model.ViolationSeverity) []model.ProctoringViolation {
	vs := make([]model.ProctoringViolation, 0, len(severities))
	for _, sev := range severities {
		vs = append(vs, model.ProctoringViolation{Type: "tab_switch", Severity: sev})
	}
	return vs
}

func TestComputeRiskScoreWeights(t *testing.T) {
	tests := []struct {
		name string
		vs   []model.ProctoringViolation
		want int
	}{
		{"empty", nil, 0},
		{"single low", violations(model.SeverityLow), 1},
		{"single medium", violations(model.SeverityMedium), 3},
		{"single high", violations(model.SeverityHigh), 5},
		{"mixed", violations(model.SeverityLow, model.SeverityMedium, model.SeverityHigh), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRiskScore(tt.vs); got != tt.want {
				t.Errorf("risk = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeRiskScoreCap(t *testing.T) {
	// 25 HIGH violations sum to 125, capped at 100.
	var vs []model.ProctoringViolation
	for i := 0; i < 25; i++ {
		vs = append(vs, model.ProctoringViolation{Severity: model.SeverityHigh})
	}

	if got := ComputeRiskScore(vs); got != 100 {
		t.Errorf("risk = %d, want 100", got)
	}
}

func TestComputeRiskScoreMonotone(t *testing.T) {
	var vs []model.ProctoringViolation
	prev := 0
	for i := 0; i < 40; i++ {
		vs = append(vs, model.ProctoringViolation{Severity: model.SeverityHigh})
		score := ComputeRiskScore(vs)
		if score < prev {
			t.Fatalf("score dropped from %d to %d after violation %d", prev, score, i+1)
		}
		prev = score
	}
}

func TestCrossedHighRisk(t *testing.T) {
	tests := []struct {
		name       string
		prev, next int
		want       bool
	}{
		{"stays below", 5, 10, false},
		{"crosses exactly", 14, 15, true},
		{"crosses past", 10, 20, true},
		{"already above", 15, 20, false},
		{"well above", 50, 55, false},
		{"from zero to threshold", 0, 15, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := crossedHighRisk(tt.prev, tt.next); got != tt.want {
				t.Errorf("crossedHighRisk(%d, %d) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestCrossedHighRiskFiresOnceUnderMonotoneScore(t *testing.T) {
	// The score only grows within a session, so walking any non-decreasing
	// sequence trips the threshold at most once.
	scores := []int{0, 3, 8, 14, 19, 19, 40, 100}
	fired := 0
	prev := 0
	for _, next := range scores {
		if crossedHighRisk(prev, next) {
			fired++
		}
		prev = next
	}
	if fired != 1 {
		t.Errorf("threshold fired %d times, want 1", fired)
	}
}

func TestBuildSummaryGroupsByType(t *testing.T) {
	vs := []model.ProctoringViolation{
		{Type: "tab_switch", Severity: model.SeverityLow},
		{Type: "tab_switch", Severity: model.SeverityLow},
		{Type: "face_missing", Severity: model.SeverityHigh},
	}

	summary := BuildSummary("sess-1", ComputeRiskScore(vs), vs)

	if summary.ViolationCount != 3 {
		t.Errorf("violation count = %d, want 3", summary.ViolationCount)
	}
	if summary.RiskScore != 7 {
		t.Errorf("risk score = %d, want 7", summary.RiskScore)
	}
	if summary.ByType["tab_switch"] != 2 || summary.ByType["face_missing"] != 1 {
		t.Errorf("by type = %v", summary.ByType)
	}
	// Types are sorted, so face_missing renders before tab_switch.
	if !strings.Contains(summary.Summary, "face_missing x1, tab_switch x2") {
		t.Errorf("summary = %q", summary.Summary)
	}
}

func TestBuildSummaryNoViolations(t *testing.T) {
	summary := BuildSummary("sess-1", 0, nil)
	if summary.Summary != "No violations recorded" {
		t.Errorf("summary = %q", summary.Summary)
	}
	if summary.ViolationCount != 0 || summary.RiskScore != 0 {
		t.Errorf("count/risk = %d/%d, want 0/0", summary.ViolationCount, summary.RiskScore)
	}
}
