package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestExamSummaryProjection(t *testing.T) {
	creator := 7
	exam := Exam{
		ID:              uuid.New(),
		Title:           "HSC Physics Model Test",
		Type:            ExamTypeHSC,
		Subject:         "Physics",
		DurationMinutes: 60,
		TotalMarks:      100,
		Instructions:    "No calculators.",
		Security:        json.RawMessage(`{"tab_switch_limit":3}`),
		CreatedBy:       &creator,
		Origin:          ExamOriginAdmin,
		Status:          ExamStatusDraft,
		QuestionCount:   25,
		CreatedAt:       time.Now(),
	}

	summary := exam.Summary()
	if summary.ID != exam.ID || summary.Title != exam.Title {
		t.Fatalf("summary identity mismatch: %+v", summary)
	}
	if summary.Type != ExamTypeHSC || summary.Subject != "Physics" {
		t.Errorf("summary metadata mismatch: %+v", summary)
	}
	if summary.DurationMinutes != 60 || summary.TotalMarks != 100 || summary.QuestionCount != 25 {
		t.Errorf("summary figures mismatch: %+v", summary)
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, key := range []string{"security", "status", "created_by", "origin", "instructions"} {
		if strings.Contains(body, `"`+key+`"`) {
			t.Errorf("summary JSON leaks %q: %s", key, body)
		}
	}
}
