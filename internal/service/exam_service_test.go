package service

import (
	"testing"

	"github.com/porikkha/porikkha-backend/internal/model"
)

func TestValidExamTransition(t *testing.T) {
	tests := []struct {
		from, to model.ExamStatus
		want     bool
	}{
		{model.ExamStatusDraft, model.ExamStatusActive, true},
		{model.ExamStatusDraft, model.ExamStatusArchived, true},
		{model.ExamStatusDraft, model.ExamStatusDraft, false},
		{model.ExamStatusActive, model.ExamStatusArchived, true},
		{model.ExamStatusActive, model.ExamStatusDraft, true},
		{model.ExamStatusActive, model.ExamStatusActive, false},
		{model.ExamStatusArchived, model.ExamStatusDraft, false},
		{model.ExamStatusArchived, model.ExamStatusActive, false},
		{model.ExamStatusArchived, model.ExamStatusArchived, false},
	}
	for _, tt := range tests {
		if got := validExamTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("transition %s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{66.666666, 66.67},
		{66.664, 66.66},
		{0, 0},
		{100, 100},
		{99.996, 100},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
