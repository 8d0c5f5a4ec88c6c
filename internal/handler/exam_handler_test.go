package handler

import (
	"testing"

	"github.com/porikkha/porikkha-backend/internal/model"
)

func TestStudentCatalogFilterPinsActive(t *testing.T) {
	tests := []struct {
		name     string
		examType string
		subject  string
	}{
		{"no filters", "", ""},
		{"type only", "HSC", ""},
		{"subject only", "", "Physics"},
		{"both", "SSC", "Bangla"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := studentCatalogFilter(tt.examType, tt.subject)
			if filter.Status == nil || *filter.Status != model.ExamStatusActive {
				t.Fatalf("status = %v, want ACTIVE", filter.Status)
			}
			if tt.examType == "" && filter.Type != nil {
				t.Errorf("type = %v, want nil", *filter.Type)
			}
			if tt.examType != "" && (filter.Type == nil || *filter.Type != model.ExamType(tt.examType)) {
				t.Errorf("type = %v, want %s", filter.Type, tt.examType)
			}
			if tt.subject != "" && (filter.Subject == nil || *filter.Subject != tt.subject) {
				t.Errorf("subject = %v, want %s", filter.Subject, tt.subject)
			}
		})
	}
}
