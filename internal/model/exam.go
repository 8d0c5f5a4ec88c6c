package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExamStatus enumerates the possible states of an exam.
type ExamStatus string

const (
	ExamStatusDraft    ExamStatus = "DRAFT"
	ExamStatusActive   ExamStatus = "ACTIVE"
	ExamStatusArchived ExamStatus = "ARCHIVED"
)

// ExamType enumerates the exam categories offered on the platform.
type ExamType string

const (
	ExamTypeHSC        ExamType = "HSC"
	ExamTypeSSC        ExamType = "SSC"
	ExamTypeUniversity ExamType = "UNIVERSITY"
	ExamTypeJob        ExamType = "JOB"
)

// ExamOrigin distinguishes admin-curated exams from student-generated ones.
type ExamOrigin string

const (
	ExamOriginAdmin   ExamOrigin = "ADMIN"
	ExamOriginStudent ExamOrigin = "STUDENT"
)

// Exam represents an exam entity.
type Exam struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Type            ExamType        `json:"type"`
	Subject         string          `json:"subject"`
	DurationMinutes int             `json:"duration_minutes"`
	TotalMarks      float64         `json:"total_marks"`
	Instructions    string          `json:"instructions,omitempty"`
	Security        json.RawMessage `json:"security,omitempty"`
	CreatedBy       *int            `json:"created_by,omitempty"`
	Origin          ExamOrigin      `json:"origin"`
	Status          ExamStatus      `json:"status"`
	QuestionCount   int             `json:"question_count,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Title           string          `json:"title" binding:"required,min=3,max=255"`
	Type            string          `json:"type" binding:"required,oneof=HSC SSC UNIVERSITY JOB"`
	Subject         string          `json:"subject" binding:"required,min=2,max=100"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,min=1,max=480"`
	TotalMarks      float64         `json:"total_marks" binding:"required,gt=0"`
	Instructions    string          `json:"instructions" binding:"omitempty,max=5000"`
	Security        json.RawMessage `json:"security" binding:"omitempty"`
	Origin          string          `json:"origin" binding:"omitempty,oneof=ADMIN STUDENT"`
	Questions       []AddQuestionRequest `json:"questions" binding:"omitempty,dive"`
}

// UpdateExamRequest is the payload for updating an existing exam.
type UpdateExamRequest struct {
	Title           string          `json:"title" binding:"omitempty,min=3,max=255"`
	Type            string          `json:"type" binding:"omitempty,oneof=HSC SSC UNIVERSITY JOB"`
	Subject         string          `json:"subject" binding:"omitempty,min=2,max=100"`
	DurationMinutes int             `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	TotalMarks      float64         `json:"total_marks" binding:"omitempty,gt=0"`
	Instructions    *string         `json:"instructions" binding:"omitempty,max=5000"`
	Security        json.RawMessage `json:"security" binding:"omitempty"`
}

// ExamSummary is the student-facing catalog projection. It carries no
// security config, creator reference or lifecycle status.
type ExamSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Type            ExamType  `json:"type"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalMarks      float64   `json:"total_marks"`
	QuestionCount   int       `json:"question_count,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Summary projects the exam onto its student-facing shape.
func (e *Exam) Summary() ExamSummary {
	return ExamSummary{
		ID:              e.ID,
		Title:           e.Title,
		Type:            e.Type,
		Subject:         e.Subject,
		DurationMinutes: e.DurationMinutes,
		TotalMarks:      e.TotalMarks,
		QuestionCount:   e.QuestionCount,
		CreatedAt:       e.CreatedAt,
	}
}

// ExamPayload is the Redis-cached payload sent to students (no correct answers).
type ExamPayload struct {
	ExamID       uuid.UUID            `json:"exam_id"`
	Title        string               `json:"title"`
	Type         ExamType             `json:"type"`
	Subject      string               `json:"subject"`
	Duration     int                  `json:"duration_minutes"`
	TotalMarks   float64              `json:"total_marks"`
	Instructions string               `json:"instructions,omitempty"`
	Security     json.RawMessage      `json:"security,omitempty"`
	Questions    []QuestionForStudent `json:"questions"`
}

// QuestionForStudent is a question without the correct answer, sent to students.
type QuestionForStudent struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
	Marks        float64   `json:"marks"`
	OrderNum     int       `json:"order_num"`
}
