package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExamAttempt is one submission of an exam by a user (or anonymous).
type ExamAttempt struct {
	ID               uuid.UUID       `json:"id"`
	ExamID           uuid.UUID       `json:"exam_id"`
	UserID           *uuid.UUID      `json:"user_id,omitempty"`
	Score            float64         `json:"score"`
	TotalMarks       float64         `json:"total_marks"`
	Percentage       float64         `json:"percentage"`
	TimeTakenSeconds int             `json:"time_taken_seconds"`
	Answers          json.RawMessage `json:"answers,omitempty"`
	ProctoringData   json.RawMessage `json:"proctoring_data,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CreateAttemptRequest is the payload for recording an attempt.
// Score, TotalMarks and Percentage are pointers so "missing" is
// distinguishable from a legitimate zero.
type CreateAttemptRequest struct {
	ExamID           uuid.UUID       `json:"exam_id" binding:"required"`
	UserID           *uuid.UUID      `json:"user_id" binding:"omitempty"`
	Score            *float64        `json:"score" binding:"required"`
	TotalMarks       *float64        `json:"total_marks" binding:"required"`
	Percentage       *float64        `json:"percentage" binding:"required"`
	TimeTakenSeconds int             `json:"time_taken_seconds" binding:"omitempty,min=0"`
	Answers          json.RawMessage `json:"answers" binding:"omitempty"`
	Proctoring       json.RawMessage `json:"proctoring" binding:"omitempty"`
}

// AttemptForDashboard is the slim projection used by the analytics scan.
type AttemptForDashboard struct {
	ExamID     uuid.UUID `json:"exam_id"`
	Subject    string    `json:"subject"`
	Percentage float64   `json:"percentage"`
	CreatedAt  time.Time `json:"created_at"`
}
