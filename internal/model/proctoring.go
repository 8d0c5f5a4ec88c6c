package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProctoringStatus enumerates the states of a proctoring session.
type ProctoringStatus string

const (
	ProctoringStatusActive    ProctoringStatus = "ACTIVE"
	ProctoringStatusCompleted ProctoringStatus = "COMPLETED"
)

// ViolationSeverity tiers a suspicious event.
type ViolationSeverity string

const (
	SeverityLow    ViolationSeverity = "LOW"
	SeverityMedium ViolationSeverity = "MEDIUM"
	SeverityHigh   ViolationSeverity = "HIGH"
)

// ProctoringSession is the monitored period during which violation events
// are recorded for one attempt. The session ID is generated by the caller.
type ProctoringSession struct {
	SessionID      string           `json:"session_id"`
	ExamID         uuid.UUID        `json:"exam_id"`
	UserID         *uuid.UUID       `json:"user_id,omitempty"`
	Status         ProctoringStatus `json:"status"`
	Config         json.RawMessage  `json:"config,omitempty"`
	DeviceInfo     json.RawMessage  `json:"device_info,omitempty"`
	KeystrokeCount int              `json:"keystroke_count"`
	ClickCount     int              `json:"click_count"`
	TabSwitchCount int              `json:"tab_switch_count"`
	ViolationCount int              `json:"violation_count"`
	RiskScore      int              `json:"risk_score"`
	StartedAt      time.Time        `json:"started_at"`
	EndedAt        *time.Time       `json:"ended_at,omitempty"`
}

// ProctoringViolation is a discrete suspicious event. Append-only.
type ProctoringViolation struct {
	ID          int64             `json:"id"`
	SessionID   string            `json:"session_id"`
	AttemptID   *uuid.UUID        `json:"attempt_id,omitempty"`
	Type        string            `json:"type"`
	Severity    ViolationSeverity `json:"severity"`
	Description string            `json:"description,omitempty"`
	Metadata    json.RawMessage   `json:"metadata,omitempty"`
	RecordedAt  time.Time         `json:"recorded_at"`
}

// StartSessionRequest starts monitoring for one attempt.
type StartSessionRequest struct {
	SessionID  string          `json:"session_id" binding:"required,min=8,max=128"`
	ExamID     uuid.UUID       `json:"exam_id" binding:"required"`
	UserID     *uuid.UUID      `json:"user_id" binding:"omitempty"`
	Config     json.RawMessage `json:"config" binding:"omitempty"`
	DeviceInfo json.RawMessage `json:"device_info" binding:"omitempty"`
}

// ReportViolationRequest appends one violation to a session.
type ReportViolationRequest struct {
	ExamID      uuid.UUID       `json:"exam_id" binding:"required"`
	Type        string          `json:"type" binding:"required,min=2,max=100"`
	Severity    string          `json:"severity" binding:"required,oneof=LOW MEDIUM HIGH"`
	Description string          `json:"description" binding:"omitempty,max=1000"`
	Metadata    json.RawMessage `json:"metadata" binding:"omitempty"`
}

// EndSessionRequest closes a session with its final aggregate counters.
type EndSessionRequest struct {
	KeystrokeCount int `json:"keystroke_count" binding:"min=0"`
	ClickCount     int `json:"click_count" binding:"min=0"`
	TabSwitchCount int `json:"tab_switch_count" binding:"min=0"`
}

// TelemetryEventRequest carries activity counter deltas. These are queued to
// Redis and persisted asynchronously by the telemetry worker.
type TelemetryEventRequest struct {
	Keystrokes  int `json:"keystrokes" binding:"min=0"`
	Clicks      int `json:"clicks" binding:"min=0"`
	TabSwitches int `json:"tab_switches" binding:"min=0"`
}

// ProctoringSummary is the computed outcome of a completed session,
// merged into the related attempt's proctoring_data.
type ProctoringSummary struct {
	SessionID      string         `json:"session_id"`
	RiskScore      int            `json:"risk_score"`
	ViolationCount int            `json:"violation_count"`
	ByType         map[string]int `json:"violations_by_type"`
	Summary        string         `json:"summary"`
}
