package websocket

import "encoding/json"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventConnected Event = "connected"
	EventViolation Event = "violation"
	EventPong      Event = "pong"
)

// ConnectedResponse acknowledges a successful feed subscription.
type ConnectedResponse struct {
	Event  Event  `json:"event"`
	ExamID string `json:"exam_id"`
}

// ViolationResponse carries one proctoring violation to the invigilator.
// Payload is the raw JSON published on the exam channel.
type ViolationResponse struct {
	Event   Event           `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
