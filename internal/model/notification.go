package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a per-user message shown in the app shell.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
