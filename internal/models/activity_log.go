package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog records user actions for the settings-page history view.
// Writes are best-effort; a failed insert never fails the request.
type ActivityLog struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   uuid.UUID      `json:"resource_id"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
