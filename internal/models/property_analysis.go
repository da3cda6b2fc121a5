package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnalysisStatusDraft     = "draft"
	AnalysisStatusCompleted = "completed"
	AnalysisStatusArchived  = "archived"
)

// PropertyAnalysis is the root entity of a dashboard workspace. Each
// analysis is owned by exactly one user and carries up to one row of each
// child section (motivation, revenue, maintenance).
type PropertyAnalysis struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	PropertyID   *uuid.UUID `json:"property_id,omitempty"`
	PropertyName string     `json:"property_name"`
	ClientName   *string    `json:"client_name,omitempty"`
	Address      *string    `json:"address,omitempty"`
	Status       string     `json:"status"`
	IsFavorite   bool       `json:"is_favorite"`
	IsPublic     bool       `json:"is_public"`
	Tags         []string   `json:"tags"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
