package models

import (
	"time"

	"github.com/google/uuid"
)

// RevenueProjection stores the nightly-rate model for an analysis. The
// month tables are keyed "1".."12"; missing or zero entries default to
// 0.70 occupancy / 1.0 multiplier when the projection is evaluated.
type RevenueProjection struct {
	ID                 uuid.UUID          `json:"id"`
	PropertyAnalysisID uuid.UUID          `json:"property_analysis_id"`
	BaseADR            float64            `json:"base_adr"`
	MonthlyOccupancy   map[string]float64 `json:"monthly_occupancy"`
	MonthlyMultipliers map[string]float64 `json:"monthly_multipliers"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
