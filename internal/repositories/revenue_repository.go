package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
)

type RevenueRepository interface {
	GetByAnalysisID(ctx context.Context, analysisID uuid.UUID) (*models.RevenueProjection, error)
	Upsert(ctx context.Context, p *models.RevenueProjection) error
}

type revenueRepo struct {
	db DB
}

func NewRevenueRepository(db DB) RevenueRepository {
	return &revenueRepo{db: db}
}

func (r *revenueRepo) GetByAnalysisID(ctx context.Context, analysisID uuid.UUID) (*models.RevenueProjection, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, property_analysis_id, base_adr,
               monthly_occupancy, monthly_multipliers,
               created_at, updated_at
        FROM revenue_projections
        WHERE property_analysis_id=$1
    `, analysisID)

	var (
		p        models.RevenueProjection
		occRaw   []byte
		multRaw  []byte
	)
	err := row.Scan(
		&p.ID,
		&p.PropertyAnalysisID,
		&p.BaseADR,
		&occRaw,
		&multRaw,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(occRaw) > 0 {
		if err := json.Unmarshal(occRaw, &p.MonthlyOccupancy); err != nil {
			return nil, err
		}
	}
	if len(multRaw) > 0 {
		if err := json.Unmarshal(multRaw, &p.MonthlyMultipliers); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *revenueRepo) Upsert(ctx context.Context, p *models.RevenueProjection) error {
	occJSON, err := json.Marshal(p.MonthlyOccupancy)
	if err != nil {
		return err
	}
	multJSON, err := json.Marshal(p.MonthlyMultipliers)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO revenue_projections (
            id, property_analysis_id, base_adr,
            monthly_occupancy, monthly_multipliers,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4::jsonb,$5::jsonb, NOW(), NOW())
        ON CONFLICT (property_analysis_id) DO UPDATE SET
            base_adr=EXCLUDED.base_adr,
            monthly_occupancy=EXCLUDED.monthly_occupancy,
            monthly_multipliers=EXCLUDED.monthly_multipliers,
            updated_at=NOW()
    `,
		p.ID,
		p.PropertyAnalysisID,
		p.BaseADR,
		string(occJSON),
		string(multJSON),
	)
	return err
}
