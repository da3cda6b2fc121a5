package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
)

type MaintenanceRepository interface {
	GetByAnalysisID(ctx context.Context, analysisID uuid.UUID) (*models.MaintenanceBreakdown, error)
	Upsert(ctx context.Context, b *models.MaintenanceBreakdown) error
}

type maintenanceRepo struct {
	db DB
}

func NewMaintenanceRepository(db DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) GetByAnalysisID(ctx context.Context, analysisID uuid.UUID) (*models.MaintenanceBreakdown, error) {
	row := r.db.QueryRow(ctx, baseSelectMaintenance()+" WHERE property_analysis_id=$1", analysisID)
	return scanMaintenance(row)
}

func (r *maintenanceRepo) Upsert(ctx context.Context, b *models.MaintenanceBreakdown) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO maintenance_breakdowns (
            id, property_analysis_id, total_area, bedrooms, has_pool, property_class,
            general_repair_rate, hvac_maintenance_rate, luxury_multiplier,
            cleaning_cost_per_bedroom, linen_service_per_bedroom,
            pool_chemicals_cost, pool_equipment_maintenance,
            garden_water_cost, landscaping_cost,
            operational_costs_per_stay, average_stays_per_year,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17, NOW(), NOW())
        ON CONFLICT (property_analysis_id) DO UPDATE SET
            total_area=EXCLUDED.total_area,
            bedrooms=EXCLUDED.bedrooms,
            has_pool=EXCLUDED.has_pool,
            property_class=EXCLUDED.property_class,
            general_repair_rate=EXCLUDED.general_repair_rate,
            hvac_maintenance_rate=EXCLUDED.hvac_maintenance_rate,
            luxury_multiplier=EXCLUDED.luxury_multiplier,
            cleaning_cost_per_bedroom=EXCLUDED.cleaning_cost_per_bedroom,
            linen_service_per_bedroom=EXCLUDED.linen_service_per_bedroom,
            pool_chemicals_cost=EXCLUDED.pool_chemicals_cost,
            pool_equipment_maintenance=EXCLUDED.pool_equipment_maintenance,
            garden_water_cost=EXCLUDED.garden_water_cost,
            landscaping_cost=EXCLUDED.landscaping_cost,
            operational_costs_per_stay=EXCLUDED.operational_costs_per_stay,
            average_stays_per_year=EXCLUDED.average_stays_per_year,
            updated_at=NOW()
    `,
		b.ID,
		b.PropertyAnalysisID,
		b.TotalArea,
		b.Bedrooms,
		b.HasPool,
		b.PropertyClass,
		b.GeneralRepairRate,
		b.HVACMaintenanceRate,
		b.LuxuryMultiplier,
		b.CleaningCostPerBedroom,
		b.LinenServicePerBedroom,
		b.PoolChemicalsCost,
		b.PoolEquipmentMaintenance,
		b.GardenWaterCost,
		b.LandscapingCost,
		b.OperationalCostsPerStay,
		b.AverageStaysPerYear,
	)
	return err
}

func baseSelectMaintenance() string {
	return `
        SELECT
            id, property_analysis_id, total_area, bedrooms, has_pool, property_class,
            general_repair_rate, hvac_maintenance_rate, luxury_multiplier,
            cleaning_cost_per_bedroom, linen_service_per_bedroom,
            pool_chemicals_cost, pool_equipment_maintenance,
            garden_water_cost, landscaping_cost,
            operational_costs_per_stay, average_stays_per_year,
            created_at, updated_at
        FROM maintenance_breakdowns
    `
}

func scanMaintenance(row pgx.Row) (*models.MaintenanceBreakdown, error) {
	var b models.MaintenanceBreakdown
	err := row.Scan(
		&b.ID,
		&b.PropertyAnalysisID,
		&b.TotalArea,
		&b.Bedrooms,
		&b.HasPool,
		&b.PropertyClass,
		&b.GeneralRepairRate,
		&b.HVACMaintenanceRate,
		&b.LuxuryMultiplier,
		&b.CleaningCostPerBedroom,
		&b.LinenServicePerBedroom,
		&b.PoolChemicalsCost,
		&b.PoolEquipmentMaintenance,
		&b.GardenWaterCost,
		&b.LandscapingCost,
		&b.OperationalCostsPerStay,
		&b.AverageStaysPerYear,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
