package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PropertyClassStandard = "Standard"
	PropertyClassLuxury   = "Luxury"
)

type MaintenanceBreakdown struct {
	ID                       uuid.UUID `json:"id"`
	PropertyAnalysisID       uuid.UUID `json:"property_analysis_id"`
	TotalArea                float64   `json:"total_area"`
	Bedrooms                 int       `json:"bedrooms"`
	HasPool                  bool      `json:"has_pool"`
	PropertyClass            string    `json:"property_class"`
	GeneralRepairRate        float64   `json:"general_repair_rate"`
	HVACMaintenanceRate      float64   `json:"hvac_maintenance_rate"`
	LuxuryMultiplier         float64   `json:"luxury_multiplier"`
	CleaningCostPerBedroom   float64   `json:"cleaning_cost_per_bedroom"`
	LinenServicePerBedroom   float64   `json:"linen_service_per_bedroom"`
	PoolChemicalsCost        float64   `json:"pool_chemicals_cost"`
	PoolEquipmentMaintenance float64   `json:"pool_equipment_maintenance"`
	GardenWaterCost          float64   `json:"garden_water_cost"`
	LandscapingCost          float64   `json:"landscaping_cost"`
	OperationalCostsPerStay  float64   `json:"operational_costs_per_stay"`
	AverageStaysPerYear      float64   `json:"average_stays_per_year"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}
