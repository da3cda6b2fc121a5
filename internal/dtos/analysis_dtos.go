package dtos

import (
	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
)

type CreateAnalysisRequest struct {
	PropertyName string     `json:"property_name" validate:"required,min=1,max=255"`
	ClientName   *string    `json:"client_name,omitempty" validate:"omitempty,max=255"`
	Address      *string    `json:"address,omitempty" validate:"omitempty,max=255"`
	PropertyID   *uuid.UUID `json:"property_id,omitempty"`
	Tags         []string   `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Notes        *string    `json:"notes,omitempty" validate:"omitempty,max=10000"`
}

type UpdateAnalysisRequest struct {
	PropertyName string     `json:"property_name" validate:"required,min=1,max=255"`
	ClientName   *string    `json:"client_name,omitempty" validate:"omitempty,max=255"`
	Address      *string    `json:"address,omitempty" validate:"omitempty,max=255"`
	PropertyID   *uuid.UUID `json:"property_id,omitempty"`
	Status       string     `json:"status" validate:"required,oneof=draft completed archived"`
	Tags         []string   `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	Notes        *string    `json:"notes,omitempty" validate:"omitempty,max=10000"`
}

type ShareAnalysisRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AnalysisListResponse struct {
	Analyses []*models.PropertyAnalysis `json:"analyses"`
	Total    int                        `json:"total"`
	Page     int                        `json:"page"`
	Limit    int                        `json:"limit"`
}

// SaveMotivationRequest omits loan_amount on purpose; the server derives it
// from purchase_price and total_deposit.
type SaveMotivationRequest struct {
	PurchasePrice   float64  `json:"purchase_price" validate:"gte=0"`
	TotalDeposit    float64  `json:"total_deposit" validate:"gte=0"`
	InterestRate    float64  `json:"interest_rate" validate:"gte=0,lte=100"`
	LoanTerm        int      `json:"loan_term" validate:"gte=0,lte=50"`
	InvestmentGoals []string `json:"investment_goals,omitempty" validate:"omitempty,max=10,dive,min=1,max=100"`
	Location        string   `json:"location" validate:"omitempty,max=255"`
}

type SaveRevenueRequest struct {
	BaseADR            float64            `json:"base_adr" validate:"gte=0"`
	MonthlyOccupancy   map[string]float64 `json:"monthly_occupancy,omitempty" validate:"omitempty,dive,gte=0,lte=1"`
	MonthlyMultipliers map[string]float64 `json:"monthly_multipliers,omitempty" validate:"omitempty,dive,gte=0,lte=10"`
}

type SaveMaintenanceRequest struct {
	TotalArea                float64 `json:"total_area" validate:"gte=0"`
	Bedrooms                 int     `json:"bedrooms" validate:"gte=0,lte=50"`
	HasPool                  bool    `json:"has_pool"`
	PropertyClass            string  `json:"property_class" validate:"required,oneof=Standard Luxury"`
	GeneralRepairRate        float64 `json:"general_repair_rate" validate:"gte=0"`
	HVACMaintenanceRate      float64 `json:"hvac_maintenance_rate" validate:"gte=0"`
	LuxuryMultiplier         float64 `json:"luxury_multiplier" validate:"gte=0"`
	CleaningCostPerBedroom   float64 `json:"cleaning_cost_per_bedroom" validate:"gte=0"`
	LinenServicePerBedroom   float64 `json:"linen_service_per_bedroom" validate:"gte=0"`
	PoolChemicalsCost        float64 `json:"pool_chemicals_cost" validate:"gte=0"`
	PoolEquipmentMaintenance float64 `json:"pool_equipment_maintenance" validate:"gte=0"`
	GardenWaterCost          float64 `json:"garden_water_cost" validate:"gte=0"`
	LandscapingCost          float64 `json:"landscaping_cost" validate:"gte=0"`
	OperationalCostsPerStay  float64 `json:"operational_costs_per_stay" validate:"gte=0"`
	AverageStaysPerYear      float64 `json:"average_stays_per_year" validate:"gte=0"`
}

// MotivationMetricsResponse is returned alongside the stored motivation so
// the dashboard can render derived figures without recomputing them.
type MotivationMetricsResponse struct {
	Motivation     *models.PurchaseMotivation `json:"motivation"`
	MonthlyPayment float64                    `json:"monthly_payment"`
	LoanToValue    float64                    `json:"loan_to_value"`
}

// SummaryResponse aggregates every computed metric. CashOnCashReturn and
// ExpectedReturn are omitted, with CalculationError set, when the deposit
// is zero; a NaN never reaches the wire.
type SummaryResponse struct {
	AnalysisID        uuid.UUID `json:"analysis_id"`
	LoanAmount        float64   `json:"loan_amount"`
	MonthlyPayment    float64   `json:"monthly_payment"`
	LoanToValue       float64   `json:"loan_to_value"`
	AnnualRevenue     float64   `json:"annual_revenue"`
	AnnualMaintenance float64   `json:"annual_maintenance"`
	NetCashFlow       float64   `json:"net_cash_flow"`
	CashOnCashReturn  *float64  `json:"cash_on_cash_return,omitempty"`
	InvestmentHorizon string    `json:"investment_horizon"`
	ExpectedReturn    string    `json:"expected_return,omitempty"`
	CalculationError  string    `json:"calculation_error,omitempty"`
}
