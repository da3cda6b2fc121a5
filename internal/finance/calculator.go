// Package finance holds the pure investment math behind the analysis
// dashboard. Every function is deterministic and side-effect free; the
// service layer feeds it rows loaded from Postgres and renders the results.
package finance

import "math"

// Fixed day counts per calendar month. February is modeled as 28 days;
// leap years are deliberately not accounted for.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

const (
	// DefaultOccupancy fills months with no stored occupancy fraction.
	DefaultOccupancy = 0.70
	// DefaultMultiplier fills months with no stored seasonal rate multiplier.
	DefaultMultiplier = 1.0

	// Flat assumed annual property appreciation, in percentage points,
	// added on top of cash-on-cash return when bucketing expected return.
	appreciationPct = 4.0
)

// CalculationError marks an invalid numeric domain in the financial
// formulas (division by zero and friends). It is raised explicitly so that
// NaN/Infinity never reaches stored or rendered data.
type CalculationError struct {
	Reason string
}

func (e *CalculationError) Error() string {
	return "calculation error: " + e.Reason
}

// LoanAmount derives the borrowed principal from price and deposit,
// clamped at zero. This is the only place the derivation lives; callers
// never accept a client-supplied loan amount.
func LoanAmount(purchasePrice, totalDeposit float64) float64 {
	if amount := purchasePrice - totalDeposit; amount > 0 {
		return amount
	}
	return 0
}

// MonthlyPayment computes the standard amortizing-loan payment.
// A zero interest rate degenerates the formula to division by zero and is
// special-cased to principal/n.
func MonthlyPayment(loanAmount, annualRatePct float64, termYears int) (float64, error) {
	if termYears <= 0 {
		return 0, &CalculationError{Reason: "loan term must be positive"}
	}
	if loanAmount < 0 {
		return 0, &CalculationError{Reason: "loan amount must not be negative"}
	}

	n := float64(termYears * 12)
	r := annualRatePct / 100 / 12
	if r == 0 {
		return loanAmount / n, nil
	}

	growth := math.Pow(1+r, n)
	return loanAmount * r * growth / (growth - 1), nil
}

// LoanToValue returns the loan as a percentage of the purchase price.
func LoanToValue(loanAmount, purchasePrice float64) (float64, error) {
	if purchasePrice == 0 {
		return 0, &CalculationError{Reason: "purchase price must not be zero"}
	}
	return loanAmount / purchasePrice * 100, nil
}

// AnnualRevenue sums nightly revenue across a fixed 365-day year:
// baseRate * multiplier[m] * occupancy[m] * days(m) for each month,
// rounded to the nearest whole currency unit at the end only.
func AnnualRevenue(baseRate float64, occupancy, multipliers [12]float64) float64 {
	var total float64
	for m := 0; m < 12; m++ {
		total += baseRate * multipliers[m] * occupancy[m] * float64(daysInMonth[m])
	}
	return math.Round(total)
}

// MaintenanceInputs mirrors a maintenance_breakdown row.
type MaintenanceInputs struct {
	TotalArea                float64
	Bedrooms                 int
	HasPool                  bool
	PoolChemicalsCost        float64
	PoolEquipmentMaintenance float64
	GardenWaterCost          float64
	LandscapingCost          float64
	GeneralRepairRate        float64
	HVACMaintenanceRate      float64
	CleaningCostPerBedroom   float64
	LinenServicePerBedroom   float64
	OperationalCostsPerStay  float64
	AverageStaysPerYear      float64
	LuxuryMultiplier         float64
}

// AnnualMaintenance aggregates the yearly upkeep cost, applying the luxury
// multiplier to the total and rounding once at the end.
func AnnualMaintenance(in MaintenanceInputs) float64 {
	var poolCost float64
	if in.HasPool {
		poolCost = in.PoolChemicalsCost + in.PoolEquipmentMaintenance
	}
	gardenCost := in.GardenWaterCost + in.LandscapingCost
	generalCost := in.TotalArea * (in.GeneralRepairRate + in.HVACMaintenanceRate)
	cleaningCost := float64(in.Bedrooms) * in.CleaningCostPerBedroom * 12
	linenCost := float64(in.Bedrooms) * in.LinenServicePerBedroom * 12
	stayCost := in.OperationalCostsPerStay * in.AverageStaysPerYear

	total := (poolCost + gardenCost + generalCost + cleaningCost + linenCost + stayCost) * in.LuxuryMultiplier
	return math.Round(total)
}

// NetCashFlow is annual revenue minus annual maintenance minus a year of
// loan payments.
func NetCashFlow(annualRevenue, annualMaintenance, monthlyPayment float64) float64 {
	return annualRevenue - annualMaintenance - monthlyPayment*12
}

// CashOnCashReturn is annual net cash flow over cash invested, as a
// percentage.
func CashOnCashReturn(netCashFlow, totalDeposit float64) (float64, error) {
	if totalDeposit == 0 {
		return 0, &CalculationError{Reason: "total deposit must not be zero"}
	}
	return netCashFlow / totalDeposit * 100, nil
}

// MonthTable normalizes a sparse month->value map (keys "1".."12") into a
// dense 12-entry table, filling gaps with def. Values outside the map, or
// zero-valued entries, fall back to the default the same way the stored
// rows do.
func MonthTable(stored map[string]float64, def float64) [12]float64 {
	var out [12]float64
	for m := 0; m < 12; m++ {
		out[m] = def
	}
	for key, v := range stored {
		if v == 0 {
			continue
		}
		if m, ok := monthIndex(key); ok {
			out[m] = v
		}
	}
	return out
}

func monthIndex(key string) (int, bool) {
	switch key {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return int(key[0] - '1'), true
	case "10":
		return 9, true
	case "11":
		return 10, true
	case "12":
		return 11, true
	}
	return 0, false
}
