package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTables() (occ, mult [12]float64) {
	for i := 0; i < 12; i++ {
		occ[i] = DefaultOccupancy
		mult[i] = DefaultMultiplier
	}
	return occ, mult
}

func TestLoanAmount(t *testing.T) {
	assert.Equal(t, 680000.0, LoanAmount(850000, 170000))
	assert.Equal(t, 0.0, LoanAmount(100000, 100000))
	// deposit above price clamps to zero instead of going negative
	assert.Equal(t, 0.0, LoanAmount(100000, 250000))
	assert.Equal(t, 0.0, LoanAmount(0, 0))
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	payment, err := MonthlyPayment(360000, 0, 30)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, payment)
}

func TestMonthlyPayment_Amortized(t *testing.T) {
	// 850k purchase, 170k deposit, 6.5% over 30 years
	loan := LoanAmount(850000, 170000)
	require.Equal(t, 680000.0, loan)

	payment, err := MonthlyPayment(loan, 6.5, 30)
	require.NoError(t, err)
	assert.InDelta(t, 4298, payment, 1.0)
}

func TestMonthlyPayment_InvalidTerm(t *testing.T) {
	_, err := MonthlyPayment(680000, 6.5, 0)
	var calcErr *CalculationError
	require.ErrorAs(t, err, &calcErr)

	_, err = MonthlyPayment(680000, 6.5, -5)
	require.ErrorAs(t, err, &calcErr)
}

func TestLoanToValue(t *testing.T) {
	ltv, err := LoanToValue(680000, 850000)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, ltv, 1e-9)

	_, err = LoanToValue(680000, 0)
	var calcErr *CalculationError
	require.ErrorAs(t, err, &calcErr)
}

func TestAnnualRevenue_FlatYear(t *testing.T) {
	occ, mult := defaultTables()
	// 350 * 0.7 * 365 over a fixed 365-day year, rounded once at the end
	assert.Equal(t, 89425.0, AnnualRevenue(350, occ, mult))
}

func TestAnnualRevenue_SeasonalMonth(t *testing.T) {
	occ, mult := defaultTables()
	occ[0] = 0.9  // January
	mult[0] = 1.5 // peak season pricing

	base := 350.0
	expected := base*1.5*0.9*31 + base*DefaultOccupancy*334
	assert.InDelta(t, expected, AnnualRevenue(base, occ, mult), 0.5)
}

func TestAnnualMaintenance(t *testing.T) {
	in := MaintenanceInputs{
		TotalArea:                250,
		Bedrooms:                 4,
		HasPool:                  true,
		PoolChemicalsCost:        1200,
		PoolEquipmentMaintenance: 800,
		GardenWaterCost:          600,
		LandscapingCost:          2400,
		GeneralRepairRate:        15,
		HVACMaintenanceRate:      5,
		CleaningCostPerBedroom:   120,
		LinenServicePerBedroom:   45,
		OperationalCostsPerStay:  85,
		AverageStaysPerYear:      48,
		LuxuryMultiplier:         1.3,
	}

	pool := 1200.0 + 800
	garden := 600.0 + 2400
	general := 250.0 * (15 + 5)
	cleaning := 4.0 * 120 * 12
	linen := 4.0 * 45 * 12
	stays := 85.0 * 48
	expected := (pool + garden + general + cleaning + linen + stays) * 1.3

	assert.InDelta(t, expected, AnnualMaintenance(in), 0.5)

	// pool costs vanish entirely without a pool
	in.HasPool = false
	expected = (garden + general + cleaning + linen + stays) * 1.3
	assert.InDelta(t, expected, AnnualMaintenance(in), 0.5)
}

func TestNetCashFlow(t *testing.T) {
	assert.Equal(t, 85000.0-18500-4000*12, NetCashFlow(85000, 18500, 4000))
}

func TestCashOnCashReturn(t *testing.T) {
	coc, err := CashOnCashReturn(17000, 170000)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, coc, 1e-9)

	_, err = CashOnCashReturn(17000, 0)
	var calcErr *CalculationError
	require.ErrorAs(t, err, &calcErr)
}

func TestInvestmentHorizon_PositiveCashFlow(t *testing.T) {
	assert.Equal(t, "10-15 years", InvestmentHorizon(1, 10))
	// boundary: crossing 10 years switches the bucket formula
	assert.Equal(t, "11-21 years", InvestmentHorizon(1, 11))
	assert.Equal(t, "20-30 years", InvestmentHorizon(1, 20))
	assert.Equal(t, "21+ years", InvestmentHorizon(1, 21))
	assert.Equal(t, "30+ years", InvestmentHorizon(1, 30))
}

func TestInvestmentHorizon_NonPositiveCashFlow(t *testing.T) {
	assert.Equal(t, "15-25 years", InvestmentHorizon(0, 5))
	assert.Equal(t, "15-25 years", InvestmentHorizon(-1000, 10))
	assert.Equal(t, "30-40 years", InvestmentHorizon(-1000, 30))
}

func TestInvestmentHorizon_Idempotent(t *testing.T) {
	first := InvestmentHorizon(12345.67, 17)
	second := InvestmentHorizon(12345.67, 17)
	assert.Equal(t, first, second)
}

func TestExpectedReturn_Bands(t *testing.T) {
	// totalReturn = cashOnCash + 4, floored at 0
	assert.Equal(t, "6-10% annually", ExpectedReturn(-50))
	assert.Equal(t, "6-10% annually", ExpectedReturn(3.9))
	assert.Equal(t, "8-12% annually", ExpectedReturn(4))
	assert.Equal(t, "8-12% annually", ExpectedReturn(7.9))
	assert.Equal(t, "12-16% annually", ExpectedReturn(8))
	assert.Equal(t, "12-16% annually", ExpectedReturn(11.9))
	assert.Equal(t, "15%+ annually", ExpectedReturn(12))
	assert.Equal(t, "15%+ annually", ExpectedReturn(100))
}

func TestMonthTable(t *testing.T) {
	occ := MonthTable(map[string]float64{"1": 0.9, "12": 0.45}, DefaultOccupancy)
	assert.Equal(t, 0.9, occ[0])
	assert.Equal(t, 0.45, occ[11])
	for m := 1; m < 11; m++ {
		assert.Equal(t, DefaultOccupancy, occ[m])
	}

	// zero entries and junk keys fall back to the default
	occ = MonthTable(map[string]float64{"3": 0, "13": 0.5, "x": 0.5}, DefaultOccupancy)
	for m := 0; m < 12; m++ {
		assert.Equal(t, DefaultOccupancy, occ[m])
	}

	// nil map means all defaults
	mult := MonthTable(nil, DefaultMultiplier)
	for m := 0; m < 12; m++ {
		assert.Equal(t, DefaultMultiplier, mult[m])
	}
}
