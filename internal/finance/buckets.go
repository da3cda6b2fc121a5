package finance

import "fmt"

// InvestmentHorizon and ExpectedReturn are coarse presentation classifiers,
// not financial models. The thresholds are behavioral contracts carried
// over from the dashboard and must not be re-derived. Both are total: any
// finite input maps to a bucket string, never an error.

// InvestmentHorizon buckets the suggested holding period from net cash
// flow and loan term.
func InvestmentHorizon(netCashFlow float64, loanTermYears int) string {
	if netCashFlow > 0 {
		switch {
		case loanTermYears <= 10:
			return fmt.Sprintf("%d-%d years", loanTermYears, loanTermYears+5)
		case loanTermYears <= 20:
			return fmt.Sprintf("%d-%d years", loanTermYears, loanTermYears+10)
		default:
			return fmt.Sprintf("%d+ years", loanTermYears)
		}
	}
	return fmt.Sprintf("%d-%d years", maxInt(loanTermYears, 15), maxInt(loanTermYears+10, 25))
}

// ExpectedReturn buckets total annual return: cash-on-cash plus a flat
// assumed appreciation, floored at zero.
func ExpectedReturn(cashOnCashReturn float64) string {
	totalReturn := cashOnCashReturn + appreciationPct
	if totalReturn < 0 {
		totalReturn = 0
	}

	switch {
	case totalReturn < 8:
		return "6-10% annually"
	case totalReturn < 12:
		return "8-12% annually"
	case totalReturn < 16:
		return "12-16% annually"
	default:
		return "15%+ annually"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
