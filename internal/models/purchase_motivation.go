package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseMotivation holds the financing inputs of an analysis. LoanAmount
// is always derived server-side as max(0, purchase_price - total_deposit);
// client writes to it are ignored.
type PurchaseMotivation struct {
	ID                 uuid.UUID `json:"id"`
	PropertyAnalysisID uuid.UUID `json:"property_analysis_id"`
	PurchasePrice      float64   `json:"purchase_price"`
	TotalDeposit       float64   `json:"total_deposit"`
	LoanAmount         float64   `json:"loan_amount"`
	InterestRate       float64   `json:"interest_rate"`
	LoanTerm           int       `json:"loan_term"`
	InvestmentGoals    []string  `json:"investment_goals"`
	Location           string    `json:"location"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
