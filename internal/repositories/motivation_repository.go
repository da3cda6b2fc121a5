package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
)

type MotivationRepository interface {
	GetByAnalysisID(ctx context.Context, analysisID uuid.UUID) (*models.PurchaseMotivation, error)
	Upsert(ctx context.Context, m *models.PurchaseMotivation) error
}

type motivationRepo struct {
	db DB
}

func NewMotivationRepository(db DB) MotivationRepository {
	return &motivationRepo{db: db}
}

func (r *motivationRepo) GetByAnalysisID(ctx context.Context, analysisID uuid.UUID) (*models.PurchaseMotivation, error) {
	row := r.db.QueryRow(ctx, baseSelectMotivation()+" WHERE property_analysis_id=$1", analysisID)
	return scanMotivation(row)
}

// Upsert writes the section with last-write-wins semantics; each analysis
// holds at most one motivation row.
func (r *motivationRepo) Upsert(ctx context.Context, m *models.PurchaseMotivation) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO purchase_motivations (
            id, property_analysis_id, purchase_price, total_deposit, loan_amount,
            interest_rate, loan_term, investment_goals, location,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW())
        ON CONFLICT (property_analysis_id) DO UPDATE SET
            purchase_price=EXCLUDED.purchase_price,
            total_deposit=EXCLUDED.total_deposit,
            loan_amount=EXCLUDED.loan_amount,
            interest_rate=EXCLUDED.interest_rate,
            loan_term=EXCLUDED.loan_term,
            investment_goals=EXCLUDED.investment_goals,
            location=EXCLUDED.location,
            updated_at=NOW()
    `,
		m.ID,
		m.PropertyAnalysisID,
		m.PurchasePrice,
		m.TotalDeposit,
		m.LoanAmount,
		m.InterestRate,
		m.LoanTerm,
		m.InvestmentGoals,
		m.Location,
	)
	return err
}

func baseSelectMotivation() string {
	return `
        SELECT
            id, property_analysis_id, purchase_price, total_deposit, loan_amount,
            interest_rate, loan_term, investment_goals, location,
            created_at, updated_at
        FROM purchase_motivations
    `
}

func scanMotivation(row pgx.Row) (*models.PurchaseMotivation, error) {
	var m models.PurchaseMotivation
	err := row.Scan(
		&m.ID,
		&m.PropertyAnalysisID,
		&m.PurchasePrice,
		&m.TotalDeposit,
		&m.LoanAmount,
		&m.InterestRate,
		&m.LoanTerm,
		&m.InvestmentGoals,
		&m.Location,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
