package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type AnalysisFilters struct {
	Status string
	Tag    string
}

type AnalysisRepository interface {
	Create(ctx context.Context, a *models.PropertyAnalysis) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyAnalysis, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, f AnalysisFilters, pg Pagination) ([]*models.PropertyAnalysis, int, error)
	ListPublic(ctx context.Context, pg Pagination) ([]*models.PropertyAnalysis, int, error)

	Update(ctx context.Context, a *models.PropertyAnalysis) error
	SetFavorite(ctx context.Context, id uuid.UUID, favorite bool) error
	SetPublic(ctx context.Context, id uuid.UUID, public bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type analysisRepo struct {
	db DB
}

func NewAnalysisRepository(db DB) AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, a *models.PropertyAnalysis) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO property_analyses (
            id, user_id, property_id, property_name, client_name, address,
            status, is_favorite, is_public, tags, notes,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW())
    `,
		a.ID,
		a.UserID,
		a.PropertyID,
		a.PropertyName,
		a.ClientName,
		a.Address,
		a.Status,
		a.IsFavorite,
		a.IsPublic,
		a.Tags,
		a.Notes,
	)
	return err
}

func (r *analysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyAnalysis, error) {
	row := r.db.QueryRow(ctx, baseSelectAnalysis()+" WHERE id=$1", id)
	return scanAnalysis(row)
}

func (r *analysisRepo) ListByUserID(ctx context.Context, userID uuid.UUID, f AnalysisFilters, pg Pagination) ([]*models.PropertyAnalysis, int, error) {
	where := []string{"user_id=$1"}
	args := []interface{}{userID}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	return r.list(ctx, " WHERE "+strings.Join(where, " AND "), args, pg)
}

func (r *analysisRepo) ListPublic(ctx context.Context, pg Pagination) ([]*models.PropertyAnalysis, int, error) {
	return r.list(ctx, " WHERE is_public=TRUE", nil, pg)
}

func (r *analysisRepo) list(ctx context.Context, whereSQL string, args []interface{}, pg Pagination) ([]*models.PropertyAnalysis, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM property_analyses"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pg.normalize()
	args = append(args, limit, offset)
	pageSQL := fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, baseSelectAnalysis()+whereSQL+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.PropertyAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *analysisRepo) Update(ctx context.Context, a *models.PropertyAnalysis) error {
	_, err := r.db.Exec(ctx, `
        UPDATE property_analyses SET
            property_name=$1, client_name=$2, address=$3, status=$4,
            tags=$5, notes=$6, property_id=$7, updated_at=NOW()
        WHERE id=$8
    `,
		a.PropertyName, a.ClientName, a.Address, a.Status,
		a.Tags, a.Notes, a.PropertyID,
		a.ID,
	)
	return err
}

func (r *analysisRepo) SetFavorite(ctx context.Context, id uuid.UUID, favorite bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE property_analyses SET is_favorite=$1, updated_at=NOW() WHERE id=$2`,
		favorite, id)
	return err
}

func (r *analysisRepo) SetPublic(ctx context.Context, id uuid.UUID, public bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE property_analyses SET is_public=$1, updated_at=NOW() WHERE id=$2`,
		public, id)
	return err
}

// Delete hard-deletes the analysis; the child section rows go with it via
// ON DELETE CASCADE foreign keys.
func (r *analysisRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM property_analyses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectAnalysis() string {
	return `
        SELECT
            id, user_id, property_id, property_name, client_name, address,
            status, is_favorite, is_public, tags, notes,
            created_at, updated_at
        FROM property_analyses
    `
}

func scanAnalysis(row pgx.Row) (*models.PropertyAnalysis, error) {
	var a models.PropertyAnalysis
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.PropertyID,
		&a.PropertyName,
		&a.ClientName,
		&a.Address,
		&a.Status,
		&a.IsFavorite,
		&a.IsPublic,
		&a.Tags,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
