package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
)

// FavoriteRepository covers the user favorite-properties list. Favorites on
// analyses live on the analysis row itself; this table links users to
// catalog properties.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, pg Pagination) ([]*models.Property, int, error)
}

type favoriteRepo struct {
	db DB
}

func NewFavoriteRepository(db DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO user_favorites (user_id, property_id, created_at)
        VALUES ($1,$2,NOW())
        ON CONFLICT (user_id, property_id) DO NOTHING
    `, userID, propertyID)
	return err
}

func (r *favoriteRepo) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_favorites WHERE user_id=$1 AND property_id=$2`,
		userID, propertyID)
	return err
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_favorites WHERE user_id=$1 AND property_id=$2)`,
		userID, propertyID).Scan(&exists)
	return exists, err
}

func (r *favoriteRepo) ListByUserID(ctx context.Context, userID uuid.UUID, pg Pagination) ([]*models.Property, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_favorites WHERE user_id=$1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := pg.normalize()
	rows, err := r.db.Query(ctx, `
        SELECT
            p.id, p.owner_id, p.title, p.description, p.address, p.city, p.state,
            p.zip_code, p.property_type, p.status, p.price, p.bedrooms,
            p.bathrooms, p.area, p.is_active, p.is_featured, p.views,
            p.created_at, p.updated_at
        FROM properties p
        JOIN user_favorites uf ON uf.property_id = p.id
        WHERE uf.user_id=$1 AND p.is_active=TRUE
        ORDER BY uf.created_at DESC
        LIMIT $2 OFFSET $3
    `, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}
