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

// PropertyFilters narrows List; zero-valued fields are skipped.
type PropertyFilters struct {
	Search       string
	PropertyType string
	Status       string
	City         string
	State        string
	ZipCode      string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Bathrooms    *int
	OwnerID      *uuid.UUID
	SortBy       string
	SortOrder    string
}

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, f PropertyFilters, pg Pagination) ([]*models.Property, int, error)

	Update(ctx context.Context, p *models.Property) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, owner_id, title, description, address, city, state, zip_code,
            property_type, status, price, bedrooms, bathrooms, area,
            is_active, is_featured, views,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,TRUE,$15,0, NOW(), NOW())
    `,
		p.ID,
		p.OwnerID,
		p.Title,
		p.Description,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.PropertyType,
		p.Status,
		p.Price,
		p.Bedrooms,
		p.Bathrooms,
		p.Area,
		p.IsFeatured,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1 AND is_active=TRUE", id)
	return scanProperty(row)
}

// List builds the WHERE clause from the supplied filters and returns the
// page plus the unpaged total.
func (r *propertyRepo) List(ctx context.Context, f PropertyFilters, pg Pagination) ([]*models.Property, int, error) {
	where := []string{"is_active=TRUE"}
	args := []interface{}{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(title ILIKE '%%'||$%d||'%%' OR address ILIKE '%%'||$%d||'%%')", n, n))
	}
	if f.PropertyType != "" {
		add("property_type=$%d", f.PropertyType)
	}
	if f.Status != "" {
		add("status=$%d", f.Status)
	}
	if f.City != "" {
		add("city=$%d", f.City)
	}
	if f.State != "" {
		add("state=$%d", f.State)
	}
	if f.ZipCode != "" {
		add("zip_code=$%d", f.ZipCode)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		add("bedrooms >= $%d", *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		add("bathrooms >= $%d", *f.Bathrooms)
	}
	if f.OwnerID != nil {
		add("owner_id=$%d", *f.OwnerID)
	}

	whereSQL := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM properties"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pg.normalize()
	orderSQL := fmt.Sprintf(" ORDER BY %s %s", sortColumn(f.SortBy), sortOrder(f.SortOrder))
	args = append(args, limit, offset)
	pageSQL := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, baseSelectProperty()+whereSQL+orderSQL+pageSQL, args...)
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

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        UPDATE properties SET
            title=$1, description=$2, address=$3, city=$4, state=$5,
            zip_code=$6, property_type=$7, status=$8, price=$9,
            bedrooms=$10, bathrooms=$11, area=$12, is_featured=$13,
            updated_at=NOW()
        WHERE id=$14
    `,
		p.Title, p.Description, p.Address, p.City, p.State,
		p.ZipCode, p.PropertyType, p.Status, p.Price,
		p.Bedrooms, p.Bathrooms, p.Area, p.IsFeatured,
		p.ID,
	)
	return err
}

// SoftDelete hides the row from all listings; the API layer never hard
// deletes properties.
func (r *propertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE properties SET is_active=FALSE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE properties SET views=views+1 WHERE id=$1`, id)
	return err
}

func sortColumn(requested string) string {
	switch requested {
	case "price", "bedrooms", "bathrooms", "area", "views", "updated_at":
		return requested
	default:
		return "created_at"
	}
}

func sortOrder(requested string) string {
	if strings.EqualFold(requested, "asc") {
		return "ASC"
	}
	return "DESC"
}

func baseSelectProperty() string {
	return `
        SELECT
            id, owner_id, title, description, address, city, state, zip_code,
            property_type, status, price, bedrooms, bathrooms, area,
            is_active, is_featured, views,
            created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.PropertyType,
		&p.Status,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&p.IsActive,
		&p.IsFeatured,
		&p.Views,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
