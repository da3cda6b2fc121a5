package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
)

type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *models.ActivityLog) error
	ListByUserID(ctx context.Context, userID uuid.UUID, pg Pagination) ([]*models.ActivityLog, int, error)
}

type activityLogRepo struct {
	db DB
}

func NewActivityLogRepository(db DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Insert(ctx context.Context, entry *models.ActivityLog) error {
	metaJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO activity_logs (id, user_id, action, resource_type, resource_id, metadata, created_at)
        VALUES ($1,$2,$3,$4,$5,$6::jsonb,NOW())
    `,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		string(metaJSON),
	)
	return err
}

func (r *activityLogRepo) ListByUserID(ctx context.Context, userID uuid.UUID, pg Pagination) ([]*models.ActivityLog, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_logs WHERE user_id=$1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := pg.normalize()
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, action, resource_type, resource_id, metadata, created_at
        FROM activity_logs
        WHERE user_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.ActivityLog
	for rows.Next() {
		var (
			entry   models.ActivityLog
			metaRaw []byte
		)
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.ResourceType,
			&entry.ResourceID,
			&metaRaw,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		if len(metaRaw) > 0 {
			if err := json.Unmarshal(metaRaw, &entry.Metadata); err != nil {
				return nil, 0, err
			}
		}
		out = append(out, &entry)
	}
	return out, total, rows.Err()
}
