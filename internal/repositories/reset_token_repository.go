package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

// PasswordResetToken rows are single-use and short-lived; consumed rows
// are deleted, never flagged.
type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type ResetTokenRepository interface {
	Create(ctx context.Context, t *PasswordResetToken) error
	GetByHash(ctx context.Context, tokenHash string) (*PasswordResetToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type resetTokenRepo struct {
	db DB
}

func NewResetTokenRepository(db DB) ResetTokenRepository {
	return &resetTokenRepo{db: db}
}

func (r *resetTokenRepo) Create(ctx context.Context, t *PasswordResetToken) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, created_at)
        VALUES ($1,$2,$3,$4,NOW())
    `, t.ID, t.UserID, t.TokenHash, t.ExpiresAt)
	return err
}

func (r *resetTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*PasswordResetToken, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, user_id, token_hash, expires_at, created_at
        FROM password_reset_tokens
        WHERE token_hash=$1
    `, tokenHash)

	var t PasswordResetToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *resetTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE id=$1`, id)
	return err
}

func (r *resetTokenRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE user_id=$1`, userID)
	return err
}

func (r *resetTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
