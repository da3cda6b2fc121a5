package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

func newUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		FirstName:    "Iris",
		LastName:     "Kahale",
		Email:        "iris@example.com",
		PasswordHash: "$2a$10$notarealhash",
		Role:         models.RoleUser,
		IsActive:     true,
	}
}

func TestUserCreateMapsUniqueViolation(t *testing.T) {
	db := &stubDB{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
	repo := NewUserRepository(db)

	err := repo.Create(context.Background(), newUser())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrEmailExists)
}

func TestUserCreatePassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	db := &stubDB{execErr: boom}
	repo := NewUserRepository(db)

	err := repo.Create(context.Background(), newUser())
	assert.ErrorIs(t, err, boom)
}
