package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/middleware"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &config.Config{
		AppName:            "luxe-property-analysis",
		AppURL:             "https://app.example.com",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		ResetTokenExpiry:   30 * time.Minute,
		RSAPrivateKey:      key,
		RSAPublicKey:       &key.PublicKey,
	}
}

func activeUser(repo *fakeUserRepo) *models.User {
	u := &models.User{
		ID:        uuid.New(),
		FirstName: "Ava",
		LastName:  "Stone",
		Email:     "ava@example.com",
		Role:      models.RoleUser,
		IsActive:  true,
	}
	_ = repo.Create(context.Background(), u)
	return u
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	cfg := testConfig(t)
	svc := NewJWTService(cfg, newFakeTokenRepo(), newFakeUserRepo())

	userID := uuid.New()
	tokenStr, err := svc.GenerateAccessToken(userID, models.RoleAdmin, time.Minute)
	require.NoError(t, err)

	tok, err := middleware.ValidateToken(tokenStr, cfg.RSAPublicKey)
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, middleware.TokenIssuer, claims["iss"])
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
	assert.NotEmpty(t, claims["jti"])
}

func TestGenerateRefreshToken_StoresHashOnly(t *testing.T) {
	cfg := testConfig(t)
	tokenRepo := newFakeTokenRepo()
	svc := NewJWTService(cfg, tokenRepo, newFakeUserRepo())

	raw, err := svc.GenerateRefreshToken(context.Background(), uuid.New(), time.Hour)
	require.NoError(t, err)
	require.Len(t, raw, 64)

	stored, err := tokenRepo.GetByHash(context.Background(), utils.HashToken(raw))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, raw, stored.TokenHash)
	assert.False(t, stored.Revoked)
}

func TestRefreshTokens_RotatesPair(t *testing.T) {
	cfg := testConfig(t)
	tokenRepo := newFakeTokenRepo()
	userRepo := newFakeUserRepo()
	user := activeUser(userRepo)
	svc := NewJWTService(cfg, tokenRepo, userRepo)

	raw, err := svc.GenerateRefreshToken(context.Background(), user.ID, time.Hour)
	require.NoError(t, err)

	access, newRefresh, err := svc.RefreshTokens(context.Background(), raw, time.Minute, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
	assert.NotEqual(t, raw, newRefresh)

	// the presented token is revoked and cannot be replayed
	old, err := tokenRepo.GetByHash(context.Background(), utils.HashToken(raw))
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.True(t, old.Revoked)

	_, _, err = svc.RefreshTokens(context.Background(), raw, time.Minute, time.Hour)
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestRefreshTokens_UnknownToken(t *testing.T) {
	cfg := testConfig(t)
	svc := NewJWTService(cfg, newFakeTokenRepo(), newFakeUserRepo())

	_, _, err := svc.RefreshTokens(context.Background(), "no-such-token", time.Minute, time.Hour)
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestRefreshTokens_ExpiredToken(t *testing.T) {
	cfg := testConfig(t)
	tokenRepo := newFakeTokenRepo()
	userRepo := newFakeUserRepo()
	user := activeUser(userRepo)
	svc := NewJWTService(cfg, tokenRepo, userRepo)

	raw, err := svc.GenerateRefreshToken(context.Background(), user.ID, -time.Minute)
	require.NoError(t, err)

	_, _, err = svc.RefreshTokens(context.Background(), raw, time.Minute, time.Hour)
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestRefreshTokens_InactiveUser(t *testing.T) {
	cfg := testConfig(t)
	tokenRepo := newFakeTokenRepo()
	userRepo := newFakeUserRepo()
	user := activeUser(userRepo)
	svc := NewJWTService(cfg, tokenRepo, userRepo)

	raw, err := svc.GenerateRefreshToken(context.Background(), user.ID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, userRepo.Deactivate(context.Background(), user.ID))

	_, _, err = svc.RefreshTokens(context.Background(), raw, time.Minute, time.Hour)
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	cfg := testConfig(t)
	svc := NewJWTService(cfg, newFakeTokenRepo(), newFakeUserRepo())

	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	cfg := testConfig(t)
	tokenRepo := newFakeTokenRepo()
	userRepo := newFakeUserRepo()
	user := activeUser(userRepo)
	svc := NewJWTService(cfg, tokenRepo, userRepo)

	for i := 0; i < 3; i++ {
		_, err := svc.GenerateRefreshToken(context.Background(), user.ID, time.Hour)
		require.NoError(t, err)
	}
	require.Equal(t, 3, tokenRepo.activeCountForUser(user.ID))

	require.NoError(t, svc.LogoutAll(context.Background(), user.ID))
	assert.Equal(t, 0, tokenRepo.activeCountForUser(user.ID))
}
