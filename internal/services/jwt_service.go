package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/middleware"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type JWTService interface {
	GenerateAccessToken(subjectID uuid.UUID, role string, tokenExpiry time.Duration) (string, error)
	GenerateRefreshToken(ctx context.Context, subjectID uuid.UUID, refreshExpiry time.Duration) (string, error)

	// RefreshTokens rotates the pair: the presented refresh token is revoked
	// and a fresh access + refresh pair is issued.
	RefreshTokens(ctx context.Context, refreshTokenString string, tokenExpiry, refreshExpiry time.Duration) (string, string, error)

	Logout(ctx context.Context, refreshTokenString string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
}

type jwtService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	tokenRepo  repositories.TokenRepository
	userRepo   repositories.UserRepository
}

func NewJWTService(cfg *config.Config, tokenRepo repositories.TokenRepository, userRepo repositories.UserRepository) JWTService {
	return &jwtService{
		privateKey: cfg.RSAPrivateKey,
		publicKey:  cfg.RSAPublicKey,
		tokenRepo:  tokenRepo,
		userRepo:   userRepo,
	}
}

func (j *jwtService) GenerateAccessToken(subjectID uuid.UUID, role string, tokenExpiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"iss":  middleware.TokenIssuer,
		"sub":  subjectID.String(),
		"role": role,
		"exp":  time.Now().Add(tokenExpiry).Unix(),
		"iat":  time.Now().Unix(),
		"jti":  uuid.NewString(),
	}
	return j.signClaims(claims)
}

// GenerateRefreshToken returns the raw token; only its SHA-256 hash is
// stored server-side.
func (j *jwtService) GenerateRefreshToken(ctx context.Context, subjectID uuid.UUID, refreshExpiry time.Duration) (string, error) {
	if j.tokenRepo == nil {
		return "", errors.New("jwtService has nil tokenRepo")
	}

	rawToken := generateSecureToken(64)

	rt := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    subjectID,
		TokenHash: utils.HashToken(rawToken),
		ExpiresAt: time.Now().Add(refreshExpiry),
		CreatedAt: time.Now(),
		Revoked:   false,
	}
	if err := j.tokenRepo.Create(ctx, rt); err != nil {
		return "", err
	}
	return rawToken, nil
}

func (j *jwtService) RefreshTokens(ctx context.Context, refreshTokenString string, tokenExpiry, refreshExpiry time.Duration) (string, string, error) {
	if j.tokenRepo == nil {
		return "", "", errors.New("jwtService has nil tokenRepo")
	}

	oldToken, err := j.tokenRepo.GetByHash(ctx, utils.HashToken(refreshTokenString))
	if err != nil {
		utils.Logger.WithError(err).Error("refresh token lookup failed")
		return "", "", utils.ErrInvalidCredentials
	}
	if oldToken == nil || oldToken.Revoked {
		return "", "", utils.ErrInvalidCredentials
	}
	if time.Now().After(oldToken.ExpiresAt) {
		return "", "", utils.ErrInvalidCredentials
	}

	user, err := j.userRepo.GetByID(ctx, oldToken.UserID)
	if err != nil {
		return "", "", err
	}
	if user == nil || !user.IsActive {
		return "", "", utils.ErrInvalidCredentials
	}

	if err := j.tokenRepo.Revoke(ctx, oldToken.ID); err != nil {
		utils.Logger.WithError(err).Error("failed to revoke old refresh token")
		return "", "", err
	}

	newAccess, aErr := j.GenerateAccessToken(oldToken.UserID, user.Role, tokenExpiry)
	if aErr != nil {
		return "", "", aErr
	}
	newRefresh, rErr := j.GenerateRefreshToken(ctx, oldToken.UserID, refreshExpiry)
	if rErr != nil {
		return "", "", rErr
	}
	return newAccess, newRefresh, nil
}

func (j *jwtService) Logout(ctx context.Context, refreshTokenString string) error {
	if j.tokenRepo == nil {
		return errors.New("jwtService has nil tokenRepo")
	}

	oldToken, err := j.tokenRepo.GetByHash(ctx, utils.HashToken(refreshTokenString))
	if err != nil {
		utils.Logger.WithError(err).Error("logout refresh token lookup failed")
		return errors.New("logout server error")
	}
	if oldToken == nil {
		// already gone, no-op
		return nil
	}
	return j.tokenRepo.Revoke(ctx, oldToken.ID)
}

// LogoutAll revokes every refresh token the user holds. Password changes
// call this so stale sessions die immediately.
func (j *jwtService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return j.tokenRepo.RevokeAllForUser(ctx, userID)
}

func (j *jwtService) signClaims(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}

func generateSecureToken(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[secureRandomInt(len(charset))]
	}
	return string(b)
}

func secureRandomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}
	return int(n.Int64())
}
