package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, string, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error

	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type authService struct {
	cfg        *config.Config
	userRepo   repositories.UserRepository
	resetRepo  repositories.ResetTokenRepository
	jwtService JWTService
	emailSvc   EmailService
}

func NewAuthService(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	resetRepo repositories.ResetTokenRepository,
	jwtService JWTService,
	emailSvc EmailService,
) AuthService {
	return &authService{
		cfg:        cfg,
		userRepo:   userRepo,
		resetRepo:  resetRepo,
		jwtService: jwtService,
		emailSvc:   emailSvc,
	}
}

func (s *authService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, string, string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if existing != nil {
		return nil, "", "", utils.ErrEmailExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	// best-effort; registration succeeds even if the welcome email fails
	if mailErr := s.emailSvc.SendWelcomeEmail(user.Email, user.FirstName); mailErr != nil {
		utils.Logger.WithError(mailErr).Warn("welcome email failed")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", "", utils.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", "", utils.ErrAccountDisabled
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	return s.jwtService.RefreshTokens(ctx, refreshToken, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.jwtService.Logout(ctx, refreshToken)
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return utils.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	// kill every other session
	if err := s.jwtService.LogoutAll(ctx, userID); err != nil {
		utils.Logger.WithError(err).Warn("failed to revoke sessions after password change")
	}
	return nil
}

// ForgotPassword always succeeds from the caller's perspective so the
// endpoint cannot be used to probe which emails are registered.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return nil
	}

	// one outstanding reset token per user
	if err := s.resetRepo.DeleteAllForUser(ctx, user.ID); err != nil {
		return err
	}

	rawToken := generateSecureToken(48)
	rt := &repositories.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: utils.HashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenExpiry),
	}
	if err := s.resetRepo.Create(ctx, rt); err != nil {
		return err
	}

	return s.emailSvc.SendPasswordResetEmail(user.Email, rawToken)
}

func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	rec, err := s.resetRepo.GetByHash(ctx, utils.HashToken(resetToken))
	if err != nil {
		return err
	}
	if rec == nil || time.Now().After(rec.ExpiresAt) {
		return utils.ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, rec.UserID, hash); err != nil {
		return err
	}

	if err := s.resetRepo.Delete(ctx, rec.ID); err != nil {
		utils.Logger.WithError(err).Warn("failed to delete consumed reset token")
	}
	if err := s.jwtService.LogoutAll(ctx, rec.UserID); err != nil {
		utils.Logger.WithError(err).Warn("failed to revoke sessions after password reset")
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.User, string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role, s.cfg.AccessTokenExpiry)
	if err != nil {
		utils.Logger.WithError(err).Error("failed to generate access token")
		return nil, "", "", err
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(ctx, user.ID, s.cfg.RefreshTokenExpiry)
	if err != nil {
		utils.Logger.WithError(err).Error("failed to generate refresh token")
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}
