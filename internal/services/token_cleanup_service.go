package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

// One retry on transient network errors with a small back-off.
const cleanupRetryDelay = 3 * time.Second

// TokenCleanupService removes expired refresh and reset tokens each night.
type TokenCleanupService interface {
	CleanupDaily(ctx context.Context) error
}

type tokenCleanupService struct {
	tokenRepo repositories.TokenRepository
	resetRepo repositories.ResetTokenRepository
}

func NewTokenCleanupService(
	tokenRepo repositories.TokenRepository,
	resetRepo repositories.ResetTokenRepository,
) TokenCleanupService {
	return &tokenCleanupService{
		tokenRepo: tokenRepo,
		resetRepo: resetRepo,
	}
}

// runWithRetry executes op(ctx) and, if it returns a transient network
// error (EOF, pgconn safe-to-retry, or the common closed-connection
// message), waits a moment then retries once.
func (s *tokenCleanupService) runWithRetry(
	ctx context.Context,
	op func(context.Context) (int64, error),
) (int64, error) {
	n, err := op(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || pgconn.SafeToRetry(err) ||
			strings.Contains(err.Error(), "connection was closed") {
			utils.Logger.WithError(err).Warn("token cleanup hit transient DB error; retrying once")
			time.Sleep(cleanupRetryDelay)
			return op(ctx)
		}
		return 0, err
	}
	return n, nil
}

func (s *tokenCleanupService) CleanupDaily(ctx context.Context) error {
	logger := utils.Logger

	removed, err := s.runWithRetry(ctx, s.tokenRepo.DeleteExpired)
	if err != nil {
		logger.WithError(err).Error("Failed to cleanup expired refresh_tokens")
		return err
	}

	resets, err := s.runWithRetry(ctx, s.resetRepo.DeleteExpired)
	if err != nil {
		logger.WithError(err).Error("Failed to cleanup expired password_reset_tokens")
		return err
	}

	logger.Infof("Daily token cleanup completed: %d refresh, %d reset tokens removed", removed, resets)
	return nil
}
