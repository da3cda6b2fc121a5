package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
)

func TestPasswordResetContentUsesConfiguredExpiry(t *testing.T) {
	cfg := &config.Config{
		AppURL:           "https://app.example.com",
		ResetTokenExpiry: 45 * time.Minute,
	}
	svc := &emailService{cfg: cfg}

	_, plain, html := svc.passwordResetContent("tok-123")

	assert.Contains(t, plain, "https://app.example.com/reset-password?token=tok-123")
	assert.Contains(t, plain, "expires in 45 minutes")
	assert.Contains(t, html, "expires in 45 minutes")
	assert.NotContains(t, plain, "30 minutes")
}

func TestSendPasswordResetEmailNoClientIsSilent(t *testing.T) {
	cfg := &config.Config{
		AppURL:           "https://app.example.com",
		ResetTokenExpiry: 30 * time.Minute,
	}
	svc := NewEmailService(cfg)

	require.NoError(t, svc.SendPasswordResetEmail("someone@example.com", fmt.Sprintf("tok-%d", time.Now().Unix())))
}
