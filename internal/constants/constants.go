package constants

import "time"

const (
	AppName = "luxe-property-analysis"

	// Token lifetimes
	AccessTokenExpiry  = 15 * time.Minute
	RefreshTokenExpiry = 7 * 24 * time.Hour
	ResetTokenExpiry   = 30 * time.Minute

	// Nightly token cleanup, server-local time
	TokenCleanupCronSpec = "0 3 * * *"

	// Upload limits
	MaxImageUploadBytes    = 10 << 20
	MaxDocumentUploadBytes = 25 << 20
	MaxImagesPerBatch      = 10

	// Pagination bounds shared by every list endpoint
	DefaultPageSize = 20
	MaxPageSize     = 100
)
