package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

// StorageService stores uploaded files in S3 and hands back public URLs.
type StorageService interface {
	Upload(ctx context.Context, folder, filename string, contentType string, body io.Reader) (string, string, error)
	Delete(ctx context.Context, key string) error
	Enabled() bool
}

type storageService struct {
	cfg       *config.Config
	client    *s3.Client
	urlPrefix string
}

// NewStorageService degrades to a disabled service when no bucket is
// configured; upload endpoints then answer 503 instead of panicking.
func NewStorageService(ctx context.Context, cfg *config.Config) StorageService {
	svc := &storageService{cfg: cfg}
	if cfg.S3Bucket == "" {
		utils.Logger.Warn("S3_BUCKET not set, file uploads disabled")
		return svc
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithDefaultRegion(cfg.AWSRegion))
	if err != nil {
		utils.Logger.WithError(err).Warn("unable to load AWS config, file uploads disabled")
		return svc
	}

	svc.client = s3.NewFromConfig(awsCfg)
	svc.urlPrefix = cfg.S3URLPrefix
	if svc.urlPrefix == "" {
		svc.urlPrefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.AWSRegion)
	}
	return svc
}

func (s *storageService) Enabled() bool { return s.client != nil }

func errStorageDisabled() error {
	return &utils.AppError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       utils.ErrCodeExternalServiceFailure,
		Message:    "File storage is not available",
	}
}

// Upload returns the object key and public URL. Keys are namespaced by
// folder and randomized so uploads never collide or get guessed.
func (s *storageService) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, string, error) {
	if s.client == nil {
		return "", "", errStorageDisabled()
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.S3Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		utils.Logger.WithError(err).Error("S3 PutObject failed")
		return "", "", fmt.Errorf("%w: s3 upload: %v", utils.ErrExternalServiceFailure, err)
	}

	return key, fmt.Sprintf("%s/%s", s.urlPrefix, key), nil
}

func (s *storageService) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errStorageDisabled()
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		utils.Logger.WithError(err).Error("S3 DeleteObject failed")
		return fmt.Errorf("%w: s3 delete: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}
