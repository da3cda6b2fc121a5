package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/constants"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

// Config holds all application configuration, including secrets.
type Config struct {
	AppName string
	AppPort string
	AppURL  string

	DBUrl string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	ResetTokenExpiry   time.Duration

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	SendGridAPIKey  string
	SendGridFrom    string
	SendGridSandbox bool

	AWSRegion   string
	S3Bucket    string
	S3URLPrefix string

	CORSAllowedOrigins []string
}

// LoadConfig reads the .env file (if present) and environment variables,
// parses the RSA key pair, and fails fast on anything required.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found, using system environment")
	}

	cfg := &Config{
		AppName: constants.AppName,
		AppPort: getEnv("APP_PORT", "8080"),
		AppURL:  getEnv("APP_URL", "http://localhost:8080"),

		DBUrl: mustEnv("DATABASE_URL"),

		AccessTokenExpiry:  getEnvDuration("ACCESS_TOKEN_EXPIRY", constants.AccessTokenExpiry),
		RefreshTokenExpiry: getEnvDuration("REFRESH_TOKEN_EXPIRY", constants.RefreshTokenExpiry),
		ResetTokenExpiry:   getEnvDuration("RESET_TOKEN_EXPIRY", constants.ResetTokenExpiry),

		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		SendGridFrom:    getEnv("SENDGRID_FROM_EMAIL", "no-reply@luxepropertyanalysis.com"),
		SendGridSandbox: getEnvBool("SENDGRID_SANDBOX_MODE", false),

		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3URLPrefix: getEnv("S3_URL_PREFIX", ""),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	cfg.RSAPrivateKey = parsePrivateKey(mustEnv("RSA_PRIVATE_KEY_BASE64"))
	cfg.RSAPublicKey = parsePublicKey(mustEnv("RSA_PUBLIC_KEY_BASE64"))

	return cfg
}

func parsePrivateKey(b64 string) *rsa.PrivateKey {
	keyPEM, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 private key")
	}
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for private key")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(keyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}
	return key
}

func parsePublicKey(b64 string) *rsa.PublicKey {
	keyPEM, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 public key")
	}
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(keyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}
	return key
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s is required", key)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Fatalf("%s must be a boolean, got %q", key, v)
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.Logger.Fatalf("%s must be a duration, got %q", key, v)
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
