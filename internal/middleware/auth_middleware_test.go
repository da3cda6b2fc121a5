package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":  TokenIssuer,
		"sub":  "8d7f8b1e-0000-4000-8000-000000000001",
		"role": role,
		"exp":  time.Now().Add(time.Minute).Unix(),
		"iat":  time.Now().Unix(),
	}
}

// echoIdentity writes back what the middleware stored in the context.
func echoIdentity(t *testing.T, captured *map[string]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, _ := r.Context().Value(ContextKeyUserID).(string)
		role, _ := r.Context().Value(ContextKeyUserRole).(string)
		*captured = map[string]string{"sub": sub, "role": role}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var body utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	key := testKey(t)
	var captured map[string]string
	handler := AuthMiddleware(&key.PublicKey)(echoIdentity(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, validClaims(models.RoleUser)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "8d7f8b1e-0000-4000-8000-000000000001", captured["sub"])
	assert.Equal(t, models.RoleUser, captured["role"])
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	key := testKey(t)
	var captured map[string]string
	handler := AuthMiddleware(&key.PublicKey)(echoIdentity(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{
		Name:  AccessTokenCookieName,
		Value: signToken(t, key, validClaims(models.RoleUser)),
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleUser, captured["role"])
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	key := testKey(t)
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, utils.ErrCodeUnauthorized, body.Error.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	key := testKey(t)
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	}))

	claims := validClaims(models.RoleUser)
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, claims))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, utils.ErrCodeTokenExpired, body.Error.Code)
}

func TestAuthMiddleware_WrongIssuer(t *testing.T) {
	key := testKey(t)
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a foreign issuer")
	}))

	claims := validClaims(models.RoleUser)
	claims["iss"] = "SomeOtherService"

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, claims))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongKey(t *testing.T) {
	signingKey := testKey(t)
	verifyKey := testKey(t)
	handler := AuthMiddleware(&verifyKey.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a forged signature")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, signingKey, validClaims(models.RoleUser)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	key := testKey(t)
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthMiddleware_NonAdminForbidden(t *testing.T) {
	key := testKey(t)
	handler := AdminAuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a non-admin")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, validClaims(models.RoleUser)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, utils.ErrCodeForbidden, body.Error.Code)

	details, ok := body.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, details["required_role"])
	assert.Equal(t, models.RoleUser, details["actual_role"])
}

func TestAdminAuthMiddleware_AdminPasses(t *testing.T) {
	key := testKey(t)
	var captured map[string]string
	handler := AdminAuthMiddleware(&key.PublicKey)(echoIdentity(t, &captured))

	req := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, validClaims(models.RoleAdmin)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleAdmin, captured["role"])
}

func TestOptionalAuthMiddleware_NoTokenPassesThrough(t *testing.T) {
	key := testKey(t)
	var captured map[string]string
	handler := OptionalAuthMiddleware(&key.PublicKey)(echoIdentity(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, captured["sub"])
}

func TestOptionalAuthMiddleware_ValidTokenSetsIdentity(t *testing.T) {
	key := testKey(t)
	var captured map[string]string
	handler := OptionalAuthMiddleware(&key.PublicKey)(echoIdentity(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, validClaims(models.RoleUser)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "8d7f8b1e-0000-4000-8000-000000000001", captured["sub"])
}

func TestOptionalAuthMiddleware_BadTokenRejected(t *testing.T) {
	key := testKey(t)
	handler := OptionalAuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
