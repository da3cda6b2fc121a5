package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/middleware"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/services"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

// RefreshTokenCookieName scopes the refresh token to the refresh endpoint.
const RefreshTokenCookieName = "auth_refreshToken"

type AuthController struct {
	authService services.AuthService
	cfg         *config.Config
	validate    *validator.Validate
}

func NewAuthController(authService services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		authService: authService,
		cfg:         cfg,
		validate:    validator.New(),
	}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(vErrs))
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	user, access, refresh, err := c.authService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, utils.ErrEmailExists) {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "An account with this email already exists", nil)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	c.setAuthCookies(w, access, refresh)
	utils.RespondWithJSON(w, http.StatusCreated, "Account created", dtos.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	user, access, refresh, err := c.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidCredentials):
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid email or password", nil)
		case errors.Is(err, utils.ErrAccountDisabled):
			utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "This account has been disabled", nil)
		default:
			utils.HandleAppError(w, err)
		}
		return
	}

	c.setAuthCookies(w, access, refresh)
	utils.RespondWithJSON(w, http.StatusOK, "Logged in", dtos.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := c.refreshTokenFromRequest(r)
	if refreshToken == "" {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing refresh token", nil)
		return
	}

	access, refresh, err := c.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid refresh token", nil)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	c.setAuthCookies(w, access, refresh)
	utils.RespondWithJSON(w, http.StatusOK, "", dtos.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if refreshToken := c.refreshTokenFromRequest(r); refreshToken != "" {
		if err := c.authService.Logout(r.Context(), refreshToken); err != nil {
			utils.Logger.WithError(err).Warn("logout failed")
		}
	}

	c.clearAuthCookies(w)
	utils.RespondWithJSON(w, http.StatusOK, "Logged out", nil)
}

func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	var req dtos.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(vErrs))
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	if err := c.authService.ChangePassword(r.Context(), requester.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Current password is incorrect", nil)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	c.clearAuthCookies(w)
	utils.RespondWithJSON(w, http.StatusOK, "Password changed", nil)
}

// ForgotPassword answers 200 whether or not the email exists.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dtos.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "A valid email is required", nil, err)
		return
	}

	if err := c.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, utils.ErrExternalServiceFailure) {
			utils.RespondErrorWithCode(w, http.StatusFailedDependency, utils.ErrCodeExternalServiceFailure, "Failed to send email due to an external service issue", nil, err)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "If that email is registered, a reset link has been sent", nil)
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dtos.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	if err := c.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, utils.ErrInvalidResetToken) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Reset link is invalid or expired", nil)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Password reset", nil)
}

// refreshTokenFromRequest prefers the cookie, falling back to the body
// for clients that do not use cookies.
func (c *AuthController) refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(RefreshTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req dtos.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (c *AuthController) setAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    access,
		Path:     "/",
		Expires:  time.Now().Add(c.cfg.AccessTokenExpiry),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    refresh,
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(c.cfg.RefreshTokenExpiry),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c *AuthController) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
