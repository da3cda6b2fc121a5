package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/services"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type UserController struct {
	userService services.UserService
	validate    *validator.Validate
}

func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
		validate:    validator.New(),
	}
}

func (c *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	user, err := c.userService.GetProfile(r.Context(), requester.UserID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", user)
}

func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	var req dtos.UpdateProfileRequest
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

	user, err := c.userService.UpdateProfile(r.Context(), requester.UserID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Profile updated", user)
}

func (c *UserController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)
	pg := paginationFromQuery(r)

	properties, total, err := c.userService.ListFavorites(r.Context(), requester.UserID, pg)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", dtos.PropertyListResponse{
		Properties: properties,
		Total:      total,
		Page:       pg.Page,
		Limit:      pg.Limit,
	})
}

func (c *UserController) ListActivity(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)
	pg := paginationFromQuery(r)

	entries, total, err := c.userService.ListActivity(r.Context(), requester.UserID, pg)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", map[string]any{
		"activity": entries,
		"total":    total,
		"page":     pg.Page,
		"limit":    pg.Limit,
	})
}
