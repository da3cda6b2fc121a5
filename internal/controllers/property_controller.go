package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/services"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type PropertyController struct {
	propertyService services.PropertyService
	validate        *validator.Validate
}

func NewPropertyController(propertyService services.PropertyService) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
		validate:        validator.New(),
	}
}

func (c *PropertyController) Create(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	var req dtos.CreatePropertyRequest
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

	property, err := c.propertyService.Create(r.Context(), requester.UserID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, "Property created", property)
}

func (c *PropertyController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property id", nil, err)
		return
	}

	var viewerID *uuid.UUID
	if requester := requesterFromContext(r); requester.UserID != uuid.Nil {
		viewerID = &requester.UserID
	}

	property, err := c.propertyService.GetByID(r.Context(), id, viewerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", property)
}

func (c *PropertyController) List(w http.ResponseWriter, r *http.Request) {
	pg := paginationFromQuery(r)
	f := propertyFiltersFromQuery(r)

	properties, total, err := c.propertyService.List(r.Context(), f, pg)
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

func (c *PropertyController) ListMine(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)
	pg := paginationFromQuery(r)

	properties, total, err := c.propertyService.ListMine(r.Context(), requester.UserID, pg)
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

func (c *PropertyController) Update(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property id", nil, err)
		return
	}

	var req dtos.UpdatePropertyRequest
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

	property, err := c.propertyService.Update(r.Context(), requester, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Property updated", property)
}

func (c *PropertyController) Delete(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property id", nil, err)
		return
	}

	if err := c.propertyService.Delete(r.Context(), requester, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Property deleted", nil)
}

func (c *PropertyController) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property id", nil, err)
		return
	}

	favorited, err := c.propertyService.ToggleFavorite(r.Context(), requester.UserID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", map[string]bool{"favorited": favorited})
}

func propertyFiltersFromQuery(r *http.Request) repositories.PropertyFilters {
	q := r.URL.Query()
	f := repositories.PropertyFilters{
		Search:       q.Get("search"),
		PropertyType: q.Get("property_type"),
		Status:       q.Get("status"),
		City:         q.Get("city"),
		State:        q.Get("state"),
		ZipCode:      q.Get("zip_code"),
		SortBy:       q.Get("sort_by"),
		SortOrder:    q.Get("sort_order"),
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.Atoi(q.Get("bedrooms")); err == nil {
		f.Bedrooms = &v
	}
	if v, err := strconv.Atoi(q.Get("bathrooms")); err == nil {
		f.Bathrooms = &v
	}
	return f
}
