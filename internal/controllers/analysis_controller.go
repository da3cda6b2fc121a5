package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/services"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type AnalysisController struct {
	analysisService services.AnalysisService
	validate        *validator.Validate
}

func NewAnalysisController(analysisService services.AnalysisService) *AnalysisController {
	return &AnalysisController{
		analysisService: analysisService,
		validate:        validator.New(),
	}
}

// decodeValidated centralizes the decode + validate + respond dance the
// analysis endpoints all share. Returns false when a response was sent.
func (c *AnalysisController) decodeValidated(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return false
	}
	if err := c.validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(vErrs))
			return false
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return false
	}
	return true
}

func (c *AnalysisController) Create(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)

	var req dtos.CreateAnalysisRequest
	if !c.decodeValidated(w, r, &req) {
		return
	}

	analysis, err := c.analysisService.Create(r.Context(), requester.UserID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, "Analysis created", analysis)
}

func (c *AnalysisController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	analysis, err := c.analysisService.GetByID(r.Context(), requesterFromContext(r), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", analysis)
}

func (c *AnalysisController) ListMine(w http.ResponseWriter, r *http.Request) {
	requester := requesterFromContext(r)
	pg := paginationFromQuery(r)
	f := repositories.AnalysisFilters{
		Status: r.URL.Query().Get("status"),
		Tag:    r.URL.Query().Get("tag"),
	}

	analyses, total, err := c.analysisService.ListMine(r.Context(), requester.UserID, f, pg)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", dtos.AnalysisListResponse{
		Analyses: analyses,
		Total:    total,
		Page:     pg.Page,
		Limit:    pg.Limit,
	})
}

func (c *AnalysisController) ListPublic(w http.ResponseWriter, r *http.Request) {
	pg := paginationFromQuery(r)

	analyses, total, err := c.analysisService.ListPublic(r.Context(), pg)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", dtos.AnalysisListResponse{
		Analyses: analyses,
		Total:    total,
		Page:     pg.Page,
		Limit:    pg.Limit,
	})
}

func (c *AnalysisController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	var req dtos.UpdateAnalysisRequest
	if !c.decodeValidated(w, r, &req) {
		return
	}

	analysis, err := c.analysisService.Update(r.Context(), requesterFromContext(r), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Analysis updated", analysis)
}

func (c *AnalysisController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	if err := c.analysisService.Delete(r.Context(), requesterFromContext(r), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Analysis deleted", nil)
}

func (c *AnalysisController) SetFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}

	if err := c.analysisService.SetFavorite(r.Context(), requesterFromContext(r), id, req.Favorite); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", map[string]bool{"favorite": req.Favorite})
}

func (c *AnalysisController) Share(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	// an empty body shares without emailing anyone
	var req dtos.ShareAnalysisRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr == nil && req.Email != "" {
		if vErr := c.validate.Struct(req); vErr != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "A valid email is required", nil, vErr)
			return
		}
	}

	analysis, err := c.analysisService.Share(r.Context(), requesterFromContext(r), id, req.Email)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Analysis shared", analysis)
}

/* ------------------------------------------------------------------
   Sections
------------------------------------------------------------------ */

func (c *AnalysisController) GetMotivation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	resp, err := c.analysisService.GetMotivation(r.Context(), requesterFromContext(r), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", resp)
}

func (c *AnalysisController) SaveMotivation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	var req dtos.SaveMotivationRequest
	if !c.decodeValidated(w, r, &req) {
		return
	}

	m, err := c.analysisService.SaveMotivation(r.Context(), requesterFromContext(r), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Purchase motivation saved", m)
}

func (c *AnalysisController) GetRevenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	p, err := c.analysisService.GetRevenue(r.Context(), requesterFromContext(r), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", p)
}

func (c *AnalysisController) SaveRevenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	var req dtos.SaveRevenueRequest
	if !c.decodeValidated(w, r, &req) {
		return
	}

	p, err := c.analysisService.SaveRevenue(r.Context(), requesterFromContext(r), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Revenue projection saved", p)
}

func (c *AnalysisController) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	b, err := c.analysisService.GetMaintenance(r.Context(), requesterFromContext(r), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", b)
}

func (c *AnalysisController) SaveMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	var req dtos.SaveMaintenanceRequest
	if !c.decodeValidated(w, r, &req) {
		return
	}

	b, err := c.analysisService.SaveMaintenance(r.Context(), requesterFromContext(r), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "Maintenance breakdown saved", b)
}

func (c *AnalysisController) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid analysis id", nil, err)
		return
	}

	summary, err := c.analysisService.Summary(r.Context(), requesterFromContext(r), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "", summary)
}
