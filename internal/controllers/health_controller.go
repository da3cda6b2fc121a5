package controllers

import (
	"context"
	"net/http"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/app"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app: app}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB.Ping(context.Background()); err != nil {
		utils.Logger.WithError(err).Error("Database unreachable")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Database unreachable",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "", dtos.HealthCheckResponse{Status: "OK"})
}
