package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/constants"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/middleware"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/services"
)

// requesterFromContext reads the identity the auth middleware stored.
// The zero Requester means anonymous (optional-auth routes).
func requesterFromContext(r *http.Request) services.Requester {
	var out services.Requester
	if raw, ok := r.Context().Value(middleware.ContextKeyUserID).(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			out.UserID = id
		}
	}
	if role, ok := r.Context().Value(middleware.ContextKeyUserRole).(string); ok {
		out.Role = role
	}
	return out
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("missing %s path parameter", name)
	}
	return uuid.Parse(raw)
}

// paginationFromQuery clamps page/limit to the shared bounds.
func paginationFromQuery(r *http.Request) repositories.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return repositories.Pagination{Page: page, Limit: limit}
}

// formatValidationErrors converts validator errors into the structured
// details clients render next to form fields.
func formatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	var details []dtos.ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field '%s' must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s in length", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s in length", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("Field '%s' must be at most %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
		})
	}
	return details
}
