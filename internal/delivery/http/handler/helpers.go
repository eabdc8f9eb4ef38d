package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// decode reads the JSON body into req and validates it. It writes the 400 itself.
func decode(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query parameter.
func queryID(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "Invalid "+name+" ID")
		return nil, false
	}
	return &id, true
}

func principal(w http.ResponseWriter, r *http.Request) (*policy.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return nil, false
	}
	return p, true
}

// writeError maps usecase errors to status codes. Unknown errors become a 500
// with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var fieldErrs *usecase.FieldErrors
	if errors.As(err, &fieldErrs) {
		if errors.Is(fieldErrs.Kind, usecase.ErrConflict) {
			response.Conflict(w, "Resource already exists", fieldErrs.Fields)
			return
		}
		response.ValidationError(w, fieldErrs.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrPatientMismatch),
		errors.Is(err, usecase.ErrInvalidOTP),
		errors.Is(err, usecase.ErrCatalogItemNotFound):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid email, username or password")
	case errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrAccountInactive),
		errors.Is(err, usecase.ErrNotAssignedToPatient):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrAdminNotFound),
		errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrAssignmentNotFound),
		errors.Is(err, usecase.ErrRecordNotFound),
		errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrAdminAlreadyActive),
		errors.Is(err, usecase.ErrAdminOwnsPatients):
		response.Conflict(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrTooManyOTPAttempts):
		response.TooManyRequests(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
