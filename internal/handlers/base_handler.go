package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/edupath/backend/internal/auth/middleware"
	"github.com/edupath/backend/internal/middlewares"
	"github.com/edupath/backend/internal/models"
	"github.com/edupath/backend/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// ValidationErrorResponse is returned for invalid input
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// HandleServiceError maps a service error to its HTTP status.
// Unexpected errors are logged and answered with a generic message.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var vErr *validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{Error: vErr.Error(), Fields: vErr.FieldMap()})
	case errors.Is(err, models.ErrValidation):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrAccessDenied):
		h.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrConflict):
		h.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidState):
		h.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Logger.Error("failed to "+action,
			middlewares.RequestIDField(r.Context()),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// DecodeAndValidate decodes a JSON body into v and validates it.
// On failure the response is written and false is returned.
func (h *BaseHandler) DecodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validation.Struct(v); err != nil {
		h.HandleServiceError(w, r, err, "validate request")
		return false
	}

	return true
}

// Caller returns the authenticated caller or writes a 401 response
func (h *BaseHandler) Caller(w http.ResponseWriter, r *http.Request) (models.Caller, bool) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.Logger.Error("caller not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return models.Caller{}, false
	}
	return caller, true
}

// PathID parses a positive integer path parameter or writes a 400 response
func (h *BaseHandler) PathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
