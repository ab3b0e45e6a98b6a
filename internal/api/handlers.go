package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/scguardian/guardian/internal/session"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the session endpoints.
type Handler struct {
	service   *session.Service
	logger    *slog.Logger
	startTime time.Time
}

// NewHandler creates a handler over service.
func NewHandler(service *session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		startTime: time.Now(),
	}
}

// writeJSON encodes v with status.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// decodeJSON reads a single JSON object into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ValidationError{Field: "body", Message: err.Error()}
	}
	return nil
}

// writeServiceError maps session errors to HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrAlertNotFound):
		http.Error(w, "Alert not found", http.StatusNotFound)
	case errors.Is(err, session.ErrNotOnboarded):
		http.Error(w, "Complete onboarding first", http.StatusConflict)
	default:
		h.logger.Error("request failed", "operation", op, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// GetDashboard handles GET /api/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "dashboard")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dashboard)
}

// GetInfo handles GET /api/info
func (h *Handler) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"service":        "scguardian",
		"status":         "ready",
		"version":        Version,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}
