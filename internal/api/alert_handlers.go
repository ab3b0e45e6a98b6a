package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/scguardian/guardian/internal/models"
	"github.com/scguardian/guardian/internal/session"
)

// ListAlerts handles GET /api/alerts
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatus(r.URL.Query().Get("status"))
	if err != nil {
		h.writeServiceError(w, err, "list_alerts")
		return
	}

	filter := session.AlertFilter{Status: status}
	if raw := r.URL.Query().Get("relevant"); raw != "" {
		relevant, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeServiceError(w, ValidationError{Field: "relevant", Message: "must be a boolean"}, "list_alerts")
			return
		}
		filter.RelevantOnly = relevant
	}

	alerts, err := h.service.Alerts(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err, "list_alerts")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// GetAlert handles GET /api/alerts/{id}
func (h *Handler) GetAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := h.service.Alert(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, "get_alert")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, alert)
}

// SimulateAlert handles POST /api/alerts/simulate
func (h *Handler) SimulateAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := h.service.SimulateEvent(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "simulate_alert")
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, alert)
}

// IngestAlert handles POST /api/alerts
func (h *Handler) IngestAlert(w http.ResponseWriter, r *http.Request) {
	var item models.RawNewsItem
	if err := decodeJSON(w, r, &item); err != nil {
		h.writeServiceError(w, err, "ingest_alert")
		return
	}
	if err := ValidateNewsItem(item); err != nil {
		h.writeServiceError(w, err, "ingest_alert")
		return
	}

	alert, err := h.service.IngestEvent(r.Context(), item)
	if err != nil {
		h.writeServiceError(w, err, "ingest_alert")
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, alert)
}

// MarkAlertRead handles POST /api/alerts/{id}/read
func (h *Handler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "mark_read", h.service.MarkRead)
}

// DismissAlert handles POST /api/alerts/{id}/dismiss
func (h *Handler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "dismiss", h.service.Dismiss)
}

// MarkAlertActioned handles POST /api/alerts/{id}/action
func (h *Handler) MarkAlertActioned(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "mark_actioned", h.service.MarkActioned)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op string, apply func(context.Context, string) (models.Alert, error)) {
	alert, err := apply(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, op)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, alert)
}
