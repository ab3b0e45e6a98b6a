package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/scguardian/guardian/internal/inference"
	"github.com/scguardian/guardian/internal/models"
)

// InferenceLogHandler handles HTTP requests for inference log inspection
type InferenceLogHandler struct {
	repo   inference.Repository
	logger *slog.Logger
}

// NewInferenceLogHandler creates a new handler
func NewInferenceLogHandler(repo inference.Repository, logger *slog.Logger) *InferenceLogHandler {
	return &InferenceLogHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListInferenceLogs handles GET /api/admin/inference-logs
func (h *InferenceLogHandler) ListInferenceLogs(w http.ResponseWriter, r *http.Request) {
	query := models.InferenceLogQuery{
		Provider: r.URL.Query().Get("provider"),
		Status:   r.URL.Query().Get("status"),
		Limit:    100,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			query.Limit = min(limit, 1000)
		}
	}

	logs, err := h.repo.List(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to list inference logs", "error", err)
		http.Error(w, "Failed to list inference logs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"logs":  logs,
		"limit": query.Limit,
	})
}

// GetInferenceStats handles GET /api/admin/inference-logs/stats
func (h *InferenceLogHandler) GetInferenceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to get inference stats", "error", err)
		http.Error(w, "Failed to get inference stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, stats)
}
