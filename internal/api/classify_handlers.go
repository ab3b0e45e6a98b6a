package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/scguardian/guardian/internal/classifier"
	"github.com/scguardian/guardian/internal/models"
)

// Assessor classifies with provenance. *classifier.Gateway implements it.
type Assessor interface {
	Assess(ctx context.Context, profile models.BusinessProfile, item models.RawNewsItem) classifier.Assessment
}

// ClassifyRequest pairs a profile with one news item.
type ClassifyRequest struct {
	Profile models.BusinessProfile `json:"profile"`
	Item    models.RawNewsItem     `json:"item"`
}

// ClassifyResponse wraps the analysis with where it came from.
type ClassifyResponse struct {
	Analysis models.AnalysisResult `json:"analysis"`
	Path     classifier.Path       `json:"path"`
	Reason   classifier.Reason     `json:"reason,omitempty"`
}

// ClassifyHandler serves stateless classification.
type ClassifyHandler struct {
	assessor Assessor
	logger   *slog.Logger
}

// NewClassifyHandler creates a handler over assessor.
func NewClassifyHandler(assessor Assessor, logger *slog.Logger) *ClassifyHandler {
	return &ClassifyHandler{assessor: assessor, logger: logger}
}

// Classify handles POST /api/classify
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ValidateProfile(req.Profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ValidateNewsItem(req.Item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Item.ID) == "" {
		req.Item.ID = "adhoc"
	}

	req.Profile.Normalize()
	assessment := h.assessor.Assess(r.Context(), req.Profile, req.Item)

	h.logger.Debug("classified news item",
		"news_id", req.Item.ID,
		"path", assessment.Path,
		"reason", assessment.Reason,
		"relevant", assessment.Result.Relevant)

	writeJSON(w, h.logger, http.StatusOK, ClassifyResponse{
		Analysis: assessment.Result,
		Path:     assessment.Path,
		Reason:   assessment.Reason,
	})
}
