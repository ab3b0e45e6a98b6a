package api

import (
	"log/slog"
	"net/http"

	"github.com/scguardian/guardian/internal/feed"
	"github.com/scguardian/guardian/internal/models"
)

// OptionsResponse lists the values the onboarding form offers.
type OptionsResponse struct {
	Regions         []string            `json:"regions"`
	Ports           []string            `json:"ports"`
	BusinessTypes   []feed.Choice       `json:"business_types"`
	RiskTolerances  []feed.Choice       `json:"risk_tolerances"`
	AlertCategories []feed.Choice       `json:"alert_categories"`
	Confidences     []models.Confidence `json:"confidences"`
	Urgencies       []models.Urgency    `json:"urgencies"`
	ImpactTypes     []models.ImpactType `json:"impact_types"`
}

// GetOptions handles GET /api/options
func GetOptions(logger *slog.Logger) http.HandlerFunc {
	resp := OptionsResponse{
		Regions:         feed.Regions,
		Ports:           feed.Ports,
		BusinessTypes:   feed.BusinessTypes,
		RiskTolerances:  feed.RiskTolerances,
		AlertCategories: feed.AlertCategories,
		Confidences:     models.Confidences,
		Urgencies:       models.Urgencies,
		ImpactTypes:     models.ImpactTypes,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, resp)
	}
}
