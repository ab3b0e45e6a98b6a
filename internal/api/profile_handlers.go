package api

import (
	"net/http"

	"github.com/scguardian/guardian/internal/models"
)

// ToggleRequest adds or removes one entry of a profile list.
type ToggleRequest struct {
	Field string `json:"field"`
	Item  string `json:"item"`
}

// GetProfile handles GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Profile(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "get_profile")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, state)
}

// CompleteOnboarding handles PUT /api/profile
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var profile models.BusinessProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		h.writeServiceError(w, err, "complete_onboarding")
		return
	}
	if err := ValidateProfile(profile); err != nil {
		h.writeServiceError(w, err, "complete_onboarding")
		return
	}

	state, err := h.service.CompleteOnboarding(r.Context(), profile)
	if err != nil {
		h.writeServiceError(w, err, "complete_onboarding")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, state)
}

// ToggleProfileItem handles POST /api/profile/toggle
func (h *Handler) ToggleProfileItem(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, err, "toggle_profile_item")
		return
	}

	state, err := h.service.ToggleProfileItem(r.Context(), req.Field, req.Item)
	if err != nil {
		h.writeServiceError(w, err, "toggle_profile_item")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, state)
}
