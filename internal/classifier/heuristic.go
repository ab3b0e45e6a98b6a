package classifier

import (
	"strings"

	"github.com/scguardian/guardian/internal/models"
)

// Fixed strings produced by the keyword fallback.
const (
	HeuristicAffectedAspect    = "Sourcing Region Match"
	HeuristicRecommendedAction = "Monitor situation."
	HeuristicMatchReasoning    = "Keyword fallback: the alert location matches one of your sourcing regions or entry ports."
	HeuristicNoMatchReasoning  = "Keyword fallback: no direct geographic overlap found with your profile."
)

// ClassifyHeuristically classifies item by plain case-insensitive substring
// containment of the profile's regions and ports in the alert's location,
// title and summary. It is deterministic and performs no I/O.
func ClassifyHeuristically(profile models.BusinessProfile, item models.RawNewsItem) models.AnalysisResult {
	haystack := strings.ToLower(item.Location + " " + item.Title + " " + item.Summary)

	locationMatch := containsAny(haystack, profile.SourceRegions)
	portMatch := containsAny(haystack, profile.EntryPorts)

	if !(locationMatch || portMatch) {
		return models.AnalysisResult{
			Relevant:   false,
			Confidence: models.ConfidenceLow,
			Reasoning:  HeuristicNoMatchReasoning,
		}
	}

	return models.AnalysisResult{
		Relevant:          true,
		Confidence:        models.ConfidenceLow,
		Urgency:           models.UrgencyPtr(models.UrgencyMedium),
		ImpactType:        models.ImpactTypePtr(models.ImpactSupplyDisruption),
		AffectedAspect:    models.StringPtr(HeuristicAffectedAspect),
		Reasoning:         HeuristicMatchReasoning,
		RecommendedAction: models.StringPtr(HeuristicRecommendedAction),
	}
}

// containsAny reports whether any needle, lowercased, is a substring of the
// already lowercased haystack.
func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
