// Package feed holds the static catalogs the service is seeded with: the
// sourcing regions and entry ports offered during onboarding, the mock news
// feed used for simulated events and the alerts a new session starts with.
package feed

import (
	"time"

	"github.com/scguardian/guardian/internal/models"
)

// Regions are the sourcing regions offered during onboarding.
var Regions = []string{
	"China (Mainland)",
	"Taiwan",
	"Vietnam",
	"India",
	"Mexico",
	"USA (Domestic)",
	"Europe",
	"Central America",
	"South America",
}

// Ports are the entry ports offered during onboarding.
var Ports = []string{
	"Port of Los Angeles",
	"Port of Long Beach",
	"Port of Oakland",
	"Port of New York/New Jersey",
	"Port of Savannah",
	"Port of Seattle/Tacoma",
}

// Choice is a selectable value with display text.
type Choice struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// BusinessTypes lists the onboarding business type choices.
var BusinessTypes = []Choice{
	{ID: string(models.BusinessTypeProductSeller), Label: "Product Seller", Description: "E-commerce, FBA, Retail"},
	{ID: string(models.BusinessTypeManufacturing), Label: "Manufacturing", Description: "Assembly, Fabrication"},
	{ID: string(models.BusinessTypeFoodBeverage), Label: "Food & Beverage", Description: "Restaurants, Cafes"},
}

// RiskTolerances lists the onboarding risk tolerance choices.
var RiskTolerances = []Choice{
	{ID: string(models.RiskToleranceSensitive), Label: "Very Sensitive", Description: "Perishables, Just-in-Time (Alert me on everything)"},
	{ID: string(models.RiskToleranceModerate), Label: "Moderate", Description: "2-4 week buffer stock (Standard)"},
	{ID: string(models.RiskToleranceResilient), Label: "Resilient", Description: "Months of inventory (Only critical disasters)"},
}

// AlertCategories lists the alert categories a profile can subscribe to.
var AlertCategories = []Choice{
	{ID: models.AlertCategoryDisasters, Label: "Disasters"},
	{ID: models.AlertCategoryPorts, Label: "Port Disruptions"},
	{ID: models.AlertCategoryGeopolitical, Label: "Geopolitical"},
	{ID: models.AlertCategoryRecalls, Label: "Recalls"},
	{ID: models.AlertCategoryTradePolicy, Label: "Trade Policy"},
}

// MockNewsFeed returns the simulated global feed, every item dated now.
func MockNewsFeed(now time.Time) []models.RawNewsItem {
	return []models.RawNewsItem{
		{
			ID:       "news-1",
			Source:   "USGS",
			Type:     "Earthquake",
			Date:     now,
			Location: "Taiwan",
			Title:    "Magnitude 6.2 Earthquake strikes Hualien City",
			Summary:  "Strong earthquake reported off the east coast of Taiwan. Buildings shaking in Taipei. Tsunami warning issued for local areas.",
		},
		{
			ID:       "news-2",
			Source:   "Reuters",
			Type:     "Trade Policy",
			Date:     now,
			Location: "India",
			Title:    "India Imposes 20% Export Duty on Parboiled Rice",
			Summary:  "Government moves to maintain domestic stock and control prices. Immediate effect on all non-basmati white rice exports.",
		},
		{
			ID:       "news-3",
			Source:   "FreightWaves",
			Type:     "Port Disruption",
			Date:     now,
			Location: "Panama Canal",
			Title:    "Severe Drought Reduces Panama Canal Draft Limits",
			Summary:  "Water levels in Gatun Lake hit historic lows. Vessel transit slots reduced by 30% for the next month.",
		},
		{
			ID:       "news-4",
			Source:   "USDA",
			Type:     "Recall",
			Date:     now,
			Location: "USA",
			Title:    "Class I Recall: Frozen Organic Strawberries",
			Summary:  "Potential Hepatitis A contamination in organic strawberries sourced from Baja California, Mexico.",
		},
	}
}

// SeedAlerts returns the alerts a fresh session is populated with, dated
// relative to now.
func SeedAlerts(now time.Time) []models.Alert {
	oakland := now.Add(-2 * time.Hour)
	vietnam := now.Add(-5 * time.Hour)
	china := now.Add(-24 * time.Hour)

	return []models.Alert{
		{
			ID:        "1",
			NewsID:    "seed-1",
			Title:     "Port of Oakland Labor Negotiations Stalled",
			Source:    "FreightWaves",
			Date:      oakland,
			Location:  "Oakland, USA",
			Summary:   "Labor negotiations between ILWU and PMA at Port of Oakland have stalled after union rejected latest contract proposal.",
			Status:    models.AlertStatusUnread,
			CreatedAt: oakland,
			Analysis: models.AnalysisResult{
				Relevant:          true,
				Confidence:        models.ConfidenceHigh,
				Urgency:           models.UrgencyPtr(models.UrgencyMedium),
				ImpactType:        models.ImpactTypePtr(models.ImpactShippingDelay),
				AffectedAspect:    models.StringPtr("Import logistics via West Coast"),
				Reasoning:         "Your profile indicates reliance on the Port of Oakland for entry. Stalled negotiations often lead to slowdowns.",
				RecommendedAction: models.StringPtr("Check if any shipments are currently in transit. Consider routing urgent orders through LA/Long Beach if possible."),
				EstimatedTimeline: models.StringPtr("1-2 weeks potential delay"),
			},
		},
		{
			ID:        "2",
			NewsID:    "seed-2",
			Title:     "Typhoon approaching Vietnam Coast",
			Source:    "GDACS",
			Date:      vietnam,
			Location:  "Vietnam",
			Summary:   "Tropical Cyclone 12W expecting landfall in northern Vietnam within 48 hours.",
			Status:    models.AlertStatusRead,
			CreatedAt: vietnam,
			Analysis: models.AnalysisResult{
				Relevant:          true,
				Confidence:        models.ConfidenceMedium,
				Urgency:           models.UrgencyPtr(models.UrgencyLow),
				ImpactType:        models.ImpactTypePtr(models.ImpactSupplyDisruption),
				AffectedAspect:    models.StringPtr("Manufacturing in Vietnam"),
				Reasoning:         "You source from Vietnam. While the storm path is currently north of major industrial zones, it bears watching.",
				RecommendedAction: models.StringPtr("Monitor storm path. Contact suppliers for status check if path shifts south."),
				EstimatedTimeline: models.StringPtr("3-4 days"),
			},
		},
		{
			ID:        "3",
			NewsID:    "seed-3",
			Title:     "New Export Controls on Semiconductor Materials",
			Source:    "Reuters",
			Date:      china,
			Location:  "China",
			Summary:   "China announces new restrictions on the export of Gallium and Germanium starting next month.",
			Status:    models.AlertStatusActioned,
			CreatedAt: china,
			Analysis: models.AnalysisResult{
				Relevant:   false,
				Confidence: models.ConfidenceHigh,
				Reasoning:  "Your product description (Coffee Beans) does not utilize semiconductor materials.",
			},
		},
	}
}
