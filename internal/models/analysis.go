package models

// Confidence is the classifier's certainty in its own assessment.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of the declared confidence levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// Urgency is the severity tier assigned to a relevant event.
type Urgency string

const (
	UrgencyCritical Urgency = "critical" // Reserved for genuine emergencies
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Valid reports whether u is one of the declared urgency tiers.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

// ImpactType describes how an event reaches the business.
type ImpactType string

const (
	ImpactSupplyDisruption ImpactType = "supply_disruption"
	ImpactShippingDelay    ImpactType = "shipping_delay"
	ImpactCostIncrease     ImpactType = "cost_increase"
	ImpactSafetyRecall     ImpactType = "safety_recall"
	ImpactRegulatory       ImpactType = "regulatory"
)

// Valid reports whether i is one of the declared impact types.
func (i ImpactType) Valid() bool {
	switch i {
	case ImpactSupplyDisruption, ImpactShippingDelay, ImpactCostIncrease, ImpactSafetyRecall, ImpactRegulatory:
		return true
	}
	return false
}

// Confidences, Urgencies and ImpactTypes list the closed value sets in display order.
var (
	Confidences = []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
	Urgencies   = []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}
	ImpactTypes = []ImpactType{ImpactSupplyDisruption, ImpactShippingDelay, ImpactCostIncrease, ImpactSafetyRecall, ImpactRegulatory}
)

// AnalysisResult is the structured risk assessment of one news item against one
// business profile. Nil pointer fields serialize as JSON null.
type AnalysisResult struct {
	Relevant          bool        `json:"relevant"`
	Confidence        Confidence  `json:"confidence"`
	Urgency           *Urgency    `json:"urgency"`
	ImpactType        *ImpactType `json:"impact_type"`
	AffectedAspect    *string     `json:"affected_aspect"`
	Reasoning         string      `json:"reasoning"`
	RecommendedAction *string     `json:"recommended_action"`
	EstimatedTimeline *string     `json:"estimated_timeline"`
}

// IsCritical reports whether the result carries critical urgency.
func (r AnalysisResult) IsCritical() bool {
	return r.Urgency != nil && *r.Urgency == UrgencyCritical
}

// IsWarning reports whether the result carries high or medium urgency.
func (r AnalysisResult) IsWarning() bool {
	return r.Urgency != nil && (*r.Urgency == UrgencyHigh || *r.Urgency == UrgencyMedium)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// UrgencyPtr returns a pointer to u.
func UrgencyPtr(u Urgency) *Urgency {
	return &u
}

// ImpactTypePtr returns a pointer to i.
func ImpactTypePtr(i ImpactType) *ImpactType {
	return &i
}
