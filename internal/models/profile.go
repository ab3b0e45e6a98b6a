package models

import (
	"fmt"
	"strings"
	"time"
)

// BusinessType is the coarse category a business picks during onboarding.
type BusinessType string

const (
	BusinessTypeProductSeller BusinessType = "product_seller"
	BusinessTypeManufacturing BusinessType = "manufacturing"
	BusinessTypeFoodBeverage  BusinessType = "food_beverage"
)

// Valid reports whether b is a known business type.
func (b BusinessType) Valid() bool {
	switch b {
	case BusinessTypeProductSeller, BusinessTypeManufacturing, BusinessTypeFoodBeverage:
		return true
	}
	return false
}

// RiskTolerance expresses how much inventory buffer the business holds.
type RiskTolerance string

const (
	RiskToleranceSensitive RiskTolerance = "sensitive" // Perishables, just-in-time
	RiskToleranceModerate  RiskTolerance = "moderate"  // 2-4 week buffer stock
	RiskToleranceResilient RiskTolerance = "resilient" // Months of inventory
)

// Valid reports whether r is a known tolerance level.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskToleranceSensitive, RiskToleranceModerate, RiskToleranceResilient:
		return true
	}
	return false
}

// Alert category tags a business can subscribe to.
const (
	AlertCategoryDisasters    = "disasters"
	AlertCategoryPorts        = "ports"
	AlertCategoryGeopolitical = "geopolitical"
	AlertCategoryTradePolicy  = "trade_policy"
	AlertCategoryRecalls      = "recalls"
)

// BusinessProfile describes the business whose supply chain is monitored.
type BusinessProfile struct {
	BusinessType         BusinessType  `json:"business_type"`
	ProductsDescription  string        `json:"products_description"`
	SourceRegions        []string      `json:"source_regions"`
	EntryPorts           []string      `json:"entry_ports"`
	CriticalDependencies string        `json:"critical_dependencies"`
	RiskTolerance        RiskTolerance `json:"risk_tolerance"`
	AlertCategories      []string      `json:"alert_categories"`
}

// ProfileState is the stored profile of a session. Onboarded stays false
// until the user completes onboarding.
type ProfileState struct {
	Profile   BusinessProfile `json:"profile"`
	Onboarded bool            `json:"onboarded"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DefaultProfile returns the profile a new session starts with.
func DefaultProfile() BusinessProfile {
	return BusinessProfile{
		BusinessType:    BusinessTypeProductSeller,
		SourceRegions:   []string{},
		EntryPorts:      []string{},
		RiskTolerance:   RiskToleranceModerate,
		AlertCategories: []string{AlertCategoryDisasters, AlertCategoryPorts, AlertCategoryGeopolitical},
	}
}

// ToggleSourceRegion adds region if absent and removes it if present.
func (p *BusinessProfile) ToggleSourceRegion(region string) {
	p.SourceRegions = toggle(p.SourceRegions, region)
}

// ToggleEntryPort adds port if absent and removes it if present.
func (p *BusinessProfile) ToggleEntryPort(port string) {
	p.EntryPorts = toggle(p.EntryPorts, port)
}

// ToggleAlertCategory adds category if absent and removes it if present.
func (p *BusinessProfile) ToggleAlertCategory(category string) {
	p.AlertCategories = toggle(p.AlertCategories, category)
}

// Normalize trims list entries, drops blanks and removes duplicates while
// keeping the first occurrence of each entry.
func (p *BusinessProfile) Normalize() {
	p.ProductsDescription = strings.TrimSpace(p.ProductsDescription)
	p.CriticalDependencies = strings.TrimSpace(p.CriticalDependencies)
	p.SourceRegions = dedupe(p.SourceRegions)
	p.EntryPorts = dedupe(p.EntryPorts)
	p.AlertCategories = dedupe(p.AlertCategories)
}

// Validate checks the enumerated fields.
func (p BusinessProfile) Validate() error {
	if !p.BusinessType.Valid() {
		return fmt.Errorf("invalid business type %q", p.BusinessType)
	}
	if !p.RiskTolerance.Valid() {
		return fmt.Errorf("invalid risk tolerance %q", p.RiskTolerance)
	}
	return nil
}

func toggle(list []string, item string) []string {
	item = strings.TrimSpace(item)
	if item == "" {
		return list
	}
	for i, existing := range list {
		if existing == item {
			out := make([]string, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return append(list, item)
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
