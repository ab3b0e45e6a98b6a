package api

import (
	"fmt"
	"strings"

	"github.com/scguardian/guardian/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateProfile checks a submitted business profile.
func ValidateProfile(p models.BusinessProfile) error {
	if !p.BusinessType.Valid() {
		return ValidationError{Field: "business_type", Message: fmt.Sprintf("must be one of product_seller, manufacturing, food_beverage (got %q)", p.BusinessType)}
	}
	if !p.RiskTolerance.Valid() {
		return ValidationError{Field: "risk_tolerance", Message: fmt.Sprintf("must be one of sensitive, moderate, resilient (got %q)", p.RiskTolerance)}
	}
	if len(p.ProductsDescription) > 2000 {
		return ValidationError{Field: "products_description", Message: "must be at most 2000 characters"}
	}
	if len(p.CriticalDependencies) > 2000 {
		return ValidationError{Field: "critical_dependencies", Message: "must be at most 2000 characters"}
	}
	return nil
}

// ValidateNewsItem checks a submitted raw news item. The ID may be empty and
// is assigned on ingest.
func ValidateNewsItem(item models.RawNewsItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if len(item.Title) > 500 {
		return ValidationError{Field: "title", Message: "must be at most 500 characters"}
	}
	if len(item.Summary) > 10000 {
		return ValidationError{Field: "summary", Message: "must be at most 10000 characters"}
	}
	if len(item.FullText) > 100000 {
		return ValidationError{Field: "full_text", Message: "must be at most 100000 characters"}
	}
	return nil
}

// parseStatus validates an alert status query value.
func parseStatus(raw string) (models.AlertStatus, error) {
	if raw == "" {
		return "", nil
	}
	status := models.AlertStatus(strings.ToLower(raw))
	if !status.Valid() {
		return "", ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", raw)}
	}
	return status, nil
}
