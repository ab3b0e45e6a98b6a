package classifier

import (
	"strings"
	"testing"
	"time"

	"github.com/scguardian/guardian/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	profile := models.BusinessProfile{
		BusinessType:         models.BusinessTypeProductSeller,
		ProductsDescription:  "Phone cases",
		SourceRegions:        []string{"Taiwan", "Vietnam"},
		EntryPorts:           []string{"Port of Long Beach"},
		CriticalDependencies: "TSMC chips",
		RiskTolerance:        models.RiskToleranceSensitive,
	}
	item := models.RawNewsItem{
		ID:       "news-1",
		Source:   "USGS",
		Type:     "Earthquake",
		Date:     time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Location: "Taiwan",
		Title:    "Magnitude 6.2 Earthquake strikes Hualien City",
		Summary:  "Strong earthquake reported off the east coast of Taiwan.",
	}

	prompt := BuildPrompt(profile, item)

	expected := []string{
		"--- GLOBAL ALERT ---",
		"Source: USGS",
		"Type: Earthquake",
		"Date: 2026-03-04T05:06:07Z",
		"Location: Taiwan",
		"Title: Magnitude 6.2 Earthquake strikes Hualien City",
		"--- BUSINESS PROFILE ---",
		"Business Type: product_seller",
		"Products: Phone cases",
		"Sourcing Regions: Taiwan, Vietnam",
		"Entry Ports: Port of Long Beach",
		"Critical Dependencies: TSMC chips",
		"Risk Tolerance: sensitive",
		"--- ANALYSIS REQUEST ---",
	}
	for _, want := range expected {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}

	if strings.Index(prompt, "--- GLOBAL ALERT ---") > strings.Index(prompt, "--- BUSINESS PROFILE ---") {
		t.Error("alert section should precede profile section")
	}
}

func TestSystemInstructionCarriesDecisionRules(t *testing.T) {
	rules := []string{
		`conservative with "critical"`,
		"doesn't overlap",
		"second-order effects",
		`confidence="low"`,
		"Never invent supply chain connections",
	}
	for _, rule := range rules {
		if !strings.Contains(SystemInstruction, rule) {
			t.Errorf("system instruction missing rule %q", rule)
		}
	}
}
