package classifier

import (
	"reflect"
	"strings"
	"testing"

	"github.com/scguardian/guardian/internal/models"
)

func profileWith(regions, ports []string) models.BusinessProfile {
	p := models.DefaultProfile()
	p.SourceRegions = regions
	p.EntryPorts = ports
	return p
}

func TestClassifyHeuristically_RegionMatch(t *testing.T) {
	profile := profileWith([]string{"Vietnam"}, nil)
	item := models.RawNewsItem{
		ID:       "news-vn",
		Source:   "GDACS",
		Location: "Vietnam",
		Title:    "Typhoon approaching Vietnam Coast",
		Summary:  "Tropical Cyclone 12W expecting landfall in northern Vietnam within 48 hours.",
	}

	got := ClassifyHeuristically(profile, item)

	if !got.Relevant {
		t.Fatal("expected relevant result")
	}
	if got.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %v, want low", got.Confidence)
	}
	if got.Urgency == nil || *got.Urgency != models.UrgencyMedium {
		t.Errorf("urgency = %v, want medium", got.Urgency)
	}
	if got.ImpactType == nil || *got.ImpactType != models.ImpactSupplyDisruption {
		t.Errorf("impact_type = %v, want supply_disruption", got.ImpactType)
	}
	if got.AffectedAspect == nil || *got.AffectedAspect != "Sourcing Region Match" {
		t.Errorf("affected_aspect = %v", got.AffectedAspect)
	}
	if got.RecommendedAction == nil || *got.RecommendedAction != "Monitor situation." {
		t.Errorf("recommended_action = %v", got.RecommendedAction)
	}
	if got.EstimatedTimeline != nil {
		t.Errorf("estimated_timeline = %v, want nil", *got.EstimatedTimeline)
	}
	if got.Reasoning != HeuristicMatchReasoning {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
}

func TestClassifyHeuristically_NoOverlap(t *testing.T) {
	profile := profileWith([]string{"India"}, []string{})
	item := models.RawNewsItem{
		ID:       "news-3",
		Source:   "FreightWaves",
		Location: "Panama Canal",
		Title:    "Severe Drought Reduces Panama Canal Draft Limits",
		Summary:  "Water levels in Gatun Lake hit historic lows. Vessel transit slots reduced by 30% for the next month.",
	}

	got := ClassifyHeuristically(profile, item)

	want := models.AnalysisResult{
		Relevant:   false,
		Confidence: models.ConfidenceLow,
		Reasoning:  HeuristicNoMatchReasoning,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if !strings.Contains(got.Reasoning, "no direct geographic overlap") {
		t.Errorf("reasoning should state no overlap, got %q", got.Reasoning)
	}
}

func TestClassifyHeuristically_PortMatch(t *testing.T) {
	profile := profileWith(nil, []string{"Port of Oakland"})
	item := models.RawNewsItem{
		ID:       "1",
		Source:   "FreightWaves",
		Location: "Oakland, USA",
		Title:    "Port of Oakland Labor Negotiations Stalled",
		Summary:  "Labor negotiations between ILWU and PMA at Port of Oakland have stalled after union rejected latest contract proposal.",
	}

	if got := ClassifyHeuristically(profile, item); !got.Relevant {
		t.Fatalf("expected port match to be relevant, got %+v", got)
	}
}

func TestClassifyHeuristically_SubstringSemantics(t *testing.T) {
	tests := []struct {
		name     string
		regions  []string
		ports    []string
		item     models.RawNewsItem
		relevant bool
	}{
		{
			name:     "case insensitive",
			regions:  []string{"TAIWAN"},
			item:     models.RawNewsItem{Location: "taiwan", Title: "Earthquake"},
			relevant: true,
		},
		{
			name:     "match in summary only",
			regions:  []string{"Mexico"},
			item:     models.RawNewsItem{Location: "USA", Title: "Class I Recall: Frozen Organic Strawberries", Summary: "sourced from Baja California, Mexico."},
			relevant: true,
		},
		{
			name:     "decorated region label does not match bare name",
			regions:  []string{"China (Mainland)"},
			item:     models.RawNewsItem{Location: "China", Title: "New Export Controls on Semiconductor Materials"},
			relevant: false,
		},
		{
			name:     "port name must appear whole",
			ports:    []string{"Port of Oakland"},
			item:     models.RawNewsItem{Location: "Oakland, USA", Title: "Warehouse fire"},
			relevant: false,
		},
		{
			name:     "full text is not searched",
			regions:  []string{"Vietnam"},
			item:     models.RawNewsItem{Location: "Asia", Title: "Storm", FullText: "Vietnam braces for impact"},
			relevant: false,
		},
		{
			name:     "empty profile",
			item:     models.RawNewsItem{Location: "Taiwan", Title: "Earthquake"},
			relevant: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyHeuristically(profileWith(tt.regions, tt.ports), tt.item)
			if got.Relevant != tt.relevant {
				t.Errorf("relevant = %v, want %v", got.Relevant, tt.relevant)
			}
		})
	}
}

func TestClassifyHeuristically_Properties(t *testing.T) {
	regions := []string{"China (Mainland)", "Taiwan", "Vietnam", "India", "Mexico", "Europe"}
	ports := []string{"Port of Los Angeles", "Port of Oakland", "Port of Savannah"}
	items := []models.RawNewsItem{
		{ID: "a", Location: "Taiwan", Title: "Magnitude 6.2 Earthquake strikes Hualien City", Summary: "Buildings shaking in Taipei."},
		{ID: "b", Location: "India", Title: "India Imposes 20% Export Duty on Parboiled Rice"},
		{ID: "c", Location: "Panama Canal", Title: "Severe Drought Reduces Panama Canal Draft Limits"},
		{ID: "d", Location: "Los Angeles, USA", Title: "Congestion at Port of Los Angeles"},
		{ID: "e", Location: "", Title: "", Summary: ""},
	}

	for mask := 0; mask < 1<<len(regions); mask++ {
		var picked []string
		for i, r := range regions {
			if mask&(1<<i) != 0 {
				picked = append(picked, r)
			}
		}
		for pm := 0; pm < 1<<len(ports); pm++ {
			var pickedPorts []string
			for i, p := range ports {
				if pm&(1<<i) != 0 {
					pickedPorts = append(pickedPorts, p)
				}
			}
			profile := profileWith(picked, pickedPorts)

			for _, item := range items {
				first := ClassifyHeuristically(profile, item)
				second := ClassifyHeuristically(profile, item)
				if !reflect.DeepEqual(first, second) {
					t.Fatalf("non-deterministic result for %v / %s", profile.SourceRegions, item.ID)
				}
				if first.Reasoning == "" {
					t.Fatalf("empty reasoning for %v / %s", profile.SourceRegions, item.ID)
				}

				haystack := strings.ToLower(item.Location + " " + item.Title + " " + item.Summary)
				expected := false
				for _, needle := range append(append([]string{}, picked...), pickedPorts...) {
					if strings.Contains(haystack, strings.ToLower(needle)) {
						expected = true
					}
				}
				if first.Relevant != expected {
					t.Fatalf("relevant = %v, want %v for regions=%v ports=%v item=%s",
						first.Relevant, expected, picked, pickedPorts, item.ID)
				}
				if first.Relevant != (first.Urgency != nil) {
					t.Fatalf("urgency should be set exactly when relevant: %+v", first)
				}
			}
		}
	}
}
