package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAnalysisResultNullsSerialize(t *testing.T) {
	r := AnalysisResult{Relevant: false, Confidence: ConfidenceLow, Reasoning: "no overlap"}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	got := string(data)
	for _, field := range []string{"urgency", "impact_type", "affected_aspect", "recommended_action", "estimated_timeline"} {
		if !strings.Contains(got, `"`+field+`":null`) {
			t.Errorf("%s should serialize as null in %s", field, got)
		}
	}
}

func TestRawNewsItemValidate(t *testing.T) {
	if err := (RawNewsItem{ID: "n1", Title: "Strike"}).Validate(); err != nil {
		t.Errorf("valid item returned error: %v", err)
	}
	if err := (RawNewsItem{Title: "Strike"}).Validate(); err == nil {
		t.Error("missing id should fail")
	}
	if err := (RawNewsItem{ID: "n1", Title: "  "}).Validate(); err == nil {
		t.Error("blank title should fail")
	}
}
