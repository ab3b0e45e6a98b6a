package feed

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/scguardian/guardian/internal/models"
)

func TestCatalogSizes(t *testing.T) {
	if len(Regions) != 9 {
		t.Errorf("expected 9 regions, got %d", len(Regions))
	}
	if len(Ports) != 6 {
		t.Errorf("expected 6 ports, got %d", len(Ports))
	}
	if len(MockNewsFeed(time.Now())) != 4 {
		t.Error("expected 4 mock news items")
	}
}

func TestChoicesAreValidIDs(t *testing.T) {
	for _, c := range BusinessTypes {
		if !models.BusinessType(c.ID).Valid() {
			t.Errorf("business type choice %q is not a valid business type", c.ID)
		}
	}
	for _, c := range RiskTolerances {
		if !models.RiskTolerance(c.ID).Valid() {
			t.Errorf("risk tolerance choice %q is not a valid risk tolerance", c.ID)
		}
	}
	if len(AlertCategories) != 5 {
		t.Errorf("expected 5 alert categories, got %d", len(AlertCategories))
	}
}

func TestMockNewsFeedItemsValidate(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, item := range MockNewsFeed(now) {
		if err := item.Validate(); err != nil {
			t.Errorf("item %s invalid: %v", item.ID, err)
		}
		if !item.Date.Equal(now) {
			t.Errorf("item %s dated %v, want %v", item.ID, item.Date, now)
		}
	}
}

func TestSeedAlerts(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	alerts := SeedAlerts(now)

	if len(alerts) != 3 {
		t.Fatalf("expected 3 seed alerts, got %d", len(alerts))
	}

	wantStatus := []models.AlertStatus{models.AlertStatusUnread, models.AlertStatusRead, models.AlertStatusActioned}
	for i, a := range alerts {
		if a.Status != wantStatus[i] {
			t.Errorf("alert %s status = %v, want %v", a.ID, a.Status, wantStatus[i])
		}
		if a.Analysis.Reasoning == "" {
			t.Errorf("alert %s has empty reasoning", a.ID)
		}
		if !a.Date.Before(now) {
			t.Errorf("alert %s should be dated in the past", a.ID)
		}
		if i > 0 && !a.Date.Before(alerts[i-1].Date) {
			t.Errorf("seed alerts should be ordered newest first")
		}
	}

	irrelevant := alerts[2].Analysis
	if irrelevant.Relevant || irrelevant.Urgency != nil || irrelevant.ImpactType != nil {
		t.Errorf("third seed alert should be irrelevant with null fields: %+v", irrelevant)
	}
}

func TestRandomIsDeterministicWithSeededSource(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	a := New(WithRand(rand.New(rand.NewPCG(1, 2))), WithClock(now))
	b := New(WithRand(rand.New(rand.NewPCG(1, 2))), WithClock(now))

	for i := 0; i < 20; i++ {
		x, y := a.Random(), b.Random()
		if x.ID != y.ID {
			t.Fatalf("draw %d differs: %s vs %s", i, x.ID, y.ID)
		}
	}
}

func TestRandomCoversFeed(t *testing.T) {
	f := New(WithRand(rand.New(rand.NewPCG(7, 7))))
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[f.Random().ID] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected every feed item to be drawn, saw %v", seen)
	}
}
