package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scguardian/guardian/internal/logging"
	"github.com/scguardian/guardian/internal/models"
)

// testDB connects to TEST_DATABASE_URL and applies migrations.
func testDB(t *testing.T) *PostgresSessionStore {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Requires database connection - set TEST_DATABASE_URL to run")
	}

	db, err := Open(context.Background(), DefaultConfig(dbURL), logging.Discard())
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewPostgresSessionStore(db)
}

func TestPostgresSessionStoreProfile(t *testing.T) {
	store := testDB(t)
	ctx := context.Background()

	profile := models.DefaultProfile()
	profile.ProductsDescription = "Organic coffee beans"
	profile.SourceRegions = []string{"Central America", "South America"}
	profile.EntryPorts = []string{"Port of Oakland"}

	state := models.ProfileState{Profile: profile, Onboarded: true, UpdatedAt: time.Now().UTC().Truncate(time.Microsecond)}
	if err := store.SaveProfile(ctx, state); err != nil {
		t.Fatalf("SaveProfile returned error: %v", err)
	}

	loaded, err := store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile returned error: %v", err)
	}
	if loaded == nil || !loaded.Onboarded {
		t.Fatalf("expected onboarded profile, got %+v", loaded)
	}
	if len(loaded.Profile.SourceRegions) != 2 || loaded.Profile.EntryPorts[0] != "Port of Oakland" {
		t.Errorf("lists not round-tripped: %+v", loaded.Profile)
	}
}

func TestPostgresSessionStoreAlerts(t *testing.T) {
	store := testDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := models.RawNewsItem{
		ID:       "news-" + uuid.NewString(),
		Source:   "USGS",
		Date:     now,
		Location: "Taiwan",
		Title:    "Magnitude 6.2 Earthquake strikes Hualien City",
	}
	analysis := models.AnalysisResult{
		Relevant:   true,
		Confidence: models.ConfidenceMedium,
		Urgency:    models.UrgencyPtr(models.UrgencyHigh),
		Reasoning:  "Chip fabs near Hualien may pause production.",
	}
	alert := models.NewAlert(uuid.NewString(), item, analysis, now)

	if err := store.SaveAlert(ctx, alert); err != nil {
		t.Fatalf("SaveAlert returned error: %v", err)
	}

	t.Run("get", func(t *testing.T) {
		got, err := store.GetAlert(ctx, alert.ID)
		if err != nil || got == nil {
			t.Fatalf("GetAlert = %v, %v", got, err)
		}
		if got.Analysis.Urgency == nil || *got.Analysis.Urgency != models.UrgencyHigh {
			t.Errorf("analysis not round-tripped: %+v", got.Analysis)
		}
	})

	t.Run("update status", func(t *testing.T) {
		alert.MarkRead()
		if err := store.SaveAlert(ctx, alert); err != nil {
			t.Fatalf("SaveAlert returned error: %v", err)
		}
		got, _ := store.GetAlert(ctx, alert.ID)
		if got.Status != models.AlertStatusRead {
			t.Errorf("status = %v, want read", got.Status)
		}
	})

	t.Run("missing", func(t *testing.T) {
		got, err := store.GetAlert(ctx, "does-not-exist")
		if got != nil || err != nil {
			t.Errorf("GetAlert(missing) = %v, %v", got, err)
		}
	})

	t.Run("list", func(t *testing.T) {
		alerts, err := store.ListAlerts(ctx)
		if err != nil {
			t.Fatalf("ListAlerts returned error: %v", err)
		}
		found := false
		for _, a := range alerts {
			if a.ID == alert.ID {
				found = true
			}
		}
		if !found {
			t.Error("saved alert missing from list")
		}
	})
}

func TestInferenceLogRepository(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Requires database connection - set TEST_DATABASE_URL to run")
	}

	ctx := context.Background()
	db, err := Open(ctx, DefaultConfig(dbURL), logging.Discard())
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := NewInferenceLogRepository(db)
	newsID := "news-" + uuid.NewString()
	errMsg := "backend timed out"

	err = repo.Create(ctx, models.InferenceLog{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Operation:    "supply_chain_classification",
		NewsID:       newsID,
		LatencyMs:    20000,
		Status:       models.InferenceStatusError,
		ErrorMessage: &errMsg,
		Metadata:     `{"timed_out":true}`,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	logs, err := repo.List(ctx, models.InferenceLogQuery{Status: models.InferenceStatusError, Limit: 50})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	found := false
	for _, l := range logs {
		if l.NewsID == newsID {
			found = true
			if l.ErrorMessage == nil || *l.ErrorMessage != errMsg {
				t.Errorf("error message not round-tripped: %+v", l)
			}
		}
	}
	if !found {
		t.Error("created log missing from list")
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalCalls == 0 || stats.FailedCalls == 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
