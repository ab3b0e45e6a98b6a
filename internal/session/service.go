// Package session implements the monitoring workflow of one business: its
// onboarding profile, the alerts produced by classifying news against it
// and the dashboard summary over those alerts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scguardian/guardian/internal/classifier"
	"github.com/scguardian/guardian/internal/feed"
	"github.com/scguardian/guardian/internal/models"
)

var (
	// ErrAlertNotFound is returned for an unknown alert ID.
	ErrAlertNotFound = errors.New("alert not found")
	// ErrNotOnboarded is returned when an operation needs a completed profile.
	ErrNotOnboarded = errors.New("onboarding not completed")
	// ErrInvalidInput wraps profile and news item validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Toggleable profile list fields.
const (
	FieldSourceRegions   = "source_regions"
	FieldEntryPorts      = "entry_ports"
	FieldAlertCategories = "alert_categories"
)

// Dashboard risk states.
const (
	RiskStatusCritical = "CRITICAL"
	RiskStatusStable   = "STABLE"
)

// NewsSource supplies simulated events.
type NewsSource interface {
	Random() models.RawNewsItem
}

// AlertFilter narrows Alerts. Zero value returns everything.
type AlertFilter struct {
	Status       models.AlertStatus
	RelevantOnly bool
}

// Dashboard summarizes the session.
type Dashboard struct {
	RiskStatus       string `json:"risk_status"`
	Critical         int    `json:"critical"`
	Warnings         int    `json:"warnings"`
	Unread           int    `json:"unread"`
	TotalAlerts      int    `json:"total_alerts"`
	MonitoredRegions int    `json:"monitored_regions"`
	MonitoredPorts   int    `json:"monitored_ports"`
}

// Service coordinates the profile, classification and alert lifecycle.
type Service struct {
	store      Store
	classifier classifier.Classifier
	source     NewsSource
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string

	// mu serializes read-modify-write cycles against the store.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the alert ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService creates a session service. A nil source falls back to the mock feed.
func NewService(store Store, cls classifier.Classifier, source NewsSource, logger *slog.Logger, opts ...Option) *Service {
	if source == nil {
		source = feed.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		store:      store,
		classifier: cls,
		source:     source,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns the stored profile, or the default profile when onboarding
// has not happened yet.
func (s *Service) Profile(ctx context.Context) (models.ProfileState, error) {
	state, err := s.store.LoadProfile(ctx)
	if err != nil {
		return models.ProfileState{}, fmt.Errorf("load profile: %w", err)
	}
	if state == nil {
		return models.ProfileState{Profile: models.DefaultProfile()}, nil
	}
	return *state, nil
}

// CompleteOnboarding normalizes, validates and saves profile.
func (s *Service) CompleteOnboarding(ctx context.Context, profile models.BusinessProfile) (models.ProfileState, error) {
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return models.ProfileState{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.ProfileState{Profile: profile, Onboarded: true, UpdatedAt: s.now().UTC()}
	if err := s.store.SaveProfile(ctx, state); err != nil {
		return models.ProfileState{}, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("onboarding completed",
		"business_type", profile.BusinessType,
		"source_regions", len(profile.SourceRegions),
		"entry_ports", len(profile.EntryPorts))
	return state, nil
}

// ToggleProfileItem adds or removes item from one of the profile's list fields.
func (s *Service) ToggleProfileItem(ctx context.Context, field, item string) (models.ProfileState, error) {
	if strings.TrimSpace(item) == "" {
		return models.ProfileState{}, fmt.Errorf("%w: item is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.Profile(ctx)
	if err != nil {
		return models.ProfileState{}, err
	}

	switch field {
	case FieldSourceRegions:
		state.Profile.ToggleSourceRegion(item)
	case FieldEntryPorts:
		state.Profile.ToggleEntryPort(item)
	case FieldAlertCategories:
		state.Profile.ToggleAlertCategory(item)
	default:
		return models.ProfileState{}, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
	}

	state.UpdatedAt = s.now().UTC()
	if err := s.store.SaveProfile(ctx, state); err != nil {
		return models.ProfileState{}, fmt.Errorf("save profile: %w", err)
	}
	return state, nil
}

// SimulateEvent classifies a random feed item against the profile and stores
// the result as a new unread alert.
func (s *Service) SimulateEvent(ctx context.Context) (models.Alert, error) {
	return s.IngestEvent(ctx, s.source.Random())
}

// IngestEvent classifies item against the profile and stores the result as a
// new unread alert. Missing IDs and dates are filled in.
func (s *Service) IngestEvent(ctx context.Context, item models.RawNewsItem) (models.Alert, error) {
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	if item.Date.IsZero() {
		item.Date = s.now().UTC()
	}
	if err := item.Validate(); err != nil {
		return models.Alert{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, err := s.Profile(ctx)
	if err != nil {
		return models.Alert{}, err
	}
	if !state.Onboarded {
		return models.Alert{}, ErrNotOnboarded
	}

	analysis := s.classifier.Classify(ctx, state.Profile, item)
	alert := models.NewAlert(s.newID(), item, analysis, s.now().UTC())

	if err := s.store.SaveAlert(ctx, alert); err != nil {
		return models.Alert{}, fmt.Errorf("save alert: %w", err)
	}

	attrs := []any{"alert_id", alert.ID, "news_id", item.ID, "relevant", analysis.Relevant, "confidence", analysis.Confidence}
	if analysis.Urgency != nil {
		attrs = append(attrs, "urgency", *analysis.Urgency)
	}
	s.logger.Info("alert created", attrs...)

	return alert, nil
}

// Alerts lists alerts newest first.
func (s *Service) Alerts(ctx context.Context, filter AlertFilter) ([]models.Alert, error) {
	all, err := s.store.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	alerts := make([]models.Alert, 0, len(all))
	for _, a := range all {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.RelevantOnly && !a.Analysis.Relevant {
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// Alert returns one alert.
func (s *Service) Alert(ctx context.Context, id string) (models.Alert, error) {
	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		return models.Alert{}, fmt.Errorf("get alert: %w", err)
	}
	if alert == nil {
		return models.Alert{}, ErrAlertNotFound
	}
	return *alert, nil
}

// MarkRead records that the alert was viewed.
func (s *Service) MarkRead(ctx context.Context, id string) (models.Alert, error) {
	return s.updateAlert(ctx, id, (*models.Alert).MarkRead)
}

// Dismiss hides the alert.
func (s *Service) Dismiss(ctx context.Context, id string) (models.Alert, error) {
	return s.updateAlert(ctx, id, (*models.Alert).Dismiss)
}

// MarkActioned records that the user acted on the alert.
func (s *Service) MarkActioned(ctx context.Context, id string) (models.Alert, error) {
	return s.updateAlert(ctx, id, (*models.Alert).MarkActioned)
}

func (s *Service) updateAlert(ctx context.Context, id string, apply func(*models.Alert)) (models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, err := s.Alert(ctx, id)
	if err != nil {
		return models.Alert{}, err
	}

	previous := alert.Status
	apply(&alert)
	if alert.Status == previous {
		return alert, nil
	}

	if err := s.store.SaveAlert(ctx, alert); err != nil {
		return models.Alert{}, fmt.Errorf("save alert: %w", err)
	}
	s.logger.Debug("alert status changed", "alert_id", id, "from", previous, "to", alert.Status)
	return alert, nil
}

// Dashboard summarizes unread risk for the stored profile.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	state, err := s.Profile(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	alerts, err := s.store.ListAlerts(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list alerts: %w", err)
	}

	d := Dashboard{
		RiskStatus:       RiskStatusStable,
		TotalAlerts:      len(alerts),
		MonitoredRegions: len(state.Profile.SourceRegions),
		MonitoredPorts:   len(state.Profile.EntryPorts),
	}
	for _, a := range alerts {
		if a.Status != models.AlertStatusUnread {
			continue
		}
		d.Unread++
		switch {
		case a.Analysis.IsCritical():
			d.Critical++
		case a.Analysis.IsWarning():
			d.Warnings++
		}
	}
	if d.Critical > 0 {
		d.RiskStatus = RiskStatusCritical
	}
	return d, nil
}

// Seed stores the seed alerts when the store holds none and reports how many
// were added.
func (s *Service) Seed(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.ListAlerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list alerts: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	seeds := feed.SeedAlerts(s.now().UTC())
	for _, alert := range seeds {
		if err := s.store.SaveAlert(ctx, alert); err != nil {
			return 0, fmt.Errorf("seed alert %s: %w", alert.ID, err)
		}
	}
	s.logger.Info("seeded alerts", "count", len(seeds))
	return len(seeds), nil
}
