package session

import (
	"context"
	"sort"
	"sync"

	"github.com/scguardian/guardian/internal/models"
)

// Store persists the session profile and its alerts. Lookups of missing
// records return nil without an error.
type Store interface {
	LoadProfile(ctx context.Context) (*models.ProfileState, error)
	SaveProfile(ctx context.Context, state models.ProfileState) error
	SaveAlert(ctx context.Context, alert models.Alert) error
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	// ListAlerts returns every alert, newest first.
	ListAlerts(ctx context.Context) ([]models.Alert, error)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	profile *models.ProfileState
	alerts  map[string]storedAlert
	seq     int64
}

type storedAlert struct {
	alert models.Alert
	seq   int64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{alerts: make(map[string]storedAlert)}
}

// LoadProfile implements Store.
func (s *MemoryStore) LoadProfile(_ context.Context) (*models.ProfileState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil, nil
	}
	state := cloneState(*s.profile)
	return &state, nil
}

// SaveProfile implements Store.
func (s *MemoryStore) SaveProfile(_ context.Context, state models.ProfileState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state = cloneState(state)
	s.profile = &state
	return nil
}

// SaveAlert implements Store. Saving an existing ID replaces it in place.
func (s *MemoryStore) SaveAlert(_ context.Context, alert models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.alerts[alert.ID]; ok {
		s.alerts[alert.ID] = storedAlert{alert: alert, seq: existing.seq}
		return nil
	}
	s.seq++
	s.alerts[alert.ID] = storedAlert{alert: alert, seq: s.seq}
	return nil
}

// GetAlert implements Store.
func (s *MemoryStore) GetAlert(_ context.Context, id string) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.alerts[id]
	if !ok {
		return nil, nil
	}
	alert := stored.alert
	return &alert, nil
}

// ListAlerts implements Store.
func (s *MemoryStore) ListAlerts(_ context.Context) ([]models.Alert, error) {
	s.mu.RLock()
	entries := make([]storedAlert, 0, len(s.alerts))
	for _, stored := range s.alerts {
		entries = append(entries, stored)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.alert.CreatedAt.Equal(b.alert.CreatedAt) {
			return a.alert.CreatedAt.After(b.alert.CreatedAt)
		}
		return a.seq > b.seq
	})

	alerts := make([]models.Alert, len(entries))
	for i, e := range entries {
		alerts[i] = e.alert
	}
	return alerts, nil
}

func cloneState(state models.ProfileState) models.ProfileState {
	p := state.Profile
	p.SourceRegions = append([]string{}, p.SourceRegions...)
	p.EntryPorts = append([]string{}, p.EntryPorts...)
	p.AlertCategories = append([]string{}, p.AlertCategories...)
	state.Profile = p
	return state
}
