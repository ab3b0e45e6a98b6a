package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/scguardian/guardian/internal/models"
)

// PostgresSessionStore keeps the business profile and its alerts in PostgreSQL.
type PostgresSessionStore struct {
	db *sql.DB
}

// NewPostgresSessionStore creates a new PostgreSQL session store.
func NewPostgresSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

// LoadProfile returns the stored profile, or nil if none was saved.
func (s *PostgresSessionStore) LoadProfile(ctx context.Context) (*models.ProfileState, error) {
	query := `
		SELECT business_type, products_description, source_regions, entry_ports,
		       critical_dependencies, risk_tolerance, alert_categories, onboarded, updated_at
		FROM business_profile
		WHERE id = 1
	`

	var state models.ProfileState
	p := &state.Profile
	err := s.db.QueryRowContext(ctx, query).Scan(
		&p.BusinessType,
		&p.ProductsDescription,
		pq.Array(&p.SourceRegions),
		pq.Array(&p.EntryPorts),
		&p.CriticalDependencies,
		&p.RiskTolerance,
		pq.Array(&p.AlertCategories),
		&state.Onboarded,
		&state.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	p.Normalize()
	return &state, nil
}

// SaveProfile upserts the single profile row.
func (s *PostgresSessionStore) SaveProfile(ctx context.Context, state models.ProfileState) error {
	query := `
		INSERT INTO business_profile (
			id, business_type, products_description, source_regions, entry_ports,
			critical_dependencies, risk_tolerance, alert_categories, onboarded, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			business_type = EXCLUDED.business_type,
			products_description = EXCLUDED.products_description,
			source_regions = EXCLUDED.source_regions,
			entry_ports = EXCLUDED.entry_ports,
			critical_dependencies = EXCLUDED.critical_dependencies,
			risk_tolerance = EXCLUDED.risk_tolerance,
			alert_categories = EXCLUDED.alert_categories,
			onboarded = EXCLUDED.onboarded,
			updated_at = EXCLUDED.updated_at
	`

	p := state.Profile
	_, err := s.db.ExecContext(ctx, query,
		p.BusinessType,
		p.ProductsDescription,
		pq.Array(nonNil(p.SourceRegions)),
		pq.Array(nonNil(p.EntryPorts)),
		p.CriticalDependencies,
		p.RiskTolerance,
		pq.Array(nonNil(p.AlertCategories)),
		state.Onboarded,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// SaveAlert inserts an alert or updates its status and analysis.
func (s *PostgresSessionStore) SaveAlert(ctx context.Context, alert models.Alert) error {
	analysisJSON, err := json.Marshal(alert.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO alerts (
			id, news_id, title, source, type, date, location, summary, full_text,
			status, analysis, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			analysis = EXCLUDED.analysis
	`

	_, err = s.db.ExecContext(ctx, query,
		alert.ID,
		alert.NewsID,
		alert.Title,
		alert.Source,
		alert.Type,
		alert.Date,
		alert.Location,
		alert.Summary,
		alert.FullText,
		alert.Status,
		analysisJSON,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save alert %s: %w", alert.ID, err)
	}
	return nil
}

const alertColumns = `id, news_id, title, source, type, date, location, summary, full_text, status, analysis, created_at`

// GetAlert returns one alert, or nil if it does not exist.
func (s *PostgresSessionStore) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)

	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query alert %s: %w", id, err)
	}
	return &alert, nil
}

// ListAlerts returns every alert, newest first.
func (s *PostgresSessionStore) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (models.Alert, error) {
	var alert models.Alert
	var analysisJSON []byte

	err := row.Scan(
		&alert.ID,
		&alert.NewsID,
		&alert.Title,
		&alert.Source,
		&alert.Type,
		&alert.Date,
		&alert.Location,
		&alert.Summary,
		&alert.FullText,
		&alert.Status,
		&analysisJSON,
		&alert.CreatedAt,
	)
	if err != nil {
		return models.Alert{}, err
	}

	if err := json.Unmarshal(analysisJSON, &alert.Analysis); err != nil {
		return models.Alert{}, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return alert, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
