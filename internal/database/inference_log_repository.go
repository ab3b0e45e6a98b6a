package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scguardian/guardian/internal/models"
)

// InferenceLogRepository handles inference log database operations
type InferenceLogRepository struct {
	db *sql.DB
}

// NewInferenceLogRepository creates a new repository
func NewInferenceLogRepository(db *sql.DB) *InferenceLogRepository {
	return &InferenceLogRepository{db: db}
}

// Create logs a new inference call
func (r *InferenceLogRepository) Create(ctx context.Context, log models.InferenceLog) error {
	query := `
		INSERT INTO inference_logs (
			provider, model, operation, news_id, input_tokens, output_tokens,
			cost_usd, latency_ms, status, error_message, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::jsonb, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.Provider,
		log.Model,
		log.Operation,
		nullString(log.NewsID),
		log.InputTokens,
		log.OutputTokens,
		log.CostUSD,
		log.LatencyMs,
		log.Status,
		log.ErrorMessage,
		log.Metadata,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inference log: %w", err)
	}
	return nil
}

// List retrieves inference logs with optional filtering, newest first
func (r *InferenceLogRepository) List(ctx context.Context, query models.InferenceLogQuery) ([]models.InferenceLog, error) {
	sqlQuery := `
		SELECT id, provider, model, operation, news_id, input_tokens, output_tokens,
		       cost_usd, latency_ms, status, error_message, metadata, created_at
		FROM inference_logs
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if query.Provider != "" {
		sqlQuery += fmt.Sprintf(" AND provider = $%d", argPos)
		args = append(args, query.Provider)
		argPos++
	}

	if query.Status != "" {
		sqlQuery += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, query.Status)
		argPos++
	}

	sqlQuery += " ORDER BY created_at DESC, id DESC"

	if query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, query.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inference logs: %w", err)
	}
	defer rows.Close()

	logs := []models.InferenceLog{}
	for rows.Next() {
		var log models.InferenceLog
		var newsID, metadata sql.NullString

		err := rows.Scan(
			&log.ID,
			&log.Provider,
			&log.Model,
			&log.Operation,
			&newsID,
			&log.InputTokens,
			&log.OutputTokens,
			&log.CostUSD,
			&log.LatencyMs,
			&log.Status,
			&log.ErrorMessage,
			&metadata,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inference log: %w", err)
		}

		log.NewsID = newsID.String
		log.Metadata = metadata.String
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// Stats retrieves aggregated statistics
func (r *InferenceLogRepository) Stats(ctx context.Context) (models.InferenceLogStats, error) {
	query := `
		SELECT
			COUNT(*) as total_calls,
			COALESCE(SUM(input_tokens + output_tokens), 0) as total_tokens,
			COALESCE(SUM(cost_usd), 0) as total_cost_usd,
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) as successful_calls,
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) as failed_calls,
			COALESCE(AVG(latency_ms), 0) as avg_latency_ms
		FROM inference_logs
	`

	var stats models.InferenceLogStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalCalls,
		&stats.TotalTokens,
		&stats.TotalCostUSD,
		&stats.SuccessfulCalls,
		&stats.FailedCalls,
		&stats.AvgLatencyMs,
	)
	if err != nil {
		return models.InferenceLogStats{}, fmt.Errorf("failed to get inference stats: %w", err)
	}

	return stats, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
