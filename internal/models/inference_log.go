package models

import "time"

// InferenceLog records one call to an external model backend.
type InferenceLog struct {
	ID           int64     `json:"id"`
	Provider     string    `json:"provider"`  // 'openai', 'anthropic'
	Model        string    `json:"model"`     // e.g. 'gpt-4o-mini'
	Operation    string    `json:"operation"` // e.g. 'supply_chain_classification'
	NewsID       string    `json:"news_id,omitempty"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	CostUSD      float64   `json:"cost_usd"`
	LatencyMs    int64     `json:"latency_ms"`
	Status       string    `json:"status"` // 'success', 'error'
	ErrorMessage *string   `json:"error_message"`
	Metadata     string    `json:"metadata"` // JSON object
	CreatedAt    time.Time `json:"created_at"`
}

// InferenceLogQuery filters inference log listings.
type InferenceLogQuery struct {
	Provider string
	Status   string
	Limit    int
}

// InferenceLogStats aggregates inference logs.
type InferenceLogStats struct {
	TotalCalls      int     `json:"total_calls"`
	SuccessfulCalls int     `json:"successful_calls"`
	FailedCalls     int     `json:"failed_calls"`
	TotalTokens     int64   `json:"total_tokens"`
	TotalCostUSD    float64 `json:"total_cost_usd"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
}

// Inference log statuses.
const (
	InferenceStatusSuccess = "success"
	InferenceStatusError   = "error"
)
