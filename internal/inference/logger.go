package inference

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/scguardian/guardian/internal/classifier"
	"github.com/scguardian/guardian/internal/models"
)

// OperationClassification is the operation name recorded for news classification calls.
const OperationClassification = "supply_chain_classification"

// Repository persists inference logs.
type Repository interface {
	Create(ctx context.Context, log models.InferenceLog) error
	List(ctx context.Context, query models.InferenceLogQuery) ([]models.InferenceLog, error)
	Stats(ctx context.Context) (models.InferenceLogStats, error)
}

// Logger records model backend calls. It implements classifier.Observer.
type Logger struct {
	repo   Repository
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewLogger creates a new inference logger
func NewLogger(repo Repository, logger *slog.Logger) *Logger {
	return &Logger{
		repo:   repo,
		logger: logger,
	}
}

// LogCallParams describes one inference call.
type LogCallParams struct {
	Provider     string
	Model        string
	Operation    string
	NewsID       string
	InputTokens  int
	OutputTokens int
	Latency      time.Duration
	Err          error
	Metadata     map[string]interface{}
}

// LogCall logs an inference call to the repository
func (l *Logger) LogCall(ctx context.Context, params LogCallParams) {
	var metadataJSON string
	if params.Metadata != nil {
		if jsonBytes, err := json.Marshal(params.Metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	log := models.InferenceLog{
		Provider:     params.Provider,
		Model:        params.Model,
		Operation:    params.Operation,
		NewsID:       params.NewsID,
		InputTokens:  params.InputTokens,
		OutputTokens: params.OutputTokens,
		CostUSD:      EstimateCost(params.Provider, params.Model, params.InputTokens, params.OutputTokens),
		LatencyMs:    params.Latency.Milliseconds(),
		Status:       models.InferenceStatusSuccess,
		Metadata:     metadataJSON,
		CreatedAt:    time.Now().UTC(),
	}
	if params.Err != nil {
		log.Status = models.InferenceStatusError
		errMsg := params.Err.Error()
		log.ErrorMessage = &errMsg
	}

	// Log asynchronously to avoid blocking the classification
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := l.repo.Create(bgCtx, log); err != nil {
			l.logger.Error("failed to log inference call", "error", err)
		}
	}()
}

// ObserveBackendCall implements classifier.Observer.
func (l *Logger) ObserveBackendCall(ctx context.Context, call classifier.BackendCall) {
	l.LogCall(ctx, LogCallParams{
		Provider:     call.Provider,
		Model:        call.Model,
		Operation:    OperationClassification,
		NewsID:       call.NewsID,
		InputTokens:  call.Response.InputTokens,
		OutputTokens: call.Response.OutputTokens,
		Latency:      call.Latency,
		Err:          call.Err,
		Metadata: map[string]interface{}{
			"response_chars": len(call.Response.Text),
			"timed_out":      errors.Is(call.Err, context.DeadlineExceeded),
		},
	})
}

// ObserveResult implements classifier.Observer. Results are counted by the
// metrics collector; only backend calls are logged here.
func (l *Logger) ObserveResult(classifier.Path, classifier.Reason) {}

// Flush waits for pending writes.
func (l *Logger) Flush() {
	l.wg.Wait()
}

// EstimateCost provides rough cost estimates in USD.
func EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	// Rough estimates per 1M tokens
	var inputCostPer1M, outputCostPer1M float64

	m := strings.ToLower(model)
	switch {
	case provider == "openai" && strings.HasPrefix(m, "gpt-4o-mini"):
		inputCostPer1M = 0.15
		outputCostPer1M = 0.60
	case provider == "openai" && strings.HasPrefix(m, "gpt-4o"):
		inputCostPer1M = 2.50
		outputCostPer1M = 10.00
	case provider == "openai" && strings.HasPrefix(m, "gpt-4.1-mini"):
		inputCostPer1M = 0.40
		outputCostPer1M = 1.60
	case provider == "openai":
		inputCostPer1M = 5.00
		outputCostPer1M = 15.00
	case strings.Contains(m, "haiku"):
		inputCostPer1M = 0.80
		outputCostPer1M = 4.00
	case strings.Contains(m, "opus"):
		inputCostPer1M = 15.00
		outputCostPer1M = 75.00
	default:
		inputCostPer1M = 3.00
		outputCostPer1M = 15.00
	}

	inputCost := (float64(inputTokens) / 1_000_000) * inputCostPer1M
	outputCost := (float64(outputTokens) / 1_000_000) * outputCostPer1M

	return inputCost + outputCost
}
