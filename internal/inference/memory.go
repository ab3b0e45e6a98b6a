package inference

import (
	"context"
	"sort"
	"sync"

	"github.com/scguardian/guardian/internal/models"
)

// MemoryRepository keeps inference logs in process. Used when no database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	logs   []models.InferenceLog
	limit  int
}

// NewMemoryRepository keeps at most limit logs, dropping the oldest. limit <= 0 means unbounded.
func NewMemoryRepository(limit int) *MemoryRepository {
	return &MemoryRepository{limit: limit}
}

// Create implements Repository.
func (r *MemoryRepository) Create(_ context.Context, log models.InferenceLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	log.ID = r.nextID
	r.logs = append(r.logs, log)
	if r.limit > 0 && len(r.logs) > r.limit {
		r.logs = append([]models.InferenceLog(nil), r.logs[len(r.logs)-r.limit:]...)
	}
	return nil
}

// List implements Repository. Newest first.
func (r *MemoryRepository) List(_ context.Context, query models.InferenceLogQuery) ([]models.InferenceLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]models.InferenceLog, 0, len(r.logs))
	for _, log := range r.logs {
		if query.Provider != "" && log.Provider != query.Provider {
			continue
		}
		if query.Status != "" && log.Status != query.Status {
			continue
		}
		logs = append(logs, log)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].CreatedAt.Equal(logs[j].CreatedAt) {
			return logs[i].ID > logs[j].ID
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})

	if query.Limit > 0 && len(logs) > query.Limit {
		logs = logs[:query.Limit]
	}
	return logs, nil
}

// Stats implements Repository.
func (r *MemoryRepository) Stats(_ context.Context) (models.InferenceLogStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.InferenceLogStats
	var latency int64
	for _, log := range r.logs {
		stats.TotalCalls++
		if log.Status == models.InferenceStatusSuccess {
			stats.SuccessfulCalls++
		} else {
			stats.FailedCalls++
		}
		stats.TotalTokens += int64(log.InputTokens + log.OutputTokens)
		stats.TotalCostUSD += log.CostUSD
		latency += log.LatencyMs
	}
	if stats.TotalCalls > 0 {
		stats.AvgLatencyMs = float64(latency) / float64(stats.TotalCalls)
	}
	return stats, nil
}
