package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/scguardian/guardian/internal/auth"
	"github.com/scguardian/guardian/internal/inference"
	"github.com/scguardian/guardian/internal/session"
)

// Version is reported by /api/info.
var Version = "dev"

// Dependencies are the collaborators the routes are served from.
type Dependencies struct {
	Service       *session.Service
	Assessor      Assessor
	AuthConfig    auth.Config
	InferenceLogs inference.Repository
	Metrics       http.Handler
	// HealthCheck reports storage health. Nil means always healthy.
	HealthCheck func(ctx context.Context) error
	Logger      *slog.Logger
}

// NewRouter configures all API routes.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	handler := NewHandler(deps.Service, deps.Logger)
	classifyHandler := NewClassifyHandler(deps.Assessor, deps.Logger)
	authHandler := NewAuthHandler(deps.AuthConfig, deps.Logger)
	inferenceLogHandler := NewInferenceLogHandler(deps.InferenceLogs, deps.Logger)

	authMiddleware := auth.AuthMiddleware(deps.AuthConfig)

	// Health and metrics
	mux.HandleFunc("GET /healthz", healthHandler(deps.HealthCheck, deps.Logger))
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}
	mux.HandleFunc("GET /api/info", handler.GetInfo)
	mux.HandleFunc("GET /api/options", GetOptions(deps.Logger))

	// Profile
	mux.HandleFunc("GET /api/profile", handler.GetProfile)
	mux.HandleFunc("PUT /api/profile", handler.CompleteOnboarding)
	mux.HandleFunc("POST /api/profile/toggle", handler.ToggleProfileItem)

	// Alerts
	mux.HandleFunc("GET /api/alerts", handler.ListAlerts)
	mux.HandleFunc("POST /api/alerts", handler.IngestAlert)
	mux.HandleFunc("POST /api/alerts/simulate", handler.SimulateAlert)
	mux.HandleFunc("GET /api/alerts/{id}", handler.GetAlert)
	mux.HandleFunc("POST /api/alerts/{id}/read", handler.MarkAlertRead)
	mux.HandleFunc("POST /api/alerts/{id}/dismiss", handler.DismissAlert)
	mux.HandleFunc("POST /api/alerts/{id}/action", handler.MarkAlertActioned)
	mux.HandleFunc("GET /api/dashboard", handler.GetDashboard)

	// Stateless classification
	mux.HandleFunc("POST /api/classify", classifyHandler.Classify)

	// Authentication routes
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("GET /api/auth/validate", authMiddleware(http.HandlerFunc(authHandler.ValidateToken)))

	// Admin routes (require auth)
	mux.Handle("GET /api/admin/inference-logs", authMiddleware(http.HandlerFunc(inferenceLogHandler.ListInferenceLogs)))
	mux.Handle("GET /api/admin/inference-logs/stats", authMiddleware(http.HandlerFunc(inferenceLogHandler.GetInferenceStats)))

	return corsMiddleware(mux)
}

// corsMiddleware sets permissive CORS headers and answers preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func healthHandler(check func(ctx context.Context) error, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.Warn("health check failed", "error", err)
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
