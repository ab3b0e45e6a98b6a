package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/scguardian/guardian/internal/api"
	"github.com/scguardian/guardian/internal/auth"
	"github.com/scguardian/guardian/internal/classifier"
	"github.com/scguardian/guardian/internal/config"
	"github.com/scguardian/guardian/internal/database"
	"github.com/scguardian/guardian/internal/feed"
	"github.com/scguardian/guardian/internal/inference"
	"github.com/scguardian/guardian/internal/logging"
	"github.com/scguardian/guardian/internal/metrics"
	"github.com/scguardian/guardian/internal/server"
	"github.com/scguardian/guardian/internal/session"
)

// inMemoryLogLimit bounds inference logs kept without a database.
const inMemoryLogLimit = 1000

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting supply chain guardian")

	collector, err := metrics.NewHTTPCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	classifierMetrics, err := metrics.NewClassifierCollector(collector.Registry())
	if err != nil {
		logger.Error("failed to init classifier metrics", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		store       session.Store
		logRepo     inference.Repository
		healthCheck func(context.Context) error
	)
	if cfg.Database.URL != "" {
		logger.Info("connecting to database")
		db, err := database.Open(ctx, database.DefaultConfig(cfg.Database.URL), logger)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("database connected")

		store = database.NewPostgresSessionStore(db)
		logRepo = database.NewInferenceLogRepository(db)
		healthCheck = func(ctx context.Context) error { return database.HealthCheck(ctx, db) }
	} else {
		logger.Info("DATABASE_URL not set, keeping session state in memory")
		store = session.NewMemoryStore()
		logRepo = inference.NewMemoryRepository(inMemoryLogLimit)
	}

	inferenceLogger := inference.NewLogger(logRepo, logger)

	generator, err := classifier.NewGeneratorFromConfig(cfg.Classifier)
	switch {
	case errors.Is(err, classifier.ErrCredentialUnavailable):
		logger.Warn("no classifier API key configured, using keyword fallback only")
	case err != nil:
		logger.Error("failed to init classifier backend", "error", err)
		os.Exit(1)
	default:
		logger.Info("classifier backend configured",
			"provider", cfg.Classifier.Provider,
			"model", cfg.Classifier.Model,
			"timeout", cfg.Classifier.Timeout)
	}

	gateway := classifier.NewGateway(generator, logger,
		classifier.WithTimeout(cfg.Classifier.Timeout),
		classifier.WithObserver(classifierMetrics, inferenceLogger))

	service := session.NewService(store, gateway, feed.New(), logger)
	if n, err := service.Seed(ctx); err != nil {
		logger.Warn("failed to seed alerts", "error", err)
	} else if n > 0 {
		logger.Info("seeded initial alerts", "count", n)
	}

	authConfig, err := auth.NewConfig(cfg.Auth)
	if err != nil {
		logger.Error("failed to init auth", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(api.Dependencies{
		Service:       service,
		Assessor:      gateway,
		AuthConfig:    authConfig,
		InferenceLogs: logRepo,
		Metrics:       collector.Handler(),
		HealthCheck:   healthCheck,
		Logger:        logger,
	})

	handler := server.SPAMiddleware(collector.InstrumentHandler(router), cfg.Server.StaticDir)
	srv := server.New(cfg.Server, logger, handler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port))

	waitForSignal(logger)

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	inferenceLogger.Flush()
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
