package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockpilot/stockpilot/internal/answer"
	"github.com/stockpilot/stockpilot/internal/api"
	"github.com/stockpilot/stockpilot/internal/api/uistatic"
	"github.com/stockpilot/stockpilot/internal/archive"
	"github.com/stockpilot/stockpilot/internal/config"
	"github.com/stockpilot/stockpilot/internal/fixture"
	"github.com/stockpilot/stockpilot/internal/llm"
	"github.com/stockpilot/stockpilot/internal/nl2sql"
	"github.com/stockpilot/stockpilot/internal/observability"
	"github.com/stockpilot/stockpilot/internal/store"
)

func main() {
	// Optional .env, same loading convention as the original deployment.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("stockpilot")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := store.Connect(context.Background(), cfg.Store)
	if err != nil {
		logger.Error("failed to connect to inventory database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if cfg.Store.Driver == config.DriverDuckDB {
		if err := fixture.Apply(context.Background(), db); err != nil {
			logger.Error("failed to seed demo inventory", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seeded in-memory demo inventory",
			slog.Int("items", len(fixture.Inventory)),
			slog.Int("discounts", len(fixture.Discounts)),
		)
	}

	inventoryStore := store.New(db, cfg.Store.RowLimit)

	generator, err := llm.NewGeminiGenerator(context.Background(), llm.GeminiConfig{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize gemini client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = generator.Close() }()

	translator, err := nl2sql.NewGeneratorTranslator(generator)
	if err != nil {
		logger.Error("failed to initialize translator", slog.Any("error", err))
		os.Exit(1)
	}

	var summarizer answer.Summarizer
	if cfg.AI.SummaryEnabled {
		summarizer, err = answer.NewGeneratorSummarizer(generator)
		if err != nil {
			logger.Error("failed to initialize summarizer", slog.Any("error", err))
			os.Exit(1)
		}
	}

	var archiver api.AskArchiver
	if cfg.Archive.Enabled {
		uploader, err := archive.NewS3Uploader(context.Background(), cfg.Archive)
		if err != nil {
			logger.Error("failed to initialize ask archive", slog.Any("error", err))
			os.Exit(1)
		}
		archiver, err = archive.New(uploader, logger)
		if err != nil {
			logger.Error("failed to initialize ask archive", slog.Any("error", err))
			os.Exit(1)
		}
	}

	deps := api.Dependencies{
		Logger:            logger,
		Store:             inventoryStore,
		Translator:        translator,
		Summarizer:        summarizer,
		Archiver:          archiver,
		UI:                uistatic.Handler(),
		Readiness:         api.CombineReadinessChecks(inventoryStore.HealthCheck),
		DependencyTimeout: time.Second,
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			slog.String("addr", cfg.HTTP.Address),
			slog.String("driver", cfg.Store.Driver),
			slog.String("model", generator.ModelName()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
