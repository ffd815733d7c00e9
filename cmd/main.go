package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Vovarama1992/nutri-ai-gateway/internal/ai"
	"github.com/Vovarama1992/nutri-ai-gateway/internal/config"
	"github.com/Vovarama1992/nutri-ai-gateway/internal/nutrition"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// --- Provider ---
	var provider ai.AI
	if cfg.HasProviderKey() {
		provider = ai.NewOpenAIClient(cfg.Provider.APIKey, cfg.Provider.Model, cfg.Provider.BaseURL, logger)
		slog.Info("Provider configured", "model", cfg.Provider.Model, "timeout", cfg.Provider.Timeout)
	} else {
		slog.Warn("OPENAI_API_KEY not set, every answer will be a fallback")
	}

	// --- Exchange log (optional) ---
	var recorder nutrition.Recorder
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			slog.Error("db open error", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			slog.Error("db ping error", "error", err)
			os.Exit(1)
		}
		repo := nutrition.NewRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			cancel()
			slog.Error("db schema error", "error", err)
			os.Exit(1)
		}
		cancel()

		recorder = repo
		slog.Info("Exchange log enabled")
	}

	// --- Nutrition module wiring ---
	gateway := nutrition.New(provider, nutrition.Settings{
		APIKey:          cfg.Provider.APIKey,
		MaxContextBytes: cfg.MaxContextBytes,
	}, logger)
	handler := nutrition.NewHandler(gateway, recorder, nutrition.HandlerOptions{
		ProviderTimeout: cfg.Provider.Timeout,
		MaxBodyBytes:    cfg.MaxBodyBytes,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           nutrition.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Provider.Timeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
