package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ai-meal-ranker/internal/api"
	"ai-meal-ranker/internal/config"
	"ai-meal-ranker/internal/llm"
	"ai-meal-ranker/internal/logging"
	"ai-meal-ranker/internal/taste"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewFromEnv()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

//nolint:gocritic // zerolog.Logger is meant to be passed by value
func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := api.Deps{Logger: logger, Registry: reg}

	if cfg.TasteEmbeddingsEnabled() {
		gemini, err := llm.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			return fmt.Errorf("failed to create Gemini embedder: %w", err)
		}
		defer gemini.Close()

		cached, err := llm.NewCachedEmbeddingGenerator(gemini, cfg.EmbeddingCachePath)
		if err != nil {
			return fmt.Errorf("failed to create embedding cache: %w", err)
		}
		defer func() {
			if err := cached.SaveCache(); err != nil {
				logger.Error().Err(err).Msg("failed to save embedding cache")
			}
		}()

		deps.Taste = taste.NewProfiler(cached)
		logger.Info().Str("model", cfg.EmbeddingModel).Int("cached", cached.Len()).Msg("taste embeddings enabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(cfg, deps).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("meal ranker listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}
	logger.Info().Msg("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server exiting")
	return nil
}
