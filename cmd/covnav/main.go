package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/covnav/backend/internal/config"
	"github.com/covnav/backend/internal/conversation"
	"github.com/covnav/backend/internal/httpapi"
	"github.com/covnav/backend/internal/observability"
	"github.com/covnav/backend/internal/persistence"
	"github.com/covnav/backend/internal/prompt"
	"github.com/covnav/backend/internal/provider"
	"github.com/covnav/backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ai, err := provider.New(provider.Config{
		Kind:            cfg.AIProvider,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		Timeout:         cfg.ProviderTimeout,
	})
	if err != nil {
		log.Fatalf("provider init failed: %v", err)
	}
	log.Printf("AI provider: %s (default model %s)", ai.Name(), ai.DefaultModel())

	prompts, err := prompt.New(cfg.PromptsBaseDirectory)
	if err != nil {
		log.Fatalf("prompt resolver init failed: %v", err)
	}

	ctx := context.Background()
	persist, err := persistence.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("session persistence init failed: %v", err)
	}
	defer persist.Close()

	sessions := session.NewStore(cfg.SessionIdleTimeout)
	orchestrator := conversation.NewOrchestrator(sessions, ai, prompts, persist, metrics)

	api := httpapi.New(cfg, sessions, orchestrator, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
