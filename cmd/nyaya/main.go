package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kausthubh/nyaya/internal/analyzer"
	"github.com/kausthubh/nyaya/internal/chat"
	"github.com/kausthubh/nyaya/internal/config"
	"github.com/kausthubh/nyaya/internal/history"
	"github.com/kausthubh/nyaya/internal/httpapi"
	"github.com/kausthubh/nyaya/internal/observability"
	"github.com/kausthubh/nyaya/internal/session"
	"github.com/kausthubh/nyaya/internal/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	records, err := history.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("conversation log init failed: %v", err)
	}
	defer records.Close()

	client, err := analyzer.NewClient(analyzer.Config{
		Mode:    cfg.AnalyzerMode,
		BaseURL: cfg.AnalyzerBaseURL,
	})
	if err != nil {
		log.Fatalf("analyzer client init failed: %v", err)
	}

	probe := analyzer.NewProbe()
	go func() {
		probeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := probe.Run(probeCtx, client); err != nil {
			// A failed probe is not fatal, the chat stays usable and the
			// capability panel just reports the service as unreachable.
			log.Printf("analysis status probe failed: %v", err)
			return
		}
		health, _ := probe.Snapshot()
		log.Printf("analysis service ready: %d sections, llm=%v, semantic=%v",
			health.TotalSections, health.LLMEnabled, health.SemanticSearchEnabled)
	}()

	var capture speech.CaptureProvider
	switch strings.ToLower(strings.TrimSpace(cfg.SpeechProvider)) {
	case "mock":
		capture = speech.NewMockProvider()
		log.Printf("speech provider: mock")
	default:
		log.Printf("speech provider: none (voice input disabled)")
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	coordinator := chat.NewCoordinator(sessions, client, records, metrics)

	api := httpapi.New(cfg, sessions, coordinator, capture, probe, records, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	sessions.StartJanitor(runCtx, 5*time.Second)

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

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
