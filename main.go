// FILE: main.go
// Package main – Program entrypoint and ops server.
//
// Boot sequence:
//   1) loadBotEnv()                – read ENV_FILE (no shell exports required)
//   2) initLogging()               – LOG_LEVEL / LOG_FORMAT
//   3) cfg := loadConfigFromEnv()  – build and validate runtime Config
//   4) wire venues (paper-wrapped in DRY_RUN), overrides, notifier
//   5) start the ops server (/healthz, /metrics, /status) on cfg.Port
//   6) run the orchestrator until SIGINT/SIGTERM
//
// Flags:
//   -exchanges <list>   Override EXCHANGES (comma-separated)
//   -live               Force DRY_RUN=false (real orders)
//
// Example:
//   go run . -exchanges bitbank
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

func main() {
	// ---- Flags ----
	var exchanges string
	var live bool
	flag.StringVar(&exchanges, "exchanges", "", "Comma-separated exchanges (overrides EXCHANGES)")
	flag.BoolVar(&live, "live", false, "Place real orders (overrides DRY_RUN)")
	flag.Parse()

	// ---- Environment & Config ----
	loadBotEnv()
	initLogging()
	cfg := loadConfigFromEnv()
	if exchanges != "" {
		cfg.Exchanges = splitList(exchanges, strings.ToLower)
	}
	if live {
		cfg.DryRun = false
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	overrides, err := LoadOverrides(cfg.MarketsFile)
	if err != nil {
		log.Fatalf("overrides: %v", err)
	}

	// ---- Venue wiring ----
	var venues []Venue
	for _, name := range cfg.Exchanges {
		v, err := newVenue(cfg, name)
		if err != nil {
			log.Fatalf("venue %s: %v", name, err)
		}
		venues = append(venues, v)
	}

	notifier := newWebhookNotifier(cfg.webhooks())
	orch := NewOrchestrator(cfg, venues, notifier, overrides, realClock{})

	log.Printf("[SAFETY] DRY_RUN=%v | STRATEGY=%s | PROFIT_MARGIN=%v | TRADE_FRACTION=%v | MAX_OPEN_ORDERS=%d | QUOTE=%s",
		cfg.DryRun, cfg.Strategy, cfg.ProfitMargin, cfg.TradeFraction, cfg.MaxOpenOrders, cfg.QuoteCurrency)

	// ---- HTTP ops server ----
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: newOpsServer(orch)}
	go func() {
		log.Printf("serving ops on :%d (/healthz /metrics /status)", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	// ---- Run ----
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := orch.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("orchestrator: %v", err)
	}
	log.Println("shutdown")

	// ---- Graceful shutdown for HTTP server ----
	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)
}
