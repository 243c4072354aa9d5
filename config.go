// FILE: config.go
// Package main – Runtime configuration model and loader.
//
// This file defines the Config struct (all the knobs the scalper uses) and a
// helper to populate it from environment variables. The .env file is read
// by loadBotEnv() (see env.go), so you can tune behavior without exports.
//
// Typical flow (see main.go):
//   loadBotEnv()
//   cfg := loadConfigFromEnv()
//   cfg.validate()
package main

// NOTE: Venue credentials and endpoints are venue-prefixed
// (BITBANK_API_KEY, BITFLYER_API_BASE, ...); everything else is unprefixed.

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all runtime knobs for trading and operations.
type Config struct {
	// Venues & markets
	Exchanges     []string // e.g. ["bitbank", "bitflyer"]
	QuoteCurrency string   // only markets quoted in this currency are traded
	Symbols       []string // optional allow-list of unified symbols
	MarketsFile   string   // optional YAML of static minimum amounts

	// Signal
	Strategy         string  // "spread" or "ratio"
	ProfitMargin     float64 // e.g. 0.0015
	SpreadMultiplier float64 // spread strategy threshold vs baseline
	HistorySize      int     // rolling window capacity

	// Sizing & lifecycle
	TradeFraction         float64 // share of free quote balance per buy leg
	DefaultMinTradeAmount float64
	MaxOpenOrders         int

	// Pacing
	Cooldown     time.Duration
	PollInterval time.Duration
	ErrorPause   time.Duration
	ReportWindow time.Duration
	VenueTimeout time.Duration

	// Safety & ops
	DryRun        bool
	PaperBalances string // "JPY=100000,BTC=0.01"
	Port          int

	// Notifications
	ErrorWebhook  string
	OrderWebhook  string
	ReportWebhook string
}

// loadConfigFromEnv reads the process env (already hydrated by loadBotEnv())
// and returns a Config with sane defaults if keys are missing.
func loadConfigFromEnv() Config {
	slack := getEnv("SLACK_WEBHOOK", "")
	cfg := Config{
		Exchanges:     splitList(getEnv("EXCHANGES", "bitbank,bitflyer"), strings.ToLower),
		QuoteCurrency: strings.ToUpper(getEnv("QUOTE_CURRENCY", "JPY")),
		Symbols:       splitList(getEnv("SYMBOLS", ""), strings.ToUpper),
		MarketsFile:   getEnv("MARKETS_FILE", ""),

		Strategy:         strings.ToLower(getEnv("STRATEGY", "spread")),
		ProfitMargin:     getEnvFloat("PROFIT_MARGIN", 0.0015),
		SpreadMultiplier: getEnvFloat("SPREAD_MULTIPLIER", 1.5),
		HistorySize:      getEnvInt("HISTORY_SIZE", 100),

		TradeFraction:         getEnvFloat("TRADE_FRACTION", 0.01),
		DefaultMinTradeAmount: getEnvFloat("DEFAULT_MIN_TRADE_AMOUNT", 0.0001),
		MaxOpenOrders:         getEnvInt("MAX_OPEN_ORDERS", 30),

		Cooldown:     getEnvDuration("COOLDOWN_SEC", 60*time.Second, time.Second),
		PollInterval: getEnvDuration("POLL_INTERVAL_MS", time.Second, time.Millisecond),
		ErrorPause:   getEnvDuration("ERROR_PAUSE_MS", time.Second, time.Millisecond),
		ReportWindow: getEnvDuration("REPORT_WINDOW_HOURS", 24*time.Hour, time.Hour),
		VenueTimeout: getEnvDuration("VENUE_TIMEOUT_SEC", 15*time.Second, time.Second),

		DryRun:        getEnvBool("DRY_RUN", true),
		PaperBalances: getEnv("PAPER_BALANCES", "JPY=100000"),
		Port:          getEnvInt("PORT", 8080),

		ErrorWebhook:  getEnv("DISCORD_ERROR_WEBHOOK_URL", slack),
		OrderWebhook:  getEnv("DISCORD_ORDER_WEBHOOK_URL", slack),
		ReportWebhook: getEnv("DISCORD_REPORT_WEBHOOK_URL", slack),
	}
	return cfg
}

// validate rejects configurations the loops cannot run with.
func (c Config) validate() error {
	if len(c.Exchanges) == 0 {
		return fmt.Errorf("EXCHANGES is empty")
	}
	for _, ex := range c.Exchanges {
		switch ex {
		case "bitbank", "bitflyer":
		default:
			return fmt.Errorf("unsupported exchange %q (want bitbank|bitflyer)", ex)
		}
	}
	if c.QuoteCurrency == "" {
		return fmt.Errorf("QUOTE_CURRENCY is empty")
	}
	if c.ProfitMargin <= 0 {
		return fmt.Errorf("PROFIT_MARGIN must be > 0")
	}
	if c.TradeFraction <= 0 || c.TradeFraction > 1 {
		return fmt.Errorf("TRADE_FRACTION must be in (0,1]")
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("HISTORY_SIZE must be > 0")
	}
	if c.PollInterval <= 0 || c.ErrorPause <= 0 || c.Cooldown < 0 {
		return fmt.Errorf("POLL_INTERVAL_MS and ERROR_PAUSE_MS must be > 0, COOLDOWN_SEC >= 0")
	}
	switch c.Strategy {
	case "spread", "ratio":
	default:
		return fmt.Errorf("unknown STRATEGY %q (want spread|ratio)", c.Strategy)
	}
	return nil
}

// ---- cfg helpers (getter methods) ----
// Venue-prefixed keys are read at call time.

func venuePrefix(name string) string { return strings.ToUpper(name) + "_" }

// marginMultiplier scales PROFIT_MARGIN for the ratio strategy; bitFlyer's
// higher fees default it to 1.5.
func (c Config) marginMultiplier(venue string) float64 {
	def := 1.0
	if venue == "bitflyer" {
		def = 1.5
	}
	return getEnvFloat(venuePrefix(venue)+"MARGIN_MULTIPLIER", def)
}

func (c Config) venueSettings(venue string) VenueSettings {
	p := venuePrefix(venue)
	defRPS := 5.0
	if venue == "bitflyer" {
		defRPS = 3.0
	}
	return VenueSettings{
		APIKey:     getEnv(p+"API_KEY", ""),
		APISecret:  getEnv(p+"API_SECRET", ""),
		PublicBase: getEnv(p+"PUBLIC_BASE", ""),
		APIBase:    getEnv(p+"API_BASE", ""),
		Timeout:    c.VenueTimeout,
		RateRPS:    getEnvFloat(p+"RATE_LIMIT_RPS", defRPS),
	}
}

func (c Config) webhooks() map[Channel]string {
	return map[Channel]string{
		ChannelError:  c.ErrorWebhook,
		ChannelOrder:  c.OrderWebhook,
		ChannelReport: c.ReportWebhook,
	}
}

func (c Config) scalperConfig() ScalperConfig {
	return ScalperConfig{
		DefaultMinAmount: c.DefaultMinTradeAmount,
		TradeFraction:    c.TradeFraction,
		PollInterval:     c.PollInterval,
		Cooldown:         c.Cooldown,
		ErrorPause:       c.ErrorPause,
	}
}

// allowSymbol applies the optional SYMBOLS allow-list.
func (c Config) allowSymbol(symbol string) bool {
	if len(c.Symbols) == 0 {
		return true
	}
	for _, s := range c.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

func splitList(s string, norm func(string) string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, norm(p))
		}
	}
	return out
}
