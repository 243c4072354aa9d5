// FILE: orchestrator.go
// Package main – Fan-out of scalping loops and reporters across venues.
//
// For each configured exchange the orchestrator loads markets, keeps those
// quoted in QUOTE_CURRENCY (and in SYMBOLS, if set), partitions a SpreadBook,
// then starts one Scalper per symbol plus one hourly Reporter. A failure on
// one exchange or symbol is reported and contained; only context
// cancellation stops the rest.
package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Orchestrator struct {
	cfg       Config
	venues    []Venue
	notifier  Notifier
	overrides *Overrides
	clock     Clock

	mu    sync.RWMutex
	loops []*Scalper
}

func NewOrchestrator(cfg Config, venues []Venue, n Notifier, ov *Overrides, clk Clock) *Orchestrator {
	if clk == nil {
		clk = realClock{}
	}
	return &Orchestrator{cfg: cfg, venues: venues, notifier: n, overrides: ov, clock: clk}
}

// newVenue builds the client for one exchange; in DRY_RUN it is wrapped in a
// paper venue that forwards market data and keeps orders local.
func newVenue(cfg Config, name string) (Venue, error) {
	var live Venue
	switch name {
	case "bitbank":
		live = NewBitbankVenue(cfg.venueSettings(name))
	case "bitflyer":
		live = NewBitflyerVenue(cfg.venueSettings(name))
	default:
		return nil, fmt.Errorf("unsupported exchange %q", name)
	}
	if !cfg.DryRun {
		return live, nil
	}
	bals, err := parsePaperBalances(cfg.PaperBalances)
	if err != nil {
		return nil, err
	}
	return NewPaperVenue(name, live, bals), nil
}

// Run blocks until ctx is cancelled and every loop has returned.
func (o *Orchestrator) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, v := range o.venues {
		v := v
		g.Go(func() error {
			o.runExchange(gctx, v)
			return nil
		})
	}
	return g.Wait()
}

// tradableSymbols filters markets by quote currency and the allow-list.
func (o *Orchestrator) tradableSymbols(markets map[string]Market) []string {
	var out []string
	for sym, m := range markets {
		quote := m.Quote
		if quote == "" {
			_, quote = splitSymbol(sym)
		}
		if quote != o.cfg.QuoteCurrency || !o.cfg.allowSymbol(sym) {
			continue
		}
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func (o *Orchestrator) runExchange(ctx context.Context, v Venue) {
	ex := v.Name()
	markets, err := v.LoadMarkets(ctx)
	if err != nil {
		o.notifier.Notify(ctx, ChannelError, fmt.Sprintf("[%s] load markets: %v", ex, err))
		return
	}
	symbols := o.tradableSymbols(markets)
	if len(symbols) == 0 {
		log.Printf("[BOOT] %s: no %s markets to trade", ex, o.cfg.QuoteCurrency)
		return
	}
	strategy, err := newStrategy(o.cfg, v)
	if err != nil {
		o.notifier.Notify(ctx, ChannelError, fmt.Sprintf("[%s] strategy: %v", ex, err))
		return
	}
	log.Printf("[BOOT] %s strategy=%s symbols=%d dry_run=%v", ex, strategy.Name(), len(symbols), o.cfg.DryRun)

	book := NewSpreadBook(ex, o.cfg.HistorySize)
	book.Partition(symbols)
	om := NewOrderManager(v, o.notifier, o.cfg.MaxOpenOrders)

	var g errgroup.Group
	for _, sym := range book.Symbols() {
		sc := NewScalper(v, markets[sym], strategy, book.Window(sym), om, o.notifier, o.overrides, o.clock, o.cfg.scalperConfig())
		o.register(sc)
		g.Go(func() error {
			_ = sc.Run(ctx) // resolution failures are already reported
			return nil
		})
	}
	rep := NewReporter(v, o.notifier, o.clock, o.cfg.QuoteCurrency, o.cfg.ReportWindow, markets)
	g.Go(func() error {
		rep.RunHourly(ctx, symbols)
		return nil
	})
	_ = g.Wait()
}

func (o *Orchestrator) register(s *Scalper) {
	o.mu.Lock()
	o.loops = append(o.loops, s)
	o.mu.Unlock()
}

// Statuses snapshots every registered loop, ordered by exchange then symbol.
func (o *Orchestrator) Statuses() []LoopStatus {
	o.mu.RLock()
	loops := append([]*Scalper(nil), o.loops...)
	o.mu.RUnlock()
	out := make([]LoopStatus, 0, len(loops))
	for _, s := range loops {
		out = append(out, s.Status())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Exchange != out[j].Exchange {
			return out[i].Exchange < out[j].Exchange
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
