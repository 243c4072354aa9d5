// FILE: report.go
// Package main – Realized P&L and portfolio value reporting.
//
// One Reporter per exchange. It runs once at startup, then a coarse 60s timer
// fires it whenever the minute-of-hour is zero. It is best-effort: a slow or
// failing venue can push a report late or skip it, and each symbol that fails
// is reported on the error channel and left out of the totals.
package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Reporter struct {
	venue    Venue
	notifier Notifier
	clock    Clock
	quote    string
	window   time.Duration
	markets  map[string]Market

	lastHour time.Time
}

type SymbolPnL struct {
	Symbol string
	Net    float64
}

type ReportSummary struct {
	Exchange       string
	Symbols        []SymbolPnL
	Total          float64
	PortfolioValue float64
	ValueOK        bool
}

func NewReporter(v Venue, n Notifier, clk Clock, quote string, window time.Duration, markets map[string]Market) *Reporter {
	if clk == nil {
		clk = realClock{}
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Reporter{
		venue:    v,
		notifier: n,
		clock:    clk,
		quote:    strings.ToUpper(quote),
		window:   window,
		markets:  markets,
	}
}

// tradePnL signs one trade's notional (sells positive, buys negative) after
// netting its fee.
func tradePnL(t Trade, base, quote string) decimal.Decimal {
	amount := decimal.NewFromFloat(t.Amount)
	price := decimal.NewFromFloat(t.Price)
	var quoteFee decimal.Decimal
	if t.Fee != nil && t.Fee.Cost != 0 {
		switch strings.ToUpper(t.Fee.Currency) {
		case quote:
			quoteFee = decimal.NewFromFloat(t.Fee.Cost)
		case base:
			amount = amount.Sub(decimal.NewFromFloat(t.Fee.Cost))
		}
	}
	notional := amount.Mul(price)
	if t.Side == SideBuy {
		notional = notional.Neg()
	}
	return notional.Sub(quoteFee)
}

// FetchTotal returns net realized P&L in quote currency over the report window.
func (r *Reporter) FetchTotal(ctx context.Context, symbol string) (float64, error) {
	since := r.clock.Now().Add(-r.window)
	trades, err := r.venue.FetchMyTrades(ctx, symbol, since)
	if err != nil {
		return 0, fmt.Errorf("trades %s: %w", symbol, err)
	}
	base, quote := splitSymbol(symbol)
	net := decimal.Zero
	for _, t := range trades {
		net = net.Add(tradePnL(t, base, quote))
	}
	return net.InexactFloat64(), nil
}

// TotalQuoteValue values every held currency in the quote currency. Holdings
// without a CUR/QUOTE market are left out, as are those whose ticker fails.
func (r *Reporter) TotalQuoteValue(ctx context.Context) (float64, error) {
	bal, err := r.venue.FetchBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}
	curs := make([]string, 0, len(bal.Total))
	for c := range bal.Total {
		curs = append(curs, c)
	}
	sort.Strings(curs)

	total := decimal.Zero
	for _, cur := range curs {
		amt := bal.Total[cur]
		if amt == 0 {
			continue
		}
		if cur == r.quote {
			total = total.Add(decimal.NewFromFloat(amt))
			continue
		}
		sym := joinSymbol(cur, r.quote)
		if _, ok := r.markets[sym]; !ok {
			continue
		}
		t, err := r.venue.FetchTicker(ctx, sym)
		if err != nil {
			r.notifier.Notify(ctx, ChannelError, fmt.Sprintf("[%s] portfolio value: %s left out: %v", r.venue.Name(), cur, err))
			continue
		}
		total = total.Add(decimal.NewFromFloat(amt).Mul(decimal.NewFromFloat(t.Last)))
	}
	return total.InexactFloat64(), nil
}

// Report computes and publishes one report for the given symbols.
func (r *Reporter) Report(ctx context.Context, symbols []string) ReportSummary {
	ex := r.venue.Name()
	sum := ReportSummary{Exchange: ex}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] P&L last %s\n", ex, r.window)

	total := decimal.Zero
	for _, sym := range symbols {
		net, err := r.FetchTotal(ctx, sym)
		if err != nil {
			r.notifier.Notify(ctx, ChannelError, fmt.Sprintf("[%s] report %s: %v", ex, sym, err))
			continue
		}
		mtxRealizedPnL.WithLabelValues(ex, sym).Set(net)
		sum.Symbols = append(sum.Symbols, SymbolPnL{Symbol: sym, Net: net})
		total = total.Add(decimal.NewFromFloat(net))
		fmt.Fprintf(&b, "%s: %s %s\n", sym, trimDec(net), r.quote)
	}
	sum.Total = total.InexactFloat64()
	fmt.Fprintf(&b, "total: %s %s\n", trimDec(sum.Total), r.quote)

	if v, err := r.TotalQuoteValue(ctx); err != nil {
		r.notifier.Notify(ctx, ChannelError, fmt.Sprintf("[%s] portfolio value: %v", ex, err))
	} else {
		sum.PortfolioValue, sum.ValueOK = v, true
		mtxPortfolio.WithLabelValues(ex).Set(v)
		fmt.Fprintf(&b, "portfolio: %s %s", decimal.NewFromFloat(v).StringFixed(0), r.quote)
	}
	r.notifier.Notify(ctx, ChannelReport, strings.TrimRight(b.String(), "\n"))
	return sum
}

// due reports whether the hourly report should fire at now. It fires at most
// once per wall-clock hour.
func (r *Reporter) due(now time.Time) bool {
	if now.Minute() != 0 {
		return false
	}
	hour := now.Truncate(time.Hour)
	if hour.Equal(r.lastHour) {
		return false
	}
	r.lastHour = hour
	return true
}

// RunHourly reports immediately, then on every top-of-hour until ctx ends.
func (r *Reporter) RunHourly(ctx context.Context, symbols []string) {
	log.Printf("[REPORT] %s hourly reporter for %d symbols", r.venue.Name(), len(symbols))
	r.due(r.clock.Now()) // a startup report at :00 counts for that hour
	r.Report(ctx, symbols)
	for {
		if err := r.clock.Sleep(ctx, time.Minute); err != nil {
			return
		}
		if r.due(r.clock.Now()) {
			r.Report(ctx, symbols)
		}
	}
}
