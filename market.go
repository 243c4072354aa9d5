// FILE: market.go
// Package main – Market metadata resolution.
//
// Each scalping loop resolves its MarketSpec exactly once before polling.
// Every field records where its value came from so a reader of the boot log
// (or a test) can tell a venue-declared minimum from a fallback.
//
//	minTradeAmount : override table (venues that omit minimums) → venue → default
//	pricePrecision : venue → digits of the ticker's last price
//	amountPrecision: venue → digits of minTradeAmount
//
// Legacy tick-size precisions in (0,1) such as 0.01 are turned into digit
// counts (2). Integer precisions pass through untouched; anything else
// (2.5) fails setup.
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrSetup marks a failure that ends a loop before it starts polling.
var ErrSetup = errors.New("setup failed")

type Source string

const (
	SourceVenue     Source = "venue"
	SourceTicker    Source = "ticker"
	SourceOverride  Source = "override"
	SourceDefault   Source = "default"
	SourceMinAmount Source = "min_amount"
)

type Resolution struct {
	Value  float64
	Source Source
}

type Precision struct {
	Digits     int
	Source     Source
	Normalized bool // derived from a fractional tick size
}

// MarketSpec is immutable once resolved.
type MarketSpec struct {
	Exchange        string
	Symbol          string
	Base            string
	Quote           string
	MinTradeAmount  Resolution
	PricePrecision  Precision
	AmountPrecision Precision
}

func (s MarketSpec) String() string {
	return fmt.Sprintf("%s %s min=%s(%s) price_digits=%d(%s) amount_digits=%d(%s)",
		s.Exchange, s.Symbol,
		trimDec(s.MinTradeAmount.Value), s.MinTradeAmount.Source,
		s.PricePrecision.Digits, s.PricePrecision.Source,
		s.AmountPrecision.Digits, s.AmountPrecision.Source)
}

// decimalPlaces counts the digits after the decimal point in v's shortest
// textual form: 15000000 → 0, 0.0001 → 4, 102.345 → 3.
func decimalPlaces(v float64) int {
	s := decimal.NewFromFloat(v).String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// normalizePrecision maps a declared precision to a digit count. A value in
// (0,1) is a tick size and becomes its own decimal place count. Values of 1
// and above must be whole digit counts.
func normalizePrecision(p float64) (digits int, normalized bool, err error) {
	if p > 0 && p < 1 {
		return decimalPlaces(p), true, nil
	}
	if p != math.Trunc(p) {
		return 0, false, fmt.Errorf("precision %v is neither a tick size nor a digit count", p)
	}
	return int(p), false, nil
}

// ResolveMarket builds the MarketSpec for one symbol on one venue.
func ResolveMarket(ctx context.Context, v Venue, m Market, ov *Overrides, defaultMin float64) (MarketSpec, error) {
	spec := MarketSpec{
		Exchange: v.Name(),
		Symbol:   m.Symbol,
		Base:     m.Base,
		Quote:    m.Quote,
	}
	if spec.Base == "" || spec.Quote == "" {
		spec.Base, spec.Quote = splitSymbol(m.Symbol)
	}

	spec.MinTradeAmount = resolveMinAmount(v, m, ov, defaultMin)
	if spec.MinTradeAmount.Value <= 0 {
		return spec, fmt.Errorf("%w: %s %s: no minimum trade amount", ErrSetup, v.Name(), m.Symbol)
	}

	if m.PricePrecision > 0 {
		d, norm, err := normalizePrecision(m.PricePrecision)
		if err != nil {
			return spec, fmt.Errorf("%w: %s %s price: %v", ErrSetup, v.Name(), m.Symbol, err)
		}
		spec.PricePrecision = Precision{Digits: d, Source: SourceVenue, Normalized: norm}
	} else {
		t, err := v.FetchTicker(ctx, m.Symbol)
		if err != nil {
			return spec, fmt.Errorf("%w: %s %s ticker: %v", ErrSetup, v.Name(), m.Symbol, err)
		}
		if t.Last <= 0 {
			return spec, fmt.Errorf("%w: %s %s ticker has no last price", ErrSetup, v.Name(), m.Symbol)
		}
		spec.PricePrecision = Precision{Digits: decimalPlaces(t.Last), Source: SourceTicker}
	}

	if m.AmountPrecision > 0 {
		d, norm, err := normalizePrecision(m.AmountPrecision)
		if err != nil {
			return spec, fmt.Errorf("%w: %s %s amount: %v", ErrSetup, v.Name(), m.Symbol, err)
		}
		spec.AmountPrecision = Precision{Digits: d, Source: SourceVenue, Normalized: norm}
	} else {
		spec.AmountPrecision = Precision{Digits: decimalPlaces(spec.MinTradeAmount.Value), Source: SourceMinAmount}
	}
	return spec, nil
}

func resolveMinAmount(v Venue, m Market, ov *Overrides, defaultMin float64) Resolution {
	if v.OmitsMinimums() {
		if amt, ok := ov.MinAmount(v.Name(), m.Symbol); ok {
			return Resolution{Value: amt, Source: SourceOverride}
		}
	} else {
		if m.MinAmount > 0 {
			return Resolution{Value: m.MinAmount, Source: SourceVenue}
		}
		if amt, ok := ov.MinAmount(v.Name(), m.Symbol); ok {
			return Resolution{Value: amt, Source: SourceOverride}
		}
	}
	return Resolution{Value: defaultMin, Source: SourceDefault}
}
