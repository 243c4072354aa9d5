package main

import (
	"context"
	"errors"
	"testing"
)

func TestDecimalPlaces(t *testing.T) {
	cases := map[float64]int{
		15000000: 0,
		0.0001:   4,
		102.345:  3,
		0.01:     2,
		1e-8:     8,
		12.5:     1,
	}
	for in, want := range cases {
		if got := decimalPlaces(in); got != want {
			t.Errorf("decimalPlaces(%v)=%d want %d", in, got, want)
		}
	}
}

func TestNormalizePrecision(t *testing.T) {
	cases := []struct {
		in       float64
		want     int
		wantNorm bool
	}{
		{0.01, 2, true},
		{0.001, 3, true},
		{0.5, 1, true},
		{2, 2, false},
		{8, 8, false},
		{0, 0, false},
	}
	for _, tc := range cases {
		got, norm, err := normalizePrecision(tc.in)
		if err != nil || got != tc.want || norm != tc.wantNorm {
			t.Errorf("normalizePrecision(%v)=(%d,%v,%v) want (%d,%v)", tc.in, got, norm, err, tc.want, tc.wantNorm)
		}
		again, norm2, _ := normalizePrecision(float64(got))
		if again != got || norm2 {
			t.Errorf("normalizePrecision not idempotent for %v: %d -> %d", tc.in, got, again)
		}
	}

	for _, bad := range []float64{1.5, 2.25, 8.0001} {
		if _, _, err := normalizePrecision(bad); err == nil {
			t.Errorf("normalizePrecision(%v) accepted a fractional digit count", bad)
		}
	}
}

func TestResolveMarketVenueDeclared(t *testing.T) {
	p := NewPaperVenue("bitbank", nil, nil)
	m := Market{Symbol: "BTC/JPY", Base: "BTC", Quote: "JPY", MinAmount: 0.0001, PricePrecision: 0.001, AmountPrecision: 4}
	spec, err := ResolveMarket(context.Background(), p, m, NewOverrides(), 0.0001)
	if err != nil {
		t.Fatal(err)
	}
	if spec.MinTradeAmount != (Resolution{Value: 0.0001, Source: SourceVenue}) {
		t.Errorf("min=%+v", spec.MinTradeAmount)
	}
	if spec.PricePrecision != (Precision{Digits: 3, Source: SourceVenue, Normalized: true}) {
		t.Errorf("price=%+v", spec.PricePrecision)
	}
	if spec.AmountPrecision != (Precision{Digits: 4, Source: SourceVenue}) {
		t.Errorf("amount=%+v", spec.AmountPrecision)
	}
}

func TestResolveMarketFallbacks(t *testing.T) {
	p := NewPaperVenue("bitflyer", nil, nil)
	p.SeedTicker("BTC/JPY", 15000000)
	p.SeedTicker("DOGE/JPY", 20.123)
	v := omitsVenue{p}

	spec, err := ResolveMarket(context.Background(), v, Market{Symbol: "BTC/JPY", MinAmount: 0.5}, NewOverrides(), 0.0001)
	if err != nil {
		t.Fatal(err)
	}
	if spec.MinTradeAmount != (Resolution{Value: 0.001, Source: SourceOverride}) {
		t.Errorf("min=%+v, want override table value", spec.MinTradeAmount)
	}
	if spec.PricePrecision != (Precision{Digits: 0, Source: SourceTicker}) {
		t.Errorf("price=%+v", spec.PricePrecision)
	}
	if spec.AmountPrecision != (Precision{Digits: 3, Source: SourceMinAmount}) {
		t.Errorf("amount=%+v", spec.AmountPrecision)
	}
	if spec.Base != "BTC" || spec.Quote != "JPY" {
		t.Errorf("base/quote=%s/%s", spec.Base, spec.Quote)
	}

	spec, err = ResolveMarket(context.Background(), v, Market{Symbol: "DOGE/JPY"}, NewOverrides(), 0.0001)
	if err != nil {
		t.Fatal(err)
	}
	if spec.MinTradeAmount != (Resolution{Value: 0.0001, Source: SourceDefault}) {
		t.Errorf("min=%+v, want default", spec.MinTradeAmount)
	}
	if spec.PricePrecision.Digits != 3 {
		t.Errorf("price digits=%d want 3", spec.PricePrecision.Digits)
	}
	if spec.AmountPrecision.Digits != 4 {
		t.Errorf("amount digits=%d want 4", spec.AmountPrecision.Digits)
	}
}

func TestResolveMarketSetupErrors(t *testing.T) {
	p := NewPaperVenue("bitbank", nil, nil)

	// no ticker seeded and no declared price precision
	_, err := ResolveMarket(context.Background(), p, btcJPY, NewOverrides(), 0.0001)
	if !errors.Is(err, ErrSetup) {
		t.Errorf("missing ticker: err=%v want ErrSetup", err)
	}

	p.SeedTicker("ETH/JPY", 0)
	_, err = ResolveMarket(context.Background(), p, Market{Symbol: "ETH/JPY", MinAmount: 0.01}, nil, 0.0001)
	if !errors.Is(err, ErrSetup) {
		t.Errorf("zero last price: err=%v want ErrSetup", err)
	}

	_, err = ResolveMarket(context.Background(), p, Market{Symbol: "XRP/JPY", PricePrecision: 3}, nil, 0)
	if !errors.Is(err, ErrSetup) {
		t.Errorf("no minimum anywhere: err=%v want ErrSetup", err)
	}

	_, err = ResolveMarket(context.Background(), p, Market{Symbol: "XRP/JPY", MinAmount: 0.1, PricePrecision: 2.5}, nil, 0.0001)
	if !errors.Is(err, ErrSetup) {
		t.Errorf("fractional price digits: err=%v want ErrSetup", err)
	}
	_, err = ResolveMarket(context.Background(), p, Market{Symbol: "XRP/JPY", MinAmount: 0.1, PricePrecision: 3, AmountPrecision: 1.5}, nil, 0.0001)
	if !errors.Is(err, ErrSetup) {
		t.Errorf("fractional amount digits: err=%v want ErrSetup", err)
	}
}
