// FILE: history.go
// Package main – Rolling spread history.
//
// A SpreadWindow keeps the last N observed spreads for one symbol. A SpreadBook
// groups the windows of one exchange; it is partitioned up front so each loop
// owns exactly one window and nothing is created lazily under concurrency.
package main

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

const defaultHistorySize = 100

type SpreadWindow struct {
	mu      sync.Mutex
	cap     int
	samples []float64
}

func NewSpreadWindow(capacity int) *SpreadWindow {
	if capacity <= 0 {
		capacity = defaultHistorySize
	}
	return &SpreadWindow{cap: capacity, samples: make([]float64, 0, capacity+1)}
}

// Record appends spread and evicts the oldest sample beyond capacity.
func (w *SpreadWindow) Record(spread float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.samples = append(w.samples, spread)
	if len(w.samples) > w.cap {
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:w.cap]
	}
}

// Baseline is the mean of every sample currently held, 0 when empty.
func (w *SpreadWindow) Baseline() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.samples) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, s := range w.samples {
		sum = sum.Add(decimal.NewFromFloat(s))
	}
	return sum.Div(decimal.NewFromInt(int64(len(w.samples)))).InexactFloat64()
}

func (w *SpreadWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.samples)
}

// Samples returns a copy, oldest first.
func (w *SpreadWindow) Samples() []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]float64(nil), w.samples...)
}

type SpreadBook struct {
	Exchange string
	capacity int
	windows  map[string]*SpreadWindow
}

func NewSpreadBook(exchange string, capacity int) *SpreadBook {
	return &SpreadBook{Exchange: exchange, capacity: capacity, windows: map[string]*SpreadWindow{}}
}

// Partition creates one window per symbol. It must run before loops start.
func (b *SpreadBook) Partition(symbols []string) {
	for _, s := range symbols {
		if _, ok := b.windows[s]; !ok {
			b.windows[s] = NewSpreadWindow(b.capacity)
		}
	}
}

// Window returns the symbol's window, or nil if it was never partitioned.
func (b *SpreadBook) Window(symbol string) *SpreadWindow {
	return b.windows[symbol]
}

func (b *SpreadBook) Symbols() []string {
	out := make([]string, 0, len(b.windows))
	for s := range b.windows {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
