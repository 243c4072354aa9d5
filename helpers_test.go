package main

import (
	"context"
	"strings"
	"sync"
	"time"
)

// fakeClock records requested sleeps and advances virtual time instead of
// blocking. stopAfter > 0 cancels the run after that many sleeps.
type fakeClock struct {
	mu        sync.Mutex
	now       time.Time
	sleeps    []time.Duration
	stopAfter int
	cancel    context.CancelFunc
}

func newFakeClock(now time.Time) *fakeClock { return &fakeClock{now: now} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	n := len(c.sleeps)
	c.mu.Unlock()
	if c.stopAfter > 0 && n >= c.stopAfter && c.cancel != nil {
		c.cancel()
		return context.Canceled
	}
	return nil
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs map[Channel][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{msgs: map[Channel][]string{}}
}

func (n *recordingNotifier) Notify(_ context.Context, ch Channel, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs[ch] = append(n.msgs[ch], msg)
}

func (n *recordingNotifier) On(ch Channel) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs[ch]...)
}

func (n *recordingNotifier) Contains(ch Channel, sub string) bool {
	for _, m := range n.On(ch) {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

// omitsVenue behaves like a venue that publishes no minimums (bitFlyer).
type omitsVenue struct {
	*PaperVenue
}

func (omitsVenue) OmitsMinimums() bool { return true }

// callLog wraps a venue and records order-affecting calls in order.
type callLog struct {
	Venue
	mu    sync.Mutex
	calls []string
}

func (c *callLog) record(s string) {
	c.mu.Lock()
	c.calls = append(c.calls, s)
	c.mu.Unlock()
}

func (c *callLog) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *callLog) CancelOrder(ctx context.Context, id, symbol string) error {
	c.record("cancel:" + id)
	return c.Venue.CancelOrder(ctx, id, symbol)
}

func (c *callLog) CreateLimitBuyOrder(ctx context.Context, symbol string, amount, price float64) (*Order, error) {
	c.record("buy")
	return c.Venue.CreateLimitBuyOrder(ctx, symbol, amount, price)
}

func (c *callLog) CreateLimitSellOrder(ctx context.Context, symbol string, amount, price float64) (*Order, error) {
	c.record("sell")
	return c.Venue.CreateLimitSellOrder(ctx, symbol, amount, price)
}

var t0 = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

var btcJPY = Market{
	Symbol:          "BTC/JPY",
	ID:              "btc_jpy",
	Base:            "BTC",
	Quote:           "JPY",
	MinAmount:       0.0001,
	AmountPrecision: 4,
}
