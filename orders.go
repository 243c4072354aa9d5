// FILE: orders.go
// Package main – Limit order lifecycle for one venue.
//
// EnforceCap keeps the number of resting orders per symbol at or below
// MAX_OPEN_ORDERS by cancelling the oldest ones before each submission. PlaceLeg submits a single limit order and
// posts to the order channel before and after submission.
package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type OrderManager struct {
	venue    Venue
	notifier Notifier
	maxOpen  int
}

func NewOrderManager(v Venue, n Notifier, maxOpen int) *OrderManager {
	return &OrderManager{venue: v, notifier: n, maxOpen: maxOpen}
}

// EnforceCap makes room for one more order: when the symbol is at or above the
// cap it cancels the oldest orders until one submission keeps the count at
// maxOpen. Returns the cancelled ids, oldest first.
func (m *OrderManager) EnforceCap(ctx context.Context, symbol string) ([]string, error) {
	if m.maxOpen <= 0 {
		return nil, nil
	}
	open, err := m.venue.FetchOpenOrders(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("open orders %s: %w", symbol, err)
	}
	excess := len(open) - m.maxOpen + 1
	if excess <= 0 {
		return nil, nil
	}
	var cancelled []string
	for _, o := range open[:excess] {
		if err := m.venue.CancelOrder(ctx, o.ID, symbol); err != nil {
			return cancelled, fmt.Errorf("cancel %s %s: %w", symbol, o.ID, err)
		}
		mtxCancels.WithLabelValues(m.venue.Name()).Inc()
		cancelled = append(cancelled, o.ID)
		log.Printf("[ORDER] %s %s cap=%d open=%d cancelled oldest id=%s", m.venue.Name(), symbol, m.maxOpen, len(open), o.ID)
	}
	return cancelled, nil
}

// PlaceLeg submits one limit order.
func (m *OrderManager) PlaceLeg(ctx context.Context, spec MarketSpec, side OrderSide, amount, price float64, corrID string) (*Order, error) {
	m.notifier.Notify(ctx, ChannelOrder, fmt.Sprintf(
		"[%s] %s %s order prepared: price=%s amount=%s price_digits=%d amount_digits=%d id=%s",
		spec.Exchange, spec.Symbol, side, trimDec(price), trimDec(amount),
		spec.PricePrecision.Digits, spec.AmountPrecision.Digits, corrID))

	var (
		ord *Order
		err error
	)
	switch side {
	case SideBuy:
		ord, err = m.venue.CreateLimitBuyOrder(ctx, spec.Symbol, amount, price)
	case SideSell:
		ord, err = m.venue.CreateLimitSellOrder(ctx, spec.Symbol, amount, price)
	default:
		return nil, fmt.Errorf("unknown side %q", side)
	}
	if err != nil {
		return nil, fmt.Errorf("%s limit %s: %w", side, spec.Symbol, err)
	}
	mtxOrders.WithLabelValues(spec.Exchange, string(side)).Inc()
	m.notifier.Notify(ctx, ChannelOrder, fmt.Sprintf(
		"[%s] %s %s order placed: order_id=%s price=%s amount=%s id=%s",
		spec.Exchange, spec.Symbol, side, ord.ID, trimDec(ord.Price), trimDec(ord.Amount), corrID))
	return ord, nil
}
