// FILE: metrics.go
// Package main – Prometheus metrics for observability.
//
// Exposes the metrics the scalping loops and reporters update:
//   • bot_orders_total{exchange,side}            – Limit orders placed
//   • bot_decisions_total{exchange,result}       – Signal results (trade|skip)
//   • bot_skips_total{exchange,reason}           – Legs or ticks skipped, by reason
//   • bot_loop_errors_total{exchange}            – Tick errors caught at the loop boundary
//   • bot_order_cancels_total{exchange}          – Oldest-order cancellations (open-order cap)
//   • bot_spread_baseline{exchange,symbol}       – Current rolling spread baseline
//   • bot_realized_pnl_quote{exchange,symbol}    – Last reported realized P&L in quote
//   • bot_portfolio_value_quote{exchange}        – Last reported portfolio value in quote
//   • bot_loops_active{exchange}                 – Loops currently polling
//
// These are registered in init() and served by the ops server at /metrics.

package main

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_orders_total",
			Help: "Limit orders placed",
		},
		[]string{"exchange", "side"},
	)

	mtxDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_decisions_total",
			Help: "Signal evaluations by result",
		},
		[]string{"exchange", "result"}, // trade|skip
	)

	mtxSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_skips_total",
			Help: "Skipped ticks or legs by reason",
		},
		[]string{"exchange", "reason"},
	)

	mtxLoopErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_loop_errors_total",
			Help: "Errors caught at the scalping loop tick boundary",
		},
		[]string{"exchange"},
	)

	mtxCancels = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_order_cancels_total",
			Help: "Oldest open orders cancelled to respect the open-order cap",
		},
		[]string{"exchange"},
	)

	mtxBaseline = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bot_spread_baseline",
			Help: "Rolling mean spread per symbol",
		},
		[]string{"exchange", "symbol"},
	)

	mtxRealizedPnL = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bot_realized_pnl_quote",
			Help: "Realized P&L over the report window, in quote currency",
		},
		[]string{"exchange", "symbol"},
	)

	mtxPortfolio = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bot_portfolio_value_quote",
			Help: "Total balance valued in quote currency",
		},
		[]string{"exchange"},
	)

	mtxLoopsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bot_loops_active",
			Help: "Scalping loops currently polling",
		},
		[]string{"exchange"},
	)
)

func init() {
	prometheus.MustRegister(mtxOrders, mtxDecisions, mtxSkips)
	prometheus.MustRegister(mtxLoopErrors, mtxCancels)
	prometheus.MustRegister(mtxBaseline, mtxRealizedPnL, mtxPortfolio, mtxLoopsActive)
}
