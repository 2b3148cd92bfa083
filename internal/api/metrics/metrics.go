// Package metrics defines all custom Prometheus metrics for the sweet shop
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics are registered with the default registry at package init
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// SweetsCreatedTotal counts newly created sweets.
// Label:
//   - category: the sweet's category (e.g. "barfi")
var SweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_created_total",
		Help:      "Total number of sweets created, by category.",
	},
	[]string{"category"},
)

// PurchasesTotal counts completed purchases.
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of completed purchases, by category.",
	},
	[]string{"category"},
)

// RestocksTotal counts completed restocks.
var RestocksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of completed restocks, by category.",
	},
	[]string{"category"},
)

// InsufficientStockTotal counts purchases rejected for lack of stock.
var InsufficientStockTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insufficient_stock_total",
		Help:      "Total number of purchase attempts rejected due to insufficient stock.",
	},
)

// CacheTotal counts sweet cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of sweet cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
