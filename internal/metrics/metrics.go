// Package metrics exposes Prometheus collectors for the HTTP layer and the
// habit/productivity domain.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests counts handled requests by route template and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "focusboard",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// HTTPLatency tracks request latency in seconds.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "focusboard",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
}, []string{"method", "route"})

// ─── Domain ─────────────────────────────────────────────────────────────────

// HabitRollovers counts habits whose completion flag was reset on read.
var HabitRollovers = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "focusboard",
	Subsystem: "habits",
	Name:      "rollovers_total",
	Help:      "Total day rollovers applied to habits, by whether the streak survived.",
}, []string{"outcome"})

// ProductivityOps counts aggregator mutations by operation and result.
var ProductivityOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "focusboard",
	Subsystem: "productivity",
	Name:      "operations_total",
	Help:      "Total productivity mutations by operation and result.",
}, []string{"op", "result"})

// StoreConflicts counts lost compare-and-swap races on productivity records.
var StoreConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "focusboard",
	Subsystem: "productivity",
	Name:      "store_conflicts_total",
	Help:      "Total version conflicts that forced a re-read.",
})

// ─── Push ───────────────────────────────────────────────────────────────────

// PushConnections is the number of open websocket connections.
var PushConnections = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "focusboard",
	Subsystem: "push",
	Name:      "connections",
	Help:      "Current number of websocket connections.",
})

// PushMessages counts push messages by delivery result (delivered|dropped).
var PushMessages = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "focusboard",
	Subsystem: "push",
	Name:      "messages_total",
	Help:      "Total push messages by delivery result.",
}, []string{"result"})

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
