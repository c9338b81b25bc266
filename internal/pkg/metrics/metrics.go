package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated registry so tests can build isolated instances.
type Metrics struct {
	reg *prometheus.Registry

	ReconciliationErrors prometheus.Counter
	Settlements          *prometheus.CounterVec
	Conflicts            *prometheus.CounterVec
	OutboxPublished      *prometheus.CounterVec
	TopUpsProcessed      *prometheus.CounterVec
	AvailabilityCache    *prometheus.CounterVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
}

func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		ReconciliationErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "settlement_reconciliation_errors_total",
			Help: "Accepts whose debit succeeded but whose status transition did not.",
		}),
		Settlements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "settlements_total",
			Help: "Settlement attempts by outcome.",
		}, []string{"outcome"}),
		Conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Retryable conflicts surfaced to callers, by operation.",
		}, []string{"operation"}),
		OutboxPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_jobs_total",
			Help: "Outbox jobs handled by the relay, by result.",
		}, []string{"topic", "result"}),
		TopUpsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_topups_total",
			Help: "Top-up messages consumed, by result.",
		}, []string{"result"}),
		AvailabilityCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_cache_requests_total",
			Help: "Availability display cache lookups.",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
	}
}

// NewDefault registers the process and Go runtime collectors alongside the service metrics.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// ObservePool exports connection pool gauges read from pool.Stat at scrape time.
func (m *Metrics) ObservePool(pool *pgxpool.Pool) {
	f := promauto.With(m.reg)
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "db_pool_acquired_conns",
		Help: "Connections currently checked out of the pool.",
	}, func() float64 { return float64(pool.Stat().AcquiredConns()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "db_pool_idle_conns",
		Help: "Idle connections held by the pool.",
	}, func() float64 { return float64(pool.Stat().IdleConns()) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "db_pool_empty_acquire_total",
		Help: "Acquires that had to wait because the pool was empty.",
	}, func() float64 { return float64(pool.Stat().EmptyAcquireCount()) })
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// GinMiddleware records request counts and latency labelled by the matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
