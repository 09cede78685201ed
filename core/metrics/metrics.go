package metrics

import (
	"net/http"
	"strconv"
	"time"

	"shipment-gateway/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shipment_gateway"

// Metrics holds the gateway's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	SyncPasses   *prometheus.CounterVec
	SyncRecords  *prometheus.CounterVec
	SyncDuration prometheus.Histogram
	LastSync     prometheus.Gauge
	StaleReads   *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	BreakerOpen  prometheus.Gauge
	EventsFailed *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		SyncPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_passes_total",
			Help:      "Reconciliation passes by result",
		}, []string{"result"}),
		SyncRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_records_total",
			Help:      "Records handled by reconciliation, by action",
		}, []string{"action"}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of reconciliation passes",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		LastSync: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_sync_timestamp_seconds",
			Help:      "Unix time of the last successful pass",
		}),
		StaleReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_reads_total",
			Help:      "Reads that found the mirror stale, by reason",
		}, []string{"reason"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BreakerOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "carrier_breaker_open",
			Help:      "1 while the carrier API circuit breaker is not closed",
		}),
		EventsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Domain events that could not be published, by type",
		}, []string{"type"}),
	}

	registry.MustRegister(
		m.SyncPasses, m.SyncRecords, m.SyncDuration, m.LastSync, m.StaleReads,
		m.HTTPRequests, m.HTTPDuration, m.BreakerOpen, m.EventsFailed,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSync records the outcome of a pass.
func (m *Metrics) ObserveSync(report *reconcile.Report, err error) {
	if m == nil {
		return
	}
	if err != nil || report == nil {
		m.SyncPasses.WithLabelValues("failure").Inc()
		return
	}
	m.SyncPasses.WithLabelValues("success").Inc()
	m.SyncRecords.WithLabelValues("added").Add(float64(report.Added))
	m.SyncRecords.WithLabelValues("updated").Add(float64(report.Updated))
	m.SyncRecords.WithLabelValues("removed").Add(float64(report.Removed))
	m.SyncRecords.WithLabelValues("unchanged").Add(float64(report.Unchanged))
	m.SyncRecords.WithLabelValues("failed").Add(float64(report.Failed))
	m.SyncRecords.WithLabelValues("duplicate").Add(float64(report.Duplicates))
	m.SyncDuration.Observe(report.Duration.Seconds())
	m.LastSync.Set(float64(report.StartedAt.Add(report.Duration).Unix()))
}

// ObserveStale counts a stale read.
func (m *Metrics) ObserveStale(reason string) {
	if m == nil {
		return
	}
	m.StaleReads.WithLabelValues(reason).Inc()
}

// ObserveBreaker records the carrier breaker state.
func (m *Metrics) ObserveBreaker(state string) {
	if m == nil {
		return
	}
	if state == "closed" {
		m.BreakerOpen.Set(0)
	} else {
		m.BreakerOpen.Set(1)
	}
}

// ObserveEventFailure counts an event that could not be published.
func (m *Metrics) ObserveEventFailure(eventType string) {
	if m == nil {
		return
	}
	m.EventsFailed.WithLabelValues(eventType).Inc()
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
