// Package metrics collects Prometheus metrics for the HTTP surface and the
// stores, and exposes them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "attendance"

// Recorder is the subset of Collector used by the HTTP layer.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordError(tag string)
}

// PoolStats is a snapshot of connection pool occupancy.
type PoolStats struct {
	MaxConns      int32
	TotalConns    int32
	AcquiredConns int32
	IdleConns     int32
}

// Collector records Prometheus metrics.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	reg      prometheus.Registerer
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Error responses by taxonomy tag.",
		}, []string{"kind"}),
		reg: reg,
	}

	reg.MustRegister(c.requests, c.duration, c.errors)
	return c
}

// RecordRequest records one completed HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordError records one error response by its wire tag.
func (c *Collector) RecordError(tag string) {
	c.errors.WithLabelValues(tag).Inc()
}

// RegisterTaskCount exposes the in-memory task count, read at scrape time.
func (c *Collector) RegisterTaskCount(count func() int) {
	c.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tasks",
		Help:      "Number of tasks held in memory.",
	}, func() float64 { return float64(count()) }))
}

// RegisterPoolStats exposes database pool occupancy, read at scrape time.
func (c *Collector) RegisterPoolStats(stats func() PoolStats) {
	gauge := func(name, help string, pick func(PoolStats) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(pick(stats())) })
	}

	c.reg.MustRegister(
		gauge("max_conns", "Maximum pool size.", func(s PoolStats) int32 { return s.MaxConns }),
		gauge("total_conns", "Open connections.", func(s PoolStats) int32 { return s.TotalConns }),
		gauge("acquired_conns", "Connections in use.", func(s PoolStats) int32 { return s.AcquiredConns }),
		gauge("idle_conns", "Idle connections.", func(s PoolStats) int32 { return s.IdleConns }),
	)
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
