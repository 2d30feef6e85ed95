// Package metrics exposes feed and HTTP metrics in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnshRaj112/moments-backend/internal/models"
)

const namespace = "moments"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	evictedMoments prometheus.Counter
	evictedReplies prometheus.Counter
}

// New registers the HTTP, eviction and runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		evictedMoments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evicted_moments_total",
			Help:      "Moments dropped by the retention bound.",
		}),
		evictedReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evicted_replies_total",
			Help:      "Replies dropped by the retention bound or by evicting their moment.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.evictedMoments,
		m.evictedReplies,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegisterFeed adds gauges read from stats at scrape time.
func (m *Metrics) RegisterFeed(stats func() models.FeedStats) {
	m.registry.MustRegister(newFeedCollector(stats))
}

// MomentsEvicted implements store.Observer.
func (m *Metrics) MomentsEvicted(n int) {
	m.evictedMoments.Add(float64(n))
}

// RepliesEvicted implements store.Observer.
func (m *Metrics) RepliesEvicted(n int) {
	m.evictedReplies.Add(float64(n))
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type feedCollector struct {
	stats   func() models.FeedStats
	moments *prometheus.Desc
	replies *prometheus.Desc
	authors *prometheus.Desc
}

func newFeedCollector(stats func() models.FeedStats) *feedCollector {
	return &feedCollector{
		stats:   stats,
		moments: prometheus.NewDesc(namespace+"_stored_moments", "Moments currently stored.", nil, nil),
		replies: prometheus.NewDesc(namespace+"_stored_replies", "Replies currently stored.", nil, nil),
		authors: prometheus.NewDesc(namespace+"_distinct_authors", "Distinct anonymous IDs with live content.", nil, nil),
	}
}

func (c *feedCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.moments
	ch <- c.replies
	ch <- c.authors
}

// Collect takes one snapshot so the three gauges agree with each other.
func (c *feedCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.moments, prometheus.GaugeValue, float64(s.Moments))
	ch <- prometheus.MustNewConstMetric(c.replies, prometheus.GaugeValue, float64(s.Replies))
	ch <- prometheus.MustNewConstMetric(c.authors, prometheus.GaugeValue, float64(s.Authors))
}
