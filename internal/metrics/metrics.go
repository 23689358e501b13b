// Package metrics exposes feed and HTTP counters on a private Prometheus
// registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	FeedLoads    *prometheus.CounterVec
	FeedDuration *prometheus.HistogramVec
	Refreshes    prometheus.Counter

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector registers all metrics under namespace on a fresh registry.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		FeedLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_loads_total",
			Help:      "Feed document loads by resource and outcome.",
		}, []string{"resource", "status"}),
		FeedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_load_duration_seconds",
			Help:      "Time to fetch and decode one feed document.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
		Refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Completed full feed refreshes.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	c.registry.MustRegister(c.FeedLoads, c.FeedDuration, c.Refreshes, c.HTTPRequests, c.HTTPDuration)
	return c
}

func (c *Collector) ObserveFeed(resource, status string, d time.Duration) {
	c.FeedLoads.WithLabelValues(resource, status).Inc()
	c.FeedDuration.WithLabelValues(resource).Observe(d.Seconds())
}

func (c *Collector) ObserveHTTP(method, route, status string, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }
