package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OptimizeRequests counts optimize calls by chosen algorithm and outcome
	OptimizeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimize_requests_total", Help: "Optimize calls by algorithm and status."},
		[]string{"algorithm", "status"},
	)
	// OptimizeDuration records optimize wall time in seconds per algorithm
	OptimizeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "optimize_duration_seconds", Help: "Optimize call duration in seconds.", Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5}},
		[]string{"algorithm"},
	)
	// RouteDistance tracks total route distances in warehouse units
	RouteDistance = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_total_distance", Help: "Total optimized route distance.", Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500}},
	)

	// WebhookDeliveries counts webhook delivery outcomes by event type and status
	WebhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_deliveries_total", Help: "Webhook deliveries by event type and status."},
		[]string{"event_type", "status"},
	)
	// WebhookLatency tracks webhook delivery latencies in milliseconds
	WebhookLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "webhook_delivery_latency_ms", Help: "Webhook delivery latency in ms.", Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000}},
		[]string{"event_type", "status"},
	)
)

// RegisterDefault registers collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OptimizeRequests)
		Registry.MustRegister(OptimizeDuration)
		Registry.MustRegister(RouteDistance)
		Registry.MustRegister(WebhookDeliveries)
		Registry.MustRegister(WebhookLatency)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
