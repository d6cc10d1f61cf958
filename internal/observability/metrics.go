package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the locator.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	listingsLoaded  prometheus.Gauge
	listingsSkipped prometheus.Gauge
	reloadsTotal    *prometheus.CounterVec
}

// NewMetrics initialises the registry and base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "locator_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "locator_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	loaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "locator_listings_loaded",
		Help: "Listings in the current snapshot.",
	})
	skipped := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "locator_listings_skipped",
		Help: "Records rejected by validation in the current snapshot.",
	})
	reloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "locator_listings_reloads_total",
		Help: "Listings file loads by result.",
	}, []string{"result"})
	registry.MustRegister(requests, duration, loaded, skipped, reloads)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		listingsLoaded:  loaded,
		listingsSkipped: skipped,
		reloadsTotal:    reloads,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ListingsLoaded sets the snapshot gauges.
func (m *Metrics) ListingsLoaded(loaded, skipped int) {
	if m == nil {
		return
	}
	m.listingsLoaded.Set(float64(loaded))
	m.listingsSkipped.Set(float64(skipped))
}

// ListingsReloaded counts a load attempt.
func (m *Metrics) ListingsReloaded(result string) {
	if m == nil {
		return
	}
	m.reloadsTotal.WithLabelValues(result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
