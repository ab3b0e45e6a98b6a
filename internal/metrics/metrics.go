package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scguardian/guardian/internal/classifier"
)

const namespace = "scguardian"

// HTTPCollector exposes Prometheus metrics for inbound HTTP requests.
type HTTPCollector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

// NewHTTPCollector constructs a collector with default histograms/counters.
func NewHTTPCollector() (*HTTPCollector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	if err := registry.Register(requestDuration); err != nil {
		return nil, err
	}

	if err := registry.Register(requestTotal); err != nil {
		return nil, err
	}

	collector := &HTTPCollector{
		registry:        registry,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}

	return collector, nil
}

// Registry returns the registry backing Handler so other collectors can share it.
func (c *HTTPCollector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *HTTPCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
// Requests routed by a ServeMux are labeled with the matched pattern so
// path parameters do not explode label cardinality.
func (c *HTTPCollector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path
		if r.Pattern != "" {
			path = r.Pattern
		}

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ClassifierCollector records which path produced each classification and
// how long backend calls take. It implements classifier.Observer.
type ClassifierCollector struct {
	results         *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
}

// NewClassifierCollector registers classifier metrics on registerer.
func NewClassifierCollector(registerer prometheus.Registerer) (*ClassifierCollector, error) {
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "classifier",
		Name:      "results_total",
		Help:      "Classifications by producing path and fallback reason.",
	}, []string{"path", "reason"})

	backendDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "classifier",
		Name:      "backend_duration_seconds",
		Help:      "Latency distribution for model backend calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"provider", "status"})

	if err := registerer.Register(results); err != nil {
		return nil, err
	}
	if err := registerer.Register(backendDuration); err != nil {
		return nil, err
	}

	return &ClassifierCollector{results: results, backendDuration: backendDuration}, nil
}

// ObserveBackendCall implements classifier.Observer.
func (c *ClassifierCollector) ObserveBackendCall(_ context.Context, call classifier.BackendCall) {
	status := "success"
	if call.Err != nil {
		status = "error"
	}
	c.backendDuration.WithLabelValues(call.Provider, status).Observe(call.Latency.Seconds())
}

// ObserveResult implements classifier.Observer.
func (c *ClassifierCollector) ObserveResult(path classifier.Path, reason classifier.Reason) {
	c.results.WithLabelValues(string(path), string(reason)).Inc()
}
