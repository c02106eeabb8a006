// Package metrics exposes Prometheus collectors for the storefront.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "freshshop"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	cartOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Cart mutations by operation.",
		},
		[]string{"operation"},
	)

	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Registration and login attempts by outcome.",
		},
		[]string{"action", "result"},
	)

	contactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome.",
		},
		[]string{"result"},
	)
)

// knownPaths bounds the path label to the routes the server registers.
var knownPaths = map[string]bool{
	"/": true, "/contact-us": true, "/contact": true, "/register": true,
	"/login": true, "/logout": true, "/my-account": true, "/shop": true,
	"/shop-detail": true, "/wishlist": true, "/about": true, "/checkout": true,
	"/gallery": true, "/cart": true, "/my-cart": true, "/add-to-cart": true,
	"/remove-from-cart": true, "/clear-cart": true, "/cart/badge": true,
	"/healthz": true,
}

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		cartOperations,
		authAttempts,
		contactSubmissions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordCartOperation counts a cart mutation ("add", "remove", "clear").
func RecordCartOperation(operation string) {
	cartOperations.WithLabelValues(operation).Inc()
}

// RecordAuthAttempt counts a login or registration outcome.
func RecordAuthAttempt(action, result string) {
	authAttempts.WithLabelValues(action, result).Inc()
}

// RecordContactSubmission counts a contact form outcome.
func RecordContactSubmission(success bool) {
	result := "error"
	if success {
		result = "ok"
	}
	contactSubmissions.WithLabelValues(result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush lets SSE handlers stream through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func canonicalPath(raw string) string {
	if strings.HasPrefix(raw, "/static/") {
		return "/static"
	}
	if knownPaths[raw] {
		return raw
	}
	return "other"
}
