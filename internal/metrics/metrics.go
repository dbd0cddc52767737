// Package metrics exposes Prometheus instrumentation for the solver and HTTP server.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Solve outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeDegenerate    = "degenerate"
	OutcomeNoConvergence = "no_convergence"
	OutcomeError         = "error"
)

var (
	solutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parallax_solutions_total",
			Help: "Total number of two-station solutions by outcome.",
		},
		[]string{"outcome"},
	)

	geodesicIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parallax_geodesic_iterations",
			Help:    "Vincenty inverse iterations per solution.",
			Buckets: []float64{1, 2, 3, 4, 5, 8, 13, 21, 50, 100},
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parallax_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parallax_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(solutionsTotal)
	prometheus.MustRegister(geodesicIterations)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveSolution records one solver run.
func ObserveSolution(outcome string, iterations int) {
	solutionsTotal.WithLabelValues(outcome).Inc()
	geodesicIterations.Observe(float64(iterations))
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		path := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, r.Method).Observe(duration)
	})
}

var knownRoutes = map[string]bool{
	"/":                         true,
	"/healthz":                  true,
	"/metrics":                  true,
	"/api/observations":         true,
	"/api/observations.geojson": true,
	"/api/solve":                true,
	"/api/geodesic":             true,
}

// normalizeRoute collapses parameterized and unknown paths so label
// cardinality stays bounded.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	if strings.HasPrefix(path, "/api/diagram/") {
		return "/api/diagram/{name}"
	}
	return "other"
}
