package obs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics for the locally exposed API.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Resilience metrics: how often the layer degrades to local data and how
// the credential pair is being repaired.
var (
	remoteFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_fallback_total",
			Help: "Operations answered from the local dataset instead of the upstream API.",
		},
		[]string{"operation", "reason"},
	)

	tokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_refresh_total",
			Help: "Access token refresh attempts by outcome.",
		},
		[]string{"outcome"},
	)

	localWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "local_writes_total",
			Help: "Records appended to the local dataset after a failed remote write.",
		},
		[]string{"entity"},
	)
)

// Init registers all metrics in the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		remoteFallbacks, tokenRefreshes, localWrites,
	)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// FallbackInc records one operation answered locally.
func FallbackInc(operation, reason string) {
	remoteFallbacks.WithLabelValues(operation, reason).Inc()
}

// RefreshInc records one token refresh attempt ("ok", "rejected", "error").
func RefreshInc(outcome string) {
	tokenRefreshes.WithLabelValues(outcome).Inc()
}

// LocalWriteInc records one locally appended record ("activity", "researcher").
func LocalWriteInc(entity string) {
	localWrites.WithLabelValues(entity).Inc()
}

// Instrument measures RPS, latency and in-flight count for the wrapped handler.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := CanonicalPath(r.URL.Path)
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// CanonicalPath collapses id-bearing segments so metric cardinality stays
// bounded.
func CanonicalPath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	if path == "" {
		return "/"
	}
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		prev := parts[i-1]
		if (prev == "activities" || prev == "sdg") && parts[i] != "" {
			switch parts[i] {
			case "activities", "summary", "detail":
			default:
				parts[i] = ":id"
			}
		}
	}
	return strings.Join(parts, "/")
}

// statusWriter captures the response code for labeling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
