package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anomalyd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "anomalyd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "anomalyd",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
		[]string{"path"},
	)

	fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anomalyd",
			Subsystem: "weights",
			Name:      "fetches_total",
			Help:      "Total fetch requests by outcome (download, cache_hit, error)",
		},
		[]string{"outcome"},
	)

	fetchBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "anomalyd",
			Subsystem: "weights",
			Name:      "fetch_bytes_total",
			Help:      "Total bytes downloaded from upstream",
		},
	)

	verificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anomalyd",
			Subsystem: "weights",
			Name:      "verifications_total",
			Help:      "Total checksum verifications by result (ok, fail)",
		},
		[]string{"result"},
	)

	evictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "anomalyd",
			Subsystem: "weights",
			Name:      "evictions_total",
			Help:      "Total cache evictions",
		},
	)

	cacheBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "anomalyd",
			Subsystem: "weights",
			Name:      "cache_bytes",
			Help:      "Total bytes currently in the weights cache",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal, httpRequestDuration, httpInflight,
		fetchesTotal, fetchBytesTotal, verificationsTotal, evictionsTotal, cacheBytes,
	)
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := routePatternOrPath(r)
		method := r.Method
		httpInflight.WithLabelValues(path).Inc()
		defer httpInflight.WithLabelValues(path).Dec()

		sr := &statusRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(sr, r)
		statusLabel := itoa(sr.status)
		dur := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(path, method, statusLabel).Inc()
		httpRequestDuration.WithLabelValues(path, method, statusLabel).Observe(dur)
	})
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// observeFetch records the outcome of one /fetch request.
func observeFetch(outcome string, downloaded int64) {
	if outcome == "" {
		outcome = "unspecified"
	}
	fetchesTotal.WithLabelValues(outcome).Inc()
	if downloaded > 0 {
		fetchBytesTotal.Add(float64(downloaded))
	}
}

func observeVerification(ok bool) {
	if ok {
		verificationsTotal.WithLabelValues("ok").Inc()
		return
	}
	verificationsTotal.WithLabelValues("fail").Inc()
}

// SetCacheBytes publishes the current cache size gauge.
func SetCacheBytes(n int64) { cacheBytes.Set(float64(n)) }

// fast integer to ascii for small set of status codes
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
