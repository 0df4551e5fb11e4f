package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spendlens",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spendlens",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "spendlens",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Provider backend calls
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spendlens",
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Total number of provider backend calls",
		},
		[]string{"provider", "operation", "source", "status"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spendlens",
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Duration of provider backend calls in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "operation", "source"},
	)

	providerFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spendlens",
			Subsystem: "provider",
			Name:      "fallbacks_total",
			Help:      "Number of times a provider fell back to its secondary backend",
		},
		[]string{"provider", "operation"},
	)

	registeredProviders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "spendlens",
			Subsystem: "provider",
			Name:      "registered_count",
			Help:      "Number of providers in the last aggregated registry",
		},
	)

	// Correlation
	correlationTierTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spendlens",
			Subsystem: "correlation",
			Name:      "resources_total",
			Help:      "Resources costed, by winning correlation tier",
		},
		[]string{"provider", "tier"},
	)

	// Recommendations
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spendlens",
			Subsystem: "recommendation",
			Name:      "generated_total",
			Help:      "Total number of recommendations generated",
		},
		[]string{"provider", "category"},
	)

	potentialSavings = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "spendlens",
			Subsystem: "recommendation",
			Name:      "potential_savings",
			Help:      "Monthly potential savings from the last generation run",
		},
		[]string{"provider"},
	)

	// Sync
	syncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spendlens",
			Subsystem: "sync",
			Name:      "duration_seconds",
			Help:      "Duration of a full sync in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	persistFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spendlens",
			Subsystem: "sync",
			Name:      "persist_failures_total",
			Help:      "Write-through failures by provider and record kind",
		},
		[]string{"provider", "kind"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spendlens",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordProviderCall records one backend call. source is "primary" or "fallback".
func RecordProviderCall(provider, operation, source string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	providerCallsTotal.WithLabelValues(provider, operation, source, status).Inc()
	providerCallDuration.WithLabelValues(provider, operation, source).Observe(duration.Seconds())
}

// RecordProviderFallback records a switch to the secondary backend.
func RecordProviderFallback(provider, operation string) {
	providerFallbacksTotal.WithLabelValues(provider, operation).Inc()
}

// SetRegisteredProviders sets the registered provider gauge.
func SetRegisteredProviders(count int) {
	registeredProviders.Set(float64(count))
}

// RecordCorrelationTier records which tier priced a resource.
func RecordCorrelationTier(provider, tier string) {
	correlationTierTotal.WithLabelValues(provider, tier).Inc()
}

// RecordRecommendation records a generated recommendation.
func RecordRecommendation(provider, category string) {
	recommendationsTotal.WithLabelValues(provider, category).Inc()
}

// SetPotentialSavings sets the savings gauge for a provider.
func SetPotentialSavings(provider string, amount float64) {
	potentialSavings.WithLabelValues(provider).Set(amount)
}

// RecordSync records the duration of a full sync.
func RecordSync(duration time.Duration) {
	syncDuration.Observe(duration.Seconds())
}

// RecordPersistFailure records a failed write-through.
func RecordPersistFailure(provider, kind string) {
	persistFailuresTotal.WithLabelValues(provider, kind).Inc()
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
