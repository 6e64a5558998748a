package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	sessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_sessions_started_total",
			Help: "Total number of questionnaire sessions started",
		},
	)

	fieldEdits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_field_edits_total",
			Help: "Total number of record field edits",
		},
		[]string{"field"},
	)

	derivationPasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_derivation_passes_total",
			Help: "Total number of derivation passes that reshaped a record",
		},
	)

	sectionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_section_transitions_total",
			Help: "Total number of wizard section transitions",
		},
		[]string{"action", "to_section"},
	)

	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of submission attempts",
		},
		[]string{"outcome"},
	)

	snapshotErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_snapshot_errors_total",
			Help: "Total number of snapshot store failures",
		},
		[]string{"operation"},
	)

	// Database metrics
	dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes URL paths for metrics to avoid cardinality explosion
func normalizePath(path string) string {
	if len(path) > 100 {
		return "/api/..."
	}
	return path
}

// --- Business metric helpers ---

// RecordSessionStarted records a new questionnaire session
func RecordSessionStarted() {
	sessionsStarted.Inc()
}

// RecordFieldEdit records a record field edit. Only the top-level field name
// is used as a label; nested paths like dependents.1.name would blow up the
// label cardinality.
func RecordFieldEdit(path string) {
	root := path
	if i := strings.IndexByte(path, '.'); i > 0 {
		root = path[:i]
	}
	fieldEdits.WithLabelValues(root).Inc()
}

// RecordDerivation records a derivation pass that changed the record shape
func RecordDerivation() {
	derivationPasses.Inc()
}

// RecordSectionTransition records a wizard navigation step
func RecordSectionTransition(action, toSection string) {
	sectionTransitions.WithLabelValues(action, toSection).Inc()
}

// RecordSubmission records a submission attempt by outcome
func RecordSubmission(accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	submissions.WithLabelValues(outcome).Inc()
}

// RecordSnapshotError records a snapshot store failure
func RecordSnapshotError(operation string) {
	snapshotErrors.WithLabelValues(operation).Inc()
}

// RecordDBConnections records active database connections
func RecordDBConnections(count int) {
	dbConnectionsActive.Set(float64(count))
}
