package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "exercise_tracker"

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
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"method", "path"},
	)

	usersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "created_total",
			Help:      "Total number of registered users.",
		},
	)

	exercisesLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "exercises",
			Name:      "logged_total",
			Help:      "Total number of logged exercises.",
		},
	)

	exerciseMinutes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "exercises",
			Name:      "duration_minutes",
			Help:      "Duration of logged exercises in minutes.",
			Buckets:   []float64{5, 10, 15, 30, 45, 60, 90, 120, 180},
		},
	)

	logEntries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "exercises",
			Name:      "log_entries",
			Help:      "Number of entries returned per exercise log query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		usersCreated,
		exercisesLogged,
		exerciseMinutes,
		logEntries,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps next with HTTP metrics collection. When installed
// with (*mux.Router).Use the path label is the matched route template, so
// user ids never become label values.
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

		duration := time.Since(start)
		path := routePath(r)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordUserCreated counts a registered user.
func RecordUserCreated() {
	usersCreated.Inc()
}

// RecordExerciseLogged counts a logged exercise and its duration.
func RecordExerciseLogged(minutes int) {
	exercisesLogged.Inc()
	exerciseMinutes.Observe(float64(minutes))
}

// RecordLogQuery records how many entries a log query returned.
func RecordLogQuery(entries int) {
	logEntries.Observe(float64(entries))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return canonicalPath(r.URL.Path)
}

// canonicalPath collapses ids out of raw paths for requests that did not go
// through the router.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] != "api" {
		return "/" + parts[0]
	}
	if parts[1] != "users" || len(parts) == 2 {
		return "/api/" + parts[1]
	}
	if len(parts) == 3 {
		return "/api/users/{id}"
	}
	return "/api/users/{id}/" + parts[3]
}
