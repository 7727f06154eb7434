package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route pattern, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, route pattern, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	AccountsRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_registered_total",
			Help: "Total number of accounts created",
		},
	)

	NotesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notes_created_total",
			Help: "Total number of notes created",
		},
	)

	NotesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notes_deleted_total",
			Help: "Total number of notes deleted",
		},
	)
)

// UnmatchedRoute is the path label for requests no route pattern matched.
const UnmatchedRoute = "unmatched"

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AccountsRegistered, NotesCreated, NotesDeleted)
}

// RecordRequest records duration and count for an HTTP request.
// route is the matched route pattern, not the raw URL path.
func RecordRequest(method, route string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, route, status).Inc()
}
