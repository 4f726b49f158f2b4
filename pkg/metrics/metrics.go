package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is served on /api/metrics. A dedicated registry keeps test
	// binaries free of duplicate-registration panics.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Buckets tuned for backend round trips: a few ms locally, seconds when
	// the deployed backend is cold.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// HTTP Metrics (web tier)
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Backend client metrics
	BackendRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_client_operation_duration_seconds",
			Help:    "Backend API call duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	BackendRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_client_operation_total",
			Help: "Total number of backend API calls",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	SessionLogins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerconnect_session_logins_total",
			Help: "Total login attempts",
		},
		[]string{"status"},
	)

	GuardRedirects = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerconnect_guard_redirects_total",
			Help: "Protected views redirected by the authorization guard",
		},
		[]string{"reason"},
	)

	ConnectionRequestsSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerconnect_connection_requests_sent_total",
			Help: "Connection requests sent, including locally suppressed duplicates",
		},
		[]string{"status"},
	)

	ConnectionDecisions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerconnect_connection_decisions_total",
			Help: "Accept/reject decisions on connection requests",
		},
		[]string{"action", "status"},
	)

	MessagesSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerconnect_messages_sent_total",
			Help: "Chat messages posted",
		},
		[]string{"status"},
	)

	MessagePollTicks = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerconnect_message_poll_ticks_total",
			Help: "Conversation refreshes performed by the messaging poller",
		},
		[]string{"status"},
	)

	ActivePollers = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "careerconnect_message_active_pollers",
			Help: "Conversation views currently polling",
		},
	)

	EntityMutations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerconnect_entity_mutations_total",
			Help: "Create/delete calls on skills, stories, resources and jobs",
		},
		[]string{"entity", "operation", "status"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// StatusLabel maps an error to the "status" label used across metrics
func StatusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
