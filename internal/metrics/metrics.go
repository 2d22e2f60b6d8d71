package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "nexus"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBConnectionsOpen        prometheus.Gauge
	DBConnectionsInUse       prometheus.Gauge
	DBConnectionsIdle        prometheus.Gauge
	DBConnectionsMax         prometheus.Gauge
	DBConnectionWaitTotal    prometheus.Gauge
	DBConnectionWaitDuration prometheus.Gauge
	DBQueryDuration          *prometheus.HistogramVec
	DBQueryErrors            *prometheus.CounterVec

	// External API metrics
	ExternalAPIRequestDuration *prometheus.HistogramVec
	ExternalAPIRequestsTotal   *prometheus.CounterVec
	ExternalAPIErrors          *prometheus.CounterVec

	// Business gauges, refreshed by BusinessMetricsCollector
	WorkspacesTotal prometheus.Gauge
	ProjectsTotal   prometheus.Gauge
	TasksTotal      prometheus.Gauge
	OpenTimeLogs    prometheus.Gauge

	// Business counters
	WorkspaceCreatedTotal     prometheus.Counter
	ProjectCreatedTotal       prometheus.Counter
	TaskCreatedTotal          prometheus.Counter
	TaskTransitionsTotal      *prometheus.CounterVec
	TaskTransitionsRejected   *prometheus.CounterVec
	NotificationsCreatedTotal prometheus.Counter
	CommentCreatedTotal       prometheus.Counter
	InvitationsSentTotal      prometheus.Counter
	InvitationsAcceptedTotal  prometheus.Counter
	TimeLogTogglesTotal       *prometheus.CounterVec

	// Logger for error reporting
	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	factory := promauto.With(registerer)

	if logger == nil {
		logger = zap.NewNop()
	}

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	return &Metrics{
		HTTPRequestsTotal: counterVec("http_requests_total",
			"Total number of HTTP requests", "method", "endpoint", "status"),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),

		DBConnectionsOpen:        gauge("db_connections_open", "Current number of open database connections"),
		DBConnectionsInUse:       gauge("db_connections_in_use", "Current number of in-use database connections"),
		DBConnectionsIdle:        gauge("db_connections_idle", "Current number of idle database connections"),
		DBConnectionsMax:         gauge("db_connections_max", "Maximum number of open database connections configured"),
		DBConnectionWaitTotal:    gauge("db_connection_wait_count", "Total number of times waited for a database connection"),
		DBConnectionWaitDuration: gauge("db_connection_wait_duration_seconds", "Total time waited for database connections in seconds"),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation", "table"},
		),
		DBQueryErrors: counterVec("db_query_errors_total",
			"Total number of database query errors", "operation", "table"),

		ExternalAPIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "external_api_request_duration_seconds",
				Help:      "External API request duration in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "status"},
		),
		ExternalAPIRequestsTotal: counterVec("external_api_requests_total",
			"Total number of external API requests", "endpoint", "method", "status"),
		ExternalAPIErrors: counterVec("external_api_errors_total",
			"Total number of external API errors", "endpoint", "error_type"),

		WorkspacesTotal: gauge("workspaces_total", "Current number of workspaces"),
		ProjectsTotal:   gauge("projects_total", "Current number of projects"),
		TasksTotal:      gauge("tasks_total", "Current number of tasks"),
		OpenTimeLogs:    gauge("open_time_logs", "Current number of running time logs"),

		WorkspaceCreatedTotal: counter("workspace_created_total", "Total number of workspace creation events"),
		ProjectCreatedTotal:   counter("project_created_total", "Total number of project creation events"),
		TaskCreatedTotal:      counter("task_created_total", "Total number of task creation events"),
		TaskTransitionsTotal: counterVec("task_status_transitions_total",
			"Total number of accepted task status changes", "from", "to"),
		TaskTransitionsRejected: counterVec("task_status_transitions_rejected_total",
			"Total number of rejected task status changes", "reason"),
		NotificationsCreatedTotal: counter("notifications_created_total", "Total number of notifications created by fan-out"),
		CommentCreatedTotal:       counter("comment_created_total", "Total number of comments created"),
		InvitationsSentTotal:      counter("invitations_sent_total", "Total number of invitations sent"),
		InvitationsAcceptedTotal:  counter("invitations_accepted_total", "Total number of invitations accepted"),
		TimeLogTogglesTotal: counterVec("time_log_toggles_total",
			"Total number of time log toggles", "action"),

		logger: logger,
	}
}

// safeExecute wraps metric operations with panic recovery
func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("Panic in metrics operation",
					zap.String("operation", operation),
					zap.Any("panic", r),
				)
			}
		}
	}()
	fn()
}
