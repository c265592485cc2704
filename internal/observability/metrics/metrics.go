package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgp_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sgp_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgp_notifications_total",
		Help: "Count of mail dispatch operations by operation and result",
	}, []string{"operation", "result"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgp_logins_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	entityCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sgp_entities",
		Help: "Number of entities currently held per store",
	}, []string{"entity"})

	projectsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sgp_projects_status",
		Help: "Number of projects per status",
	}, []string{"status"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveNotification counts a verify or send attempt with its result.
func ObserveNotification(operation string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	notificationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveLogin counts a login attempt.
func ObserveLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	loginsTotal.WithLabelValues(result).Inc()
}

// SetEntityCount sets the gauge for a store's current size.
func SetEntityCount(entity string, count int) {
	if count < 0 {
		count = 0
	}
	entityCount.WithLabelValues(entity).Set(float64(count))
}

// SetProjectsByStatus sets the gauge for one project status bucket.
func SetProjectsByStatus(status string, count int) {
	if count < 0 {
		count = 0
	}
	projectsByStatus.WithLabelValues(status).Set(float64(count))
}
