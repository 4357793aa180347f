package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OpenSearch operation metrics
var (
	OpenSearchOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opensearch_operations_total",
			Help: "Total number of OpenSearch operations",
		},
		[]string{"operation", "index", "status"},
	)

	OpenSearchOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opensearch_operation_duration_seconds",
			Help:    "Duration of OpenSearch operations in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "index"},
	)
)

// Request body assembly metrics
var (
	BodiesBuiltTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bodykit_bodies_built_total",
			Help: "Total number of request bodies built",
		},
		[]string{"dialect"},
	)

	BodySizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bodykit_body_size_bytes",
			Help:    "Serialized size of built request bodies",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		},
		[]string{"dialect"},
	)
)

// Service metrics
var (
	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "service_info",
			Help: "Information about the service",
		},
		[]string{"version", "service", "environment"},
	)

	ServiceUptime = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "service_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		[]string{"service"},
	)
)

// RecordOpenSearchOperation records one search/count round trip.
func RecordOpenSearchOperation(operation, index, status string, duration time.Duration) {
	OpenSearchOperationsTotal.WithLabelValues(operation, index, status).Inc()
	OpenSearchOperationDuration.WithLabelValues(operation, index).Observe(duration.Seconds())
}

// RecordBodyBuilt records one built request body.
func RecordBodyBuilt(dialect string, sizeBytes int) {
	BodiesBuiltTotal.WithLabelValues(dialect).Inc()
	BodySizeBytes.WithLabelValues(dialect).Observe(float64(sizeBytes))
}

// SetServiceInfo publishes static service information.
func SetServiceInfo(version, service, environment string) {
	ServiceInfo.WithLabelValues(version, service, environment).Set(1)
}

// UpdateServiceUptime refreshes the uptime gauge.
func UpdateServiceUptime(service string, startTime time.Time) {
	ServiceUptime.WithLabelValues(service).Set(time.Since(startTime).Seconds())
}

// StatusFromError maps an error to a status label.
func StatusFromError(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
