package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roster_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roster_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Documents
	DocumentExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_document_extractions_total",
			Help: "Document text extractions by extension and result (ok, empty, missing, error, timeout)",
		},
		[]string{"extension", "result"},
	)

	DocumentParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roster_document_parse_duration_seconds",
			Help:    "Time spent parsing a document",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"extension"},
	)

	// Filesystem
	ScanErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_scan_errors_total",
			Help: "Unexpected directory read errors, by component",
		},
		[]string{"component"},
	)
)

// RecordHTTPRequest records one finished request against its route pattern.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordExtraction records the outcome and parse time of one document.
func RecordExtraction(ext, result string, d time.Duration) {
	DocumentExtractions.WithLabelValues(ext, result).Inc()
	if d > 0 {
		DocumentParseDuration.WithLabelValues(ext).Observe(d.Seconds())
	}
}

func RecordScanError(component string) {
	ScanErrors.WithLabelValues(component).Inc()
}
