package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repair_http_requests_total",
			Help: "Total HTTP requests processed, by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repair_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repair_telegram_notifications_total",
			Help: "Telegram notifications attempted, by event type and outcome",
		},
		[]string{"event", "outcome"},
	)

	ImagesUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "repair_images_uploaded_total",
			Help: "Image files stored through the upload endpoint",
		},
	)
)
