package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ImagesIngested считает попытки загрузки по результату: created, invalid, conflict, error
	ImagesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagehub_images_ingested_total",
			Help: "Image ingestion attempts by result",
		},
		[]string{"result"},
	)

	ImageBytesIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imagehub_image_bytes_ingested_total",
			Help: "Total size of successfully ingested images in bytes",
		},
	)

	SlugRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imagehub_slug_retries_total",
			Help: "Slug allocations retried after a unique violation",
		},
		[]string{"scope"},
	)
)
