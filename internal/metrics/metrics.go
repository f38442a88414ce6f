// Package metrics exposes Prometheus collectors for the detection server
// and the operational HTTP surface that serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts detect exchanges by outcome: "ok", "bad_request"
	// or "decode_failed".
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "houghd",
		Name:      "requests_total",
		Help:      "Detect requests processed, by outcome.",
	}, []string{"status"})

	// ROIsProcessed counts individual regions of interest run through the
	// detection pipeline.
	ROIsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "houghd",
		Name:      "rois_processed_total",
		Help:      "Regions of interest processed.",
	})

	// DetectDuration observes the parallel detection phase of each request.
	DetectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "houghd",
		Name:      "detect_duration_seconds",
		Help:      "Wall time of the detection phase per request.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	})

	// ActiveConnections tracks currently served client connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "houghd",
		Name:      "active_connections",
		Help:      "Open client connections.",
	})
)
