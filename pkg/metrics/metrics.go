// Package metrics holds the shared instruments and histogram bucket layouts
// recorded by the build pipeline. Instruments are created on the global meter
// provider, which the API server binds to the Prometheus registry.
package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// PublishBuckets provides histogram buckets in seconds sized for full site
// publications, which include the Pages liveness poll and can run for minutes.
var PublishBuckets = []float64{1, 5, 10, 30, 60, 90, 120, 180, 300, 600} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var meter = otel.Meter("pagesmith")

// Instruments recorded by the background build worker. Creation errors are
// ignored; the otel SDK returns no-op instruments in that case.
//
//nolint: gochecknoglobals
var (
	// BuildsPublished counts builds that were published and reported to the evaluator.
	BuildsPublished, _ = meter.Int64Counter("pagesmith_builds_published_total",
		metric.WithDescription("Number of builds published and reported to the evaluator."))

	// BuildsFailed counts build attempts that ended with an error.
	BuildsFailed, _ = meter.Int64Counter("pagesmith_builds_failed_total",
		metric.WithDescription("Number of build attempts that ended with an error."))

	// PublishSeconds observes the wall-clock duration of a full publication,
	// from site generation up to the evaluator callback.
	PublishSeconds, _ = meter.Float64Histogram("pagesmith_publish_duration_seconds",
		metric.WithDescription("Duration of a full site publication."),
		metric.WithExplicitBucketBoundaries(PublishBuckets...))

	// NotifySeconds observes the duration of evaluator callbacks, including retries.
	NotifySeconds, _ = meter.Float64Histogram("pagesmith_notify_duration_seconds",
		metric.WithDescription("Duration of evaluator notifications."),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
)
