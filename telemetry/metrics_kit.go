// Package telemetry holds the otel metric helpers shared by the codec components
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsBuilder prefixes instrument names with a namespace
type MetricsBuilder struct {
	meter     metric.Meter
	namespace string
}

// NewMetricsBuilder creates a builder; an empty namespace leaves names untouched
func NewMetricsBuilder(meter metric.Meter, namespace string) *MetricsBuilder {
	return &MetricsBuilder{
		meter:     meter,
		namespace: namespace,
	}
}

func (b *MetricsBuilder) fullName(name string) string {
	if b.namespace == "" {
		return name
	}
	return b.namespace + "_" + name
}

// Counter creates an Int64Counter
func (b *MetricsBuilder) Counter(name, desc string) (metric.Int64Counter, error) {
	return b.meter.Int64Counter(
		b.fullName(name),
		metric.WithDescription(desc),
		metric.WithUnit("{count}"),
	)
}

// DurationHistogram creates a Float64Histogram in seconds
func (b *MetricsBuilder) DurationHistogram(name, desc string) (metric.Float64Histogram, error) {
	return b.meter.Float64Histogram(
		b.fullName(name),
		metric.WithDescription(desc),
		metric.WithUnit("s"),
	)
}

// LazyCacheMetrics template for caches that derive entries on first access
type LazyCacheMetrics struct {
	Hits          metric.Int64Counter     // served from cache
	Builds        metric.Int64Counter     // entries derived
	Errors        metric.Int64Counter     // failed derivations
	BuildDuration metric.Float64Histogram // time spent deriving
}

// NewLazyCacheMetrics creates <prefix>_hits_total, <prefix>_builds_total, <prefix>_errors_total
// and <prefix>_build_duration_seconds
func (b *MetricsBuilder) NewLazyCacheMetrics(prefix string) (*LazyCacheMetrics, error) {
	hits, err := b.Counter(prefix+"_hits_total", "Total number of "+prefix+" lookups served from cache")
	if err != nil {
		return nil, err
	}

	builds, err := b.Counter(prefix+"_builds_total", "Total number of "+prefix+" entries built")
	if err != nil {
		return nil, err
	}

	errs, err := b.Counter(prefix+"_errors_total", "Total number of failed "+prefix+" builds")
	if err != nil {
		return nil, err
	}

	duration, err := b.DurationHistogram(prefix+"_build_duration_seconds", prefix+" build duration")
	if err != nil {
		return nil, err
	}

	return &LazyCacheMetrics{
		Hits:          hits,
		Builds:        builds,
		Errors:        errs,
		BuildDuration: duration,
	}, nil
}

// RecordHit records a cache hit
func (m *LazyCacheMetrics) RecordHit(ctx context.Context, attrs ...attribute.KeyValue) {
	m.Hits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBuild records one derivation and its outcome
func (m *LazyCacheMetrics) RecordBuild(ctx context.Context, durationSec float64, err error, attrs ...attribute.KeyValue) {
	opt := metric.WithAttributes(attrs...)
	m.BuildDuration.Record(ctx, durationSec, opt)
	if err != nil {
		m.Errors.Add(ctx, 1, opt)
		return
	}
	m.Builds.Add(ctx, 1, opt)
}
