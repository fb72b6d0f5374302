package component

import "go.opentelemetry.io/otel/metric"

// MetricsProvider is implemented by components that expose metrics.
//
// Example implementation:
//
//	func (c *Cache) MetricsName() string {
//	    return "metadata"
//	}
//
//	func (c *Cache) RegisterMetrics(meter metric.Meter) error {
//	    hits, err := meter.Int64Counter("metadata_hits_total")
//	    if err != nil {
//	        return err
//	    }
//	    c.hits = hits
//	    return nil
//	}
type MetricsProvider interface {
	// MetricsName short lowercase group name
	MetricsName() string

	// RegisterMetrics creates the instruments; calling it again is a no-op
	RegisterMetrics(meter metric.Meter) error

	// IsMetricsEnabled reports whether recording is switched on
	IsMetricsEnabled() bool
}
