// Package metrics holds shared prometheus defaults for instrumented
// components.
package metrics

// DefaultBuckets provides a common set of histogram buckets in seconds,
// reused by repository instrumentation for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals
