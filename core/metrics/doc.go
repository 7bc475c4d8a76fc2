// Package metrics exposes Prometheus collectors for symmetric difference
// computations: counts by outcome, computation latency, and input/result sizes.
//
// Collectors live on a dedicated registry served by Handler, which the start
// command mounts at /metrics. All observation methods are safe on a nil
// *Metrics so that services can run without instrumentation.
package metrics
