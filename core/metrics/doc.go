// Package metrics exposes import counters and latencies to Prometheus.
//
// Recorder implements reconcile.Observer and keeps its collectors on a private
// registry, served through the Fiber adaptor at Config.Path.
package metrics
