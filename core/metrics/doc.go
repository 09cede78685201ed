// Package metrics exposes Prometheus collectors for reconciliation, stale
// reads, the carrier circuit breaker and HTTP traffic.
package metrics
