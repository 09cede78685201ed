// Package events publishes shipment domain events to kafka.
//
// Events are JSON envelopes keyed by shipment id. When no broker is
// configured New returns a NopPublisher, so callers never branch on whether
// publishing is enabled.
package events
