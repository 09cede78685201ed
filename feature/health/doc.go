// Package health exposes liveness and readiness probes.
//
// /health/alive answers as long as the process serves HTTP. /health/ready
// inspects the mirror (ping, plus the live table against the Shipment gorm
// model for SQL drivers), the snapshot bucket, the ShipEngine circuit
// breaker and the last reconciliation pass. Mirror failures make the
// service unready (503); the other checks only mark it degraded.
package health
