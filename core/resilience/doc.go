// Package resilience wraps calls to the carrier API in a circuit breaker so a
// failing upstream is shed quickly instead of stalling every read.
package resilience
