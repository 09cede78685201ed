// Package shipengine is a thin client for the ShipEngine REST API.
//
// It covers the calls the gateway needs: paged shipment listing, shipment
// detail, create, update, cancel and carrier listing. Every call is wrapped in
// a circuit breaker; 404 and other client errors do not count as failures.
//
// Wire types decode loosely: package weights and dimensions arrive as bare
// scalars or as {value}/{amount} objects, and timestamps as RFC 3339 or plain
// dates. Normalizing them into domain records is left to the caller.
package shipengine
