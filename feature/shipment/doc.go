// Package shipment serves ShipEngine shipments from a local mirror.
//
// # Gateway
//
// Reads go to the mirror (see the store subpackage). Before a list is served
// the gateway probes freshness: the mirror is stale when the remote total
// differs from the local total or the last sync is older than the staleness
// window. A stale mirror triggers a reconciliation pass, either in the
// background (the read returns mirror data immediately) or blocking. Only one
// pass runs at a time.
//
// Single lookups fall through to ShipEngine on a miss and cache the result.
// Creates, updates and cancels are forwarded to ShipEngine first and mirrored
// only after the remote accepted them. A cancel touches the mirror only when
// ShipEngine answered 204.
//
// Every returned shipment carries carrier_name and service_code_name from an
// Enricher, "n/a" when unmapped.
//
// # Exporter
//
// Exporter writes JSON snapshots of the whole mirror to object storage and
// prunes all but the newest configured number.
package shipment
