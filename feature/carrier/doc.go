// Package carrier maps carrier ids and service codes to display names.
//
// Service keeps a Catalog of the connected ShipEngine carriers for a
// configurable TTL. Concurrent fills share one remote call through
// singleflight, and Invalidate or Refresh force a reload. Mapper uses the
// catalog to set carrier_name and service_code_name on shipments, writing
// "n/a" when a value is unmapped or the catalog cannot be loaded.
//
// The catalog also answers whether a carrier id is connected, which the
// shipment gateway checks before forwarding a create or update.
package carrier
