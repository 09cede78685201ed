// Package models holds the shipment record kept in the mirror, the request
// shapes accepted by the API and the conversion from ShipEngine wire types.
//
// FromRemote is the ingestion boundary: package weights and dimensions are
// resolved from whichever shape the API sent, timestamps are converted to UTC
// and the result is passed through Normalize.
package models
