package shipment

import (
	"context"
	"time"

	"shipment-gateway/core/reconcile"
	"shipment-gateway/feature/shipment/models"
)

// bookkeepingFields never contribute to a shipment fingerprint.
var bookkeepingFields = []string{"sync_date", "carrier_name", "service_code_name"}

// Adapter describes shipments to the reconcile engine.
type Adapter struct{}

func (Adapter) Name() string { return "shipment" }

func (Adapter) Key(s models.Shipment) string { return s.ShipmentID }

// Fingerprint hashes the normalized record without bookkeeping fields.
func (Adapter) Fingerprint(s models.Shipment) (string, error) {
	return reconcile.Fingerprint(models.Normalize(s), bookkeepingFields...)
}

// Stamp normalizes s and sets its sync date.
func (Adapter) Stamp(s models.Shipment, at time.Time) models.Shipment {
	s = models.Normalize(s)
	s.SyncDate = at.UTC().Truncate(time.Second)
	return s
}

// remoteSource exposes a Remote as a reconcile.Source.
type remoteSource struct {
	remote Remote
}

func (r remoteSource) FetchPage(ctx context.Context, page, size int) (reconcile.Page[models.Shipment], error) {
	return r.remote.ListShipments(ctx, page, size)
}
