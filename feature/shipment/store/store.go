package store

import (
	"context"
	"errors"
	"time"

	"shipment-gateway/core/reconcile"
	"shipment-gateway/feature/shipment/models"
)

// ErrNotFound is returned when the mirror has no record for an id.
var ErrNotFound = errors.New("shipment not in mirror")

// Store is the local shipment mirror. Besides the writes used by
// reconciliation it serves the gateway's reads.
type Store interface {
	reconcile.Store[models.Shipment]

	// Migrate prepares tables or indexes.
	Migrate(ctx context.Context) error
	// Get returns ErrNotFound when id is absent.
	Get(ctx context.Context, id string) (*models.Shipment, error)
	// List returns one page ordered by created date, newest first.
	List(ctx context.Context, req models.ListRequest) ([]models.Shipment, error)
	// Count counts records, excluding cancelled ones unless asked.
	Count(ctx context.Context, includeCancelled bool) (int64, error)
	// LastSynced returns the most recent sync date, or the zero time when empty.
	LastSynced(ctx context.Context) (time.Time, error)
	// UpdateStatus returns ErrNotFound when id is absent.
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	// Upsert inserts or replaces a record.
	Upsert(ctx context.Context, s models.Shipment) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
}
