package shipment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shipment-gateway/core/reconcile"
	"shipment-gateway/core/shipengine"
	"shipment-gateway/feature/shipment/models"
)

// Remote is the carrier API as seen by the gateway. Lookups of unknown ids
// return an error wrapping shipengine.ErrNotFound.
type Remote interface {
	ListShipments(ctx context.Context, page, size int) (reconcile.Page[models.Shipment], error)
	GetShipment(ctx context.Context, id string) (*models.Shipment, error)
	CreateShipment(ctx context.Context, req models.CreateShipmentRequest) ([]models.Shipment, error)
	UpdateShipment(ctx context.Context, id string, req models.UpdateShipmentRequest) (*models.Shipment, error)
	// CancelShipment reports true only when the API confirmed the cancellation.
	CancelShipment(ctx context.Context, id string) (bool, error)
}

// ShipEngineRemote adapts the ShipEngine client, normalizing every record at
// the boundary.
type ShipEngineRemote struct {
	client *shipengine.Client
}

// NewShipEngineRemote wraps client.
func NewShipEngineRemote(client *shipengine.Client) *ShipEngineRemote {
	return &ShipEngineRemote{client: client}
}

func (r *ShipEngineRemote) ListShipments(ctx context.Context, page, size int) (reconcile.Page[models.Shipment], error) {
	resp, err := r.client.ListShipments(ctx, page, size)
	if err != nil {
		return reconcile.Page[models.Shipment]{}, err
	}
	items := make([]models.Shipment, 0, len(resp.Shipments))
	for _, w := range resp.Shipments {
		items = append(items, models.FromRemote(w))
	}
	return reconcile.Page[models.Shipment]{
		Items:  items,
		Number: page,
		Pages:  resp.Pages,
		Total:  resp.Total,
	}, nil
}

func (r *ShipEngineRemote) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	w, err := r.client.GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	s := models.FromRemote(*w)
	return &s, nil
}

func (r *ShipEngineRemote) CreateShipment(ctx context.Context, req models.CreateShipmentRequest) ([]models.Shipment, error) {
	resp, err := r.client.CreateShipments(ctx, []shipengine.Shipment{req.ToRemote()})
	if err != nil {
		return nil, err
	}
	if resp.HasErrors {
		return nil, createErrors(resp.Shipments)
	}
	out := make([]models.Shipment, 0, len(resp.Shipments))
	for _, w := range resp.Shipments {
		out = append(out, models.FromRemote(w.Shipment))
	}
	return out, nil
}

func (r *ShipEngineRemote) UpdateShipment(ctx context.Context, id string, req models.UpdateShipmentRequest) (*models.Shipment, error) {
	w := req.ToRemote()
	w.ShipmentID = id
	updated, err := r.client.UpdateShipment(ctx, id, w)
	if err != nil {
		return nil, err
	}
	s := models.FromRemote(*updated)
	return &s, nil
}

func (r *ShipEngineRemote) CancelShipment(ctx context.Context, id string) (bool, error) {
	return r.client.CancelShipment(ctx, id)
}

func createErrors(shipments []shipengine.CreatedShipment) error {
	var msgs []string
	for _, s := range shipments {
		for _, e := range s.Errors {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) == 0 {
		return errors.New("create reported errors")
	}
	return fmt.Errorf("create reported errors: %s", strings.Join(msgs, "; "))
}
