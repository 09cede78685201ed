package shipment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"shipment-gateway/core/events"
	"shipment-gateway/core/reconcile"
	"shipment-gateway/core/shipengine"
	"shipment-gateway/core/utils"
	"shipment-gateway/feature/shipment/models"
)

// fakeRemote is an in-memory ShipEngine.
type fakeRemote struct {
	mu        sync.Mutex
	shipments []models.Shipment
	delay     time.Duration

	listErr   error
	createErr error
	cancelOK  bool
	cancelErr error

	probes      atomic.Int32
	pageFetches atomic.Int32
	creates     atomic.Int32
	cancels     atomic.Int32
}

func newFakeRemote(items ...models.Shipment) *fakeRemote {
	return &fakeRemote{shipments: items, cancelOK: true}
}

func (f *fakeRemote) ListShipments(ctx context.Context, page, size int) (reconcile.Page[models.Shipment], error) {
	if size == 1 {
		f.probes.Add(1)
	} else {
		f.pageFetches.Add(1)
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return reconcile.Page[models.Shipment]{}, f.listErr
	}

	total := len(f.shipments)
	start := (page - 1) * size
	end := min(start+size, total)
	var items []models.Shipment
	if start < total {
		items = append(items, f.shipments[start:end]...)
	}
	return reconcile.Page[models.Shipment]{
		Items:  items,
		Number: page,
		Pages:  utils.TotalPages(total, size),
		Total:  total,
	}, nil
}

func (f *fakeRemote) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	for _, s := range f.shipments {
		if s.ShipmentID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("get shipment %s: %w", id, shipengine.ErrNotFound)
}

func (f *fakeRemote) CreateShipment(ctx context.Context, req models.CreateShipmentRequest) ([]models.Shipment, error) {
	f.creates.Add(1)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s := shipment(fmt.Sprintf("se-new-%d", len(f.shipments)+1), models.StatusPending, time.Now())
	s.CarrierID = &req.CarrierID
	s.ServiceCode = &req.ServiceCode
	f.shipments = append(f.shipments, s)
	return []models.Shipment{s}, nil
}

func (f *fakeRemote) UpdateShipment(ctx context.Context, id string, req models.UpdateShipmentRequest) (*models.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.shipments {
		if f.shipments[i].ShipmentID == id {
			f.shipments[i].ServiceCode = &req.ServiceCode
			s := f.shipments[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("update shipment %s: %w", id, shipengine.ErrNotFound)
}

func (f *fakeRemote) CancelShipment(ctx context.Context, id string) (bool, error) {
	f.cancels.Add(1)
	if f.cancelErr != nil {
		return false, f.cancelErr
	}
	return f.cancelOK, nil
}

type fakeCarriers map[string]bool

func (f fakeCarriers) HasCarrier(ctx context.Context, id string) (bool, error) {
	return f[id], nil
}

// naEnricher marks everything unmapped except carrier se-1.
type naEnricher struct{}

func (naEnricher) Enrich(ctx context.Context, items []models.Shipment) {
	for i := range items {
		items[i].CarrierName = models.NotAvailable
		items[i].ServiceCodeName = models.NotAvailable
		if items[i].CarrierID != nil && *items[i].CarrierID == "se-1" {
			items[i].CarrierName = "UPS"
		}
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func shipment(id string, status models.Status, created time.Time) models.Shipment {
	carrier := "se-1"
	service := "ups_ground"
	return models.Shipment{
		ShipmentID:  id,
		CarrierID:   &carrier,
		ServiceCode: &service,
		Status:      status,
		CreatedDate: created.UTC().Truncate(time.Second),
		ShipTo:      models.Address{Name: "Jane", City: "Austin", CountryCode: "US"},
		ShipFrom:    models.Address{Name: "Warehouse", City: "Dallas", CountryCode: "US"},
		Packages:    []models.Package{{Weight: 2, WeightUnit: "pound"}},
	}
}

func wrapNotFound(id string) error {
	return fmt.Errorf("cancel shipment %s: %w", id, shipengine.ErrNotFound)
}
