package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"shipment-gateway/feature/shipment/models"
)

// MemoryStore keeps the mirror in process memory. It backs local runs with
// database.driver=memory and the gateway tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.Shipment
}

// NewMemoryStore creates a store seeded with items.
func NewMemoryStore(items ...models.Shipment) *MemoryStore {
	m := &MemoryStore{items: make(map[string]models.Shipment, len(items))}
	for _, it := range items {
		m.items[it.ShipmentID] = it
	}
	return m
}

func (m *MemoryStore) Migrate(ctx context.Context) error { return nil }

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

func (m *MemoryStore) LoadAll(ctx context.Context) ([]models.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Shipment, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *MemoryStore) BulkInsert(ctx context.Context, items []models.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.items[it.ShipmentID] = it
	}
	return nil
}

func (m *MemoryStore) Insert(ctx context.Context, item models.Shipment) error {
	return m.BulkInsert(ctx, []models.Shipment{item})
}

func (m *MemoryStore) Update(ctx context.Context, item models.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ShipmentID]; !ok {
		return ErrNotFound
	}
	m.items[item.ShipmentID] = item
	return nil
}

func (m *MemoryStore) Touch(ctx context.Context, keys []string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		if it, ok := m.items[k]; ok {
			it.SyncDate = at
			m.items[k] = it
		}
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *MemoryStore) List(ctx context.Context, req models.ListRequest) ([]models.Shipment, error) {
	req = req.Defaults()
	all := m.matching(req.IncludeCancelled)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedDate.Equal(all[j].CreatedDate) {
			return all[i].CreatedDate.After(all[j].CreatedDate)
		}
		return all[i].ShipmentID < all[j].ShipmentID
	})

	start := min(req.Offset(), len(all))
	end := min(start+req.PageSize, len(all))
	return all[start:end], nil
}

func (m *MemoryStore) Count(ctx context.Context, includeCancelled bool) (int64, error) {
	return int64(len(m.matching(includeCancelled))), nil
}

func (m *MemoryStore) matching(includeCancelled bool) []models.Shipment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Shipment, 0, len(m.items))
	for _, it := range m.items {
		if !includeCancelled && it.IsCanceled() {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (m *MemoryStore) LastSynced(ctx context.Context) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest time.Time
	for _, it := range m.items {
		if it.SyncDate.After(latest) {
			latest = it.SyncDate
		}
	}
	return latest, nil
}

func (m *MemoryStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	it.Status = status
	m.items[id] = it
	return nil
}

func (m *MemoryStore) Upsert(ctx context.Context, item models.Shipment) error {
	return m.BulkInsert(ctx, []models.Shipment{item})
}
