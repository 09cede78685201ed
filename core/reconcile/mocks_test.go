package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type item struct {
	ID       string    `json:"id"`
	Value    string    `json:"value"`
	SyncedAt time.Time `json:"synced_at"`
}

type itemAdapter struct{}

func (itemAdapter) Name() string { return "item" }

func (itemAdapter) Key(it item) string { return it.ID }

func (itemAdapter) Stamp(it item, at time.Time) item {
	it.SyncedAt = at
	return it
}

func (itemAdapter) Fingerprint(it item) (string, error) {
	return Fingerprint(it, "synced_at")
}

// mockSource serves fixed pages and records concurrency.
type mockSource struct {
	pages    [][]item
	failPage int
	// total replaces the computed total when non-zero.
	total    int
	delay    time.Duration
	block    chan struct{}

	calls     atomic.Int32
	inFlight  atomic.Int32
	maxFlight atomic.Int32
}

func (m *mockSource) FetchPage(ctx context.Context, page, size int) (Page[item], error) {
	m.calls.Add(1)
	cur := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		prev := m.maxFlight.Load()
		if cur <= prev || m.maxFlight.CompareAndSwap(prev, cur) {
			break
		}
	}

	if m.block != nil {
		<-m.block
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if page == m.failPage {
		return Page[item]{}, fmt.Errorf("page %d: connection reset", page)
	}

	total := 0
	for _, p := range m.pages {
		total += len(p)
	}
	if m.total != 0 {
		total = m.total
	}
	var items []item
	if page-1 < len(m.pages) {
		items = m.pages[page-1]
	}
	return Page[item]{Items: items, Pages: len(m.pages), Total: total}, nil
}

// mockStore is an in-memory Store with failure injection.
type mockStore struct {
	mu    sync.Mutex
	items map[string]item

	failBulk   bool
	failInsert map[string]bool
	failUpdate map[string]bool
	failDelete map[string]bool

	loads   atomic.Int32
	writes  atomic.Int32
	touched []string
}

func newMockStore(items ...item) *mockStore {
	s := &mockStore{items: make(map[string]item)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *mockStore) LoadAll(ctx context.Context) ([]item, error) {
	s.loads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *mockStore) BulkInsert(ctx context.Context, items []item) error {
	s.writes.Add(1)
	if s.failBulk {
		return fmt.Errorf("bulk insert rejected")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.items[it.ID] = it
	}
	return nil
}

func (s *mockStore) Insert(ctx context.Context, it item) error {
	s.writes.Add(1)
	if s.failInsert[it.ID] {
		return fmt.Errorf("insert rejected")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
	return nil
}

func (s *mockStore) Update(ctx context.Context, it item) error {
	s.writes.Add(1)
	if s.failUpdate[it.ID] {
		return fmt.Errorf("update rejected")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
	return nil
}

func (s *mockStore) Touch(ctx context.Context, keys []string, at time.Time) error {
	s.writes.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		it := s.items[k]
		it.SyncedAt = at
		s.items[k] = it
		s.touched = append(s.touched, k)
	}
	return nil
}

func (s *mockStore) Delete(ctx context.Context, key string) error {
	s.writes.Add(1)
	if s.failDelete[key] {
		return fmt.Errorf("delete rejected")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *mockStore) get(id string) (item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
