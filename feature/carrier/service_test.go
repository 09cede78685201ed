package carrier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shipment-gateway/core/shipengine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	carriers []shipengine.Carrier
	err      error
	calls    atomic.Int32
	delay    time.Duration
}

func (f *fakeSource) ListCarriers(ctx context.Context) ([]shipengine.Carrier, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.carriers, f.err
}

func (f *fakeSource) set(carriers []shipengine.Carrier) {
	f.mu.Lock()
	f.carriers = carriers
	f.mu.Unlock()
}

func sampleCarriers() []shipengine.Carrier {
	return []shipengine.Carrier{
		{
			CarrierID:    "se-1",
			FriendlyName: "UPS Main",
			Name:         "UPS",
			Services: []shipengine.Service{
				{ServiceCode: "ups_ground", Name: "UPS Ground"},
			},
		},
		{
			CarrierID: "se-2",
			Name:      "USPS",
			Services: []shipengine.Service{
				{CarrierID: "se-2", ServiceCode: "usps_priority_mail", Name: "USPS Priority Mail"},
			},
		},
	}
}

func TestService_CachesWithinTTL(t *testing.T) {
	src := &fakeSource{carriers: sampleCarriers()}
	svc := NewService(src, time.Hour, nil)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, src.calls.Load())

	now = now.Add(2 * time.Hour)
	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestService_ConcurrentFillsShareOneCall(t *testing.T) {
	src := &fakeSource{carriers: sampleCarriers(), delay: 50 * time.Millisecond}
	svc := NewService(src, time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Catalog(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, src.calls.Load())
}

func TestService_InvalidateAndRefresh(t *testing.T) {
	src := &fakeSource{carriers: sampleCarriers()}
	svc := NewService(src, time.Hour, nil)

	_, err := svc.Catalog(context.Background())
	require.NoError(t, err)

	svc.Invalidate()
	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.calls.Load())

	src.set(sampleCarriers()[:1])
	cat, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Carriers(), 1)
	assert.EqualValues(t, 3, src.calls.Load())
}

func TestService_ErrorIsNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("unavailable")}
	svc := NewService(src, time.Hour, nil)

	_, err := svc.Catalog(context.Background())
	assert.Error(t, err)

	src.mu.Lock()
	src.err = nil
	src.carriers = sampleCarriers()
	src.mu.Unlock()

	cat, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.True(t, cat.Has("se-1"))
}

func TestService_HasCarrierRefetchesOnMiss(t *testing.T) {
	src := &fakeSource{carriers: sampleCarriers()[:1]}
	svc := NewService(src, time.Hour, nil)

	ok, err := svc.HasCarrier(context.Background(), "se-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 1, src.calls.Load())

	// Newly connected carrier shows up after the forced refresh.
	src.set(sampleCarriers())
	ok, err = svc.HasCarrier(context.Background(), "se-2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 2, src.calls.Load())

	ok, err = svc.HasCarrier(context.Background(), "se-404")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := svc.CarrierIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestCatalog_Names(t *testing.T) {
	cat := NewCatalog(sampleCarriers(), time.Now(), time.Hour)

	id1, id2, unknown := "se-1", "se-2", "nope"
	ground, priority := "ups_ground", "usps_priority_mail"

	assert.Equal(t, "UPS Main", cat.CarrierName(&id1))
	assert.Equal(t, "USPS", cat.CarrierName(&id2))
	assert.Equal(t, "n/a", cat.CarrierName(&unknown))
	assert.Equal(t, "n/a", cat.CarrierName(nil))

	assert.Equal(t, "UPS Ground", cat.ServiceName(&id1, &ground))
	// Falls back to any carrier offering the code.
	assert.Equal(t, "USPS Priority Mail", cat.ServiceName(&id1, &priority))
	assert.Equal(t, "USPS Priority Mail", cat.ServiceName(nil, &priority))
	assert.Equal(t, "n/a", cat.ServiceName(&id1, &unknown))
	assert.Equal(t, "n/a", cat.ServiceName(&id1, nil))

	services := cat.Services()
	require.Len(t, services, 2)
	assert.Equal(t, "se-1", services[0].CarrierID)
}

func TestCatalog_IsExpired(t *testing.T) {
	built := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, NewCatalog(nil, built, time.Hour).IsExpired(built.Add(time.Minute)))
	assert.True(t, NewCatalog(nil, built, time.Hour).IsExpired(built.Add(2*time.Hour)))
	assert.True(t, NewCatalog(nil, built, 0).IsExpired(built))
}
