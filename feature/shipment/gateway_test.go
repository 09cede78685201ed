package shipment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shipment-gateway/core/apperr"
	"shipment-gateway/core/events"
	"shipment-gateway/core/reconcile"
	"shipment-gateway/feature/shipment/models"
	"shipment-gateway/feature/shipment/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	gw        *Gateway
	store     *store.MemoryStore
	remote    *fakeRemote
	publisher *recordingPublisher
}

func newFixture(mode string, remote *fakeRemote, mirror ...models.Shipment) *fixture {
	st := store.NewMemoryStore(mirror...)
	pub := &recordingPublisher{}
	gw := NewGateway(Dependencies{
		Store:     st,
		Remote:    remote,
		Carriers:  fakeCarriers{"se-1": true},
		Enricher:  naEnricher{},
		Publisher: pub,
		Config: reconcile.Config{
			PageSize:        100,
			StalenessWindow: time.Hour,
			Mode:            mode,
		},
	})
	return &fixture{gw: gw, store: st, remote: remote, publisher: pub}
}

func validRequest() models.CreateShipmentRequest {
	return models.CreateShipmentRequest{
		CarrierID:   "se-1",
		ServiceCode: "ups_ground",
		ShipTo:      models.AddressInput{Name: "Jane", City: "Austin", CountryCode: "US", AddressLine1: "1 Main"},
		ShipFrom:    models.AddressInput{Name: "Depot", City: "Dallas", CountryCode: "US", AddressOne: "2 Elm"},
		Packages:    []models.PackageInput{{Weight: 1.5, WeightUnit: "pound"}},
	}
}

func TestGateway_GetShipments_BlockingSyncsStaleMirror(t *testing.T) {
	now := time.Now()
	remote := newFakeRemote(
		shipment("se-1", models.StatusPending, now.Add(-time.Hour)),
		shipment("se-2", models.StatusLabelPurchased, now),
		shipment("se-3", models.StatusCanceled, now.Add(-2*time.Hour)),
	)
	f := newFixture(reconcile.ModeBlocking, remote)

	page, err := f.gw.GetShipments(context.Background(), models.ListRequest{})
	require.NoError(t, err)

	require.Len(t, page.Shipments, 2)
	assert.Equal(t, "se-2", page.Shipments[0].ShipmentID)
	assert.Equal(t, "se-1", page.Shipments[1].ShipmentID)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, models.DefaultPageSize, page.PageSize)
	assert.Equal(t, "UPS", page.Shipments[0].CarrierName)
	assert.Equal(t, "n/a", page.Shipments[0].ServiceCodeName)

	withCancelled, err := f.gw.GetShipments(context.Background(), models.ListRequest{IncludeCancelled: true, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, withCancelled.Shipments, 2)
	assert.Equal(t, 3, withCancelled.TotalCount)
	assert.Equal(t, 2, withCancelled.TotalPages)

	report, at, err := f.gw.LastSync()
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 3, report.Added)
	assert.False(t, at.IsZero())
	assert.Contains(t, f.publisher.types(), events.TypeShipmentsSynced)
}

func TestGateway_ConcurrentStaleReadsRunOnePass(t *testing.T) {
	for _, mode := range []string{reconcile.ModeBlocking, reconcile.ModeBackground} {
		t.Run(mode, func(t *testing.T) {
			remote := newFakeRemote(
				shipment("se-1", models.StatusPending, time.Now()),
				shipment("se-2", models.StatusPending, time.Now()),
			)
			remote.delay = 50 * time.Millisecond
			f := newFixture(mode, remote)

			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := f.gw.GetShipments(context.Background(), models.ListRequest{})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()
			f.gw.Wait()

			assert.EqualValues(t, 1, remote.pageFetches.Load())
			n, err := f.store.Count(context.Background(), true)
			require.NoError(t, err)
			assert.EqualValues(t, 2, n)
		})
	}
}

func TestGateway_BackgroundReadReturnsMirrorImmediately(t *testing.T) {
	old := shipment("se-old", models.StatusPending, time.Now())
	old.SyncDate = time.Now().Add(-time.Minute)
	remote := newFakeRemote(old, shipment("se-new", models.StatusPending, time.Now()))
	remote.delay = 100 * time.Millisecond
	f := newFixture(reconcile.ModeBackground, remote, old)

	page, err := f.gw.GetShipments(context.Background(), models.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Shipments, 1)

	f.gw.Wait()
	page, err = f.gw.GetShipments(context.Background(), models.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Shipments, 2)
}

func TestGateway_CheckStaleness(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	fresh := shipment("se-1", models.StatusPending, now)
	fresh.SyncDate = now.Add(-10 * time.Minute)
	old := fresh
	old.SyncDate = now.Add(-2 * time.Hour)
	cancelled := shipment("se-2", models.StatusCanceled, now)
	cancelled.SyncDate = now.Add(-10 * time.Minute)

	tests := []struct {
		name   string
		remote []models.Shipment
		mirror []models.Shipment
		stale  bool
		reason string
	}{
		{"Empty", nil, nil, false, ""},
		{"InSync", []models.Shipment{fresh}, []models.Shipment{fresh}, false, ""},
		{"CountMismatch", []models.Shipment{fresh, cancelled}, []models.Shipment{fresh}, true, ReasonCountMismatch},
		{"CancelledCounted", []models.Shipment{fresh, cancelled}, []models.Shipment{fresh, cancelled}, false, ""},
		{"WindowElapsed", []models.Shipment{old}, []models.Shipment{old}, true, ReasonWindowElapsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(reconcile.ModeBlocking, newFakeRemote(tt.remote...), tt.mirror...)
			f.gw.now = func() time.Time { return now }

			st, err := f.gw.CheckStaleness(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.stale, st.Stale)
			assert.Equal(t, tt.reason, st.Reason)
		})
	}
}

func TestGateway_ProbeFailureServesMirror(t *testing.T) {
	mirror := shipment("se-1", models.StatusPending, time.Now())
	remote := newFakeRemote()
	remote.listErr = errors.New("connection refused")
	f := newFixture(reconcile.ModeBlocking, remote, mirror)

	_, err := f.gw.CheckStaleness(context.Background())
	assert.True(t, apperr.IsKind(err, apperr.KindSyncSourceUnavailable))

	page, err := f.gw.GetShipments(context.Background(), models.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Shipments, 1)
	assert.EqualValues(t, 0, remote.pageFetches.Load())
}

func TestGateway_GetShipment(t *testing.T) {
	mirrored := shipment("se-1", models.StatusPending, time.Now())
	remoteOnly := shipment("se-2", models.StatusPending, time.Now())
	f := newFixture(reconcile.ModeBlocking, newFakeRemote(mirrored, remoteOnly), mirrored)

	t.Run("MirrorHit", func(t *testing.T) {
		s, err := f.gw.GetShipment(context.Background(), "se-1")
		require.NoError(t, err)
		assert.Equal(t, "UPS", s.CarrierName)
	})

	t.Run("ReadThrough", func(t *testing.T) {
		s, err := f.gw.GetShipment(context.Background(), "se-2")
		require.NoError(t, err)
		assert.Equal(t, "se-2", s.ShipmentID)
		assert.False(t, s.SyncDate.IsZero())

		cached, err := f.store.Get(context.Background(), "se-2")
		require.NoError(t, err)
		assert.Equal(t, "", cached.CarrierName)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := f.gw.GetShipment(context.Background(), "se-404")
		assert.True(t, apperr.IsKind(err, apperr.KindShipmentNotFound))
	})

	t.Run("RemoteDown", func(t *testing.T) {
		remote := newFakeRemote()
		remote.listErr = errors.New("timeout")
		g := newFixture(reconcile.ModeBlocking, remote)

		_, err := g.gw.GetShipment(context.Background(), "se-9")
		assert.True(t, apperr.IsKind(err, apperr.KindSyncSourceUnavailable))
	})
}

func TestGateway_CreateShipment(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		f := newFixture(reconcile.ModeBlocking, newFakeRemote())
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		f.gw.now = func() time.Time { return now }

		s, err := f.gw.CreateShipment(context.Background(), validRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, s.ShipmentID)

		stored, err := f.store.Get(context.Background(), s.ShipmentID)
		require.NoError(t, err)
		assert.Equal(t, now, stored.SyncDate)
		assert.Equal(t, []string{events.TypeShipmentCreated}, f.publisher.types())
	})

	t.Run("MissingFields", func(t *testing.T) {
		f := newFixture(reconcile.ModeBlocking, newFakeRemote())
		req := validRequest()
		req.CarrierID = ""
		req.ShipTo.Name = ""
		req.Packages = nil

		_, err := f.gw.CreateShipment(context.Background(), req)
		require.True(t, apperr.IsKind(err, apperr.KindValidation))

		var appErr *apperr.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "is required", appErr.Fields["carrier_id"])
		assert.Equal(t, "is required", appErr.Fields["ship_to.name"])
		assert.Contains(t, appErr.Fields, "packages")
		assert.EqualValues(t, 0, f.remote.creates.Load())
	})

	t.Run("UnknownCarrier", func(t *testing.T) {
		f := newFixture(reconcile.ModeBlocking, newFakeRemote())
		req := validRequest()
		req.CarrierID = "se-999"

		_, err := f.gw.CreateShipment(context.Background(), req)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		assert.EqualValues(t, 0, f.remote.creates.Load())
	})

	t.Run("RemoteRejected", func(t *testing.T) {
		remote := newFakeRemote()
		remote.createErr = errors.New("invalid address")
		f := newFixture(reconcile.ModeBlocking, remote)

		_, err := f.gw.CreateShipment(context.Background(), validRequest())
		assert.True(t, apperr.IsKind(err, apperr.KindRemoteRejected))
		n, _ := f.store.Count(context.Background(), true)
		assert.Zero(t, n)
		assert.Empty(t, f.publisher.types())
	})
}

func TestGateway_UpdateShipment(t *testing.T) {
	existing := shipment("se-1", models.StatusPending, time.Now())
	f := newFixture(reconcile.ModeBlocking, newFakeRemote(existing), existing)

	req := validRequest()
	req.ServiceCode = "ups_next_day_air"
	s, err := f.gw.UpdateShipment(context.Background(), "se-1", req)
	require.NoError(t, err)
	assert.Equal(t, "ups_next_day_air", *s.ServiceCode)

	stored, err := f.store.Get(context.Background(), "se-1")
	require.NoError(t, err)
	assert.Equal(t, "ups_next_day_air", *stored.ServiceCode)
	assert.Equal(t, []string{events.TypeShipmentUpdated}, f.publisher.types())

	_, err = f.gw.UpdateShipment(context.Background(), "se-404", validRequest())
	assert.True(t, apperr.IsKind(err, apperr.KindShipmentNotFound))
}

func TestGateway_CancelShipment(t *testing.T) {
	t.Run("Confirmed", func(t *testing.T) {
		existing := shipment("se-1", models.StatusPending, time.Now())
		f := newFixture(reconcile.ModeBlocking, newFakeRemote(existing), existing)

		require.NoError(t, f.gw.CancelShipment(context.Background(), "se-1"))

		stored, err := f.store.Get(context.Background(), "se-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCanceled, stored.Status)
		assert.Equal(t, []string{events.TypeShipmentCancelled}, f.publisher.types())
	})

	t.Run("NotConfirmed", func(t *testing.T) {
		existing := shipment("se-1", models.StatusPending, time.Now())
		remote := newFakeRemote(existing)
		remote.cancelOK = false
		f := newFixture(reconcile.ModeBlocking, remote, existing)

		err := f.gw.CancelShipment(context.Background(), "se-1")
		assert.True(t, apperr.IsKind(err, apperr.KindRemoteRejected))

		stored, err := f.store.Get(context.Background(), "se-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, stored.Status)
		assert.Empty(t, f.publisher.types())
	})

	t.Run("RemoteError", func(t *testing.T) {
		existing := shipment("se-1", models.StatusPending, time.Now())
		remote := newFakeRemote(existing)
		remote.cancelErr = errors.New("unexpected status 500")
		f := newFixture(reconcile.ModeBlocking, remote, existing)

		err := f.gw.CancelShipment(context.Background(), "se-1")
		assert.True(t, apperr.IsKind(err, apperr.KindRemoteRejected))

		stored, _ := f.store.Get(context.Background(), "se-1")
		assert.Equal(t, models.StatusPending, stored.Status)
	})

	t.Run("UnknownID", func(t *testing.T) {
		remote := newFakeRemote()
		remote.cancelErr = wrapNotFound("se-404")
		f := newFixture(reconcile.ModeBlocking, remote)

		err := f.gw.CancelShipment(context.Background(), "se-404")
		assert.True(t, apperr.IsKind(err, apperr.KindShipmentNotFound))
	})

	t.Run("NotMirroredYet", func(t *testing.T) {
		f := newFixture(reconcile.ModeBlocking, newFakeRemote())
		assert.NoError(t, f.gw.CancelShipment(context.Background(), "se-elsewhere"))
	})
}

func TestGateway_Sync(t *testing.T) {
	remote := newFakeRemote(shipment("se-1", models.StatusPending, time.Now()))
	f := newFixture(reconcile.ModeBackground, remote, shipment("se-gone", models.StatusPending, time.Now()))

	dry, err := f.gw.Sync(context.Background(), reconcile.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, dry.Added)
	assert.Equal(t, 1, dry.Removed)
	_, err = f.store.Get(context.Background(), "se-gone")
	assert.NoError(t, err)

	report, err := f.gw.Sync(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.Removed)
	_, err = f.store.Get(context.Background(), "se-gone")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
