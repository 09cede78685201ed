package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-gateway/core/apperr"
	"shipment-gateway/core/events"
	"shipment-gateway/core/metrics"
	"shipment-gateway/core/reconcile"
	"shipment-gateway/core/shipengine"
	"shipment-gateway/core/utils"
	"shipment-gateway/feature/shipment/models"
	"shipment-gateway/feature/shipment/store"

	"go.uber.org/zap"
)

// Staleness reasons.
const (
	ReasonCountMismatch = "count_mismatch"
	ReasonWindowElapsed = "window_elapsed"
)

// Enricher fills display names on shipments.
type Enricher interface {
	Enrich(ctx context.Context, shipments []models.Shipment)
}

// CarrierDirectory answers whether a carrier account exists.
type CarrierDirectory interface {
	HasCarrier(ctx context.Context, carrierID string) (bool, error)
}

// Dependencies are the collaborators of a Gateway. Publisher and Metrics are
// optional.
type Dependencies struct {
	Store     store.Store
	Remote    Remote
	Carriers  CarrierDirectory
	Enricher  Enricher
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Config    reconcile.Config
	Logger    *zap.Logger
}

// Staleness is the outcome of a freshness probe.
type Staleness struct {
	Stale       bool      `json:"stale"`
	Reason      string    `json:"reason,omitempty"`
	RemoteTotal int       `json:"remote_total"`
	LocalTotal  int64     `json:"local_total"`
	LastSynced  time.Time `json:"last_synced"`
}

// Gateway serves shipment reads from the mirror and forwards writes to the
// carrier API.
type Gateway struct {
	store     store.Store
	remote    Remote
	carriers  CarrierDirectory
	enricher  Enricher
	publisher events.Publisher
	metrics   *metrics.Metrics
	runner    *reconcile.Runner[models.Shipment]
	cfg       reconcile.Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewGateway wires a gateway and its reconciliation runner.
func NewGateway(deps Dependencies) *Gateway {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	cfg := deps.Config
	if cfg.Mode == "" {
		cfg.Mode = reconcile.ModeBackground
	}
	if cfg.StalenessWindow <= 0 {
		cfg.StalenessWindow = time.Hour
	}

	engine := reconcile.NewEngine[models.Shipment](Adapter{}, remoteSource{remote: deps.Remote}, deps.Store, cfg, logger)
	g := &Gateway{
		store:     deps.Store,
		remote:    deps.Remote,
		carriers:  deps.Carriers,
		enricher:  deps.Enricher,
		publisher: publisher,
		metrics:   deps.Metrics,
		runner:    reconcile.NewRunner(engine, logger),
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
	g.runner.OnReport(g.metrics.ObserveSync)
	g.runner.OnReport(g.publishSynced)
	return g
}

// GetShipments returns a page of mirrored shipments, checking freshness first.
func (g *Gateway) GetShipments(ctx context.Context, req models.ListRequest) (*models.ShipmentPage, error) {
	req = req.Defaults()
	g.ensureFresh(ctx)

	items, err := g.store.List(ctx, req)
	if err != nil {
		return nil, err
	}
	total, err := g.store.Count(ctx, req.IncludeCancelled)
	if err != nil {
		return nil, err
	}
	g.enrich(ctx, items)

	return &models.ShipmentPage{
		Shipments:  items,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
		TotalCount: int(total),
		TotalPages: utils.TotalPages(int(total), req.PageSize),
	}, nil
}

// GetShipment returns one shipment from the mirror, falling back to the
// remote and caching the result locally.
func (g *Gateway) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	s, err := g.store.Get(ctx, id)
	if err == nil {
		g.enrichOne(ctx, s)
		return s, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	remote, err := g.remote.GetShipment(ctx, id)
	if errors.Is(err, shipengine.ErrNotFound) {
		return nil, apperr.NotFound(id)
	}
	if err != nil {
		e := apperr.SourceUnavailable(0, err)
		e.ID = id
		return nil, e
	}

	rec := Adapter{}.Stamp(*remote, g.now())
	if err := g.store.Upsert(ctx, rec); err != nil {
		g.logger.Warn("Failed to cache remote shipment", zap.Error(apperr.ApplyFailure("upsert", id, err)))
	}
	g.enrichOne(ctx, &rec)
	return &rec, nil
}

// CreateShipment validates the request, creates the shipment remotely and
// mirrors the first created record.
func (g *Gateway) CreateShipment(ctx context.Context, req models.CreateShipmentRequest) (*models.Shipment, error) {
	if err := g.checkRequest(ctx, req); err != nil {
		return nil, err
	}

	created, err := g.remote.CreateShipment(ctx, req)
	if err != nil {
		return nil, apperr.RemoteRejected("create", "", err)
	}
	if len(created) == 0 {
		return nil, apperr.RemoteRejected("create", "", errors.New("no shipment returned"))
	}

	rec := Adapter{}.Stamp(created[0], g.now())
	if err := g.store.Upsert(ctx, rec); err != nil {
		// The next pass picks it up.
		g.logger.Error("Failed to mirror created shipment", zap.Error(apperr.ApplyFailure("upsert", rec.ShipmentID, err)))
	}

	g.publish(ctx, events.TypeShipmentCreated, rec.ShipmentID, rec)
	g.enrichOne(ctx, &rec)
	return &rec, nil
}

// UpdateShipment updates a shipment remotely and mirrors the result.
func (g *Gateway) UpdateShipment(ctx context.Context, id string, req models.UpdateShipmentRequest) (*models.Shipment, error) {
	if err := g.checkRequest(ctx, req); err != nil {
		return nil, err
	}

	updated, err := g.remote.UpdateShipment(ctx, id, req)
	if errors.Is(err, shipengine.ErrNotFound) {
		return nil, apperr.NotFound(id)
	}
	if err != nil {
		return nil, apperr.RemoteRejected("update", id, err)
	}

	rec := Adapter{}.Stamp(*updated, g.now())
	if rec.ShipmentID == "" {
		rec.ShipmentID = id
	}
	if err := g.store.Upsert(ctx, rec); err != nil {
		g.logger.Error("Failed to mirror updated shipment", zap.Error(apperr.ApplyFailure("upsert", id, err)))
	}

	g.publish(ctx, events.TypeShipmentUpdated, rec.ShipmentID, rec)
	g.enrichOne(ctx, &rec)
	return &rec, nil
}

// CancelShipment cancels remotely and marks the mirror record cancelled only
// when the remote confirmed it.
func (g *Gateway) CancelShipment(ctx context.Context, id string) error {
	ok, err := g.remote.CancelShipment(ctx, id)
	if errors.Is(err, shipengine.ErrNotFound) {
		return apperr.NotFound(id)
	}
	if err != nil {
		return apperr.RemoteRejected("cancel", id, err)
	}
	if !ok {
		return apperr.RemoteRejected("cancel", id, errors.New("cancellation not confirmed"))
	}

	if err := g.store.UpdateStatus(ctx, id, models.StatusCanceled); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return apperr.ApplyFailure("cancel", id, err)
		}
		g.logger.Debug("Cancelled shipment not mirrored yet", zap.String("shipment_id", id))
	}

	g.publish(ctx, events.TypeShipmentCancelled, id, map[string]string{"shipment_id": id})
	return nil
}

// Sync runs a pass now, joining one already in flight.
func (g *Gateway) Sync(ctx context.Context, opts reconcile.Options) (*reconcile.Report, error) {
	if opts.PageSize <= 0 {
		opts.PageSize = g.cfg.PageSize
	}
	return g.runner.Run(ctx, opts, nil)
}

// TriggerSync starts a background pass unless one is pending.
func (g *Gateway) TriggerSync(ctx context.Context) bool {
	return g.runner.Trigger(ctx, reconcile.Options{PageSize: g.cfg.PageSize}, nil)
}

// Wait blocks until background passes finish.
func (g *Gateway) Wait() {
	g.runner.Wait()
}

// LastSync returns the last pass report, when it finished and its error.
func (g *Gateway) LastSync() (*reconcile.Report, time.Time, error) {
	return g.runner.Last()
}

// SyncInFlight reports whether a pass is running or pending.
func (g *Gateway) SyncInFlight() bool {
	return g.runner.InFlight()
}

// CheckStaleness compares the remote total with the mirror and the last sync
// date with the staleness window. Both totals include cancelled shipments.
func (g *Gateway) CheckStaleness(ctx context.Context) (Staleness, error) {
	page, err := g.remote.ListShipments(ctx, 1, 1)
	if err != nil {
		return Staleness{}, apperr.SourceUnavailable(1, err)
	}
	local, err := g.store.Count(ctx, true)
	if err != nil {
		return Staleness{}, fmt.Errorf("count mirror: %w", err)
	}
	last, err := g.store.LastSynced(ctx)
	if err != nil {
		return Staleness{}, err
	}

	st := Staleness{RemoteTotal: page.Total, LocalTotal: local, LastSynced: last}
	switch {
	case int64(page.Total) != local:
		st.Stale, st.Reason = true, ReasonCountMismatch
	case !last.IsZero() && g.now().Sub(last) > g.cfg.StalenessWindow:
		st.Stale, st.Reason = true, ReasonWindowElapsed
	}
	return st, nil
}

func (g *Gateway) ensureFresh(ctx context.Context) {
	st, err := g.CheckStaleness(ctx)
	if err != nil {
		g.logger.Warn("Staleness check failed, serving mirror", zap.Error(err))
		return
	}
	if !st.Stale {
		return
	}
	g.metrics.ObserveStale(st.Reason)
	g.logger.Debug("Mirror is stale",
		zap.String("reason", st.Reason),
		zap.Int("remote_total", st.RemoteTotal),
		zap.Int64("local_total", st.LocalTotal),
		zap.Time("last_synced", st.LastSynced))

	opts := reconcile.Options{PageSize: g.cfg.PageSize}
	if g.cfg.Mode == reconcile.ModeBlocking {
		if _, err := g.runner.Run(ctx, opts, g.stillStale); err != nil {
			g.logger.Warn("Reconciliation failed, serving mirror", zap.Error(err))
		}
		return
	}
	g.runner.Trigger(ctx, opts, g.stillStale)
}

func (g *Gateway) stillStale(ctx context.Context) (bool, error) {
	st, err := g.CheckStaleness(ctx)
	if err != nil {
		return false, err
	}
	return st.Stale, nil
}

func (g *Gateway) checkRequest(ctx context.Context, req models.CreateShipmentRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	known, err := g.carriers.HasCarrier(ctx, req.CarrierID)
	if err != nil {
		return apperr.SourceUnavailable(0, fmt.Errorf("list carriers: %w", err))
	}
	if !known {
		return apperr.Validation("unknown carrier", map[string]string{
			"carrier_id": "is not a connected carrier",
		})
	}
	return nil
}

func (g *Gateway) enrich(ctx context.Context, items []models.Shipment) {
	if g.enricher != nil && len(items) > 0 {
		g.enricher.Enrich(ctx, items)
	}
}

func (g *Gateway) enrichOne(ctx context.Context, s *models.Shipment) {
	if g.enricher == nil {
		return
	}
	items := []models.Shipment{*s}
	g.enricher.Enrich(ctx, items)
	*s = items[0]
}

func (g *Gateway) publish(ctx context.Context, eventType, key string, data any) {
	err := g.publisher.Publish(ctx, events.Event{
		Type:       eventType,
		Key:        key,
		OccurredAt: g.now().UTC(),
		Data:       data,
	})
	if err != nil {
		g.metrics.ObserveEventFailure(eventType)
		g.logger.Warn("Event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func (g *Gateway) publishSynced(report *reconcile.Report, err error) {
	if err != nil || report == nil {
		return
	}
	g.publish(context.Background(), events.TypeShipmentsSynced, report.Adapter, report)
}
