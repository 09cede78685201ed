package cmd

import (
	"context"
	"fmt"

	"shipment-gateway/core/config"
	"shipment-gateway/core/database"
	"shipment-gateway/core/events"
	"shipment-gateway/core/logger"
	"shipment-gateway/core/metrics"
	"shipment-gateway/core/shipengine"
	"shipment-gateway/core/storage"
	"shipment-gateway/feature/carrier"
	"shipment-gateway/feature/health"
	"shipment-gateway/feature/shipment"
	"shipment-gateway/feature/shipment/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the components shared by every subcommand.
type services struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *metrics.Metrics
	client    *shipengine.Client
	store     store.Store
	db        *gorm.DB
	carriers  *carrier.Service
	publisher events.Publisher
	gateway   *shipment.Gateway
	storage   storage.Client
	closers   []func() error
}

// bootstrap loads configuration and wires the gateway. The caller must call close.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	a := &services{cfg: cfg, logger: logg, metrics: metrics.New()}

	if err := a.openStore(ctx); err != nil {
		a.close()
		return nil, err
	}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Snapshot storage unavailable", zap.Error(err))
	} else {
		a.storage = client
	}

	a.client = shipengine.NewClient(cfg.ShipEngine, logg)
	a.carriers = carrier.NewService(a.client, cfg.ShipEngine.CarrierCacheTTL, logg)
	a.publisher = events.New(cfg.Events, logg)
	a.closers = append(a.closers, a.publisher.Close)

	a.gateway = shipment.NewGateway(shipment.Dependencies{
		Store:     a.store,
		Remote:    shipment.NewShipEngineRemote(a.client),
		Carriers:  a.carriers,
		Enricher:  carrier.NewMapper(a.carriers, logg),
		Publisher: a.publisher,
		Metrics:   a.metrics,
		Config:    cfg.Sync,
		Logger:    logg,
	})
	return a, nil
}

func (a *services) openStore(ctx context.Context) error {
	cfg := a.cfg.Database
	switch {
	case cfg.Driver == database.DriverMemory:
		a.store = store.NewMemoryStore()
	case cfg.Driver == database.DriverMongo:
		db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return err
		}
		a.store = store.NewMongoStore(db.Collection(store.CollectionName))
		a.closers = append(a.closers, func() error {
			return db.Client().Disconnect(context.Background())
		})
	case cfg.IsSQL():
		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		a.db = db
		a.store = store.NewGormStore(db)
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate mirror: %w", err)
	}
	a.logger.Info("Mirror ready", zap.String("driver", cfg.Driver))
	return nil
}

// exporter returns the snapshot exporter, or an error when storage is not configured.
func (a *services) exporter() (*shipment.Exporter, error) {
	if a.storage == nil {
		return nil, fmt.Errorf("snapshot storage is not available")
	}
	return shipment.NewExporter(a.store, a.storage, a.cfg.Storage, a.logger), nil
}

func (a *services) healthDependencies() health.Dependencies {
	return health.Dependencies{
		Mirror:  a.store,
		DB:      a.db,
		Storage: a.storage,
		Bucket:  a.cfg.Storage.Bucket,
		Prefix:  a.cfg.Storage.Prefix,
		Breaker: a.client,
		Sync:    a.gateway,
		Metrics: a.metrics,
		Logger:  a.logger,
	}
}

// close waits for detached passes and releases connections in reverse order.
func (a *services) close() {
	if a.gateway != nil {
		a.gateway.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
