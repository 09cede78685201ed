package carrier

import (
	"context"
	"sync"
	"time"

	"shipment-gateway/core/shipengine"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source lists the connected carriers.
type Source interface {
	ListCarriers(ctx context.Context) ([]shipengine.Carrier, error)
}

// Service caches the carrier catalog.
type Service struct {
	source Source
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	catalog *Catalog
	sf      singleflight.Group
}

// NewService creates a carrier service reusing the catalog for ttl.
func NewService(source Source, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, ttl: ttl, logger: logger, now: time.Now}
}

// Catalog returns the cached catalog, filling it when absent or expired.
// Concurrent fills share one remote call.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	// Fast path
	s.mu.RLock()
	cat := s.catalog
	s.mu.RUnlock()
	if cat != nil && !cat.IsExpired(s.now()) {
		return cat, nil
	}

	result, err, _ := s.sf.Do("catalog", func() (any, error) {
		// Double-check after acquiring the flight.
		s.mu.RLock()
		cat := s.catalog
		s.mu.RUnlock()
		if cat != nil && !cat.IsExpired(s.now()) {
			return cat, nil
		}

		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		carriers, err := s.source.ListCarriers(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		fresh := NewCatalog(carriers, s.now(), s.ttl)

		s.mu.Lock()
		s.catalog = fresh
		s.mu.Unlock()

		s.logger.Debug("Carrier catalog loaded", zap.Int("carriers", len(carriers)))
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Catalog), nil
}

// Invalidate drops the cached catalog.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.catalog = nil
	s.mu.Unlock()
}

// Refresh drops the cached catalog and loads a new one.
func (s *Service) Refresh(ctx context.Context) (*Catalog, error) {
	s.Invalidate()
	return s.Catalog(ctx)
}

// CarrierIDs returns the connected carrier ids.
func (s *Service) CarrierIDs(ctx context.Context) (map[string]struct{}, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.CarrierIDs(), nil
}

// HasCarrier reports whether id is connected. An id missing from the cached
// catalog is checked again against a fresh one.
func (s *Service) HasCarrier(ctx context.Context, id string) (bool, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return false, err
	}
	if cat.Has(id) {
		return true, nil
	}
	if cat, err = s.Refresh(ctx); err != nil {
		return false, err
	}
	return cat.Has(id), nil
}
