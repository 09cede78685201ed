package health

import (
	"context"
	"fmt"
	"time"

	"shipment-gateway/core/metrics"
	"shipment-gateway/core/reconcile"
	"shipment-gateway/core/storage"
	"shipment-gateway/feature/health/checks"
	"shipment-gateway/feature/shipment/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
	StatusSkipped  = "skipped"
)

// Pinger checks connectivity of the mirror.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SyncStatus exposes the reconciliation state.
type SyncStatus interface {
	LastSync() (*reconcile.Report, time.Time, error)
	SyncInFlight() bool
}

// BreakerStater reports the carrier API breaker state.
type BreakerStater interface {
	BreakerState() string
}

// Dependencies are the components inspected by the readiness check. Nil
// members are reported as skipped.
type Dependencies struct {
	Mirror  Pinger
	DB      *gorm.DB
	Storage storage.Client
	Bucket  string
	Prefix  string
	Breaker BreakerStater
	Sync    SyncStatus
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Check is the outcome of one readiness probe.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

// Report is the readiness report.
type Report struct {
	Status string           `json:"status"`
	Checks map[string]Check `json:"checks"`
}

// Service runs health checks.
type Service struct {
	deps    Dependencies
	logger  *zap.Logger
	timeout time.Duration
}

// NewService creates a health service.
func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{deps: deps, logger: logger, timeout: 5 * time.Second}
}

// Ready probes every dependency. The mirror and its schema are critical and
// make the report down; storage, the breaker and the last sync only degrade
// it.
func (s *Service) Ready(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := Report{Status: StatusOK, Checks: make(map[string]Check)}
	add := func(name string, c Check, critical bool) {
		report.Checks[name] = c
		if c.Status == StatusOK || c.Status == StatusSkipped {
			return
		}
		if critical {
			report.Status = StatusDown
		} else if report.Status == StatusOK {
			report.Status = StatusDegraded
		}
	}

	add("database", s.checkDatabase(ctx), true)
	add("schema", s.checkSchema(), true)
	add("storage", s.checkStorage(ctx), false)
	add("shipengine", s.checkBreaker(), false)
	add("sync", s.checkSync(), false)

	if report.Status != StatusOK {
		s.logger.Warn("Readiness check not ok", zap.String("status", report.Status))
	}
	return report
}

func (s *Service) checkDatabase(ctx context.Context) Check {
	if s.deps.Mirror == nil {
		return Check{Status: StatusSkipped}
	}
	if err := s.deps.Mirror.Ping(ctx); err != nil {
		return Check{Status: StatusDown, Error: err.Error()}
	}
	return Check{Status: StatusOK}
}

func (s *Service) checkSchema() Check {
	if s.deps.DB == nil {
		return Check{Status: StatusSkipped}
	}
	report, err := checks.CheckSchema(s.deps.DB, models.Shipment{})
	if err != nil {
		return Check{Status: StatusDown, Error: err.Error()}
	}
	if !report.Matched {
		return Check{Status: StatusDown, Error: "schema mismatch", Detail: report}
	}
	return Check{Status: StatusOK}
}

func (s *Service) checkStorage(ctx context.Context) Check {
	if s.deps.Storage == nil {
		return Check{Status: StatusSkipped}
	}
	if err := checks.CheckBucket(ctx, s.deps.Storage, s.deps.Bucket, s.deps.Prefix); err != nil {
		return Check{Status: StatusDown, Error: err.Error()}
	}
	return Check{Status: StatusOK}
}

func (s *Service) checkBreaker() Check {
	if s.deps.Breaker == nil {
		return Check{Status: StatusSkipped}
	}
	state := s.deps.Breaker.BreakerState()
	s.deps.Metrics.ObserveBreaker(state)
	if state != "closed" {
		return Check{Status: StatusDegraded, Detail: detailOf("breaker", state)}
	}
	return Check{Status: StatusOK, Detail: detailOf("breaker", state)}
}

func (s *Service) checkSync() Check {
	if s.deps.Sync == nil {
		return Check{Status: StatusSkipped}
	}
	report, at, err := s.deps.Sync.LastSync()
	detail := map[string]any{"in_flight": s.deps.Sync.SyncInFlight()}
	if !at.IsZero() {
		detail["last_run"] = at.UTC()
	}
	if report != nil {
		detail["report"] = report
	}
	if err != nil {
		return Check{Status: StatusDegraded, Error: fmt.Sprintf("last sync failed: %v", err), Detail: detail}
	}
	return Check{Status: StatusOK, Detail: detail}
}

func detailOf(k, v string) map[string]string {
	return map[string]string{k: v}
}
