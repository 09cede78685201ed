package reconcile

import (
	"context"
	"sync/atomic"

	"shipment-gateway/core/apperr"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// touchChunkSize keeps bulk sync-date updates under driver placeholder limits.
const touchChunkSize = 500

// Apply writes plan to the store and fills the counters of report.
// Individual failures are logged and skipped; Apply never aborts.
func (e *Engine[T]) Apply(ctx context.Context, plan *Plan[T], report *Report) {
	e.applyInserts(ctx, plan.Inserts, report)

	ok, failed := e.forEach(ctx, plan.Updates, "update", e.store.Update)
	report.Updated += ok
	report.Failed += failed

	e.applyTouches(ctx, plan, report)

	ok, failed = e.forEachKey(ctx, plan.Deletes, "delete", e.store.Delete)
	report.Removed += ok
	report.Failed += failed
}

func (e *Engine[T]) applyInserts(ctx context.Context, items []T, report *Report) {
	if len(items) == 0 {
		return
	}
	err := e.store.BulkInsert(ctx, items)
	if err == nil {
		report.Added += len(items)
		return
	}

	e.logger.Warn("Bulk insert failed, retrying per record",
		zap.String("adapter", e.adapter.Name()),
		zap.Int("count", len(items)),
		zap.Error(err))

	ok, failed := e.forEach(ctx, items, "insert", e.store.Insert)
	report.Added += ok
	report.Failed += failed
}

func (e *Engine[T]) applyTouches(ctx context.Context, plan *Plan[T], report *Report) {
	for start := 0; start < len(plan.Touches); start += touchChunkSize {
		end := min(start+touchChunkSize, len(plan.Touches))
		chunk := plan.Touches[start:end]
		if err := e.store.Touch(ctx, chunk, plan.StampedAt); err != nil {
			e.logger.Error("Sync date update failed",
				zap.String("adapter", e.adapter.Name()),
				zap.Int("count", len(chunk)),
				zap.Error(err))
			report.Failed += len(chunk)
			continue
		}
		report.Unchanged += len(chunk)
	}
}

func (e *Engine[T]) forEach(ctx context.Context, items []T, op string, fn func(context.Context, T) error) (int, int) {
	var ok, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(e.cfg.ApplyConcurrency)
	for _, item := range items {
		g.Go(func() error {
			if err := fn(ctx, item); err != nil {
				failed.Add(1)
				e.logger.Error("Mirror write failed",
					zap.String("adapter", e.adapter.Name()),
					zap.Error(apperr.ApplyFailure(op, e.adapter.Key(item), err)))
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(ok.Load()), int(failed.Load())
}

func (e *Engine[T]) forEachKey(ctx context.Context, keys []string, op string, fn func(context.Context, string) error) (int, int) {
	var ok, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(e.cfg.ApplyConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			if err := fn(ctx, key); err != nil {
				failed.Add(1)
				e.logger.Error("Mirror write failed",
					zap.String("adapter", e.adapter.Name()),
					zap.Error(apperr.ApplyFailure(op, key, err)))
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(ok.Load()), int(failed.Load())
}
