package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const runKey = "reconcile"

// NeedFunc decides whether a pass is still needed. It is evaluated inside the
// single-flight section so callers that queued behind a pass can skip it.
type NeedFunc func(ctx context.Context) (bool, error)

// Runner makes sure at most one pass runs at a time.
type Runner[T any] struct {
	engine *Engine[T]
	logger *zap.Logger

	sf      singleflight.Group
	pending atomic.Bool
	running atomic.Int32
	wg      sync.WaitGroup

	mu      sync.RWMutex
	last    *Report
	lastErr error
	lastAt  time.Time
	hooks   []func(*Report, error)
}

// NewRunner wraps engine.
func NewRunner[T any](engine *Engine[T], logger *zap.Logger) *Runner[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner[T]{engine: engine, logger: logger}
}

// OnReport registers fn to be called after every non-dry-run pass.
func (r *Runner[T]) OnReport(fn func(*Report, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Run executes a pass and blocks until it finishes. Concurrent callers share
// the in-flight pass. A nil report with a nil error means needed said no.
// The pass is detached from ctx cancellation once started.
//
// Dry runs stay outside the single-flight group, so a real pass never joins
// one and a dry run never waits on a real pass.
func (r *Runner[T]) Run(ctx context.Context, opts Options, needed NeedFunc) (*Report, error) {
	if opts.DryRun {
		return r.engine.Reconcile(context.WithoutCancel(ctx), opts)
	}

	v, err, shared := r.sf.Do(runKey, func() (any, error) {
		ctx := context.WithoutCancel(ctx)

		// Double-check: another pass may have finished while we waited.
		if needed != nil {
			ok, err := needed(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return (*Report)(nil), nil
			}
		}

		r.running.Add(1)
		defer r.running.Add(-1)

		report, err := r.engine.Reconcile(ctx, opts)
		r.record(report, err)
		return report, err
	})
	if shared {
		r.logger.Debug("Joined in-flight reconciliation")
	}
	if err != nil {
		return nil, err
	}
	report, _ := v.(*Report)
	return report, nil
}

// Trigger starts a pass in the background unless one is already pending.
// It returns false when the call was collapsed into an existing pass.
func (r *Runner[T]) Trigger(ctx context.Context, opts Options, needed NeedFunc) bool {
	if !r.pending.CompareAndSwap(false, true) {
		return false
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.pending.Store(false)

		if _, err := r.Run(context.WithoutCancel(ctx), opts, needed); err != nil {
			r.logger.Error("Background reconciliation failed", zap.Error(err))
		}
	}()
	return true
}

// Wait blocks until every triggered pass has finished.
func (r *Runner[T]) Wait() {
	r.wg.Wait()
}

// InFlight reports whether a pass is running or pending.
func (r *Runner[T]) InFlight() bool {
	return r.pending.Load() || r.running.Load() > 0
}

// Last returns the outcome of the most recent pass. The time is zero if no
// pass has run.
func (r *Runner[T]) Last() (*Report, time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.lastAt, r.lastErr
}

func (r *Runner[T]) record(report *Report, err error) {
	r.mu.Lock()
	r.last = report
	r.lastErr = err
	r.lastAt = r.engine.now()
	hooks := append([]func(*Report, error){}, r.hooks...)
	r.mu.Unlock()

	for _, fn := range hooks {
		fn(report, err)
	}
}
