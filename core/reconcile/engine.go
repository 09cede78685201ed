package reconcile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shipment-gateway/core/apperr"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxPrealloc caps slice capacity taken from a remote-reported total.
const maxPrealloc = 10000

// Engine converges a Store onto a Source.
type Engine[T any] struct {
	adapter Adapter[T]
	source  Source[T]
	store   Store[T]
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewEngine creates an engine. Zero sizes in cfg fall back to defaults.
func NewEngine[T any](adapter Adapter[T], source Source[T], store Store[T], cfg Config, logger *zap.Logger) *Engine[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.ApplyConcurrency <= 0 {
		cfg.ApplyConcurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine[T]{
		adapter: adapter,
		source:  source,
		store:   store,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Reconcile runs a full pass: fetch every remote page, diff against the
// mirror and apply the result. A page fetch failure aborts the pass before
// anything is written.
func (e *Engine[T]) Reconcile(ctx context.Context, opts Options) (*Report, error) {
	start := e.now()

	plan, err := e.Plan(ctx, opts.PageSize)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Adapter:     e.adapter.Name(),
		Duplicates:  len(plan.Duplicates),
		RemoteTotal: plan.RemoteTotal,
		DryRun:      opts.DryRun,
		StartedAt:   start,
	}
	if opts.DryRun {
		report.Added = len(plan.Inserts)
		report.Updated = len(plan.Updates)
		report.Removed = len(plan.Deletes)
		report.Unchanged = len(plan.Touches)
	} else {
		e.Apply(ctx, plan, report)
	}

	report.Duration = e.now().Sub(start)
	report.DurationMS = report.Duration.Milliseconds()
	e.logger.Info("Reconciliation finished", report.Fields()...)
	return report, nil
}

// Plan fetches the source and diffs it against the mirror without writing.
func (e *Engine[T]) Plan(ctx context.Context, pageSize int) (*Plan[T], error) {
	if pageSize <= 0 {
		pageSize = e.cfg.PageSize
	}

	pages, err := e.fetchAll(ctx, pageSize)
	if err != nil {
		return nil, err
	}

	local, err := e.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local %s: %w", e.adapter.Name(), err)
	}

	// One stamp per pass, in UTC at second precision, for inserts, updates and touches alike.
	return e.buildPlan(pages, local, e.now().UTC().Truncate(time.Second))
}

func (e *Engine[T]) fetchAll(ctx context.Context, pageSize int) ([]Page[T], error) {
	first, err := e.source.FetchPage(ctx, 1, pageSize)
	if err != nil {
		return nil, apperr.SourceUnavailable(1, err)
	}
	first.Number = 1

	pages := make([]Page[T], max(first.Pages, 1))
	pages[0] = first
	if first.Pages <= 1 {
		return pages, nil
	}

	e.logger.Debug("Fetching remote pages",
		zap.String("adapter", e.adapter.Name()),
		zap.Int("pages", first.Pages),
		zap.Int("total", first.Total),
		zap.Int("concurrency", e.cfg.Concurrency))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for n := 2; n <= first.Pages; n++ {
		g.Go(func() error {
			page, err := e.source.FetchPage(gctx, n, pageSize)
			if err != nil {
				return apperr.SourceUnavailable(n, err)
			}
			page.Number = n
			pages[n-1] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (e *Engine[T]) buildPlan(pages []Page[T], local []T, at time.Time) (*Plan[T], error) {
	plan := &Plan[T]{
		RemoteTotal: pages[0].Total,
		Pages:       len(pages),
		StampedAt:   at,
	}

	// Pages are walked in order so the last occurrence of a duplicate wins.
	remote := make(map[string]T)
	order := make([]string, 0, min(max(pages[0].Total, 0), maxPrealloc))
	for _, page := range pages {
		for _, item := range page.Items {
			key := e.adapter.Key(item)
			if _, seen := remote[key]; seen {
				plan.Duplicates = append(plan.Duplicates, key)
				e.logger.Warn("Duplicate key in remote listing",
					zap.String("adapter", e.adapter.Name()),
					zap.Error(apperr.DuplicateKey(key, page.Number)))
			} else {
				order = append(order, key)
			}
			remote[key] = item
		}
	}

	existing := make(map[string]T, len(local))
	for _, item := range local {
		existing[e.adapter.Key(item)] = item
	}

	for _, key := range order {
		item := e.adapter.Stamp(remote[key], at)
		current, ok := existing[key]
		if !ok {
			plan.Inserts = append(plan.Inserts, item)
			continue
		}
		delete(existing, key)

		changed, err := e.changed(current, item)
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s %s: %w", e.adapter.Name(), key, err)
		}
		if changed {
			plan.Updates = append(plan.Updates, item)
		} else {
			plan.Touches = append(plan.Touches, key)
		}
	}

	for key := range existing {
		plan.Deletes = append(plan.Deletes, key)
	}
	sort.Strings(plan.Deletes)

	return plan, nil
}

func (e *Engine[T]) changed(current, incoming T) (bool, error) {
	a, err := e.adapter.Fingerprint(current)
	if err != nil {
		return false, err
	}
	b, err := e.adapter.Fingerprint(incoming)
	if err != nil {
		return false, err
	}
	return a != b, nil
}
