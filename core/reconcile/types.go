package reconcile

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// ModeBackground serves reads from the mirror while a pass runs detached.
	ModeBackground = "background"
	// ModeBlocking makes a stale read wait for the pass to finish.
	ModeBlocking = "blocking"

	DefaultPageSize    = 100
	DefaultConcurrency = 10
)

// Config holds reconciliation settings.
type Config struct {
	// PageSize is the remote page size used by a pass.
	PageSize int `mapstructure:"page_size" default:"100"`
	// Concurrency bounds concurrent remote page fetches.
	Concurrency int `mapstructure:"concurrency" default:"10"`
	// ApplyConcurrency bounds concurrent per-record mirror writes.
	ApplyConcurrency int `mapstructure:"apply_concurrency" default:"10"`
	// StalenessWindow is how long a mirror stays fresh after its last sync.
	StalenessWindow time.Duration `mapstructure:"staleness_window" default:"1h"`
	// Mode is either background or blocking.
	Mode string `mapstructure:"mode" default:"background"`
}

// Validate reports an unusable configuration.
func (c Config) Validate() error {
	if c.Mode != ModeBackground && c.Mode != ModeBlocking {
		return fmt.Errorf("invalid sync mode %q", c.Mode)
	}
	if c.PageSize < 0 || c.Concurrency < 0 || c.ApplyConcurrency < 0 {
		return fmt.Errorf("sync sizes must not be negative")
	}
	return nil
}

// Page is one page of a remote listing.
type Page[T any] struct {
	Items []T
	// Number is the 1-based page index.
	Number int
	// Pages is the total number of pages reported by the source.
	Pages int
	// Total is the total number of records reported by the source.
	Total int
}

// Options controls a single pass.
type Options struct {
	// PageSize overrides Config.PageSize when positive.
	PageSize int
	// DryRun computes the plan without applying it.
	DryRun bool
}

// Plan is the diff between the source and the mirror.
type Plan[T any] struct {
	Inserts    []T
	Updates    []T
	Touches    []string
	Deletes    []string
	Duplicates []string
	// RemoteTotal is the total reported by page 1.
	RemoteTotal int
	Pages       int
	StampedAt   time.Time
}

// Empty reports whether applying the plan would change content.
func (p *Plan[T]) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.Deletes) == 0
}

// Report summarizes a pass.
type Report struct {
	Adapter     string        `json:"adapter"`
	Added       int           `json:"added"`
	Updated     int           `json:"updated"`
	Removed     int           `json:"removed"`
	Unchanged   int           `json:"unchanged"`
	Duplicates  int           `json:"duplicates"`
	Failed      int           `json:"failed"`
	RemoteTotal int           `json:"remote_total"`
	DryRun      bool          `json:"dry_run"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"duration_ms"`
}

// Fields returns the report as log fields.
func (r *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("adapter", r.Adapter),
		zap.Int("added", r.Added),
		zap.Int("updated", r.Updated),
		zap.Int("removed", r.Removed),
		zap.Int("unchanged", r.Unchanged),
		zap.Int("duplicates", r.Duplicates),
		zap.Int("failed", r.Failed),
		zap.Int("remote_total", r.RemoteTotal),
		zap.Bool("dry_run", r.DryRun),
		zap.Duration("duration", r.Duration),
	}
}
