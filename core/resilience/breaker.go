package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Config holds circuit breaker settings.
type Config struct {
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32 `mapstructure:"max_requests" default:"3"`
	// Interval clears the closed-state counts periodically (0 = never).
	Interval time.Duration `mapstructure:"interval" default:"60s"`
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold uint32 `mapstructure:"failure_threshold" default:"5"`
	// FailureRatio trips the breaker once MinRequests have been seen.
	FailureRatio float64 `mapstructure:"failure_ratio" default:"0.5"`
	MinRequests  uint32  `mapstructure:"min_requests" default:"10"`
}

// Breaker wraps gobreaker with logging.
type Breaker struct {
	cb     *gobreaker.CircuitBreaker
	name   string
	logger *zap.Logger
}

// NewBreaker creates a breaker. Errors for which ignore returns true count as
// successes, e.g. a remote 404.
func NewBreaker(name string, cfg Config, logger *zap.Logger, ignore func(error) bool) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.FailureThreshold > 0 && counts.ConsecutiveFailures >= cfg.FailureThreshold {
				return true
			}
			if cfg.MinRequests > 0 && counts.Requests >= cfg.MinRequests {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return ratio >= cfg.FailureRatio
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	if ignore != nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || ignore(err)
		}
	}

	return &Breaker{
		cb:     gobreaker.NewCircuitBreaker(settings),
		name:   name,
		logger: logger,
	}
}

// Execute runs fn through the breaker.
func (b *Breaker) Execute(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn(ctx)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		b.logger.Warn("Circuit breaker is open", zap.String("name", b.name))
		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, b.name)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		b.logger.Warn("Circuit breaker: too many requests", zap.String("name", b.name))
		return nil, fmt.Errorf("%w: %s (half-open)", ErrCircuitOpen, b.name)
	}
	return result, err
}

// State returns the current state name: closed, half-open or open.
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.name
}

// Do is the typed form of Breaker.Execute.
func Do[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := b.Execute(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		if t, ok := v.(T); ok {
			return t, err
		}
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}
