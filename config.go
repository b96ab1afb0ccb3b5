package psort

import (
	"fmt"

	"github.com/ygrebnov/errorc"
	"go.uber.org/zap"

	"github.com/ygrebnov/psort/metrics"
)

const (
	// MaxThreads is the largest worker count a single sort or merge will use.
	MaxThreads = 1024

	// DefaultMinPerThread is the smallest local segment a sort hands to one goroutine.
	DefaultMinPerThread = 128
)

// config holds the settings of one Sort / SortFunc / Merge call.
type config struct {
	// Threads is the requested worker count.
	// Default: 0 (runtime.GOMAXPROCS(0)).
	Threads uint

	// MinPerThread caps the worker count so that every local segment holds at
	// least this many elements.
	// Default: 128.
	MinPerThread uint

	// Strategy plans the merge rounds.
	// Default: MinimizedLaunch.
	Strategy Strategy

	// Observers receive progress events. Empty means no observation.
	Observers []Observer
}

func defaultConfig() config {
	return config{
		Threads:      0,
		MinPerThread: DefaultMinPerThread,
		Strategy:     MinimizedLaunch{},
	}
}

// validateConfig checks invariants that individual options cannot see.
func validateConfig(cfg *config) error {
	if cfg.Threads > MaxThreads {
		return errorc.With(ErrInvalidConfig, errorc.String("", fmt.Sprintf("threads %d exceeds MaxThreads %d", cfg.Threads, MaxThreads)))
	}
	if cfg.MinPerThread == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "MinPerThread must be > 0"))
	}
	if cfg.Strategy == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "Strategy must not be nil"))
	}
	return nil
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// observer collapses the configured observers into one.
func (c *config) observer() Observer {
	return Observers(c.Observers...)
}

// Option configures a sort or merge call.
type Option func(*config) error

// WithThreads sets the worker count. Zero selects runtime.GOMAXPROCS(0).
// Values above MaxThreads are rejected.
func WithThreads(n uint) Option {
	return func(cfg *config) error {
		if n > MaxThreads {
			return errorc.With(ErrInvalidConfig, errorc.String("", fmt.Sprintf("WithThreads requires n <= %d", MaxThreads)))
		}
		cfg.Threads = n
		return nil
	}
}

// WithMinPerThread sets the minimum number of elements per local segment (default 128).
func WithMinPerThread(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMinPerThread requires n > 0"))
		}
		cfg.MinPerThread = n
		return nil
	}
}

// WithStrategy selects how merge rounds are planned and launched.
func WithStrategy(s Strategy) Option {
	return func(cfg *config) error {
		if s == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithStrategy requires a non-nil strategy"))
		}
		cfg.Strategy = s
		return nil
	}
}

// WithObserver adds o to the observers notified during the call.
func WithObserver(o Observer) Option {
	return func(cfg *config) error {
		if o == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithObserver requires a non-nil observer"))
		}
		cfg.Observers = append(cfg.Observers, o)
		return nil
	}
}

// WithLogger logs progress to l at Debug level and failures at Error level.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLogger requires a non-nil logger"))
		}
		cfg.Observers = append(cfg.Observers, NewZapObserver(l))
		return nil
	}
}

// WithMetrics records sort and merge instruments into p.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Observers = append(cfg.Observers, NewMetricsObserver(p))
		return nil
	}
}
