// Package metrics defines the small instrument surface psort records into and
// two implementations of it: an in-memory BasicProvider and a NoopProvider.
//
// Adapters for external systems only need to implement Provider.
package metrics

// Provider hands out named instruments. Asking twice for the same name and
// kind must return the same instrument. Implementations must be safe for
// concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter accumulates a monotonic total.
type Counter interface {
	Add(n int64)
}

// UpDownCounter tracks a value that moves both ways, such as sorts in flight.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of measurements, such as durations in seconds.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig is advisory metadata attached to an instrument at creation.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets the instrument description.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets the instrument unit, e.g. "1" or "seconds".
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

func buildConfig(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
