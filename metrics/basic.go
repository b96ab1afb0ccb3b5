package metrics

import (
	"sync"
	"sync/atomic"
)

// BasicProvider keeps instruments in memory so tests and small programs can
// read them back. Instruments are created on first use and shared by name.
type BasicProvider struct {
	counters   registry[*BasicCounter]
	updowns    registry[*BasicUpDownCounter]
	histograms registry[*BasicHistogram]
}

// NewBasicProvider returns an empty BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{}
}

func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return p.counters.get(name, opts, func() *BasicCounter { return &BasicCounter{} })
}

func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return p.updowns.get(name, opts, func() *BasicUpDownCounter { return &BasicUpDownCounter{} })
}

func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return p.histograms.get(name, opts, func() *BasicHistogram { return &BasicHistogram{} })
}

// CounterValue returns the current value of the named counter, or 0 if it was never created.
func (p *BasicProvider) CounterValue(name string) int64 {
	if c, ok := p.counters.lookup(name); ok {
		return c.Snapshot()
	}
	return 0
}

// UpDownValue returns the current value of the named up/down counter, or 0.
func (p *BasicProvider) UpDownValue(name string) int64 {
	if u, ok := p.updowns.lookup(name); ok {
		return u.Snapshot()
	}
	return 0
}

// HistogramSnapshot returns the state of the named histogram and whether it exists.
func (p *BasicProvider) HistogramSnapshot(name string) (HistSnapshot, bool) {
	if h, ok := p.histograms.lookup(name); ok {
		return h.Snapshot(), true
	}
	return HistSnapshot{}, false
}

// Description returns the advisory metadata the named instrument was created with.
func (p *BasicProvider) Description(name string) (InstrumentConfig, bool) {
	for _, lookup := range []func(string) (InstrumentConfig, bool){
		p.counters.config, p.updowns.config, p.histograms.config,
	} {
		if cfg, ok := lookup(name); ok {
			return cfg, true
		}
	}
	return InstrumentConfig{}, false
}

type entry[T any] struct {
	inst T
	cfg  InstrumentConfig
}

// registry is a name -> instrument map with double-checked creation.
type registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
}

func (r *registry[T]) lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.inst, ok
}

func (r *registry[T]) config(name string) (InstrumentConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.cfg, ok
}

func (r *registry[T]) get(name string, opts []InstrumentOption, create func() T) T {
	if inst, ok := r.lookup(name); ok {
		return inst
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		return e.inst
	}
	if r.entries == nil {
		r.entries = make(map[string]entry[T])
	}
	inst := create()
	r.entries[name] = entry[T]{inst: inst, cfg: buildConfig(opts)}
	return inst
}

// BasicCounter is a concurrency-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current total.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a concurrency-safe up/down counter.
type BasicUpDownCounter struct {
	val atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) { u.val.Add(n) }

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram aggregates count, sum, min and max without buckets.
type BasicHistogram struct {
	mu   sync.Mutex
	snap HistSnapshot
}

// HistSnapshot is a point-in-time copy of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Mean returns Sum/Count, or 0 for an empty histogram.
func (s HistSnapshot) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snap.Count == 0 || v < h.snap.Min {
		h.snap.Min = v
	}
	if h.snap.Count == 0 || v > h.snap.Max {
		h.snap.Max = v
	}
	h.snap.Count++
	h.snap.Sum += v
}

// Snapshot returns a copy of the current state.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snap
}
