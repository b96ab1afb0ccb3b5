package forkjoin

// Segment describes one contiguous sub-range handed to a single goroutine.
type Segment struct {
	// Index is the position of the segment within its group, starting at 0.
	Index int
	// Lo and Hi bound the half-open index range [Lo, Hi).
	Lo, Hi int
	// Inline is true for the final segment, which runs on the calling goroutine.
	Inline bool
}

// Len returns the number of indices in the segment.
func (s Segment) Len() int { return s.Hi - s.Lo }

// Hook is invoked at the start of every segment, on the goroutine running it.
// Implementations must be safe for concurrent use.
type Hook func(Segment)

// Option configures a single ForEach / ForEachAsync call.
type Option func(*config)

type config struct {
	hook Hook
}

// WithHook installs h to observe segment starts. A nil hook is ignored.
func WithHook(h Hook) Option {
	return func(c *config) {
		if h != nil {
			c.hook = h
		}
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
