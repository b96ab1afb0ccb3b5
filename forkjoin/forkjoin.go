// Package forkjoin runs a per-index callback over an integer range split into
// near-equal contiguous segments, one goroutine per segment.
//
// The last segment always runs on the calling goroutine. ForEach blocks until
// every segment has finished; ForEachAsync returns a Handle that must be joined
// later, which allows several independent groups to be in flight at once.
//
// Goroutines are started fresh for every call; there is no persistent pool.
// The package does not synchronize callback invocations beyond the final join,
// so callers are responsible for keeping side effects of different indices
// disjoint.
package forkjoin

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Bounds returns the half-open range [lo, hi) of segment seg when n indices are
// divided into segments parts. Boundaries are interpolated in floating point and
// rounded half away from zero, so segment lengths differ by at most one.
func Bounds(n, segments, seg int) (lo, hi int) {
	if segments < 1 {
		segments = 1
	}
	delta := float64(n) / float64(segments)
	return round(float64(seg) * delta), round(float64(seg+1) * delta)
}

func round(x float64) int { return int(math.Round(x)) }

// Handle tracks one group of segments started by ForEachAsync.
// A Handle must not be copied.
type Handle struct {
	g       errgroup.Group
	errOnce sync.Once
	err     error
}

// ForEach calls fn(i) exactly once for every i in [begin, end), split into
// segments groups of consecutive indices. segments-1 groups run on new
// goroutines and the last one on the caller. segments is clamped to [1, end-begin].
//
// A segment stops at the first index whose callback returns an error or panics.
// ForEach returns only after all segments have finished; the returned error is
// the first failure recorded in the group, wrapped in a *SegmentError.
func ForEach(begin, end int, fn func(i int) error, segments int, opts ...Option) error {
	return ForEachAsync(begin, end, fn, segments, opts...).Join()
}

// ForEachAsync behaves like ForEach but does not wait for the launched
// goroutines. The final segment has already completed on the calling goroutine
// when ForEachAsync returns. The caller must call Join on the returned Handle.
func ForEachAsync(begin, end int, fn func(i int) error, segments int, opts ...Option) *Handle {
	h := &Handle{}
	n := end - begin
	if n <= 0 {
		return h
	}
	if segments < 1 {
		segments = 1
	}
	if segments > n {
		segments = n
	}
	cfg := newConfig(opts)

	for seg := 0; seg < segments-1; seg++ {
		lo, hi := Bounds(n, segments, seg)
		s := Segment{Index: seg, Lo: begin + lo, Hi: begin + hi}
		h.g.Go(func() error { return h.run(s, fn, cfg.hook) })
	}

	lo, hi := Bounds(n, segments, segments-1)
	_ = h.run(Segment{Index: segments - 1, Lo: begin + lo, Hi: begin + hi, Inline: true}, fn, cfg.hook)
	return h
}

// Join blocks until every goroutine of the group has returned and reports the
// first failure. Join on a nil Handle returns nil. Calling Join again returns
// the same result.
func (h *Handle) Join() error {
	if h == nil {
		return nil
	}
	_ = h.g.Wait()
	return h.err
}

// JoinAsync is the function form of h.Join.
func JoinAsync(h *Handle) error { return h.Join() }

func (h *Handle) run(s Segment, fn func(int) error, hook Hook) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, p)
		}
		if err != nil {
			err = newSegmentError(err, s.Index, s.Lo, s.Hi)
			h.errOnce.Do(func() { h.err = err })
		}
	}()

	if hook != nil {
		hook(s)
	}
	for i := s.Lo; i < s.Hi; i++ {
		if err = fn(i); err != nil {
			return err
		}
	}
	return nil
}
