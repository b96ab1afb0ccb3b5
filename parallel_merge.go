package psort

import (
	"fmt"

	"github.com/ygrebnov/psort/forkjoin"
)

// Merge merges the sorted runs a and b into dst using several goroutines.
// dst must hold exactly len(a)+len(b) elements and must not overlap a or b.
//
// The worker count follows WithThreads and WithMinPerThread the same way as
// SortFunc. The output equals that of one sequential merge of a and b.
func Merge[E any](dst, a, b []E, less func(x, y E) bool, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if len(dst) != len(a)+len(b) {
		return fmt.Errorf("%w: len(dst)=%d, len(a)+len(b)=%d", ErrLengthMismatch, len(dst), len(a)+len(b))
	}

	workers := effectiveThreads(len(dst), cfg.Threads, cfg.MinPerThread)
	return parallelMerge(dst, a, b, less, workers, segmentHook(cfg.observer())...)
}

// parallelMerge splits the merge of a and b along the merge path into workers
// independent sequential merges that write disjoint parts of dst.
func parallelMerge[E any](dst, a, b []E, less func(x, y E) bool, workers int, opts ...forkjoin.Option) error {
	total := len(a) + len(b)
	if total == 0 {
		return nil
	}
	workers = clampWorkers(workers, total)

	var table []int
	if err := guard(func() { table = partitionTable(a, b, workers, less) }); err != nil {
		return err
	}

	spacing := float64(total) / float64(workers)
	return forkjoin.ForEach(0, workers, func(k int) error {
		grid := round(float64(k) * spacing)
		a0, a1 := table[k], table[k+1]
		b0 := grid - a0
		b1 := round(float64(k+1)*spacing) - a1

		// An empty side turns into a plain copy inside mergeInto.
		mergeInto(dst[grid:grid+(a1-a0)+(b1-b0)], a[a0:a1], b[b0:b1], less)
		return nil
	}, workers, opts...)
}

// guard runs fn and converts a panic into an error wrapping forkjoin.ErrPanicked.
func guard(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", forkjoin.ErrPanicked, p)
		}
	}()
	fn()
	return nil
}
