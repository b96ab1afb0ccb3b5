package psort

import (
	"runtime"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/ygrebnov/psort/forkjoin"
)

// Sort sorts data in ascending order. See SortFunc.
func Sort[E constraints.Ordered](data []E, opts ...Option) error {
	return SortFunc(data, func(a, b E) bool { return a < b }, opts...)
}

// SortFunc sorts data in place according to less, which must be a strict weak
// ordering. The sort is not stable.
//
// data is cut into one segment per worker and the segments are sorted in
// parallel. Adjacent sorted runs are then merged pairwise, round after round,
// alternating between data and a scratch buffer of the same length until a
// single run is left in data.
//
// An error is returned for invalid options or when less panics. After a panic
// the contents of data are unspecified.
func SortFunc[E any](data []E, less func(a, b E) bool, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	obs := cfg.observer()
	s := &sorter[E]{
		data:     data,
		less:     less,
		threads:  effectiveThreads(len(data), cfg.Threads, cfg.MinPerThread),
		strategy: cfg.Strategy,
		obs:      obs,
		hook:     segmentHook(obs),
	}
	return s.run()
}

// effectiveThreads resolves the requested worker count for n elements: zero
// means GOMAXPROCS, and the result is capped at MaxThreads and at n/minPer so
// every segment holds at least minPer elements. It is never below 1.
func effectiveThreads(n int, requested, minPer uint) int {
	threads := int(requested)
	if threads == 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	threads = min(threads, MaxThreads)
	if minPer > 0 {
		threads = min(threads, n/int(minPer))
	}
	return max(threads, 1)
}

// sorter holds the state of one SortFunc call.
type sorter[E any] struct {
	data     []E
	scratch  []E
	less     func(a, b E) bool
	threads  int
	strategy Strategy
	obs      Observer
	hook     []forkjoin.Option
}

func (s *sorter[E]) run() (err error) {
	stats := SortStats{
		N:        len(s.data),
		Threads:  s.threads,
		Rounds:   mergeRounds(s.threads),
		Strategy: s.strategy.Name(),
	}
	s.obs.SortStarted(stats)
	start := time.Now()
	defer func() {
		s.scratch = nil
		stats.Elapsed = time.Since(start)
		stats.Err = err
		s.obs.SortFinished(stats)
	}()

	if err = s.localSort(); err != nil {
		return err
	}
	if s.threads == 1 {
		return nil
	}

	s.scratch = make([]E, len(s.data))
	// Rounds come in pairs: even rounds write to scratch, odd rounds back to data.
	for r := 0; r < stats.Rounds; r++ {
		src, dst := s.data, s.scratch
		if r%2 == 1 {
			src, dst = s.scratch, s.data
		}
		if err = s.mergeRound(r, src, dst); err != nil {
			return err
		}
	}
	return nil
}

func (s *sorter[E]) localSort() error {
	start := time.Now()
	n := len(s.data)
	err := forkjoin.ForEach(0, s.threads, func(i int) error {
		lo, hi := forkjoin.Bounds(n, s.threads, i)
		slices.SortFunc(s.data[lo:hi], s.less)
		return nil
	}, s.threads, s.hook...)

	s.obs.RoundFinished(RoundStats{Round: 0, Segments: s.threads, Elapsed: time.Since(start), Err: err})
	return err
}

func (s *sorter[E]) mergeRound(r int, src, dst []E) error {
	start := time.Now()
	tasks := s.strategy.Plan(len(s.data), s.threads, r)

	var err error
	if s.strategy.Concurrent() {
		err = s.mergeConcurrent(tasks, src, dst)
	} else {
		err = s.mergeSequential(tasks, src, dst)
	}

	s.obs.RoundFinished(RoundStats{
		Round:     r + 1,
		Segments:  (s.threads + 1<<r - 1) >> r,
		Tasks:     tasks,
		ToScratch: r%2 == 0,
		Elapsed:   time.Since(start),
		Err:       err,
	})
	return err
}

// mergeConcurrent launches the full merges of a round as one fork-join group,
// runs the leftover merge on the calling goroutine and then joins the group.
func (s *sorter[E]) mergeConcurrent(tasks []MergeTask, src, dst []E) error {
	full := tasks
	var leftover *MergeTask
	if k := len(tasks); k > 0 && tasks[k-1].Leftover {
		leftover = &tasks[k-1]
		full = tasks[:k-1]
	}

	h := forkjoin.ForEachAsync(0, len(full), func(i int) error {
		return s.merge(full[i], src, dst)
	}, len(full), s.hook...)

	var err error
	if leftover != nil {
		err = s.merge(*leftover, src, dst)
	}
	if joinErr := h.Join(); err == nil {
		err = joinErr
	}
	return err
}

func (s *sorter[E]) mergeSequential(tasks []MergeTask, src, dst []E) error {
	for _, t := range tasks {
		if err := s.merge(t, src, dst); err != nil {
			return err
		}
	}
	return nil
}

func (s *sorter[E]) merge(t MergeTask, src, dst []E) error {
	out := dst[t.Dest : t.Dest+t.A.Len()+t.B.Len()]
	return parallelMerge(out, src[t.A.Lo:t.A.Hi], src[t.B.Lo:t.B.Hi], s.less, t.Threads, s.hook...)
}
