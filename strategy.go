package psort

import (
	"math"
)

// Span is a half-open offset range [Lo, Hi).
type Span struct {
	Lo, Hi int
}

// Len returns the number of offsets in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// MergeTask describes one parallel merge: sorted runs A and B of the source
// buffer are merged into the destination buffer starting at Dest, using up to
// Threads goroutines.
type MergeTask struct {
	A, B    Span
	Dest    int
	Threads int
	// Leftover marks the task that absorbs the trailing, possibly partial,
	// segment of a round. At most one task per round has it set, and it is last.
	Leftover bool
}

// Strategy plans the merge rounds that follow the local sort.
//
// Round r merges pairs of runs of width delta*2^r, where delta is n/threads, so
// every boundary coincides with a local-sort boundary. Plan must return tasks
// with disjoint destination ranges covering [0, n).
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string
	// Plan returns the merge tasks of round r (0-based).
	Plan(n, threads, r int) []MergeTask
	// Concurrent reports whether the tasks of a round run at the same time.
	Concurrent() bool
}

// MinimizedLaunch runs all merges of a round at once and splits the thread
// budget between them. The last task receives whatever the full tasks leave.
// It is the default strategy.
type MinimizedLaunch struct{}

func (MinimizedLaunch) Name() string     { return "minimized-launch" }
func (MinimizedLaunch) Concurrent() bool { return true }

func (MinimizedLaunch) Plan(n, threads, r int) []MergeTask {
	delta := math.Ldexp(float64(n)/float64(threads), r)

	// Full pairs are counted on segment indices; n/(2*delta) can land just
	// below an integer and lose a pair.
	loops := threads >> (r + 1)
	loStart := float64(loops) * 2.0 * delta
	leftover := round(loStart) < n

	count := loops
	if leftover {
		count++
	}
	if count == 0 {
		return nil
	}
	perTask := divUp(threads, count)

	tasks := make([]MergeTask, 0, count)
	for i := 0; i < loops; i++ {
		lb := round(float64(2*i) * delta)
		lm := round(float64(2*i+1) * delta)
		le := round(float64(2*i+2) * delta)
		tasks = append(tasks, MergeTask{A: Span{lb, lm}, B: Span{lm, le}, Dest: lb, Threads: perTask})
	}
	if leftover {
		lb := round(loStart)
		mid := min(round(float64(2*loops+1)*delta), n)
		tasks = append(tasks, MergeTask{
			A:        Span{lb, mid},
			B:        Span{mid, n},
			Dest:     lb,
			Threads:  max(threads-loops*perTask, 1),
			Leftover: true,
		})
	}
	return tasks
}

// Balanced runs the merges of a round one after another, each with the full
// thread budget.
type Balanced struct{}

func (Balanced) Name() string     { return "balanced" }
func (Balanced) Concurrent() bool { return false }

func (Balanced) Plan(n, threads, r int) []MergeTask {
	delta := float64(n) / float64(threads)
	incr := 1 << r

	var tasks []MergeTask
	start, next := 0, 2*incr
	for ; next <= threads; next += 2 * incr {
		lb := round(float64(start) * delta)
		lm := round(float64(start+incr) * delta)
		le := round(float64(next) * delta)
		tasks = append(tasks, MergeTask{A: Span{lb, lm}, B: Span{lm, le}, Dest: lb, Threads: threads})
		start = next
	}
	if start < threads {
		lb := round(float64(start) * delta)
		lm := min(round(float64(start+incr)*delta), n)
		tasks = append(tasks, MergeTask{A: Span{lb, lm}, B: Span{lm, n}, Dest: lb, Threads: threads, Leftover: true})
	}
	return tasks
}

// mergeRounds returns the number of merge rounds needed for threads sorted
// segments: ceil(log2(threads)) rounded up to an even count, so the last round
// always writes back into the caller's buffer.
func mergeRounds(threads int) int {
	if threads <= 1 {
		return 0
	}
	depth := int(math.Ceil(math.Log2(float64(threads))))
	return depth + depth%2
}

func round(x float64) int { return int(math.Round(x)) }

func divUp(a, b int) int {
	if a%b == 0 {
		return a / b
	}
	return a/b + 1
}
