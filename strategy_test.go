package psort

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/psort/forkjoin"
)

func TestMergeRounds(t *testing.T) {
	tests := []struct{ threads, want int }{
		{1, 0}, {2, 2}, {3, 2}, {4, 2}, {5, 4}, {8, 4}, {9, 4}, {16, 4}, {17, 6}, {1024, 10},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, mergeRounds(tt.threads), "threads=%d", tt.threads)
	}
}

func TestDivUp(t *testing.T) {
	require.Equal(t, 2, divUp(4, 2))
	require.Equal(t, 3, divUp(5, 2))
	require.Equal(t, 1, divUp(1, 7))
}

// checkPlan verifies that a round's tasks tile [0, n) and that every boundary
// of the round is a local-sort boundary.
func checkPlan(t *testing.T, n, threads int, tasks []MergeTask) {
	t.Helper()
	require.NotEmpty(t, tasks)

	local := map[int]bool{n: true}
	for seg := 0; seg < threads; seg++ {
		lo, _ := forkjoin.Bounds(n, threads, seg)
		local[lo] = true
	}

	next := 0
	for i, task := range tasks {
		require.Equal(t, next, task.A.Lo, "task %d does not start where the previous ended", i)
		require.Equal(t, task.A.Hi, task.B.Lo)
		require.Equal(t, task.A.Lo, task.Dest)
		require.LessOrEqual(t, task.A.Lo, task.A.Hi)
		require.LessOrEqual(t, task.B.Lo, task.B.Hi)
		require.GreaterOrEqual(t, task.Threads, 1)
		require.True(t, local[task.A.Lo] && local[task.B.Lo] && local[task.B.Hi], "task %d boundaries %+v are not local-sort boundaries", i, task)
		require.Equal(t, i == len(tasks)-1 && task.Leftover, task.Leftover, "only the last task may be a leftover")
		next = task.B.Hi
	}
	require.Equal(t, n, next)
}

func TestStrategies_TileTheRange(t *testing.T) {
	for _, s := range []Strategy{MinimizedLaunch{}, Balanced{}} {
		for _, threads := range []int{2, 3, 4, 5, 6, 7, 8, 9, 13, 24, 33, 100} {
			for _, n := range []int{threads * 128, threads*128 + 1, 100003} {
				t.Run(fmt.Sprintf("%s/threads=%d/n=%d", s.Name(), threads, n), func(t *testing.T) {
					for r := 0; r < mergeRounds(threads); r++ {
						checkPlan(t, n, threads, s.Plan(n, threads, r))
					}
				})
			}
		}
	}
}

func TestStrategies_SameSpans(t *testing.T) {
	for _, threads := range []int{2, 3, 5, 7, 12, 31} {
		n := threads*1000 + 17
		for r := 0; r < mergeRounds(threads); r++ {
			m := MinimizedLaunch{}.Plan(n, threads, r)
			b := Balanced{}.Plan(n, threads, r)
			require.Equal(t, len(b), len(m), "threads=%d round=%d", threads, r)
			for i := range m {
				require.Equal(t, b[i].A, m[i].A)
				require.Equal(t, b[i].B, m[i].B)
				require.Equal(t, b[i].Leftover, m[i].Leftover)
			}
		}
	}
}

func TestMinimizedLaunch_ThreadBudget(t *testing.T) {
	tests := []struct {
		name         string
		n, threads   int
		round        int
		wantTasks    int
		wantPerTask  int
		wantLeftover int // 0 when the round has no leftover task
	}{
		{name: "even pairs", n: 800, threads: 8, round: 0, wantTasks: 4, wantPerTask: 2},
		{name: "odd segment count", n: 500, threads: 5, round: 0, wantTasks: 3, wantPerTask: 2, wantLeftover: 1},
		{name: "remainder goes to last task", n: 1000, threads: 10, round: 1, wantTasks: 3, wantPerTask: 4, wantLeftover: 2},
		{name: "one pair uses all threads", n: 800, threads: 8, round: 2, wantTasks: 1, wantPerTask: 8},
		{name: "copy-back round", n: 200, threads: 2, round: 1, wantTasks: 1, wantLeftover: 2},
		{name: "six threads second round", n: 600, threads: 6, round: 1, wantTasks: 2, wantPerTask: 3, wantLeftover: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := MinimizedLaunch{}.Plan(tt.n, tt.threads, tt.round)
			require.Len(t, tasks, tt.wantTasks)
			for _, task := range tasks {
				if task.Leftover {
					require.Equal(t, tt.wantLeftover, task.Threads)
					continue
				}
				require.Equal(t, tt.wantPerTask, task.Threads)
			}
			if tt.wantLeftover == 0 {
				require.False(t, tasks[len(tasks)-1].Leftover)
			}
		})
	}
}

func TestMinimizedLaunch_CopyBackRound(t *testing.T) {
	tasks := MinimizedLaunch{}.Plan(200, 2, 1)
	require.Equal(t, []MergeTask{{A: Span{0, 200}, B: Span{200, 200}, Dest: 0, Threads: 2, Leftover: true}}, tasks)
}

func TestBalanced_FullBudgetSequential(t *testing.T) {
	require.False(t, Balanced{}.Concurrent())
	require.True(t, MinimizedLaunch{}.Concurrent())

	for _, task := range (Balanced{}).Plan(700, 7, 0) {
		require.Equal(t, 7, task.Threads)
	}
}

func TestSpan_Len(t *testing.T) {
	require.Equal(t, 3, Span{2, 5}.Len())
	require.Equal(t, 0, Span{5, 5}.Len())
}
