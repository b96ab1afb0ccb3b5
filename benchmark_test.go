package psort

import (
	"fmt"
	"math/rand"
	"testing"

	"golang.org/x/exp/slices"
)

func BenchmarkSort(b *testing.B) {
	tests := []struct {
		name     string
		n        int
		threads  uint
		strategy Strategy
	}{
		// reference: sequential pdqsort
		{"slices_n1M", 1 << 20, 0, nil},

		{"minimized_n1M_t1", 1 << 20, 1, MinimizedLaunch{}},
		{"minimized_n1M_t4", 1 << 20, 4, MinimizedLaunch{}},
		{"minimized_n1M_auto", 1 << 20, 0, MinimizedLaunch{}},
		{"balanced_n1M_t4", 1 << 20, 4, Balanced{}},

		// odd thread count exercises the leftover task
		{"minimized_n1M_t7", 1 << 20, 7, MinimizedLaunch{}},
		{"minimized_n64K_auto", 1 << 16, 0, MinimizedLaunch{}},
	}

	source := randomInts(rand.New(rand.NewSource(1)), 1<<20, 1<<30)

	for _, test := range tests {
		b.Run(test.name, func(b *testing.B) {
			data := make([]int, test.n)
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				b.StopTimer()
				copy(data, source)
				b.StartTimer()

				if test.strategy == nil {
					slices.SortFunc(data, intLess)
					continue
				}
				if err := SortFunc(data, intLess, WithThreads(test.threads), WithStrategy(test.strategy)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkMerge(b *testing.B) {
	r := rand.New(rand.NewSource(2))
	a := sortedRandom(r, 1<<19, 1<<30)
	c := sortedRandom(r, 1<<19, 1<<30)
	dst := make([]int, len(a)+len(c))

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			for range b.N {
				if err := parallelMerge(dst, a, c, intLess, workers); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
