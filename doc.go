// Package psort sorts slices in place on several cores.
//
// A sort runs in two phases:
//   - Local sort: the slice is cut into one segment per worker and every
//     segment is sorted on its own goroutine.
//   - Merge rounds: adjacent sorted runs are merged pairwise until one run is
//     left. Every merge is itself split along the merge path into independent
//     pieces, so all workers stay busy even when only one pair is left.
//
// Merges alternate between the caller's slice and a scratch slice of the same
// length. The number of rounds is always even, so the result ends up in the
// caller's slice.
//
// Entry points
//   - Sort(data, opts...): natural ascending order.
//   - SortFunc(data, less, opts...): custom strict weak ordering.
//   - Merge(dst, a, b, less, opts...): parallel merge of two sorted slices.
//   - Partition(a, b, workers, less): merge path split points.
//
// The fork-join primitive the package is built on lives in package forkjoin.
//
// Defaults
// Unless overridden, the following defaults apply:
//   - Threads: 0 (runtime.GOMAXPROCS(0)), capped at MaxThreads
//   - MinPerThread: 128
//   - Strategy: MinimizedLaunch
//   - no observers
//
// Sorting is not stable: the relative order of equal elements is not preserved.
package psort
