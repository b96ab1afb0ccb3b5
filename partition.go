package psort

// Partition splits the merge of sorted runs a and b into workers output
// segments of near-equal length and returns, for each segment boundary, how
// many elements of a precede it.
//
// The result has P+1 entries where P is workers clamped to [1, len(a)+len(b)]:
// table[0] is 0, table[P] is len(a) and the entries never decrease. Segment k
// of the output consumes a[table[k]:table[k+1]] and the matching slice of b.
func Partition[E any](a, b []E, workers int, less func(x, y E) bool) []int {
	return partitionTable(a, b, clampWorkers(workers, len(a)+len(b)), less)
}

func partitionTable[E any](a, b []E, workers int, less func(x, y E) bool) []int {
	table := make([]int, workers+1)
	table[workers] = len(a)

	spacing := float64(len(a)+len(b)) / float64(workers)
	for k := 1; k < workers; k++ {
		table[k] = mergePath(a, b, round(float64(k)*spacing), less)
	}
	return table
}

// mergePath returns how many elements of a are among the first diag elements
// of the merged output: the smallest i with a[i] not ordered before b[diag-1-i].
func mergePath[E any](a, b []E, diag int, less func(x, y E) bool) int {
	lo := max(0, diag-len(b))
	hi := min(diag, len(a))
	for lo < hi {
		mid := lo + (hi-lo)>>1
		if less(a[mid], b[diag-1-mid]) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func clampWorkers(workers, total int) int {
	workers = min(workers, total, MaxThreads)
	return max(workers, 1)
}
