package psort

// mergeInto merges the sorted runs a and b into dst, which must hold exactly
// len(a)+len(b) elements and must not overlap either run.
//
// The last elements are compared once to find the run that runs out first; the
// loop is bounded by that run only and the other run's tail is copied in bulk.
// Equal elements are taken from a first when a runs out first and from b first
// otherwise, so the merge is not stable.
func mergeInto[E any](dst, a, b []E, less func(x, y E) bool) {
	switch {
	case len(a) == 0:
		copy(dst, b)
		return
	case len(b) == 0:
		copy(dst, a)
		return
	}

	i, j, k := 0, 0, 0
	if less(a[len(a)-1], b[len(b)-1]) {
		for i < len(a) {
			if !less(b[j], a[i]) {
				dst[k] = a[i]
				i++
			} else {
				dst[k] = b[j]
				j++
			}
			k++
		}
		copy(dst[k:], b[j:])
		return
	}

	for j < len(b) {
		if less(a[i], b[j]) {
			dst[k] = a[i]
			i++
		} else {
			dst[k] = b[j]
			j++
		}
		k++
	}
	copy(dst[k:], a[i:])
}
