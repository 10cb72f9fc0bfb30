// Package lcs implements the longest collinear subsequence search used by
// the anchor finder to reject pwaln entries that are not collinear with
// the majority of their neighbors.
package lcs

import "github.com/comparative-genomics/ipp/internal/pwaln"

// Longest returns the longer of the longest strictly query-forward
// collinear subsequence and the longest strictly query-reverse collinear
// subsequence of seq, which must already be sorted by RefStart ascending.
// Ties are broken in favor of the forward result.
func Longest(seq []pwaln.Entry) []pwaln.Entry {
	forward := longestIncreasing(seq,
		func(e pwaln.Entry) bool { return !e.IsQryReversed() },
		func(e pwaln.Entry) int64 { return int64(e.QryStart) },
		func(e pwaln.Entry) int64 { return int64(e.QryEnd) },
	)
	reverse := longestIncreasing(seq,
		func(e pwaln.Entry) bool { return e.IsQryReversed() },
		func(e pwaln.Entry) int64 { return -int64(e.QryStart) },
		func(e pwaln.Entry) int64 { return -int64(e.QryEnd) },
	)
	if len(forward) >= len(reverse) {
		return forward
	}
	return reverse
}

// longestIncreasing finds the longest subsequence of the elements of seq
// that satisfy filter such that consecutive picked elements a, b satisfy
// hi(a) <= lo(b). This is the patience-sort / Hunt-Szymanski variant,
// running in O(n log n).
func longestIncreasing(seq []pwaln.Entry, filter func(pwaln.Entry) bool, lo, hi func(pwaln.Entry) int64) []pwaln.Entry {
	// tails[k] is the index into seq of the smallest hi() known to
	// terminate a valid subsequence of length k+1.
	var tails []int
	prev := make([]int, len(seq))

	for i, e := range seq {
		if !filter(e) {
			continue
		}

		if len(tails) == 0 {
			tails = append(tails, i)
			continue
		}

		if hi(seq[tails[len(tails)-1]]) <= lo(e) {
			prev[i] = tails[len(tails)-1]
			tails = append(tails, i)
			continue
		}

		// Binary search for the smallest tail whose hi() is already >
		// lo(e); that tail is the first one e could improve on.
		u, v := 0, len(tails)-1
		for u < v {
			mid := (u + v) / 2
			if hi(seq[tails[mid]]) <= lo(e) {
				u = mid + 1
			} else {
				v = mid
			}
		}

		if hi(e) < hi(seq[tails[u]]) {
			if u > 0 {
				prev[i] = tails[u-1]
			}
			tails[u] = i
		}
	}

	if len(tails) == 0 {
		return nil
	}

	result := make([]pwaln.Entry, len(tails))
	idx := tails[len(tails)-1]
	for k := len(tails); k > 0; k-- {
		result[k-1] = seq[idx]
		idx = prev[idx]
	}
	return result
}
