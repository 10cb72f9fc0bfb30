// Package anchor implements the anchor-selection algorithm: neighbor
// search, major-chromosome filtering, and collinearity filtering, that
// produces the flanking pwaln entries used for single-hop interpolation.
package anchor

import (
	"sort"

	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/lcs"
	"github.com/comparative-genomics/ipp/internal/pwaln"
)

const (
	// MinN is the minimum number of collinear anchors required to accept
	// a projection; species pairs with very large evolutionary distances
	// otherwise produce too many false positives.
	MinN = 5
	// TopN is the maximum number of upstream/downstream candidates kept
	// per side before the collinearity filter runs.
	TopN = 20
)

// Anchors is a pair of flanking pwaln entries suitable for interpolation,
// or the same entry twice when the query location lies inside an aligned
// block.
type Anchors struct {
	Upstream, Downstream pwaln.Entry
}

// Find returns the anchors for refLoc within chrom[refLoc.Chrom], or false
// if the location lies outside the usable syntenic region.
func Find(chrom pwaln.Chrom, refLoc genomics.Coords) (Anchors, bool) {
	entries := chrom[refLoc.Chrom]
	loc := refLoc.Loc

	var upstream, downstream, overlap []pwaln.Entry
scan:
	for _, e := range entries {
		switch {
		case e.RefEnd <= loc:
			upstream = append(upstream, e)
		case loc < e.RefStart:
			downstream = append(downstream, e)
			if len(downstream) == TopN {
				// Entries are sorted by RefStart ascending, so every
				// entry after this one is farther from loc.
				break scan
			}
		default:
			overlap = append(overlap, e)
		}
	}

	// Keep only the TopN closest upstream candidates (largest RefEnd).
	sort.Slice(upstream, func(i, j int) bool { return upstream[i].RefEnd > upstream[j].RefEnd })
	if len(upstream) > TopN {
		upstream = upstream[:TopN]
	}

	majorChrom, ok := majorQryChrom(overlap, upstream, downstream)
	if !ok {
		return Anchors{}, false
	}
	upstream = filterQryChrom(upstream, majorChrom)
	overlap = filterQryChrom(overlap, majorChrom)
	downstream = filterQryChrom(downstream, majorChrom)

	if len(upstream) == 0 || len(downstream) == 0 {
		return Anchors{}, false
	}

	closest := make([]pwaln.Entry, 0, len(upstream)+len(overlap)+len(downstream))
	closest = append(closest, upstream...)
	closest = append(closest, overlap...)
	closest = append(closest, downstream...)
	sort.Slice(closest, func(i, j int) bool {
		if closest[i].RefStart != closest[j].RefStart {
			return closest[i].RefStart < closest[j].RefStart
		}
		return closest[i].RefEnd < closest[j].RefEnd
	})

	closest = lcs.Longest(closest)
	if len(closest) < MinN {
		return Anchors{}, false
	}

	return selectAnchors(closest, loc)
}

// majorQryChrom returns the QryChrom value with the highest combined
// occurrence count across the three buckets, breaking ties by ascending
// ChromID for determinism.
func majorQryChrom(buckets ...[]pwaln.Entry) (genomics.ChromID, bool) {
	counts := make(map[genomics.ChromID]int)
	for _, bucket := range buckets {
		for _, e := range bucket {
			counts[e.QryChrom]++
		}
	}
	if len(counts) == 0 {
		return 0, false
	}

	chroms := make([]genomics.ChromID, 0, len(counts))
	for c := range counts {
		chroms = append(chroms, c)
	}
	sort.Slice(chroms, func(i, j int) bool { return chroms[i] < chroms[j] })

	best, bestCount := chroms[0], counts[chroms[0]]
	for _, c := range chroms[1:] {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best, true
}

func filterQryChrom(entries []pwaln.Entry, majorChrom genomics.ChromID) []pwaln.Entry {
	filtered := entries[:0:0]
	for _, e := range entries {
		if e.QryChrom == majorChrom {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// selectAnchors picks the anchor pair from the collinear subsequence: the
// overlapping entry closest to loc if one contains it, otherwise the
// closest upstream/downstream flanks.
func selectAnchors(closest []pwaln.Entry, loc uint32) (Anchors, bool) {
	var upstream, downstream, overlap *pwaln.Entry

	for i := range closest {
		e := &closest[i]
		switch {
		case e.RefEnd <= loc:
			if upstream == nil || upstream.RefEnd < e.RefEnd {
				upstream = e
			}
		case loc < e.RefStart:
			if downstream == nil || e.RefStart < downstream.RefStart {
				downstream = e
				// Entries that follow are only farther away.
			}
		default:
			if overlap == nil || minDist(*e, loc) < minDist(*overlap, loc) {
				overlap = e
			}
		}
	}

	if overlap != nil {
		return Anchors{Upstream: *overlap, Downstream: *overlap}, true
	}
	if upstream == nil || downstream == nil {
		return Anchors{}, false
	}
	return Anchors{Upstream: *upstream, Downstream: *downstream}, true
}

func minDist(e pwaln.Entry, loc uint32) uint32 {
	startDist := absDiff(e.RefStart, loc)
	endDist := absDiff(e.RefEnd, loc)
	if startDist < endDist {
		return startDist
	}
	return endDist
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
