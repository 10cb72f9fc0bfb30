// Package project implements the single-hop linear interpolation of a
// reference coordinate into a query coordinate, and its distance-decay
// score.
package project

import (
	"math"

	"github.com/comparative-genomics/ipp/internal/anchor"
	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/pwaln"
)

// Result is the outcome of projecting a single coordinate across one
// species pair.
type Result struct {
	Score      float64
	NextCoords genomics.Coords
	Anchors    anchor.Anchors
}

// Scaling computes the scaling factor for a reference genome of size
// genomeSize such that a distance of halfLife base pairs in the reference
// yields a score of 0.5.
func Scaling(genomeSize uint64, halfLife uint32) float64 {
	return -1.0 * float64(halfLife) / (float64(genomeSize) * math.Log(0.5))
}

// Score computes the distance-decay score for loc relative to the bounds
// [left, right], for a reference genome of the given size and the given
// scaling factor. The result is in (0, 1] and equals 1 iff loc == left or
// loc == right.
func Score(loc, left, right uint32, genomeSize uint64, scaling float64) float64 {
	d := loc - left
	if right-loc < d {
		d = right - loc
	}
	return math.Exp(-1.0 * float64(d) / (float64(genomeSize) * scaling))
}

// Genomic projects refCoords from chrom onto the query species described by
// chrom, returning the interpolated query coordinate and its score. scaling
// must have been computed from the genome size of the original reference
// species (see the MultiHopPathfinder design notes); genomeSize is the size
// of the *current hop's* reference species, used inside Score.
func Genomic(chrom pwaln.Chrom, refCoords genomics.Coords, genomeSize uint64, scaling float64) (Result, bool) {
	anchors, ok := anchor.Find(chrom, refCoords)
	if !ok {
		return Result{}, false
	}

	loc := refCoords.Loc
	isReversed := anchors.Upstream.IsQryReversed()

	var qryUpStart, qryUpEnd uint32
	if !isReversed {
		qryUpStart, qryUpEnd = anchors.Upstream.QryStart, anchors.Upstream.QryEnd
	} else {
		qryUpStart, qryUpEnd = anchors.Downstream.QryEnd, anchors.Downstream.QryStart
	}

	var refLeft, refRight, qryLeft, qryRight uint32
	var score float64

	if anchors.Upstream == anchors.Downstream {
		refLeft, refRight = anchors.Upstream.RefStart, anchors.Upstream.RefEnd
		qryLeft, qryRight = qryUpStart, qryUpEnd
		score = 1.0
	} else {
		var qryDownStart uint32
		if !isReversed {
			qryDownStart = anchors.Downstream.QryStart
		} else {
			qryDownStart = anchors.Upstream.QryEnd
		}

		refLeft, refRight = anchors.Upstream.RefEnd, anchors.Downstream.RefStart
		qryLeft, qryRight = qryUpEnd, qryDownStart

		score = Score(loc, refLeft, refRight, genomeSize, scaling)
	}

	frac := float64(loc-refLeft) / float64(refRight-refLeft)
	qryLoc := qryLeft + uint32(frac*float64(qryRight-qryLeft))

	return Result{
		Score:      score,
		NextCoords: genomics.Coords{Chrom: anchors.Upstream.QryChrom, Loc: qryLoc},
		Anchors:    anchors,
	}, true
}

// SingleHop looks up the pwaln for (refSpecies, qrySpecies) in store and, if
// present, projects refCoords across it. It returns false if there is no
// pwaln for the species pair, or if the anchor finder rejects refCoords.
func SingleHop(store *pwaln.Store, refSpecies, qrySpecies string, refCoords genomics.Coords, refGenomeSize uint64, scaling float64) (Result, bool) {
	chrom, ok := store.Pairs(refSpecies, qrySpecies)
	if !ok {
		return Result{}, false
	}
	return Genomic(chrom, refCoords, refGenomeSize, scaling)
}
