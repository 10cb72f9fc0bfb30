package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comparative-genomics/ipp/internal/anchor"
	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/pwaln"
)

func collinearChrom(qryChromOffset int) pwaln.Chrom {
	entries := make([]pwaln.Entry, 0, anchor.MinN+1)
	for i := 0; i < anchor.MinN+1; i++ {
		start := uint32(i * 1000)
		qryStart := start + uint32(qryChromOffset)
		entries = append(entries, pwaln.Entry{
			RefStart: start, RefEnd: start + 10,
			QryStart: qryStart, QryEnd: qryStart + 10,
		})
	}
	return pwaln.Chrom{0: entries}
}

// collinearChromNear returns anchor.MinN+1 collinear entries spaced 1000bp
// apart straddling base, so a projection of base itself has small,
// near-1-scoring flanking anchors on both sides.
func collinearChromNear(base uint32, qryChromOffset int) pwaln.Chrom {
	entries := make([]pwaln.Entry, 0, anchor.MinN+1)
	offset := base - uint32((anchor.MinN/2)*1000)
	for i := 0; i < anchor.MinN+1; i++ {
		start := offset + uint32(i*1000)
		qryStart := start + uint32(qryChromOffset)
		entries = append(entries, pwaln.Entry{
			RefStart: start, RefEnd: start + 10,
			QryStart: qryStart, QryEnd: qryStart + 10,
		})
	}
	return pwaln.Chrom{0: entries}
}

func TestProject_DirectHop(t *testing.T) {
	store := pwaln.New([]string{"chr1"}, map[string]pwaln.Pairs{
		"hg38": {"mm10": collinearChrom(0)},
	})
	sizes := pwaln.GenomeSizes{"hg38": 1_000_000, "mm10": 1_000_000}

	result := Project(store, sizes, "hg38", "mm10", genomics.Coords{Chrom: 0, Loc: 500}, 100_000)

	require.NotNil(t, result.Direct)
	best, ok := result.ShortestPath["mm10"]
	require.True(t, ok)
	assert.Equal(t, "hg38", best.PrevSpecies)
}

func TestProject_MultiHopBeatsWeakDirect(t *testing.T) {
	// loc sits far from both of the direct hop's flanking anchors (a
	// near-zero score), but each leg of a two-hop path through an
	// intermediate species has tight flanking anchors (near-1 scores),
	// so the search must prefer the longer path.
	const loc = 500_000

	weakDirect := pwaln.Chrom{0: []pwaln.Entry{
		{RefStart: 0, RefEnd: 10, QryStart: 0, QryEnd: 10},
		{RefStart: 1_000_000, RefEnd: 1_000_010, QryStart: 1_000_000, QryEnd: 1_000_010},
	}}
	for i := 2; i < anchor.MinN+2; i++ {
		start := uint32(2_000_000 + i*1000)
		weakDirect[0] = append(weakDirect[0], pwaln.Entry{RefStart: start, RefEnd: start + 1, QryStart: start, QryEnd: start + 1})
	}

	store := pwaln.New([]string{"chr1"}, map[string]pwaln.Pairs{
		"hg38":    {"mm10": weakDirect, "galGal6": collinearChromNear(loc, 0)},
		"galGal6": {"mm10": collinearChromNear(loc, 0)},
	})
	sizes := pwaln.GenomeSizes{"hg38": 1_000_000, "mm10": 1_000_000, "galGal6": 1_000_000}

	result := Project(store, sizes, "hg38", "mm10", genomics.Coords{Chrom: 0, Loc: loc}, 100_000)

	require.NotNil(t, result.Direct)
	best, ok := result.ShortestPath["mm10"]
	require.True(t, ok)
	assert.Greater(t, best.Score, result.Direct.Score)
	assert.Equal(t, "galGal6", best.PrevSpecies)
}

func TestProject_NoPath(t *testing.T) {
	store := pwaln.New([]string{"chr1"}, map[string]pwaln.Pairs{})
	sizes := pwaln.GenomeSizes{"hg38": 1_000_000}

	result := Project(store, sizes, "hg38", "mm10", genomics.Coords{Chrom: 0, Loc: 500}, 100_000)

	assert.Nil(t, result.Direct)
	_, ok := result.ShortestPath["mm10"]
	assert.False(t, ok)
}

func TestProject_TerminationBound(t *testing.T) {
	// With n species fully connected to each other, the search must
	// terminate having visited at most n distinct shortest-path entries.
	species := []string{"a", "b", "c", "d"}
	pwalns := make(map[string]pwaln.Pairs)
	for _, ref := range species {
		pairs := make(pwaln.Pairs)
		for _, qry := range species {
			if qry != ref {
				pairs[qry] = collinearChrom(0)
			}
		}
		pwalns[ref] = pairs
	}
	store := pwaln.New([]string{"chr1"}, pwalns)
	sizes := pwaln.GenomeSizes{"a": 1_000_000, "b": 1_000_000, "c": 1_000_000, "d": 1_000_000}

	result := Project(store, sizes, "a", "d", genomics.Coords{Chrom: 0, Loc: 500}, 100_000)
	assert.LessOrEqual(t, len(result.ShortestPath), len(species))
}
