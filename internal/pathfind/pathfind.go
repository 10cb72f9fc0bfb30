// Package pathfind implements the Dijkstra-style best-path search across
// species, composing SingleHopProjector results along the way.
package pathfind

import (
	"container/heap"

	"github.com/comparative-genomics/ipp/internal/anchor"
	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/project"
	"github.com/comparative-genomics/ipp/internal/pwaln"
)

// ShortestPathEntry records the best-known path to a species.
type ShortestPathEntry struct {
	Score           float64
	PrevSpecies     string
	Coords          genomics.Coords
	AnchorsFromPrev anchor.Anchors
}

// Result is the outcome of a multi-hop projection request: the direct
// single-hop result between the two requested species, if any, plus the
// full best-path map.
type Result struct {
	Direct       *project.Result
	ShortestPath map[string]ShortestPathEntry
}

// Project runs the best-path search from refSpecies to qrySpecies over
// store, using scaling computed once from refSpecies' genome size.
func Project(store *pwaln.Store, genomeSizes pwaln.GenomeSizes, refSpecies, qrySpecies string, refCoords genomics.Coords, halfLife uint32) Result {
	scaling := project.Scaling(genomeSizes[refSpecies], halfLife)

	shortestPath := map[string]ShortestPathEntry{
		refSpecies: {Score: 1.0, Coords: refCoords},
	}

	pq := &priorityQueue{{score: 1.0, species: refSpecies, coords: refCoords}}
	heap.Init(pq)

	result := Result{ShortestPath: shortestPath}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(pqEntry)

		if best, ok := shortestPath[current.species]; ok && best.Score > current.score {
			// A faster path to this species was already found; this
			// entry is stale.
			continue
		}

		if current.species == qrySpecies {
			break
		}

		for _, nxtSpecies := range store.Neighbors(current.species) {
			if best, ok := shortestPath[nxtSpecies]; ok && current.score <= best.Score {
				// nxtSpecies cannot be improved through current.species.
				continue
			}

			proj, ok := project.SingleHop(store, current.species, nxtSpecies, current.coords, genomeSizes[current.species], scaling)
			if !ok {
				continue
			}

			if current.species == refSpecies && nxtSpecies == qrySpecies {
				direct := proj
				result.Direct = &direct
			}

			nextScore := current.score * proj.Score
			if best, ok := shortestPath[nxtSpecies]; ok && nextScore <= best.Score {
				continue
			}

			shortestPath[nxtSpecies] = ShortestPathEntry{
				Score:           nextScore,
				PrevSpecies:     current.species,
				Coords:          proj.NextCoords,
				AnchorsFromPrev: proj.Anchors,
			}
			heap.Push(pq, pqEntry{score: nextScore, species: nxtSpecies, coords: proj.NextCoords})
		}
	}

	return result
}

// pqEntry is a max-priority-queue entry keyed by score, with a stable
// tie-break on (species, coords) so results are deterministic across runs.
type pqEntry struct {
	score   float64
	species string
	coords  genomics.Coords
}

func (a pqEntry) less(b pqEntry) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.species != b.species {
		return a.species < b.species
	}
	return a.coords.Less(b.coords)
}

type priorityQueue []pqEntry

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].less(pq[j]) }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqEntry)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
