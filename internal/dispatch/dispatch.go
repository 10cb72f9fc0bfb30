// Package dispatch fans a batch of independent projection jobs across N
// worker goroutines, or executes them inline if N<=1.
package dispatch

import (
	"sync"

	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/pathfind"
	"github.com/comparative-genomics/ipp/internal/pwaln"
)

// ProjectFunc computes the projection for a single coordinate.
type ProjectFunc func(genomics.Coords) pathfind.Result

// OnDoneFunc is invoked once per completed job. Calls are serialized: no
// two calls to onDone ever run concurrently, but there is no ordering
// guarantee across coords.
type OnDoneFunc func(genomics.Coords, pathfind.Result)

// ProjectBatch runs project for every coord in coords and reports each
// result to onDone. If nWorkers <= 1 it runs inline on the calling
// goroutine. Otherwise it spawns exactly nWorkers worker goroutines that
// pull jobs from a shared LIFO stack under a mutex, run project without
// holding it, and invoke onDone under the lock so callbacks never
// interleave. If any worker's project call panics, dispatch recovers it,
// stops handing that worker new jobs, lets the remaining workers drain,
// and re-panics on the calling goroutine with the first captured value.
func ProjectBatch(coords []genomics.Coords, nWorkers int, project ProjectFunc, onDone OnDoneFunc) {
	if nWorkers <= 1 {
		for _, c := range coords {
			onDone(c, project(c))
		}
		return
	}

	var mu sync.Mutex
	jobs := append([]genomics.Coords(nil), coords...)

	var wg sync.WaitGroup
	var panicOnce sync.Once
	var captured interface{}

	worker := func() {
		defer wg.Done()
		for {
			mu.Lock()
			if len(jobs) == 0 {
				mu.Unlock()
				return
			}
			c := jobs[len(jobs)-1]
			jobs = jobs[:len(jobs)-1]
			mu.Unlock()

			result, recovered := runProject(project, c)
			if recovered != nil {
				panicOnce.Do(func() { captured = recovered })
				return
			}

			mu.Lock()
			onDone(c, result)
			mu.Unlock()
		}
	}

	wg.Add(nWorkers)
	for i := 0; i < nWorkers; i++ {
		go worker()
	}
	wg.Wait()

	if captured != nil {
		panic(captured)
	}
}

// runProject invokes project and returns any recovered panic value so a
// single failing job can be captured and re-raised on the dispatcher's
// calling goroutine rather than crashing a worker silently.
func runProject(project ProjectFunc, c genomics.Coords) (result pathfind.Result, recovered interface{}) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
		}
	}()
	return project(c), nil
}

// StoreProjector builds a ProjectFunc bound to store and genomeSizes for a
// fixed species pair and half-life, for use with ProjectBatch.
func StoreProjector(store *pwaln.Store, genomeSizes pwaln.GenomeSizes, refSpecies, qrySpecies string, halfLife uint32) ProjectFunc {
	return func(c genomics.Coords) pathfind.Result {
		return pathfind.Project(store, genomeSizes, refSpecies, qrySpecies, c, halfLife)
	}
}
