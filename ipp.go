// Package ipp projects a genomic coordinate from a reference species to a
// query species by traversing a graph of pairwise whole-genome alignments
// between intermediate species.
//
// An Engine is built once from a loaded pwaln Store and its genome sizes
// and is safe for concurrent use by multiple goroutines: all of the data
// it reads is immutable after construction.
package ipp

import (
	"context"
	"io"

	"github.com/comparative-genomics/ipp/internal/anchor"
	"github.com/comparative-genomics/ipp/internal/dispatch"
	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/pathfind"
	"github.com/comparative-genomics/ipp/internal/pwaln"
)

// ChromID identifies a chromosome in the shared name table.
type ChromID = genomics.ChromID

// Coords identifies a 0-based position on a chromosome.
type Coords = genomics.Coords

// Anchors is a pair of flanking pwaln entries used for interpolation.
type Anchors = anchor.Anchors

// CoordProjection is the result of projecting a coordinate: the direct
// single-hop result between the requested species, if any, and the full
// best-path map discovered along the way.
type CoordProjection = pathfind.Result

// ShortestPathEntry records the best-known path to a species.
type ShortestPathEntry = pathfind.ShortestPathEntry

const defaultHalfLife uint32 = 1_000_000

// Engine holds a loaded PwalnStore and its genome sizes and answers
// projection requests against them. Engine is read-only after
// construction and may be shared across goroutines.
type Engine struct {
	store       *pwaln.Store
	genomeSizes pwaln.GenomeSizes
	halfLife    uint32
}

// NewEngine returns an Engine backed by store and genomeSizes, with the
// default half-life distance. Call SetHalfLife before issuing any
// projection if a different half-life is required; it is not a
// live-reconfigurable parameter once projections have started.
func NewEngine(store *pwaln.Store, genomeSizes pwaln.GenomeSizes) *Engine {
	return &Engine{store: store, genomeSizes: genomeSizes, halfLife: defaultHalfLife}
}

// LoadEngine reads a pwaln store from r and its genome sizes from the
// .sizes files in sizesDir, for every species named in the store as either
// a reference or a query species, and returns the resulting Engine.
func LoadEngine(r io.Reader, sizesDir string) (*Engine, error) {
	store, err := pwaln.Load(r)
	if err != nil {
		return nil, err
	}
	sizes, err := pwaln.LoadSizes(sizesDir, store.AllSpeciesNames())
	if err != nil {
		return nil, err
	}
	return NewEngine(store, sizes), nil
}

// LoadEngineFromSource is LoadEngine for a pwaln file and its .sizes files
// kept behind a pwaln.Opener, such as a storage.GCSSource, rather than a
// plain io.Reader and local directory.
func LoadEngineFromSource(ctx context.Context, src pwaln.Opener, pwalnName string) (*Engine, error) {
	store, err := pwaln.LoadFromSource(ctx, src, pwalnName)
	if err != nil {
		return nil, err
	}
	sizes, err := pwaln.LoadSizesFromSource(ctx, src, store.AllSpeciesNames())
	if err != nil {
		return nil, err
	}
	return NewEngine(store, sizes), nil
}

// SetHalfLife sets the half-life distance: the reference-genome distance
// at which a single-hop projection's score is 0.5. Must be called before
// any call to ProjectCoord or ProjectCoords.
func (e *Engine) SetHalfLife(bp uint32) {
	e.halfLife = bp
}

// ChromID looks up the id of the chromosome with the given name.
func (e *Engine) ChromID(name string) (ChromID, error) {
	return e.store.ChromID(name)
}

// ChromName returns the name of the chromosome with the given id.
func (e *Engine) ChromName(id ChromID) (string, error) {
	return e.store.ChromName(id)
}

// ProjectCoord projects a single coordinate from refSpecies to qrySpecies.
func (e *Engine) ProjectCoord(refSpecies, qrySpecies string, refCoords Coords) CoordProjection {
	return pathfind.Project(e.store, e.genomeSizes, refSpecies, qrySpecies, refCoords, e.halfLife)
}

// ProjectCoords fans coords across nWorkers goroutines (or runs inline if
// nWorkers <= 1) and invokes onDone once per completed job. Calls to
// onDone are serialized but carry no cross-coordinate ordering guarantee.
func (e *Engine) ProjectCoords(refSpecies, qrySpecies string, coords []Coords, nWorkers int, onDone func(Coords, CoordProjection)) {
	project := dispatch.StoreProjector(e.store, e.genomeSizes, refSpecies, qrySpecies, e.halfLife)
	dispatch.ProjectBatch(coords, nWorkers, project, onDone)
}
