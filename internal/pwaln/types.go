// Package pwaln holds the in-memory representation of pairwise
// whole-genome alignments and the loader that populates it from the binary
// pwaln file format.
package pwaln

import "github.com/comparative-genomics/ipp/internal/genomics"

// EntrySize is the fixed on-disk size, in bytes, of a single PwalnEntry:
// four uint32 fields followed by two uint16 fields.
const EntrySize = 4*4 + 2*2

// Entry is an aligned block where [RefStart, RefEnd) on RefChrom corresponds
// to the interval on QryChrom bounded by QryStart and QryEnd. RefStart <
// RefEnd always holds; QryStart == QryEnd never holds.
type Entry struct {
	RefStart, RefEnd, QryStart, QryEnd uint32
	RefChrom, QryChrom                 genomics.ChromID
}

// IsQryReversed reports whether the entry aligns to the reverse strand of
// the query chromosome.
func (e Entry) IsQryReversed() bool {
	return e.QryStart > e.QryEnd
}

// Chrom maps a reference chromosome to its pwaln entries, sorted by
// RefStart ascending. Reference intervals may overlap.
type Chrom map[genomics.ChromID][]Entry

// Pairs maps a query species name to its Chrom data for a fixed reference
// species.
type Pairs map[string]Chrom

// GenomeSizes maps a species name to its total base count.
type GenomeSizes map[string]uint64
