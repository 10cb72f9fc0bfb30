package pwaln

import (
	"fmt"
	"io"
	"sort"

	"github.com/comparative-genomics/ipp/internal/binary"
	"github.com/comparative-genomics/ipp/internal/genomics"
)

// Write serializes the store into the binary pwaln format described in the
// package's Load. Species are written in a deterministic, sorted order so
// that re-serializing a loaded store is reproducible; the format itself has
// no ordering requirement on species or chromosome buckets. Entries within
// a bucket are written in their stored order; neither Write nor Load checks
// that they are sorted.
func (s *Store) Write(w io.Writer) error {
	if len(s.chroms) > 1<<16-1 {
		return fmt.Errorf("too many chromosomes: %d", len(s.chroms))
	}
	if err := binary.Write(w, uint16(len(s.chroms))); err != nil {
		return fmt.Errorf("writing chromosome count: %v", err)
	}
	for _, name := range s.chroms {
		if err := binary.WriteCString(w, name); err != nil {
			return fmt.Errorf("writing chromosome %q: %v", name, err)
		}
	}

	refSpecies := sortedKeys(s.pwalns)
	if len(refSpecies) > 1<<8-1 {
		return fmt.Errorf("too many reference species: %d", len(refSpecies))
	}
	if err := binary.Write(w, uint8(len(refSpecies))); err != nil {
		return fmt.Errorf("writing reference species count: %v", err)
	}

	for _, ref := range refSpecies {
		if err := binary.WriteCString(w, ref); err != nil {
			return fmt.Errorf("writing reference species %q: %v", ref, err)
		}

		qrySpecies := sortedKeys(s.pwalns[ref])
		if len(qrySpecies) > 1<<8-1 {
			return fmt.Errorf("too many query species for %q: %d", ref, len(qrySpecies))
		}
		if err := binary.Write(w, uint8(len(qrySpecies))); err != nil {
			return fmt.Errorf("writing query species count: %v", err)
		}

		for _, qry := range qrySpecies {
			if err := binary.WriteCString(w, qry); err != nil {
				return fmt.Errorf("writing query species %q: %v", qry, err)
			}

			chrom := s.pwalns[ref][qry]
			refChroms := make([]genomics.ChromID, 0, len(chrom))
			for id := range chrom {
				refChroms = append(refChroms, id)
			}
			sort.Slice(refChroms, func(i, j int) bool { return refChroms[i] < refChroms[j] })

			if err := binary.Write(w, uint32(len(refChroms))); err != nil {
				return fmt.Errorf("writing bucket count: %v", err)
			}
			for _, id := range refChroms {
				entries := chrom[id]
				if err := binary.Write(w, uint32(len(entries))); err != nil {
					return fmt.Errorf("writing bucket entry count: %v", err)
				}
				for _, e := range entries {
					raw := struct {
						RefStart, RefEnd, QryStart, QryEnd uint32
						RefChrom, QryChrom                 uint16
					}{e.RefStart, e.RefEnd, e.QryStart, e.QryEnd, uint16(e.RefChrom), uint16(e.QryChrom)}
					if err := binary.Write(w, raw); err != nil {
						return fmt.Errorf("writing entry: %v", err)
					}
				}
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
