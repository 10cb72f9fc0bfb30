package pwaln

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/comparative-genomics/ipp/internal/binary"
	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/ipperr"
)

// Store is the read-only, in-memory pwaln data structure: a chromosome name
// table shared by all species, and a nested map
// refSpecies -> qrySpecies -> Chrom. It is immutable after Load returns.
type Store struct {
	chroms   []string
	chromIDs map[string]genomics.ChromID
	pwalns   map[string]Pairs
}

// Load reads the binary pwaln format (little-endian, tightly packed) from r
// and returns the populated Store. It fails with a MalformedInput error on
// truncation, an unknown chromosome id, or trailing bytes.
func Load(r io.Reader) (*Store, error) {
	br := bufio.NewReader(r)

	numChroms, err := readUint16(br)
	if err != nil {
		return nil, ipperr.NewMalformedInput("reading chromosome count", err)
	}

	chroms := make([]string, 0, numChroms)
	chromIDs := make(map[string]genomics.ChromID, numChroms)
	for i := uint16(0); i < numChroms; i++ {
		name, err := binary.ReadCString(br)
		if err != nil {
			return nil, ipperr.NewMalformedInput(fmt.Sprintf("reading chromosome %d", i), err)
		}
		chromIDs[name] = genomics.ChromID(len(chroms))
		chroms = append(chroms, name)
	}

	numRefSpecies, err := readUint8(br)
	if err != nil {
		return nil, ipperr.NewMalformedInput("reading reference species count", err)
	}

	pwalns := make(map[string]Pairs, numRefSpecies)
	for i := uint8(0); i < numRefSpecies; i++ {
		refSpecies, err := binary.ReadCString(br)
		if err != nil {
			return nil, ipperr.NewMalformedInput("reading reference species name", err)
		}

		numQrySpecies, err := readUint8(br)
		if err != nil {
			return nil, ipperr.NewMalformedInput("reading query species count", err)
		}

		pairs := make(Pairs, numQrySpecies)
		for j := uint8(0); j < numQrySpecies; j++ {
			qrySpecies, err := binary.ReadCString(br)
			if err != nil {
				return nil, ipperr.NewMalformedInput("reading query species name", err)
			}

			chrom, err := readChrom(br, uint16(numChroms))
			if err != nil {
				return nil, ipperr.NewMalformedInput(fmt.Sprintf("reading pwalns for %s/%s", refSpecies, qrySpecies), err)
			}
			pairs[qrySpecies] = chrom
		}
		pwalns[refSpecies] = pairs
	}

	if _, err := br.Peek(1); err != io.EOF {
		return nil, ipperr.NewMalformedInput("checking for trailing data", fmt.Errorf("unexpected data remaining after last species pair"))
	}

	return &Store{chroms: chroms, chromIDs: chromIDs, pwalns: pwalns}, nil
}

// LoadFromSource opens name through src and parses it as a pwaln binary
// file, as Load does for a plain io.Reader.
func LoadFromSource(ctx context.Context, src Opener, name string) (*Store, error) {
	r, err := src.Open(ctx, name)
	if err != nil {
		return nil, ipperr.NewIoError(fmt.Sprintf("opening %s", name), err)
	}
	defer r.Close()
	return Load(r)
}

func readChrom(br *bufio.Reader, numChroms uint16) (Chrom, error) {
	numBuckets, err := readUint32(br)
	if err != nil {
		return nil, fmt.Errorf("reading bucket count: %v", err)
	}

	chrom := make(Chrom, numBuckets)
	for k := uint32(0); k < numBuckets; k++ {
		numEntries, err := readUint32(br)
		if err != nil {
			return nil, fmt.Errorf("reading bucket %d entry count: %v", k, err)
		}

		entries := make([]Entry, numEntries)
		for n := uint32(0); n < numEntries; n++ {
			e, err := readEntry(br)
			if err != nil {
				return nil, fmt.Errorf("reading entry %d of bucket %d: %v", n, k, err)
			}
			if uint16(e.RefChrom) >= numChroms || uint16(e.QryChrom) >= numChroms {
				return nil, fmt.Errorf("entry %d of bucket %d references unknown chromosome id", n, k)
			}
			entries[n] = e
		}
		if numEntries > 0 {
			chrom[entries[0].RefChrom] = entries
		}
	}
	return chrom, nil
}

func readEntry(r io.Reader) (Entry, error) {
	var raw struct {
		RefStart, RefEnd, QryStart, QryEnd uint32
		RefChrom, QryChrom                 uint16
	}
	if err := binary.Read(r, &raw); err != nil {
		return Entry{}, err
	}
	return Entry{
		RefStart: raw.RefStart,
		RefEnd:   raw.RefEnd,
		QryStart: raw.QryStart,
		QryEnd:   raw.QryEnd,
		RefChrom: genomics.ChromID(raw.RefChrom),
		QryChrom: genomics.ChromID(raw.QryChrom),
	}, nil
}

func readUint8(r io.Reader) (uint8, error) {
	var v uint8
	err := binary.Read(r, &v)
	return v, err
}

func readUint16(r io.Reader) (uint16, error) {
	var v uint16
	err := binary.Read(r, &v)
	return v, err
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, &v)
	return v, err
}

// New builds a Store directly from a chromosome table and pwaln map,
// bypassing the binary loader. Used by cmd/ipp-convert and by tests that
// build fixtures in memory.
func New(chroms []string, pwalns map[string]Pairs) *Store {
	chromIDs := make(map[string]genomics.ChromID, len(chroms))
	for i, name := range chroms {
		chromIDs[name] = genomics.ChromID(i)
	}
	return &Store{chroms: chroms, chromIDs: chromIDs, pwalns: pwalns}
}

// Chroms returns the chromosome name table, ordered by ChromID.
func (s *Store) Chroms() []string {
	return s.chroms
}

// Species returns the reference species known to the store.
func (s *Store) Species() []string {
	species := make([]string, 0, len(s.pwalns))
	for sp := range s.pwalns {
		species = append(species, sp)
	}
	return species
}

// AllSpeciesNames returns every species that appears anywhere in the
// store, as either a reference or a query species, since genome sizes are
// looked up by whichever species acts as the reference for a given hop.
func (s *Store) AllSpeciesNames() []string {
	seen := make(map[string]struct{})
	for ref, pairs := range s.pwalns {
		seen[ref] = struct{}{}
		for qry := range pairs {
			seen[qry] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	return names
}

// ChromID looks up the id of the chromosome with the given name, using the
// name-to-id map built alongside the name table.
func (s *Store) ChromID(name string) (genomics.ChromID, error) {
	if id, ok := s.chromIDs[name]; ok {
		return id, nil
	}
	return 0, ipperr.NewUnknownName("looking up chromosome", fmt.Errorf("unknown chromosome: %s", name))
}

// ChromName returns the name of the chromosome with the given id.
func (s *Store) ChromName(id genomics.ChromID) (string, error) {
	if int(id) >= len(s.chroms) {
		return "", ipperr.NewUnknownName("looking up chromosome", fmt.Errorf("unknown chromosome id: %d", id))
	}
	return s.chroms[id], nil
}

// Pwalns returns the full refSpecies -> qrySpecies -> Chrom map for
// serialization.
func (s *Store) Pwalns() map[string]Pairs {
	return s.pwalns
}

// Pairs returns the Chrom map for the given ref/qry species pair, or false
// if there is no pwaln data for that pair.
func (s *Store) Pairs(refSpecies, qrySpecies string) (Chrom, bool) {
	pairs, ok := s.pwalns[refSpecies]
	if !ok {
		return nil, false
	}
	chrom, ok := pairs[qrySpecies]
	return chrom, ok
}

// Neighbors enumerates the query species reachable directly from species.
func (s *Store) Neighbors(species string) []string {
	pairs, ok := s.pwalns[species]
	if !ok {
		return nil
	}
	neighbors := make([]string, 0, len(pairs))
	for qry := range pairs {
		neighbors = append(neighbors, qry)
	}
	return neighbors
}

// LoadSizes sums the integer in the second tab-separated column of every
// line of <dir>/<species>.sizes, for each species in the set. It fails with
// an IoError on a missing file and a MalformedInput error on a line
// without a tab.
func LoadSizes(dir string, species []string) (GenomeSizes, error) {
	sizes := make(GenomeSizes, len(species))
	for _, sp := range species {
		path := filepath.Join(dir, sp+".sizes")
		f, err := os.Open(path)
		if err != nil {
			return nil, ipperr.NewIoError(fmt.Sprintf("opening %s", path), err)
		}
		total, err := sizeFromReader(f, path)
		f.Close()
		if err != nil {
			return nil, err
		}
		sizes[sp] = total
	}
	return sizes, nil
}

// sizeFromReader sums the integer in the second tab-separated column of
// every line read from r; source names the input for error messages.
func sizeFromReader(r io.Reader, source string) (uint64, error) {
	var total uint64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			return 0, ipperr.NewMalformedInput(fmt.Sprintf("parsing %s", source), fmt.Errorf("line with no tabstop: %q", line))
		}
		rest := line[tab+1:]
		if end := strings.IndexByte(rest, '\t'); end >= 0 {
			rest = rest[:end]
		}
		n, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
		if err != nil {
			return 0, ipperr.NewMalformedInput(fmt.Sprintf("parsing %s", source), err)
		}
		total += n
	}
	if err := scanner.Err(); err != nil {
		return 0, ipperr.NewIoError(fmt.Sprintf("reading %s", source), err)
	}
	return total, nil
}

// Opener is the subset of storage.Source that LoadFromSource and
// LoadSizesFromSource need: a way to open a named object for reading.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// LoadSizesFromSource is LoadSizes for a corpus kept behind an Opener
// (typically a GCS bucket) instead of a local directory.
func LoadSizesFromSource(ctx context.Context, src Opener, species []string) (GenomeSizes, error) {
	sizes := make(GenomeSizes, len(species))
	for _, sp := range species {
		name := sp + ".sizes"
		r, err := src.Open(ctx, name)
		if err != nil {
			return nil, ipperr.NewIoError(fmt.Sprintf("opening %s", name), err)
		}
		total, err := sizeFromReader(r, name)
		r.Close()
		if err != nil {
			return nil, err
		}
		sizes[sp] = total
	}
	return sizes, nil
}
