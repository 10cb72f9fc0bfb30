// This binary builds a pwaln binary file from a chromosome table and a
// tab-separated pwaln dump, sorting and deduplicating entries the way the
// original pickle-to-binary converter did.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/pkg/profile"

	"github.com/comparative-genomics/ipp/internal/genomics"
	"github.com/comparative-genomics/ipp/internal/pwaln"
)

var (
	chromsFile = flag.String("chroms", "", "path to a file listing chromosome names, one per line, in id order")
	pwalnsFile = flag.String("pwalns", "", "path to a tab-separated dump with columns ref_species qry_species ref_chrom ref_start ref_end qry_chrom qry_start qry_end")
	outFile    = flag.String("out", "", "path to write the resulting pwaln binary file")
	cpuProfile = flag.Bool("profile", false, "enable CPU profiling for the lifetime of the process")
)

func main() {
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	if *chromsFile == "" || *pwalnsFile == "" || *outFile == "" {
		log.Fatalf("You must specify -chroms, -pwalns and -out.")
	}

	chroms, chromIDs, err := readChroms(*chromsFile)
	if err != nil {
		log.Fatalf("Failed to read chromosome table: %v", err)
	}

	pwalns, err := readPwalns(*pwalnsFile, chromIDs)
	if err != nil {
		log.Fatalf("Failed to read pwalns: %v", err)
	}

	store := pwaln.New(chroms, pwalns)

	out, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *outFile, err)
	}
	defer out.Close()

	if err := store.Write(out); err != nil {
		log.Fatalf("Failed to write %s: %v", *outFile, err)
	}
}

func readChroms(path string) ([]string, map[string]genomics.ChromID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var chroms []string
	chromIDs := make(map[string]genomics.ChromID)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := scanner.Text()
		if name == "" {
			continue
		}
		chromIDs[name] = genomics.ChromID(len(chroms))
		chroms = append(chroms, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return chroms, chromIDs, nil
}

// readPwalns parses the tab-separated dump into a ref -> qry -> Chrom map,
// sorting and deduplicating entries within each species pair the way the
// original converter sorted and deduplicated rows before writing them out.
func readPwalns(path string, chromIDs map[string]genomics.ChromID) (map[string]pwaln.Pairs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type keyed struct {
		ref, qry string
		entry    pwaln.Entry
	}
	var rows []keyed

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var refSpecies, qrySpecies, refChromName, qryChromName string
		var refStart, refEnd, qryStart, qryEnd uint32
		n, err := fmt.Sscanf(line, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%d",
			&refSpecies, &qrySpecies, &refChromName, &refStart, &refEnd, &qryChromName, &qryStart, &qryEnd)
		if err != nil || n != 8 {
			return nil, fmt.Errorf("line %d: malformed row: %q", lineNum, line)
		}

		refChrom, ok := chromIDs[refChromName]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown chromosome %q", lineNum, refChromName)
		}
		qryChrom, ok := chromIDs[qryChromName]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown chromosome %q", lineNum, qryChromName)
		}

		rows = append(rows, keyed{refSpecies, qrySpecies, pwaln.Entry{
			RefStart: refStart, RefEnd: refEnd,
			QryStart: qryStart, QryEnd: qryEnd,
			RefChrom: refChrom, QryChrom: qryChrom,
		}})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ref != b.ref {
			return a.ref < b.ref
		}
		if a.qry != b.qry {
			return a.qry < b.qry
		}
		if a.entry.RefChrom != b.entry.RefChrom {
			return a.entry.RefChrom < b.entry.RefChrom
		}
		if a.entry.RefStart != b.entry.RefStart {
			return a.entry.RefStart < b.entry.RefStart
		}
		if a.entry.QryChrom != b.entry.QryChrom {
			return a.entry.QryChrom < b.entry.QryChrom
		}
		if a.entry.QryStart != b.entry.QryStart {
			return a.entry.QryStart < b.entry.QryStart
		}
		if a.entry.RefEnd != b.entry.RefEnd {
			return a.entry.RefEnd < b.entry.RefEnd
		}
		return a.entry.QryEnd < b.entry.QryEnd
	})

	pwalns := make(map[string]pwaln.Pairs)
	var prev *keyed
	for i := range rows {
		row := &rows[i]
		if prev != nil && *prev == *row {
			continue // drop duplicate row, as the original converter did
		}
		prev = row

		pairs, ok := pwalns[row.ref]
		if !ok {
			pairs = make(pwaln.Pairs)
			pwalns[row.ref] = pairs
		}
		chrom, ok := pairs[row.qry]
		if !ok {
			chrom = make(pwaln.Chrom)
			pairs[row.qry] = chrom
		}
		chrom[row.entry.RefChrom] = append(chrom[row.entry.RefChrom], row.entry)
	}
	return pwalns, nil
}
