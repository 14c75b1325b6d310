// Package ioassess grades a clustered records file on its own, with
// no species checklist: every species observed in the file gets a
// numeric taxid and a BAGS grade, and each of its clusters a list of
// the other species found in that cluster. The grading itself is the
// same machine the gap analysis uses.
package ioassess

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/gap"
)

// Column aliases in preference order.
var (
	nameAliases    = []string{"species", "organism"}
	clusterAliases = []string{"otu_id", "bin_uri", "bin"}
	idAliases      = []string{"accession", "processid"}
)

const taxidColumn = "taxid"

// assessedFile is the fixed name of the grading report.
const assessedFile = "assessed_BAGS.tsv"

// Params collects the paths of one assessment run.
type Params struct {
	RecordsPath string

	// OutputDir receives both outputs. Empty means the directory of
	// the records file.
	OutputDir string
}

// Stats summarizes one assessment run.
type Stats struct {
	Rows    int
	Species int
	Grades  map[gap.Grade]int

	AssessedPath string
	TaxidPath    string
}

// species accumulates what one pass learns about one observed
// species.
type species struct {
	display string // first-seen spelling
	taxid   int    // 0 until assigned
}

// pass is the state of one streaming read of the records file.
type pass struct {
	idx   *gap.RecordIndex
	seen  map[string]*species // by normalized name
	order []string            // first-appearance order
	rows  int
}

// Run grades the records file and writes the two outputs: the fixed
// assessed_BAGS.tsv and a taxid-annotated copy of the input. Taxids
// already present in the input are kept; species without one get
// sequential ids continuing after the largest existing taxid. A file
// that does not decode as UTF-8 is re-read as Latin-1 from a clean
// slate.
func Run(p Params) (*Stats, error) {
	stats, err := run(p, false)
	if err != nil && errors.Is(err, iotsv.ErrNotUTF8) {
		slog.Warn("Records file is not UTF-8, re-reading as Latin-1",
			"path", p.RecordsPath)
		return run(p, true)
	}
	return stats, err
}

func run(p Params, latin1 bool) (*Stats, error) {
	start := time.Now()

	ps, err := scan(p.RecordsPath, latin1)
	if err != nil {
		return nil, err
	}
	ps.assignTaxids()

	outDir := p.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(p.RecordsPath)
	}

	stats := &Stats{
		Rows:         ps.rows,
		Species:      len(ps.order),
		Grades:       make(map[gap.Grade]int),
		AssessedPath: filepath.Join(outDir, assessedFile),
		TaxidPath:    filepath.Join(outDir, taxidFileName(p.RecordsPath)),
	}

	if err := ps.writeAssessed(stats); err != nil {
		return nil, err
	}
	if err := ps.writeTaxidCopy(p.RecordsPath, stats.TaxidPath, latin1); err != nil {
		return nil, err
	}

	slog.Info("Assessment complete",
		"rows", stats.Rows,
		"species", stats.Species,
		"duration", time.Since(start).String(),
	)
	for _, g := range []gap.Grade{
		gap.GradeA, gap.GradeB, gap.GradeC,
		gap.GradeD, gap.GradeE, gap.GradeF,
	} {
		slog.Info("Grade distribution",
			"grade", string(g), "species", stats.Grades[g])
	}
	return stats, nil
}

// scan streams the records file once, building the cluster index,
// the species roster and the taxids the input already carries.
func scan(path string, latin1 bool) (*pass, error) {
	r, err := openReader(path, latin1)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	nameCol, err := r.RequireColumn(nameAliases...)
	if err != nil {
		return nil, err
	}
	clusterCol, err := r.RequireColumn(clusterAliases...)
	if err != nil {
		return nil, err
	}
	if _, err = r.RequireColumn(idAliases...); err != nil {
		return nil, err
	}
	taxidCol, hasTaxid := r.Column(taxidColumn)

	ps := &pass{
		idx:  gap.NewRecordIndex(),
		seen: make(map[string]*species),
	}

	for r.Next() {
		ps.rows++
		name := strings.TrimSpace(r.Field(nameCol))
		if !validName(name) {
			continue
		}
		norm := gap.Normalize(name)
		sp, ok := ps.seen[norm]
		if !ok {
			sp = &species{display: name}
			ps.seen[norm] = sp
			ps.order = append(ps.order, norm)
		}

		if hasTaxid && sp.taxid == 0 {
			if id, err := strconv.Atoi(strings.TrimSpace(r.Field(taxidCol))); err == nil && id > 0 {
				sp.taxid = id
			}
		}

		ps.idx.Add(name, splitClusterIDs(r.Field(clusterCol))...)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ps, nil
}

// assignTaxids gives every species without a taxid a sequential id,
// continuing after the largest id the input carried. With no input
// taxids at all the sequence starts at 1, in first-appearance order.
func (ps *pass) assignTaxids() {
	next := 1
	for _, sp := range ps.seen {
		if sp.taxid >= next {
			next = sp.taxid + 1
		}
	}
	for _, norm := range ps.order {
		sp := ps.seen[norm]
		if sp.taxid == 0 {
			sp.taxid = next
			next++
		}
	}
}

func openReader(path string, latin1 bool) (*iotsv.Reader, error) {
	if latin1 {
		return iotsv.NewLatin1Reader(path)
	}
	return iotsv.NewReader(path)
}

// placeholders are tokens messy exports use instead of an empty
// field.
var placeholders = map[string]struct{}{
	"none": {},
	"null": {},
	"na":   {},
	"-":    {},
	".":    {},
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	_, bad := placeholders[strings.ToLower(name)]
	return !bad
}

func splitClusterIDs(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	var ids []string
	for _, tok := range strings.Split(field, "|") {
		if tok = strings.TrimSpace(tok); validName(tok) {
			ids = append(ids, tok)
		}
	}
	return ids
}

// taxidFileName derives the annotated copy's name from the input:
// records.tsv becomes records_taxid.tsv.
func taxidFileName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_taxid.tsv"
}
