package ioassess

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/gap"
)

// writeAssessed writes the grading report, one row per species in
// ascending taxid order. The sharers column lists, per cluster in the
// order of the OTU_ID column, the other species seen in that cluster.
func (ps *pass) writeAssessed(stats *Stats) error {
	byTaxid := slices.Clone(ps.order)
	sort.Slice(byTaxid, func(i, j int) bool {
		return ps.seen[byTaxid[i]].taxid < ps.seen[byTaxid[j]].taxid
	})

	w, err := iotsv.NewWriter(stats.AssessedPath)
	if err != nil {
		return err
	}
	if err := w.WriteRow("taxid", "BAGS", "OTU_ID", "sharers"); err != nil {
		w.Close()
		return err
	}

	for _, norm := range byTaxid {
		sp := ps.seen[norm]
		taxon := gap.NewTaxon(sp.taxid, sp.display, nil, nil)
		res := gap.Analyze(taxon, ps.idx)
		stats.Grades[res.Grade]++

		row := []string{
			strconv.Itoa(sp.taxid),
			string(res.Grade),
			strings.Join(res.Clusters, "|"),
			ps.sharers(norm, res.Clusters),
		}
		if err := w.WriteRow(row...); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// sharers renders the other species of each cluster: display names
// comma-joined and sorted within a cluster, clusters pipe-joined in
// the given order. A cluster without sharers contributes an empty
// segment.
func (ps *pass) sharers(own string, clusters []string) string {
	segments := make([]string, len(clusters))
	for i, id := range clusters {
		var names []string
		for norm := range ps.idx.ClusterNames[id] {
			if norm == own {
				continue
			}
			if sp, ok := ps.seen[norm]; ok {
				names = append(names, sp.display)
			} else {
				names = append(names, gap.FormatName(norm))
			}
		}
		slices.Sort(names)
		segments[i] = strings.Join(names, ",")
	}
	return strings.Join(segments, "|")
}

// writeTaxidCopy re-streams the input and writes it back with the
// taxid column filled in: appended when the input had none, blanks
// filled in place when it did. Rows whose species did not make the
// roster keep an empty taxid.
func (ps *pass) writeTaxidCopy(path, outPath string, latin1 bool) error {
	r, err := openReader(path, latin1)
	if err != nil {
		return err
	}
	defer r.Close()

	nameCol, err := r.RequireColumn(nameAliases...)
	if err != nil {
		return err
	}
	taxidCol, hasTaxid := r.Column(taxidColumn)

	w, err := iotsv.NewWriter(outPath)
	if err != nil {
		return err
	}

	header := r.HeaderLine()
	if !hasTaxid {
		header += "\t" + taxidColumn
	}
	if err := w.WriteLine(header); err != nil {
		w.Close()
		return err
	}

	width := len(r.Header())
	for r.Next() {
		var taxid string
		name := strings.TrimSpace(r.Field(nameCol))
		if validName(name) {
			if sp, ok := ps.seen[gap.Normalize(name)]; ok {
				taxid = strconv.Itoa(sp.taxid)
			}
		}

		if !hasTaxid {
			if err := w.WriteLine(r.Raw() + "\t" + taxid); err != nil {
				w.Close()
				return err
			}
			continue
		}

		// Fill blanks in place, pass filled values through.
		row := make([]string, width)
		for i := range row {
			row[i] = r.Field(i)
		}
		if strings.TrimSpace(row[taxidCol]) == "" {
			row[taxidCol] = taxid
		}
		if err := w.WriteRow(row...); err != nil {
			w.Close()
			return err
		}
	}
	if err := r.Err(); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
