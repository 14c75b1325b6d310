package ioanalyze

import (
	"slices"
	"strconv"
	"strings"

	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/gap"
)

// analysisColumns follow the checklist's own columns, in this order.
// A checklist that already carries one of these names keeps the
// column where it is; the analysis value overwrites it.
var analysisColumns = []string{
	"number_records",
	"bags_grade",
	"species_status",
	"bins_found",
	"other_names",
}

func writeReport(path string, inputColumns []string, results []gap.Result) error {
	columns := slices.Clone(inputColumns)
	for _, col := range analysisColumns {
		if !slices.Contains(columns, col) {
			columns = append(columns, col)
		}
	}
	pos := make(map[string]int, len(columns))
	for i, col := range columns {
		pos[col] = i
	}

	w, err := iotsv.NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteRow(columns...); err != nil {
		w.Close()
		return err
	}

	for _, res := range results {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = res.Taxon.Attributes[col]
		}
		row[pos["number_records"]] = strconv.Itoa(res.Records)
		row[pos["bags_grade"]] = string(res.Grade)
		row[pos["species_status"]] = string(res.Status)
		row[pos["bins_found"]] = strings.Join(res.Clusters, ";")
		row[pos["other_names"]] = joinFormatted(res.OtherNames)

		if err := w.WriteRow(row...); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// joinFormatted renders normalized names for the report, capitalizing
// the first token of each.
func joinFormatted(names []string) string {
	if len(names) == 0 {
		return ""
	}
	formatted := make([]string, len(names))
	for i, n := range names {
		formatted[i] = gap.FormatName(n)
	}
	return strings.Join(formatted, ";")
}

// keepNames unions every taxon's own names with every conflicting
// name met during analysis; the filtered records copy keeps the rows
// matching this set.
func keepNames(results []gap.Result) map[string]struct{} {
	keep := make(map[string]struct{})
	for _, res := range results {
		for name := range res.Taxon.AllNames() {
			keep[name] = struct{}{}
		}
		for _, name := range res.OtherNames {
			keep[name] = struct{}{}
		}
	}
	return keep
}
