package gap

import (
	"maps"
	"slices"
)

// Grade is a BAGS (Barcode, Audit & Grade System) reliability grade.
//
//	A = one cluster, 11 or more records
//	B = one cluster, 3 to 10 records
//	C = records split over several clusters
//	D = one cluster, fewer than 3 records
//	E = a cluster is shared with names outside the taxon
//	F = no records, or records without cluster assignments
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

// Status describes which of a taxon's names were found among the
// records.
type Status string

const (
	// StatusGreen: only the valid name was recorded.
	StatusGreen Status = "GREEN"
	// StatusAmber: the valid name and at least one synonym were
	// recorded.
	StatusAmber Status = "AMBER"
	// StatusBlue: only synonyms were recorded.
	StatusBlue Status = "BLUE"
	// StatusRed: the taxon shares a cluster with names that do not
	// belong to it.
	StatusRed Status = "RED"
	// StatusBlack: no records under any of the taxon's names.
	StatusBlack Status = "BLACK"
)

// Result is the outcome of grading one taxon against a record index.
type Result struct {
	Taxon Taxon

	// Records is the total number of records found under all of the
	// taxon's names.
	Records int

	Grade  Grade
	Status Status

	// Clusters lists the cluster ids of the taxon's records, sorted.
	Clusters []string

	// NamesRecorded lists the taxon's own normalized names that were
	// actually found among the records, sorted.
	NamesRecorded []string

	// OtherNames lists normalized names outside the taxon that share
	// at least one of its clusters, sorted. Empty unless the status
	// is StatusRed.
	OtherNames []string
}

// Analyze grades one taxon against the index. Cluster sharing with
// outside names dominates every other signal: such taxa always come
// back with GradeE and StatusRed. A taxon with no records at all is
// always GradeF and StatusBlack.
func Analyze(t Taxon, idx *RecordIndex) Result {
	res := Result{Taxon: t}

	for name := range t.AllNames() {
		if c := idx.NameCount[name]; c > 0 {
			res.Records += c
			res.NamesRecorded = append(res.NamesRecorded, name)
		}
	}
	slices.Sort(res.NamesRecorded)

	if res.Records == 0 {
		res.Grade = GradeF
		res.Status = StatusBlack
		return res
	}

	clusters := make(map[string]struct{})
	for name := range t.AllNames() {
		for id := range idx.NameClusters[name] {
			clusters[id] = struct{}{}
		}
	}
	res.Clusters = slices.Sorted(maps.Keys(clusters))

	others := make(map[string]struct{})
	for id := range clusters {
		for name := range idx.ClusterNames[id] {
			if !t.HasName(name) {
				others[name] = struct{}{}
			}
		}
	}

	if len(others) > 0 {
		res.OtherNames = slices.Sorted(maps.Keys(others))
		res.Grade = GradeE
		res.Status = StatusRed
		return res
	}

	validRecorded := idx.NameCount[Normalize(t.ValidName)] > 0
	var synonymRecorded bool
	for _, syn := range t.Synonyms {
		if idx.NameCount[Normalize(syn)] > 0 {
			synonymRecorded = true
			break
		}
	}

	switch {
	case validRecorded && synonymRecorded:
		res.Status = StatusAmber
	case validRecorded:
		res.Status = StatusGreen
	default:
		res.Status = StatusBlue
	}

	switch {
	case len(res.Clusters) == 0:
		res.Grade = GradeF
	case len(res.Clusters) == 1:
		switch {
		case res.Records >= 11:
			res.Grade = GradeA
		case res.Records >= 3:
			res.Grade = GradeB
		default:
			res.Grade = GradeD
		}
	default:
		res.Grade = GradeC
	}

	return res
}
