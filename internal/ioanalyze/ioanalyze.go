// Package ioanalyze wires the gap analysis pipeline together: load a
// species checklist, index a records file, grade every taxon and
// write the annotated report.
package ioanalyze

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/nhmuk/bgap/internal/iorecords"
	"github.com/nhmuk/bgap/internal/iospecies"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/nhmuk/bgap/pkg/gap"
)

// Params collects the file paths and knobs of one analysis run.
type Params struct {
	SpeciesPath string
	RecordsPath string
	OutputPath  string

	// FilteredPath, when set, receives a copy of the records file
	// restricted to the rows the analysis could have used.
	FilteredPath string

	Filters   config.FilterConfig
	Jobs      int
	BatchSize int
}

// Stats summarizes one analysis run.
type Stats struct {
	Taxa            int
	TaxaWithRecords int
	RecordsMatched  int
	Grades          map[gap.Grade]int
	Statuses        map[gap.Status]int
	ClusterColumn   string
	FilteredRows    int
}

// Run executes the pipeline and returns per-run statistics. Results
// keep the checklist's row order whatever the worker count, so runs
// diff cleanly.
func Run(ctx context.Context, p Params) (*Stats, error) {
	start := time.Now()

	list, err := iospecies.Load(p.SpeciesPath)
	if err != nil {
		return nil, err
	}

	sum, err := iorecords.Scan(p.RecordsPath, p.Filters)
	if err != nil {
		return nil, err
	}

	slog.Info("Analyzing taxa", "taxa", len(list.Taxa), "jobs", p.Jobs)
	results, err := gap.AnalyzeAll(ctx, list.Taxa, sum.Index, p.Jobs, p.BatchSize)
	if err != nil {
		return nil, err
	}

	if err := writeReport(p.OutputPath, list.Header, results); err != nil {
		return nil, err
	}
	slog.Info("Report written", "path", p.OutputPath, "rows", len(results))

	stats := newStats(results, sum.ClusterColumn)

	if p.FilteredPath != "" {
		kept, err := iorecords.CopyMatching(
			p.RecordsPath, p.FilteredPath, p.Filters,
			keepNames(results), sum.Latin1,
		)
		if err != nil {
			return nil, err
		}
		stats.FilteredRows = kept
	}

	logSummary(stats)

	elapsed := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Gap analysis complete", "duration", elapsed)
	gn.Info("Gap analysis complete in <em>%s</em>", elapsed)

	return stats, nil
}

func newStats(results []gap.Result, clusterColumn string) *Stats {
	stats := &Stats{
		Taxa:          len(results),
		Grades:        make(map[gap.Grade]int),
		Statuses:      make(map[gap.Status]int),
		ClusterColumn: clusterColumn,
	}
	for _, res := range results {
		stats.Grades[res.Grade]++
		stats.Statuses[res.Status]++
		stats.RecordsMatched += res.Records
		if res.Records > 0 {
			stats.TaxaWithRecords++
		}
	}
	return stats
}
