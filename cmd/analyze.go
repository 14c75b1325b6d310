/*
Copyright © 2025 Natural History Museum, London

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/nhmuk/bgap/internal/ioanalyze"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/spf13/cobra"
)

// getAnalyzeCmd returns the analyze command.
func getAnalyzeCmd() *cobra.Command {
	var (
		output   string
		filtered string
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze <species-list.tsv> <records.tsv>",
		Short: "Grade a species checklist against clustered barcode records",
		Long: `Grade every taxon of a species checklist against a clustered
records file.

The checklist needs a name column (taxon_name or species) and may
carry a semicolon-separated synonyms column. The records file needs a
species column (species or organism) and a cluster id column (bin_uri,
otu_id or BIN); multiple cluster ids in one record are pipe-separated.

Every checklist row is written back with its record count, BAGS grade
(A-F), status (GREEN/AMBER/BLUE/RED/BLACK), cluster ids and any
conflicting names found in shared clusters. Row order follows the
checklist, so repeated runs diff cleanly.

Examples:
  # Plain analysis
  bgap analyze species.tsv records.tsv

  # BOLD data package with an audit copy of the matched records
  bgap analyze species.tsv bold.tsv -p bold --filtered matched.tsv

  # Kingdom-restricted run on a messy export
  bgap analyze species.tsv records.tsv -k Animalia --tolerant`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnalyze(cmd, args[0], args[1], output, filtered)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	analyzeCmd.Flags().StringVarP(
		&output, "output", "o", "gap_analysis.tsv",
		"output table path",
	)
	analyzeCmd.Flags().StringVar(
		&filtered, "filtered", "",
		"also write the matching records to this path",
	)
	registerFilterFlags(analyzeCmd)
	analyzeCmd.Flags().IntP(
		"jobs", "j", 0,
		"number of concurrent workers (0 = config value)",
	)
	analyzeCmd.Flags().Int(
		"batch-size", 0,
		"taxa per worker task (0 = config value)",
	)

	return analyzeCmd
}

func runAnalyze(
	cmd *cobra.Command,
	speciesPath, recordsPath string,
	output, filtered string,
) error {
	filterOpts, err := filterOptions(cmd)
	if err != nil {
		return err
	}
	cfg.Update(filterOpts)

	if cmd.Flags().Changed("jobs") {
		jobs, _ := cmd.Flags().GetInt("jobs")
		cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
	}
	if cmd.Flags().Changed("batch-size") {
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		cfg.Update([]config.Option{config.OptBatchSize(batchSize)})
	}

	gn.Info("Analyzing <em>%s</em> against <em>%s</em>",
		speciesPath, recordsPath)

	_, err = ioanalyze.Run(context.Background(), ioanalyze.Params{
		SpeciesPath:  speciesPath,
		RecordsPath:  recordsPath,
		OutputPath:   output,
		FilteredPath: filtered,
		Filters:      cfg.Filters,
		Jobs:         cfg.JobsNumber,
		BatchSize:    cfg.BatchSize,
	})
	return err
}
