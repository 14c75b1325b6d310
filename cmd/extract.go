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
	"github.com/gnames/gn"
	"github.com/nhmuk/bgap/internal/ioextract"
	"github.com/spf13/cobra"
)

// getExtractCmd returns the extract command.
func getExtractCmd() *cobra.Command {
	extractCmd := &cobra.Command{
		Use:   "extract <input.tsv> <output.tsv>",
		Short: "Filter rows out of a records file",
		Long: `Filter a records file by marker gene code and kingdom, keeping
the surviving rows unchanged. Use "-" for stdin or stdout, so extract
fits into shell pipelines.

The marker comparison ignores case. Tolerant mode additionally scrubs
embedded tabs, line breaks and quote characters from every field,
which some GenBank-derived exports need.

Examples:
  # COI-5P animal records from a BOLD package
  bgap extract bold.tsv coi.tsv -p bold

  # Stream from stdin to stdout inside a pipeline
  zcat dump.tsv.gz | bgap extract - - -m COI-5P > coi.tsv

  # Scrub a messy GenBank-derived table
  bgap extract genbank.tsv clean.tsv --tolerant`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExtract(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	registerFilterFlags(extractCmd)

	return extractCmd
}

func runExtract(cmd *cobra.Command, inputPath, outputPath string) error {
	filterOpts, err := filterOptions(cmd)
	if err != nil {
		return err
	}
	cfg.Update(filterOpts)

	sum, err := ioextract.Run(ioextract.Params{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Filters:    cfg.Filters,
	})
	if err != nil {
		return err
	}

	if outputPath != "-" {
		gn.Info("Kept <em>%d</em> of <em>%d</em> rows in <em>%s</em>",
			sum.Kept, sum.Rows, outputPath)
	}
	return nil
}
