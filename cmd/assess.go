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
	"github.com/nhmuk/bgap/internal/ioassess"
	"github.com/spf13/cobra"
)

// getAssessCmd returns the assess command.
func getAssessCmd() *cobra.Command {
	var outputDir string

	assessCmd := &cobra.Command{
		Use:   "assess <records.tsv>",
		Short: "Grade a clustered records file without a checklist",
		Long: `Grade every species observed in a clustered records file.

The file needs species (species or organism), cluster id (otu_id,
bin_uri or BIN) and record id (accession or processid) columns. Every
species gets a numeric taxid, a BAGS grade, its cluster ids, and for
each cluster the other species found in it.

Two files are written: assessed_BAGS.tsv with the grading, and a copy
of the input with the taxid column filled in. Taxids already present
in the input are kept; new ones continue after the largest existing
id.

Examples:
  bgap assess clustered.tsv
  bgap assess clustered.tsv -o results/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAssess(args[0], outputDir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	assessCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"directory for outputs (default: the input's directory)",
	)

	return assessCmd
}

func runAssess(recordsPath, outputDir string) error {
	stats, err := ioassess.Run(ioassess.Params{
		RecordsPath: recordsPath,
		OutputDir:   outputDir,
	})
	if err != nil {
		return err
	}

	gn.Info("Assessed <em>%d</em> species, results in <em>%s</em>",
		stats.Species, stats.AssessedPath)
	return nil
}
