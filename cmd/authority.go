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
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/nhmuk/bgap/internal/ioauthority"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/spf13/cobra"
)

// defaultDBPath is where the authority database lives unless --db
// says otherwise.
func defaultDBPath() string {
	return filepath.Join(config.CacheDir(cfg.HomeDir), "authority.sqlite")
}

// getAuthorityCmd returns the authority command with its
// subcommands.
func getAuthorityCmd() *cobra.Command {
	authorityCmd := &cobra.Command{
		Use:   "authority",
		Short: "Maintain the species-name authority database",
		Long: `Maintain the species-name authority: a SQLite database built
from the names and taxa dump tables of the source taxonomy, and the
species checklists exported from it for gap analysis.`,
	}

	authorityCmd.AddCommand(
		getAuthorityImportCmd(),
		getAuthorityExportCmd(),
	)
	return authorityCmd
}

// getAuthorityImportCmd returns the authority import subcommand.
func getAuthorityImportCmd() *cobra.Command {
	var dbPath string

	importCmd := &cobra.Command{
		Use:   "import <names.tsv> <taxa.tsv>",
		Short: "Build the authority database from dump tables",
		Long: `Build the authority database from the names and taxa dump
tables, keyed by taxon version key (TVK). Both tables are dropped and
recreated, so the database always mirrors exactly one dump.

Examples:
  bgap authority import NAMES.tsv TAXA.tsv
  bgap authority import NAMES.tsv TAXA.tsv --db uksi.sqlite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAuthorityImport(args[0], args[1], dbPath)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().StringVar(
		&dbPath, "db", "",
		"authority database path (default: cache directory)",
	)

	return importCmd
}

func runAuthorityImport(namesPath, taxaPath, dbPath string) error {
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	stats, err := ioauthority.Import(ioauthority.ImportParams{
		DBPath:    dbPath,
		NamesPath: namesPath,
		TaxaPath:  taxaPath,
	})
	if err != nil {
		return err
	}

	gn.Info("Imported <em>%d</em> names and <em>%d</em> taxa into <em>%s</em>",
		stats.Names, stats.Taxa, dbPath)
	return nil
}

// getAuthorityExportCmd returns the authority export subcommand.
func getAuthorityExportCmd() *cobra.Command {
	var (
		dbPath   string
		output   string
		review   string
		kingdoms []string
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export species checklists from the authority database",
		Long: `Export species checklists from the authority database.

Species-rank taxa inside the kingdom allow-set are written with their
walked higher taxonomy and aggregated synonyms. Names matching known
junk patterns, and names the scientific-name parser cannot parse, go
to a separate review file instead of the checklist.

Examples:
  bgap authority export
  bgap authority export -o species.tsv --review review.tsv
  bgap authority export -k Animalia`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAuthorityExport(dbPath, output, review, kingdoms)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	exportCmd.Flags().StringVar(
		&dbPath, "db", "",
		"authority database path (default: cache directory)",
	)
	exportCmd.Flags().StringVarP(
		&output, "output", "o", "species_list.tsv",
		"checklist output path",
	)
	exportCmd.Flags().StringVar(
		&review, "review", "species_review.tsv",
		"review output path",
	)
	exportCmd.Flags().StringSliceVarP(
		&kingdoms, "kingdoms", "k", nil,
		"kingdom allow-set (default: Animalia,Plantae,Chromista,Fungi)",
	)

	return exportCmd
}

func runAuthorityExport(dbPath, output, review string, kingdoms []string) error {
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	stats, err := ioauthority.Export(ioauthority.ExportParams{
		DBPath:     dbPath,
		OutputPath: output,
		ReviewPath: review,
		Kingdoms:   kingdoms,
		PoolSize:   cfg.ParserPoolSize,
	})
	if err != nil {
		return err
	}

	gn.Info("Exported <em>%d</em> species to <em>%s</em>, "+
		"<em>%d</em> names for review in <em>%s</em>",
		stats.Exported, output, stats.Review, review)
	return nil
}
