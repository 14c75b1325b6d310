package ioextract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhmuk/bgap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.tsv")
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readOutput(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestMarkerFilter(t *testing.T) {
	in := writeInput(t,
		"processid\tspecies\tmarker_code",
		"P1\tApis mellifera\tCOI-5P",
		"P2\tApis mellifera\tcoi-5p",
		"P3\tApis mellifera\t16S",
		"P4\tBombus terrestris\tCOI-5P",
	)
	out := filepath.Join(t.TempDir(), "out.tsv")

	sum, err := Run(Params{
		InputPath:  in,
		OutputPath: out,
		Filters:    config.FilterConfig{Marker: "COI-5P"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Rows)
	assert.Equal(t, 3, sum.Kept, "marker comparison ignores case")
	assert.Equal(t, 1, sum.SkippedMarker)

	lines := readOutput(t, out)
	require.Len(t, lines, 4)
	assert.Equal(t, "processid\tspecies\tmarker_code", lines[0])
	assert.Equal(t, "P2\tApis mellifera\tcoi-5p", lines[1],
		"surviving rows pass through verbatim")
}

func TestKingdomFilter(t *testing.T) {
	in := writeInput(t,
		"species\tkingdom\tbin_uri",
		"Apis mellifera\tAnimalia\tBIN001",
		"Amanita muscaria\tFungi\tBIN002",
		"Quercus robur\tplantae\tBIN003",
	)
	out := filepath.Join(t.TempDir(), "out.tsv")

	sum, err := Run(Params{
		InputPath:  in,
		OutputPath: out,
		Filters: config.FilterConfig{
			Kingdoms: []string{"Animalia", "Plantae"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Kept, "kingdom membership ignores case")
	assert.Equal(t, 1, sum.SkippedKingdom)
}

func TestMissingMarkerColumn(t *testing.T) {
	in := writeInput(t,
		"species\tbin_uri",
		"Apis mellifera\tBIN001",
	)
	out := filepath.Join(t.TempDir(), "out.tsv")

	_, err := Run(Params{
		InputPath:  in,
		OutputPath: out,
		Filters:    config.FilterConfig{Marker: "COI-5P"},
	})
	assert.Error(t, err)
}

func TestTolerantSanitization(t *testing.T) {
	in := writeInput(t,
		"species\tnote\tmarker_code",
		"Apis mellifera\t\"queen\rline\"\tCOI-5P",
	)
	out := filepath.Join(t.TempDir(), "out.tsv")

	_, err := Run(Params{
		InputPath:  in,
		OutputPath: out,
		Filters:    config.FilterConfig{Marker: "COI-5P", Tolerant: true},
	})
	require.NoError(t, err)

	lines := readOutput(t, out)
	require.Len(t, lines, 2)
	assert.Equal(t, "Apis mellifera\tqueen line\tCOI-5P", lines[1])
}

func TestNoFiltersCopiesEverything(t *testing.T) {
	in := writeInput(t,
		"species\tbin_uri",
		"Apis mellifera\tBIN001",
		"Bombus terrestris\tBIN002",
	)
	out := filepath.Join(t.TempDir(), "out.tsv")

	sum, err := Run(Params{InputPath: in, OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Kept)
	assert.Len(t, readOutput(t, out), 3)
}
