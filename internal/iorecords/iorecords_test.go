package iorecords_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhmuk/bgap/internal/iorecords"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/nhmuk/bgap/pkg/gap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecords(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.tsv")
	data := strings.Join(lines, "\n") + "\n"
	err := os.WriteFile(path, []byte(data), 0644)
	require.NoError(t, err)
	return path
}

func TestScan(t *testing.T) {
	path := writeRecords(t,
		"processid\tspecies\tbin_uri",
		"P1\tApis mellifera\tBOLD:AAA0001",
		"P2\tApis mellifera\tBOLD:AAA0001",
		"P3\tApis_mellifera\tBOLD:AAA0002",
		"P4\tBombus terrestris\t",
	)

	sum, err := iorecords.Scan(path, config.FilterConfig{})
	require.NoError(t, err)

	assert.Equal(t, "bin_uri", sum.ClusterColumn)
	assert.Equal(t, 4, sum.Rows)
	assert.Equal(t, 3, sum.WithCluster)
	assert.False(t, sum.Latin1)

	idx := sum.Index
	// Underscore and case variants collapse into one entry.
	assert.Equal(t, 3, idx.NameCount["apis mellifera"])
	assert.Equal(t, 1, idx.NameCount["bombus terrestris"])

	assert.Len(t, idx.NameClusters["apis mellifera"], 2)
	assert.Contains(t, idx.ClusterNames["BOLD:AAA0001"], "apis mellifera")
	assert.Contains(t, idx.ClusterNames["BOLD:AAA0002"], "apis mellifera")

	// A clusterless row still counts but creates no links.
	assert.Empty(t, idx.NameClusters["bombus terrestris"])
}

func TestScanClusterColumnPreference(t *testing.T) {
	t.Run("otu_id fallback", func(t *testing.T) {
		path := writeRecords(t,
			"species\totu_id",
			"Apis mellifera\tOTU_17",
		)
		sum, err := iorecords.Scan(path, config.FilterConfig{})
		require.NoError(t, err)
		assert.Equal(t, "otu_id", sum.ClusterColumn)
		assert.Contains(t, sum.Index.ClusterNames, "OTU_17")
	})

	t.Run("uppercase OTU_ID header", func(t *testing.T) {
		path := writeRecords(t,
			"species\tOTU_ID",
			"Apis mellifera\tOTU_17",
		)
		sum, err := iorecords.Scan(path, config.FilterConfig{})
		require.NoError(t, err)
		assert.Equal(t, "OTU_ID", sum.ClusterColumn)
	})

	t.Run("bin_uri wins over otu_id", func(t *testing.T) {
		path := writeRecords(t,
			"species\totu_id\tbin_uri",
			"Apis mellifera\tOTU_17\tBOLD:AAA0001",
		)
		sum, err := iorecords.Scan(path, config.FilterConfig{})
		require.NoError(t, err)
		assert.Equal(t, "bin_uri", sum.ClusterColumn)
	})

	t.Run("no cluster column is fatal", func(t *testing.T) {
		path := writeRecords(t,
			"species\tcountry",
			"Apis mellifera\tPortugal",
		)
		_, err := iorecords.Scan(path, config.FilterConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bin_uri")
		assert.Contains(t, err.Error(), "otu_id")
	})
}

func TestScanPipeSeparatedClusters(t *testing.T) {
	path := writeRecords(t,
		"species\tbin_uri",
		"Apis mellifera\tBOLD:AAA0001|BOLD:AAA0002",
		"Bombus terrestris\tnone|BOLD:AAB0001| ",
	)

	sum, err := iorecords.Scan(path, config.FilterConfig{})
	require.NoError(t, err)

	idx := sum.Index
	assert.Len(t, idx.NameClusters["apis mellifera"], 2)

	// Placeholder and blank tokens are dropped.
	assert.Equal(
		t,
		map[string]struct{}{"BOLD:AAB0001": {}},
		idx.NameClusters["bombus terrestris"],
	)
}

func TestScanSubspecies(t *testing.T) {
	path := writeRecords(t,
		"species\tsubspecies\tbin_uri",
		"Apis mellifera\tApis mellifera iberiensis\tBOLD:AAA0001",
		"Apis mellifera\tNone\tBOLD:AAA0001",
	)

	sum, err := iorecords.Scan(path, config.FilterConfig{})
	require.NoError(t, err)

	idx := sum.Index
	// Species and subspecies are indexed independently.
	assert.Equal(t, 2, idx.NameCount["apis mellifera"])
	assert.Equal(t, 1, idx.NameCount["apis mellifera iberiensis"])
	assert.Contains(t, idx.ClusterNames["BOLD:AAA0001"], "apis mellifera iberiensis")

	// Placeholder subspecies contributes nothing.
	assert.Zero(t, idx.NameCount["none"])
}

func TestScanNameValidity(t *testing.T) {
	path := writeRecords(t,
		"species\tbin_uri",
		"Apis mellifera\tBOLD:AAA0001",
		"\tBOLD:AAA0002",
		"None\tBOLD:AAA0003",
		"NA\tBOLD:AAA0004",
		"-\tBOLD:AAA0005",
		".\tBOLD:AAA0006",
	)

	sum, err := iorecords.Scan(path, config.FilterConfig{})
	require.NoError(t, err)

	assert.Equal(t, 6, sum.Rows)
	assert.Equal(t, 5, sum.SkippedName)
	assert.Len(t, sum.Index.NameCount, 1)

	// Skipped rows leave no trace in the cluster maps either.
	assert.NotContains(t, sum.Index.ClusterNames, "BOLD:AAA0003")
}

func TestScanMarkerFilter(t *testing.T) {
	path := writeRecords(t,
		"species\tmarker_code\tbin_uri",
		"Apis mellifera\tCOI-5P\tBOLD:AAA0001",
		"Apis mellifera\tITS\tBOLD:AAA0002",
		"Bombus terrestris\tCOI-5P\tBOLD:AAB0001",
	)

	filters := config.FilterConfig{Marker: "COI-5P"}
	sum, err := iorecords.Scan(path, filters)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.SkippedMarker)
	assert.Equal(t, 1, sum.Index.NameCount["apis mellifera"])
	assert.NotContains(t, sum.Index.ClusterNames, "BOLD:AAA0002")
}

func TestScanMarkerFilterNeedsColumn(t *testing.T) {
	path := writeRecords(t,
		"species\tbin_uri",
		"Apis mellifera\tBOLD:AAA0001",
	)

	_, err := iorecords.Scan(path, config.FilterConfig{Marker: "COI-5P"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker_code")
}

func TestScanKingdomFilter(t *testing.T) {
	path := writeRecords(t,
		"species\tkingdom\tbin_uri",
		"Apis mellifera\tAnimalia\tBOLD:AAA0001",
		"Plantago major\tPlantae\tBOLD:AAC0001",
		"Vanessa atalanta\tANIMALIA\tBOLD:AAD0001",
	)

	filters := config.FilterConfig{Kingdoms: []string{"Animalia"}}
	sum, err := iorecords.Scan(path, filters)
	require.NoError(t, err)

	// Membership check ignores case.
	assert.Equal(t, 1, sum.SkippedKingdom)
	assert.Len(t, sum.Index.NameCount, 2)
	assert.NotContains(t, sum.Index.NameCount, "plantago major")
}

func TestScanFilterOrder(t *testing.T) {
	// A row failing the marker filter is counted there even when its
	// name is also invalid.
	path := writeRecords(t,
		"species\tmarker_code\tbin_uri",
		"None\tITS\tBOLD:AAA0001",
	)

	sum, err := iorecords.Scan(path, config.FilterConfig{Marker: "COI-5P"})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.SkippedMarker)
	assert.Zero(t, sum.SkippedName)
}

func TestScanTolerant(t *testing.T) {
	path := writeRecords(t,
		"species\tbin_uri",
		"\"Apis mellifera\"\tBOLD:AAA0001",
	)

	sum, err := iorecords.Scan(path, config.FilterConfig{Tolerant: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Index.NameCount["apis mellifera"])
}

func TestScanLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and an invalid byte in UTF-8. The invalid
	// row comes after a valid one, so a lingering first-pass index
	// would double the counts.
	data := []byte("species\tbin_uri\n" +
		"Apis mellifera\tBOLD:AAA0001\n" +
		"Adela r\xe9aumurella\tBOLD:AAE0001\n")
	path := filepath.Join(t.TempDir(), "records.tsv")
	require.NoError(t, os.WriteFile(path, data, 0644))

	sum, err := iorecords.Scan(path, config.FilterConfig{})
	require.NoError(t, err)

	assert.True(t, sum.Latin1)
	assert.Equal(t, 2, sum.Rows)
	assert.Equal(t, 1, sum.Index.NameCount["apis mellifera"])
	assert.Equal(t, 1, sum.Index.NameCount["adela réaumurella"])
}

func TestCopyMatching(t *testing.T) {
	path := writeRecords(t,
		"processid\tspecies\tsubspecies\tbin_uri",
		"P1\tApis mellifera\t\tBOLD:AAA0001",
		"P2\tBombus terrestris\t\tBOLD:AAB0001",
		"P3\tVespa crabro\tVespa crabro crabro\tBOLD:AAC0001",
		"P4\tNone\t\tBOLD:AAD0001",
	)
	outPath := filepath.Join(t.TempDir(), "filtered.tsv")

	keep := map[string]struct{}{
		"apis mellifera":      {},
		"vespa crabro crabro": {},
	}

	kept, err := iorecords.CopyMatching(path, outPath, config.FilterConfig{}, keep, false)
	require.NoError(t, err)
	assert.Equal(t, 2, kept)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	// Header and rows pass through verbatim.
	assert.Equal(t, "processid\tspecies\tsubspecies\tbin_uri", lines[0])
	assert.Equal(t, "P1\tApis mellifera\t\tBOLD:AAA0001", lines[1])
	// P3 kept through its subspecies name.
	assert.Equal(t, "P3\tVespa crabro\tVespa crabro crabro\tBOLD:AAC0001", lines[2])
}

func TestCopyMatchingAppliesFilters(t *testing.T) {
	path := writeRecords(t,
		"species\tmarker_code\tbin_uri",
		"Apis mellifera\tCOI-5P\tBOLD:AAA0001",
		"Apis mellifera\tITS\tBOLD:AAA0001",
	)
	outPath := filepath.Join(t.TempDir(), "filtered.tsv")

	keep := map[string]struct{}{"apis mellifera": {}}
	filters := config.FilterConfig{Marker: "COI-5P"}

	kept, err := iorecords.CopyMatching(path, outPath, filters, keep, false)
	require.NoError(t, err)
	assert.Equal(t, 1, kept)
}

func TestScanMatchesAnalyzer(t *testing.T) {
	// End to end over the index: records under valid name and synonym
	// in one cluster grade A/AMBER.
	path := writeRecords(t,
		"species\tbin_uri",
		strings.TrimSuffix(strings.Repeat("Apis mellifera\tBOLD:AAA0001\n", 12), "\n"),
		"Apis mellifica\tBOLD:AAA0001",
		"Apis mellifica\tBOLD:AAA0001",
	)

	sum, err := iorecords.Scan(path, config.FilterConfig{})
	require.NoError(t, err)

	taxon := gap.NewTaxon(0, "Apis mellifera", []string{"Apis mellifica"}, nil)
	res := gap.Analyze(taxon, sum.Index)

	assert.Equal(t, 14, res.Records)
	assert.Equal(t, gap.GradeA, res.Grade)
	assert.Equal(t, gap.StatusAmber, res.Status)
}
