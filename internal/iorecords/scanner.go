// Package iorecords builds the record index for gap analysis: a
// single streaming pass over a sequence-records file accumulating
// per-name record counts and name to cluster memberships. Records
// files run to millions of rows, so memory stays proportional to
// unique names and cluster ids, never to rows.
package iorecords

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/nhmuk/bgap/pkg/gap"
)

// Column aliases in preference order.
var (
	nameAliases    = []string{"species", "organism"}
	clusterAliases = []string{"bin_uri", "otu_id", "bin"}
	markerAliases  = []string{"marker_code", "marker"}
	kingdomAliases = []string{"kingdom"}
)

const subspeciesColumn = "subspecies"

// progressEvery controls how often the streaming pass reports.
const progressEvery = 500_000

// Summary is the outcome of indexing a records file.
type Summary struct {
	Index *gap.RecordIndex

	// ClusterColumn is the header the cluster ids came from, spelled
	// as in the file.
	ClusterColumn string

	Rows        int // data rows read
	WithCluster int // rows that contributed at least one cluster id

	// Rows dropped by each filter.
	SkippedMarker  int
	SkippedKingdom int
	SkippedName    int

	// Latin1 is true when the file needed the Latin-1 fallback.
	Latin1 bool
}

// Scan streams the records file at path into a fresh index. When the
// file does not decode as UTF-8 the pass starts over as Latin-1 with
// an empty index, so a decode failure never leaves partial state.
func Scan(path string, filters config.FilterConfig) (*Summary, error) {
	sum, err := scan(path, filters, false)
	if err != nil && errors.Is(err, iotsv.ErrNotUTF8) {
		slog.Warn("Records file is not UTF-8, re-reading as Latin-1",
			"path", path)
		return scan(path, filters, true)
	}
	return sum, err
}

func scan(path string, filters config.FilterConfig, latin1 bool) (*Summary, error) {
	r, err := openReader(path, latin1)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cols, err := detectColumns(r, filters)
	if err != nil {
		return nil, err
	}
	slog.Info("Using cluster column", "column", cols.clusterName)
	if cols.subspecies >= 0 {
		slog.Info("Subspecies column detected, indexing subspecies names too")
	}

	sum := &Summary{
		Index:         gap.NewRecordIndex(),
		ClusterColumn: cols.clusterName,
		Latin1:        latin1,
	}

	kingdoms := allowedKingdoms(filters.Kingdoms)
	start := time.Now()
	timeStart := start.UnixNano()

	for r.Next() {
		sum.Rows++

		// Progress tracking: report every 500,000 records
		if sum.Rows%progressEvery == 0 {
			timeSpent := float64(time.Now().UnixNano()-timeStart) / 1_000_000_000
			speed := int64(float64(sum.Rows) / timeSpent)
			fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 40))
			fmt.Fprintf(os.Stderr, "\rIndexed %s records, %s records/sec",
				humanize.Comma(int64(sum.Rows)), humanize.Comma(speed))
		}

		name, v := filterRow(r, cols, filters, kingdoms)
		switch v {
		case rowSkipMarker:
			sum.SkippedMarker++
			continue
		case rowSkipKingdom:
			sum.SkippedKingdom++
			continue
		case rowSkipName:
			sum.SkippedName++
			continue
		}

		clusterIDs := splitClusterIDs(r.Field(cols.cluster))
		if len(clusterIDs) > 0 {
			sum.WithCluster++
		}
		sum.Index.Add(name, clusterIDs...)

		// Subspecies names are indexed independently, not merged into
		// the parent species entry.
		if cols.subspecies >= 0 {
			sub := cleanField(r.Field(cols.subspecies), filters.Tolerant)
			if validName(sub) {
				sum.Index.Add(sub, clusterIDs...)
			}
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	// Clear progress line
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 40))

	slog.Info("Record index complete",
		"records", sum.Rows,
		"with_cluster", sum.WithCluster,
		"unique_names", sum.Index.Names(),
		"unique_clusters", sum.Index.Clusters(),
		"skipped_marker", sum.SkippedMarker,
		"skipped_kingdom", sum.SkippedKingdom,
		"skipped_name", sum.SkippedName,
		"duration", time.Since(start).String(),
	)
	return sum, nil
}

// columns holds the positions the scanner resolved from the header.
// Optional columns are -1 when absent.
type columns struct {
	name        int
	cluster     int
	clusterName string
	subspecies  int
	marker      int
	kingdom     int
}

func detectColumns(r *iotsv.Reader, filters config.FilterConfig) (columns, error) {
	c := columns{subspecies: -1, marker: -1, kingdom: -1}

	var err error
	c.name, err = r.RequireColumn(nameAliases...)
	if err != nil {
		return c, err
	}
	c.cluster, err = r.RequireColumn(clusterAliases...)
	if err != nil {
		return c, err
	}
	c.clusterName = r.Header()[c.cluster]

	if idx, ok := r.Column(subspeciesColumn); ok {
		c.subspecies = idx
	}

	// Marker and kingdom columns are only required when the matching
	// filter is on.
	if filters.Marker != "" {
		c.marker, err = r.RequireColumn(markerAliases...)
		if err != nil {
			return c, err
		}
	}
	if len(filters.Kingdoms) > 0 {
		c.kingdom, err = r.RequireColumn(kingdomAliases...)
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

func openReader(path string, latin1 bool) (*iotsv.Reader, error) {
	if latin1 {
		return iotsv.NewLatin1Reader(path)
	}
	return iotsv.NewReader(path)
}
