// Package ioextract filters rows out of records files: keep one
// marker gene, keep a set of kingdoms, scrub messy fields. It is the
// usual first step that cuts a multi-gigabyte repository snapshot
// down to the records a gap analysis actually needs.
package ioextract

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
)

// Column aliases in preference order.
var (
	markerAliases  = []string{"marker_code", "marker"}
	kingdomAliases = []string{"kingdom"}
)

const progressEvery = 500_000

// Params collects the paths and filters of one extraction run. Use
// "-" to read stdin or write stdout.
type Params struct {
	InputPath  string
	OutputPath string
	Filters    config.FilterConfig
}

// Summary is the outcome of one extraction run.
type Summary struct {
	Rows           int // data rows read
	Kept           int // rows written
	SkippedMarker  int
	SkippedKingdom int
}

// Run streams the input once, writing the rows that pass every
// filter. The header passes through unchanged. The marker comparison
// ignores case, matching how gene codes vary across submitters. A
// file that does not decode as UTF-8 is re-read as Latin-1; stdin
// cannot be re-read, so a non-UTF-8 stream on stdin fails.
func Run(p Params) (*Summary, error) {
	sum, err := run(p, false)
	if err != nil && errors.Is(err, iotsv.ErrNotUTF8) && p.InputPath != "-" {
		slog.Warn("Input is not UTF-8, re-reading as Latin-1",
			"path", p.InputPath)
		return run(p, true)
	}
	return sum, err
}

func run(p Params, latin1 bool) (*Summary, error) {
	var r *iotsv.Reader
	var err error
	if latin1 {
		r, err = iotsv.NewLatin1Reader(p.InputPath)
	} else {
		r, err = iotsv.NewReader(p.InputPath)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	markerCol, kingdomCol := -1, -1
	if p.Filters.Marker != "" {
		if markerCol, err = r.RequireColumn(markerAliases...); err != nil {
			return nil, err
		}
	}
	if len(p.Filters.Kingdoms) > 0 {
		if kingdomCol, err = r.RequireColumn(kingdomAliases...); err != nil {
			return nil, err
		}
	}

	kingdoms := make(map[string]struct{}, len(p.Filters.Kingdoms))
	for _, k := range p.Filters.Kingdoms {
		kingdoms[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	w, err := iotsv.NewWriter(p.OutputPath)
	if err != nil {
		return nil, err
	}
	if err := w.WriteLine(r.HeaderLine()); err != nil {
		w.Close()
		return nil, err
	}

	// A progress line would interleave with piped output.
	progress := p.OutputPath != "-"
	sum := &Summary{}
	start := time.Now()

	for r.Next() {
		sum.Rows++
		if progress && sum.Rows%progressEvery == 0 {
			fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 40))
			fmt.Fprintf(os.Stderr, "\rProcessed %s rows",
				humanize.Comma(int64(sum.Rows)))
		}

		if markerCol >= 0 {
			m := field(r, markerCol, p.Filters.Tolerant)
			if !strings.EqualFold(m, p.Filters.Marker) {
				sum.SkippedMarker++
				continue
			}
		}
		if kingdomCol >= 0 {
			k := field(r, kingdomCol, p.Filters.Tolerant)
			if _, ok := kingdoms[strings.ToLower(k)]; !ok {
				sum.SkippedKingdom++
				continue
			}
		}

		if err := writeRow(w, r, p.Filters.Tolerant); err != nil {
			w.Close()
			return nil, err
		}
		sum.Kept++
	}
	if err := r.Err(); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	if progress {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 40))
	}
	slog.Info("Extraction complete",
		"rows", sum.Rows,
		"kept", sum.Kept,
		"skipped_marker", sum.SkippedMarker,
		"skipped_kingdom", sum.SkippedKingdom,
		"duration", time.Since(start).String(),
	)
	return sum, nil
}

func field(r *iotsv.Reader, idx int, tolerant bool) string {
	if tolerant {
		return iotsv.Sanitize(r.Field(idx))
	}
	return strings.TrimSpace(r.Field(idx))
}

// writeRow emits the surviving row: verbatim normally, field by
// sanitized field in tolerant mode.
func writeRow(w *iotsv.Writer, r *iotsv.Reader, tolerant bool) error {
	if !tolerant {
		return w.WriteLine(r.Raw())
	}
	row := r.Row()
	fields := make([]string, len(row))
	for i, f := range row {
		fields[i] = iotsv.Sanitize(f)
	}
	return w.WriteRow(fields...)
}
