package iorecords

import (
	"log/slog"

	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/nhmuk/bgap/pkg/gap"
)

// CopyMatching re-streams the records file at path and writes to
// outPath only the rows whose species or subspecies name normalizes
// into keep. Rows pass through the same filters used to build the
// index, so the copy is exactly the evidence the analysis saw. Rows
// are written verbatim. Set latin1 to whatever the index-building
// pass ended up using.
func CopyMatching(path, outPath string, filters config.FilterConfig, keep map[string]struct{}, latin1 bool) (int, error) {
	r, err := openReader(path, latin1)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	cols, err := detectColumns(r, filters)
	if err != nil {
		return 0, err
	}

	w, err := iotsv.NewWriter(outPath)
	if err != nil {
		return 0, err
	}

	if err := w.WriteLine(r.HeaderLine()); err != nil {
		w.Close()
		return 0, err
	}

	kingdoms := allowedKingdoms(filters.Kingdoms)
	var kept int

	for r.Next() {
		name, v := filterRow(r, cols, filters, kingdoms)
		if v != rowOK {
			continue
		}

		_, ok := keep[gap.Normalize(name)]
		if !ok && cols.subspecies >= 0 {
			sub := cleanField(r.Field(cols.subspecies), filters.Tolerant)
			if validName(sub) {
				_, ok = keep[gap.Normalize(sub)]
			}
		}
		if !ok {
			continue
		}

		if err := w.WriteLine(r.Raw()); err != nil {
			w.Close()
			return 0, err
		}
		kept++
	}
	if err := r.Err(); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	slog.Info("Filtered records written", "path", outPath, "rows", kept)
	return kept, nil
}
