// Package iospecies loads a species checklist into the authority list
// the gap analyzer runs against. A checklist is a tab separated file
// with one row per accepted species and an optional column of
// semicolon separated synonyms.
package iospecies

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/gap"
)

// Column aliases in preference order.
var (
	nameAliases    = []string{"taxon_name", "species"}
	synonymAliases = []string{"synonyms", "synonym"}
)

// List is a loaded checklist: the taxa in file order plus the original
// column names for round-trip output.
type List struct {
	Taxa   []gap.Taxon
	Header []string

	// Skipped counts rows dropped for an empty name.
	Skipped int
}

// Load reads the checklist at path. It fails when no name column is
// found under any known alias; rows with an empty name are skipped.
// A file that does not decode as UTF-8 is re-read as Latin-1.
func Load(path string) (*List, error) {
	list, err := load(path, false)
	if err != nil && errors.Is(err, iotsv.ErrNotUTF8) {
		slog.Warn("Species list is not UTF-8, re-reading as Latin-1",
			"path", path)
		return load(path, true)
	}
	return list, err
}

func load(path string, latin1 bool) (*List, error) {
	var r *iotsv.Reader
	var err error
	if latin1 {
		r, err = iotsv.NewLatin1Reader(path)
	} else {
		r, err = iotsv.NewReader(path)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	nameIdx, err := r.RequireColumn(nameAliases...)
	if err != nil {
		return nil, err
	}
	synIdx, hasSyn := r.Column(synonymAliases...)

	list := &List{Header: r.Header()}
	for r.Next() {
		name := strings.TrimSpace(r.Field(nameIdx))
		if name == "" {
			list.Skipped++
			continue
		}

		var synonyms []string
		if hasSyn {
			synonyms = splitSynonyms(r.Field(synIdx))
		}

		attrs := make(map[string]string, len(list.Header))
		for i, col := range list.Header {
			attrs[col] = r.Field(i)
		}

		taxon := gap.NewTaxon(len(list.Taxa), name, synonyms, attrs)
		list.Taxa = append(list.Taxa, taxon)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	slog.Info("Species list loaded",
		"path", path,
		"taxa", len(list.Taxa),
		"skipped", list.Skipped,
	)
	return list, nil
}

// splitSynonyms splits a semicolon separated synonym list, trimming
// each token and dropping empty ones.
func splitSynonyms(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	var syns []string
	for _, tok := range strings.Split(field, ";") {
		if tok = strings.TrimSpace(tok); tok != "" {
			syns = append(syns, tok)
		}
	}
	return syns
}
