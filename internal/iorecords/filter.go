package iorecords

import (
	"strings"

	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/config"
)

// placeholders are tokens messy exports use instead of an empty field.
var placeholders = map[string]struct{}{
	"none": {},
	"null": {},
	"na":   {},
	"-":    {},
	".":    {},
}

// validName reports whether a name field holds a real value.
func validName(name string) bool {
	if name == "" {
		return false
	}
	_, bad := placeholders[strings.ToLower(name)]
	return !bad
}

// cleanField trims a raw field, scrubbing control characters and
// quotes as well when tolerant mode is on.
func cleanField(v string, tolerant bool) string {
	if tolerant {
		return iotsv.Sanitize(v)
	}
	return strings.TrimSpace(v)
}

// splitClusterIDs splits a pipe separated cluster-id field, dropping
// blank and placeholder tokens.
func splitClusterIDs(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	var ids []string
	for _, tok := range strings.Split(field, "|") {
		if tok = strings.TrimSpace(tok); validName(tok) {
			ids = append(ids, tok)
		}
	}
	return ids
}

// allowedKingdoms lowercases the configured kingdom allow-set, or
// returns nil when kingdom filtering is off.
func allowedKingdoms(kingdoms []string) map[string]struct{} {
	if len(kingdoms) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(kingdoms))
	for _, k := range kingdoms {
		m[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	return m
}

type verdict int

const (
	rowOK verdict = iota
	rowSkipMarker
	rowSkipKingdom
	rowSkipName
)

// filterRow applies the marker, kingdom and name-validity filters in
// order; the first rejection wins. It returns the cleaned species
// name for surviving rows. Both index building and the filtered copy
// go through here, so the two stay consistent.
func filterRow(r *iotsv.Reader, cols columns, filters config.FilterConfig, kingdoms map[string]struct{}) (string, verdict) {
	if cols.marker >= 0 {
		if cleanField(r.Field(cols.marker), filters.Tolerant) != filters.Marker {
			return "", rowSkipMarker
		}
	}
	if kingdoms != nil {
		k := cleanField(r.Field(cols.kingdom), filters.Tolerant)
		if _, ok := kingdoms[strings.ToLower(k)]; !ok {
			return "", rowSkipKingdom
		}
	}
	name := cleanField(r.Field(cols.name), filters.Tolerant)
	if !validName(name) {
		return "", rowSkipName
	}
	return name, rowOK
}
