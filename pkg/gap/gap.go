// Package gap implements taxon-level gap analysis of DNA barcode
// reference libraries. A curated species list is matched against the
// records of a barcode repository, and every taxon receives a BAGS
// grade describing how reliable its barcode coverage is, together with
// a status describing which of its names were actually found.
//
// The package performs no I/O. Loaders elsewhere produce a slice of
// Taxon values and a RecordIndex, and Analyze and AnalyzeAll work on
// those alone.
package gap

import (
	"strings"
	"unicode"
)

// Normalize returns the canonical matching form of a scientific name:
// lowercased, with underscores turned into spaces, and surrounding
// whitespace trimmed. The function is idempotent, so normalized names
// pass through unchanged.
func Normalize(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), "_", " ")
	return strings.TrimSpace(name)
}

// FormatName renders a normalized name for display. The first word is
// capitalized, the rest stay lowercase: "riparia riparia" becomes
// "Riparia riparia".
func FormatName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name
	}
	first := []rune(parts[0])
	parts[0] = string(unicode.ToUpper(first[0])) + strings.ToLower(string(first[1:]))
	return strings.Join(parts, " ")
}
