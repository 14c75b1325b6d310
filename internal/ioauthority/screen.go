package ioauthority

import (
	"regexp"
	"strings"
)

// indetRe matches "indet" as a whole word, the usual marker of an
// undetermined specimen.
var indetRe = regexp.MustCompile(`(?i)\bindet\b`)

// screenReason names the pattern that sent a name to the review
// output. Reasons aggregate into summary counts only.
type screenReason string

const (
	reasonPeriod       screenReason = "contains period"
	reasonQuestion     screenReason = "contains question mark"
	reasonOther        screenReason = "contains (Other)"
	reasonQuote        screenReason = "contains quote"
	reasonUnidentified screenReason = "contains (unidentified)"
	reasonIndet        screenReason = "indeterminate"
	reasonSlash        screenReason = "contains slash"
)

// screenName checks a name against the known patterns of
// placeholder, uncertain and aggregate entries in the source
// taxonomy. Names that match belong in the review output, not the
// species checklist.
func screenName(name string) (screenReason, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(name, "."):
		return reasonPeriod, true
	case strings.Contains(name, "?"):
		return reasonQuestion, true
	case strings.Contains(lower, "(other)"):
		return reasonOther, true
	case strings.Contains(name, `"`):
		return reasonQuote, true
	case strings.Contains(lower, "(unidentified)"):
		return reasonUnidentified, true
	case indetRe.MatchString(name):
		return reasonIndet, true
	case strings.Contains(name, "/"):
		return reasonSlash, true
	}
	return "", false
}
