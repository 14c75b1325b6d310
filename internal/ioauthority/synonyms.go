package ioauthority

import (
	"regexp"
	"slices"
	"strings"

	"github.com/nhmuk/bgap/pkg/gap"
)

// subgenusRe matches names written with an interpolated subgenus,
// "Genus (Subgenus) epithet ...".
var subgenusRe = regexp.MustCompile(`^(\S+) \(([^)]+)\) (.+)$`)

// synonyms aggregates the alternate names of one taxon: the Latin
// names attached to it in the names table, the names of child taxa
// that point to it as parent, and the subgenus expansions of all of
// the above. The valid name itself is dropped, the rest deduplicated
// on normalized form and sorted.
func (c *cache) synonyms(t *taxonRow) []string {
	var raw []string
	raw = append(raw, c.latin[t.tvk]...)
	for _, childTVK := range c.children[t.tvk] {
		if child := c.taxa[childTVK]; child != nil && child.name != "" {
			raw = append(raw, child.name)
		}
	}

	// Expansions of the valid name are synonyms too, even though the
	// valid name itself is not.
	raw = append(raw, expandSubgenus(t.name)...)
	for _, n := range slices.Clone(raw) {
		raw = append(raw, expandSubgenus(n)...)
	}

	valid := gap.Normalize(t.name)
	seen := make(map[string]struct{}, len(raw))
	var res []string
	for _, n := range raw {
		key := gap.Normalize(n)
		if key == valid {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, n)
	}
	slices.Sort(res)
	return res
}

// expandSubgenus turns "Genus (Subgenus) epithet" into the two plain
// binomials "Genus epithet" and "Subgenus epithet". Names without an
// interpolated subgenus expand to nothing.
func expandSubgenus(name string) []string {
	m := subgenusRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return nil
	}
	return []string{
		m[1] + " " + m[3],
		m[2] + " " + m[3],
	}
}
