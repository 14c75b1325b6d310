package ioauthority

import "strings"

// lineage is the higher taxonomy collected by walking a taxon's
// parent chain. Fields stay empty when the chain does not carry the
// rank.
type lineage struct {
	kingdom        string
	phylumDivision string
	class          string
	order          string
	family         string
	genus          string
}

// walkLineage climbs the parent chain of the taxon, filling lineage
// slots by rank. Botanical dumps use Division where zoological ones
// use phylum; both land in phylumDivision. A visited set guards
// against parent cycles in dirty dumps, and only the first taxon of
// each rank on the way up wins.
func (c *cache) walkLineage(tvk string) lineage {
	var l lineage
	visited := make(map[string]struct{})

	cur := c.taxa[tvk]
	for cur != nil {
		if _, seen := visited[cur.tvk]; seen {
			break
		}
		visited[cur.tvk] = struct{}{}

		switch strings.ToLower(cur.rank) {
		case "kingdom":
			if l.kingdom == "" {
				l.kingdom = cur.name
			}
		case "phylum", "division":
			if l.phylumDivision == "" {
				l.phylumDivision = cur.name
			}
		case "class":
			if l.class == "" {
				l.class = cur.name
			}
		case "order":
			if l.order == "" {
				l.order = cur.name
			}
		case "family":
			if l.family == "" {
				l.family = cur.name
			}
		case "genus":
			if l.genus == "" {
				l.genus = cur.name
			}
		}

		if cur.parentTVK == "" {
			break
		}
		cur = c.taxa[cur.parentTVK]
	}
	return l
}
