package ioauthority

import (
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/stretchr/testify/assert"
)

func testCache() *cache {
	c := &cache{
		taxa:     make(map[string]*taxonRow),
		children: make(map[string][]string),
		latin:    make(map[string][]string),
	}
	add := func(tvk, name, parent, rank string) {
		c.taxa[tvk] = &taxonRow{
			tvk: tvk, name: name, parentTVK: parent, rank: rank,
		}
		if parent != "" {
			c.children[parent] = append(c.children[parent], tvk)
		}
	}
	add("K1", "Animalia", "", "Kingdom")
	add("P1", "Arthropoda", "K1", "Phylum")
	add("C1", "Insecta", "P1", "Class")
	add("O1", "Hymenoptera", "C1", "Order")
	add("F1", "Apidae", "O1", "Family")
	add("G1", "Apis", "F1", "Genus")
	add("S1", "Apis mellifera", "G1", "Species")
	return c
}

func TestWalkLineage(t *testing.T) {
	c := testCache()
	l := c.walkLineage("S1")

	assert.Equal(t, "Animalia", l.kingdom)
	assert.Equal(t, "Arthropoda", l.phylumDivision)
	assert.Equal(t, "Insecta", l.class)
	assert.Equal(t, "Hymenoptera", l.order)
	assert.Equal(t, "Apidae", l.family)
	assert.Equal(t, "Apis", l.genus)
}

func TestWalkLineageDivision(t *testing.T) {
	c := testCache()
	c.taxa["K2"] = &taxonRow{tvk: "K2", name: "Plantae", rank: "Kingdom"}
	c.taxa["D1"] = &taxonRow{
		tvk: "D1", name: "Tracheophyta", parentTVK: "K2", rank: "Division",
	}
	c.taxa["S2"] = &taxonRow{
		tvk: "S2", name: "Quercus robur", parentTVK: "D1", rank: "Species",
	}

	l := c.walkLineage("S2")
	assert.Equal(t, "Plantae", l.kingdom)
	assert.Equal(t, "Tracheophyta", l.phylumDivision,
		"Division fills the phylum_division slot")
}

func TestWalkLineageCycle(t *testing.T) {
	c := testCache()
	// Corrupt the chain into a cycle; the walk must still terminate.
	c.taxa["K1"].parentTVK = "S1"
	l := c.walkLineage("S1")
	assert.Equal(t, "Animalia", l.kingdom)
}

func TestSynonymsAggregation(t *testing.T) {
	c := testCache()
	c.latin["S1"] = []string{"Apis mellifica", "Apis mellifera"}
	c.taxa["S1a"] = &taxonRow{
		tvk: "S1a", name: "Apis mellifera mellifera",
		parentTVK: "S1", rank: "Subspecies",
	}
	c.children["S1"] = append(c.children["S1"], "S1a")

	syns := c.synonyms(c.taxa["S1"])
	assert.Equal(t,
		[]string{"Apis mellifera mellifera", "Apis mellifica"},
		syns, "valid name dropped, rest deduped and sorted")
}

func TestSynonymsSubgenusExpansion(t *testing.T) {
	c := testCache()
	c.taxa["S3"] = &taxonRow{
		tvk: "S3", name: "Bombus (Pyrobombus) pratorum",
		parentTVK: "G1", rank: "Species",
	}

	syns := c.synonyms(c.taxa["S3"])
	assert.Contains(t, syns, "Bombus pratorum")
	assert.Contains(t, syns, "Pyrobombus pratorum")
}

func TestExpandSubgenus(t *testing.T) {
	tests := []struct {
		msg, name string
		want      []string
	}{
		{
			"subgenus", "Bombus (Pyrobombus) pratorum",
			[]string{"Bombus pratorum", "Pyrobombus pratorum"},
		},
		{"plain binomial", "Apis mellifera", nil},
		{"uninomial", "Apis", nil},
		{
			"trinomial", "Bombus (Bombus) terrestris audax",
			[]string{"Bombus terrestris audax", "Bombus terrestris audax"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, expandSubgenus(tt.name))
		})
	}
}

func TestScreenName(t *testing.T) {
	tests := []struct {
		msg, name string
		bad       bool
	}{
		{"clean binomial", "Apis mellifera", false},
		{"abbreviated genus", "A. mellifera", true},
		{"uncertain", "Apis mellifera?", true},
		{"aggregate", "Apis (Other)", true},
		{"quoted", `Apis "mellifera"`, true},
		{"unidentified", "Apis (unidentified)", true},
		{"indeterminate", "Apis indet", true},
		{"indet inside a word", "Apis indeterminatus", false},
		{"slash pair", "Apis mellifera/cerana", true},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, bad := screenName(tt.name)
			assert.Equal(t, tt.bad, bad)
		})
	}
}

func TestCodeForKingdom(t *testing.T) {
	assert.Equal(t, nomcode.Zoological, codeForKingdom("Animalia"))
	assert.Equal(t, nomcode.Zoological, codeForKingdom("animalia"))
	assert.Equal(t, nomcode.Botanical, codeForKingdom("Plantae"))
	assert.Equal(t, nomcode.Botanical, codeForKingdom("Fungi"))
}
