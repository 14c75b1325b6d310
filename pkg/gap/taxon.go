package gap

// Taxon is one entry of a species authority list: the accepted name,
// its synonyms, and the source row it came from. A Taxon does not
// change after it is built.
type Taxon struct {
	// Row is the zero-based position of the entry in the source list.
	Row int

	// ValidName is the accepted name exactly as written in the source.
	ValidName string

	// Synonyms keeps alternative names in source order and spelling.
	Synonyms []string

	// Attributes holds every column of the source row keyed by column
	// name, so reports can carry the original data through unchanged.
	Attributes map[string]string

	allNames map[string]struct{}
}

// NewTaxon builds a Taxon and derives its name set, the normalized
// forms of the valid name and all synonyms.
func NewTaxon(
	row int,
	validName string,
	synonyms []string,
	attributes map[string]string,
) Taxon {
	t := Taxon{
		Row:        row,
		ValidName:  validName,
		Synonyms:   synonyms,
		Attributes: attributes,
		allNames:   make(map[string]struct{}, len(synonyms)+1),
	}
	t.allNames[Normalize(validName)] = struct{}{}
	for _, syn := range synonyms {
		t.allNames[Normalize(syn)] = struct{}{}
	}
	return t
}

// AllNames returns the normalized names of the taxon, valid name and
// synonyms combined. The returned map must not be modified.
func (t Taxon) AllNames() map[string]struct{} {
	return t.allNames
}

// HasName reports whether name belongs to the taxon after
// normalization.
func (t Taxon) HasName(name string) bool {
	_, ok := t.allNames[Normalize(name)]
	return ok
}
