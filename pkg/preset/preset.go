// Package preset provides named filter bundles for known upstream data
// packages.
//
// A preset collects the record filters appropriate for one source of
// clustered barcode data (BOLD data packages, GenBank-derived tables and
// so on), so runs against a known source take a single --preset flag
// instead of a string of filter flags. Users can extend presets.yaml
// with their own entries.
package preset

// Presets loads the presets.yaml configuration.
type Presets interface {
	// Load reads and validates the presets file.
	Load() (*PresetsConfig, error)

	// Resolve returns the named preset, failing when no preset of
	// that name exists.
	Resolve(name string) (Preset, error)
}

// PresetsConfig represents the complete presets.yaml configuration file.
type PresetsConfig struct {
	// Presets is the list of named filter bundles.
	Presets []Preset `yaml:"presets"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Preset     string // Name of the preset
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// Preset is the filter bundle for one known source of records.
type Preset struct {
	// Name identifies the preset. The --preset flag matches it
	// case-insensitively.
	Name string `yaml:"name"`

	// Description is a one-line note about the upstream source.
	Description string `yaml:"description,omitempty"`

	// Marker keeps only records of this gene code.
	// Empty disables the marker filter.
	Marker string `yaml:"marker,omitempty"`

	// Kingdoms keeps only records of these kingdoms.
	// Empty disables the kingdom filter.
	Kingdoms []string `yaml:"kingdoms,omitempty"`

	// Tolerant sanitizes embedded control and quote characters, for
	// sources known to ship messy fields.
	Tolerant bool `yaml:"tolerant,omitempty"`
}
