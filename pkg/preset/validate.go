package preset

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for fatal errors and collects
// non-fatal warnings. Duplicate names and filterless presets are
// warnings: the file stays usable, Find resolves duplicates to the
// first definition.
func (c *PresetsConfig) Validate() error {
	if len(c.Presets) == 0 {
		return fmt.Errorf("no presets specified in configuration")
	}

	seen := make(map[string]struct{})
	for i := range c.Presets {
		p := &c.Presets[i]

		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("preset %d: name is required", i+1)
		}

		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, ok := seen[key]; ok {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Preset:     p.Name,
				Field:      "name",
				Message:    fmt.Sprintf("duplicate preset name '%s'", p.Name),
				Suggestion: "Rename or remove the duplicate entry; the first definition wins",
			})
			continue
		}
		seen[key] = struct{}{}

		if p.Marker == "" && len(p.Kingdoms) == 0 && !p.Tolerant {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Preset:     p.Name,
				Field:      "filters",
				Message:    "preset enables no filters",
				Suggestion: "Set 'marker', 'kingdoms' or 'tolerant', or drop the preset",
			})
		}
	}

	return nil
}

// Find returns the preset with the given name, ignoring case and
// surrounding whitespace. The second value is false when the name is
// unknown.
func (c *PresetsConfig) Find(name string) (Preset, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range c.Presets {
		if strings.ToLower(strings.TrimSpace(p.Name)) == key {
			return p, true
		}
	}
	return Preset{}, false
}

// Names returns the preset names in configuration order.
func (c *PresetsConfig) Names() []string {
	res := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		res[i] = p.Name
	}
	return res
}
