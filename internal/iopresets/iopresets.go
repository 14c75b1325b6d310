// Package iopresets loads the presets.yaml file with filter bundles
// for known upstream data packages.
package iopresets

import (
	"os"

	"github.com/gnames/gn"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/nhmuk/bgap/pkg/preset"
	"gopkg.in/yaml.v3"
)

type iopresets struct {
	cfg *config.Config
}

func New(cfg *config.Config) preset.Presets {
	res := iopresets{cfg: cfg}
	return &res
}

func (p *iopresets) Load() (*preset.PresetsConfig, error) {
	presetsPath := config.PresetsFilePath(p.cfg.HomeDir)
	presetsConfig, err := loadPresetsConfig(presetsPath)
	if err != nil {
		return nil, err
	}

	for _, w := range presetsConfig.Warnings {
		gn.Warn(
			"Preset <em>%s</em>, field <em>%s</em>: %s",
			w.Preset, w.Field, w.Message,
		)
	}

	return presetsConfig, nil
}

// Resolve loads presets.yaml and returns the preset with the given
// name. Unknown names fail with a list of the presets that do exist.
func (p *iopresets) Resolve(name string) (preset.Preset, error) {
	presetsConfig, err := p.Load()
	if err != nil {
		return preset.Preset{}, err
	}
	res, ok := presetsConfig.Find(name)
	if !ok {
		return preset.Preset{}, UnknownPresetError(name, presetsConfig.Names())
	}
	return res, nil
}

func loadPresetsConfig(path string) (*preset.PresetsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, PresetsFileError(path, err)
	}

	var res preset.PresetsConfig
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, PresetsFileError(path, err)
	}

	if err := res.Validate(); err != nil {
		return nil, PresetsFileError(path, err)
	}

	return &res, nil
}
