package iopresets

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/nhmuk/bgap/pkg/errcode"
)

// PresetsFileError creates an error for when presets.yaml cannot be
// loaded.
func PresetsFileError(path string, err error) error {
	msg := `Cannot load presets from <em>%s</em>

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PresetFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load presets %s: %w",
			fn, path, err),
	}
}

// UnknownPresetError names the presets that do exist, so a typo is
// easy to spot.
func UnknownPresetError(name string, known []string) error {
	msg := `Unknown preset <em>%s</em>

Available presets: <em>%s</em>`
	vars := []any{name, strings.Join(known, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PresetUnknownError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no preset named %s, have [%s]",
			fn, name, strings.Join(known, ", ")),
	}
}
