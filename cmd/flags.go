/*
Copyright © 2025 Natural History Museum, London

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/nhmuk/bgap/internal/iopresets"
	"github.com/nhmuk/bgap/pkg/config"
	"github.com/spf13/cobra"
)

// registerFilterFlags adds the record-filter flags shared by the
// commands that stream records files.
func registerFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(
		"preset", "p", "",
		"named filter bundle from presets.yaml",
	)
	cmd.Flags().StringP(
		"marker", "m", "",
		"keep only records of this marker gene code",
	)
	cmd.Flags().StringSliceP(
		"kingdoms", "k", nil,
		"keep only records of these kingdoms",
	)
	cmd.Flags().Bool(
		"tolerant", false,
		"sanitize embedded control and quote characters in fields",
	)
}

// filterOptions turns the filter flags into config options. A preset
// is applied first, explicitly set flags override its values.
func filterOptions(cmd *cobra.Command) ([]config.Option, error) {
	var res []config.Option

	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		p, err := iopresets.New(cfg).Resolve(name)
		if err != nil {
			return nil, err
		}
		if p.Marker != "" {
			res = append(res, config.OptFilterMarker(p.Marker))
		}
		if len(p.Kingdoms) > 0 {
			res = append(res, config.OptFilterKingdoms(p.Kingdoms))
		}
		if p.Tolerant {
			res = append(res, config.OptFilterTolerant(true))
		}
	}

	if cmd.Flags().Changed("marker") {
		marker, _ := cmd.Flags().GetString("marker")
		res = append(res, config.OptFilterMarker(marker))
	}
	if cmd.Flags().Changed("kingdoms") {
		kingdoms, _ := cmd.Flags().GetStringSlice("kingdoms")
		res = append(res, config.OptFilterKingdoms(kingdoms))
	}
	if cmd.Flags().Changed("tolerant") {
		tolerant, _ := cmd.Flags().GetBool("tolerant")
		res = append(res, config.OptFilterTolerant(tolerant))
	}

	return res, nil
}
