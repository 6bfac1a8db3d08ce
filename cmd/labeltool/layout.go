// seehuhn.de/go/label - load and lay out packaged label documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seehuhn.de/go/label"
	"seehuhn.de/go/label/fontmetrics"
	"seehuhn.de/go/label/layout"
	"seehuhn.de/go/label/units"
)

func (a *app) layoutCmd() *cobra.Command {
	var assignments []string
	var points bool
	cmd := &cobra.Command{
		Use:   "layout <label-file>",
		Short: "Show positions and font sizes of label items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			fonts, err := a.fonts()
			if err != nil {
				return err
			}
			r := a.resolver(doc)
			if err := setValues(r, assignments); err != nil {
				return err
			}

			p := &layout.Planner{
				Resolver: r,
				Measurer: fonts,
				ImageDir: a.cfg.ImageDir,
				Logger:   a.logger,
			}
			warnMissingFonts(a, fonts, doc)

			conv := func(x float64) float64 { return x }
			if points {
				conv = units.PixelsToPoints
			}
			w := cmd.OutOrStdout()
			for _, pl := range p.Plan() {
				info := pl.Item.Info()
				b := pl.Box
				fmt.Fprintf(w, "%s %-8s (%7.2f,%7.2f)-(%7.2f,%7.2f)",
					idStyle.Render(info.ID), itemKind(pl.Item),
					conv(b.LLx), conv(b.LLy), conv(b.URx), conv(b.URy))
				if pl.FontSize > 0 {
					fmt.Fprintf(w, " %5.1fpt", pl.FontSize)
				}
				fmt.Fprintf(w, " %q", layout.NormalizeNewlines(pl.Content))
				if pl.Err != nil {
					fmt.Fprint(w, " "+errorStyle.Render(pl.Err.Error()))
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "set a variable, name=value")
	cmd.Flags().BoolVar(&points, "points", false, "show coordinates in points instead of pixels")
	return cmd
}

// warnMissingFonts logs each font family which is used by a text item but
// not available for measuring.
func warnMissingFonts(a *app, fonts *fontmetrics.Registry, doc *label.Document) {
	seen := make(map[string]bool)
	for _, item := range doc.Items {
		var family string
		switch item := item.(type) {
		case *label.TextObject:
			family = item.FontName
		case *label.TextBox:
			family = item.FontName
		default:
			continue
		}
		if seen[family] {
			continue
		}
		seen[family] = true
		if !fonts.Has(family) {
			a.logger.Warn("font not available, using fallback metrics", "font", family)
		}
	}
}
