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
	"seehuhn.de/go/label/units"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <label-file>",
		Short: "Show size and contents of a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, titleStyle.Render(args[0]))
			printField(w, "size", fmt.Sprintf("%.1f x %.1f mm (%.1f x %.1f px)",
				units.PixelsToMicrons(doc.Width)/1000, units.PixelsToMicrons(doc.Height)/1000,
				doc.Width, doc.Height))
			if doc.BackgroundImage != "" {
				printField(w, "background", doc.BackgroundImage)
			}
			printField(w, "variables", doc.NumVariables())
			printField(w, "functions", doc.NumFunctions())

			counts := map[string]int{}
			for _, item := range doc.Items {
				counts[itemKind(item)]++
			}
			printField(w, "items", len(doc.Items))
			for _, kind := range []string{"text", "text box", "graphic", "barcode"} {
				if counts[kind] > 0 {
					printField(w, "  "+kind, counts[kind])
				}
			}
			for _, c := range doc.NameCollisions() {
				fmt.Fprintln(w, warningStyle.Render("warning: ")+c.String())
			}
			return nil
		},
	}
}

func itemKind(item label.Item) string {
	switch item.(type) {
	case *label.TextObject:
		return "text"
	case *label.TextBox:
		return "text box"
	case *label.Graphic:
		return "graphic"
	case *label.Barcode:
		return "barcode"
	default:
		return "unknown"
	}
}
