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

	"seehuhn.de/go/label/sample"
)

func (a *app) varsCmd() *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "vars <label-file>",
		Short: "List the variables of a label",
		Long: `List the variables of a label with their sample values.

With --format, the values are written as a table which can be edited
and used as "sample.table" in the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			switch encoding {
			case "":
				for _, id := range doc.VariableIDs() {
					v, _ := doc.Variable(id)
					fmt.Fprintf(w, "%s %s = %q\n", idStyle.Render(v.ID), v.Name, v.SampleValue)
				}
				return nil
			case "toml":
				return sample.WriteTable(w, sample.FromDocument(doc), sample.TOML)
			case "yaml":
				return sample.WriteTable(w, sample.FromDocument(doc), sample.YAML)
			default:
				return fmt.Errorf("unknown format %q", encoding)
			}
		},
	}
	cmd.Flags().StringVarP(&encoding, "format", "f", "", `output format, "toml" or "yaml"`)
	return cmd
}
