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
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) resolveCmd() *cobra.Command {
	var assignments []string
	cmd := &cobra.Command{
		Use:   "resolve <label-file> [reference...]",
		Short: "Show the resolved text of label items or functions",
		Long: `Show the resolved text of label items or functions.

Without references, every item of the label is listed in drawing order.
References may be function or variable names or ids.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			r := a.resolver(doc)
			if err := setValues(r, assignments); err != nil {
				return err
			}
			r.BeginPass()

			w := cmd.OutOrStdout()
			if len(args) > 1 {
				for _, ref := range args[1:] {
					fmt.Fprintf(w, "%s = %q\n", idStyle.Render(ref), r.Resolve(ref))
				}
				return nil
			}
			for _, item := range doc.SortedItems() {
				info := item.Info()
				name := info.ID
				if info.Name != "" {
					name = info.Name
				}
				text := r.ResolveItem(item)
				fmt.Fprintf(w, "%s %s %q\n", idStyle.Render(name),
					mutedStyle.Render("("+itemKind(item)+")"), strings.TrimRight(text, "\n"))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, "set a variable, name=value")
	return cmd
}
