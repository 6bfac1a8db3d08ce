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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seehuhn.de/go/label/diagnose"
)

var errProblems = errors.New("label has problems")

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <label-file>",
		Short: "Look for dependency cycles and broken references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			p := diagnose.Check(doc)
			if p.OK() {
				fmt.Fprintln(w, successStyle.Render("✓ ")+p.String())
				return nil
			}
			fmt.Fprintln(w, p.String())
			return &ExitError{Code: ExitProblems, Err: errProblems}
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <label-file> <reference>",
		Short: "Explain how a data source reference is resolved",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ref := args[1]

			rep := diagnose.Inspect(doc, ref)
			fmt.Fprintln(w, titleStyle.Render(ref))
			printField(w, "kind", rep.Kind)
			if rep.ID != "" {
				printField(w, "id", rep.ID)
			}
			printField(w, "GUID", rep.IsGUID)
			for _, id := range rep.ReferencedBy {
				printField(w, "used by", id)
			}
			for _, id := range rep.Items {
				printField(w, "shown by", id)
			}
			for _, s := range rep.Similar {
				printField(w, "similar", fmt.Sprintf("%s [%s], distance %d", s.Text, s.ID, s.Distance))
			}

			if rep.Kind != diagnose.Missing {
				fmt.Fprintln(w)
				if err := diagnose.Tree(doc, ref).Write(w); err != nil {
					return err
				}
				fmt.Fprintln(w)
				printField(w, "value", fmt.Sprintf("%q", a.resolver(doc).Resolve(ref)))
			}
			return nil
		},
	}
}
