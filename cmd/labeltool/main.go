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

// Labeltool inspects label files.
//
// The tool loads a label file, resolves the values of its variables and
// functions, and reports the layout of the label items.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	"seehuhn.de/go/label/internal/buildinfo"
)

func main() {
	root := newRootCmd()
	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(buildinfo.Version()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
