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

// Licensify adds the license header to all Go source files below the
// current directory.
package main

import (
	"bytes"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const header = `// seehuhn.de/go/label - load and lay out packaged label documents
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

`

// status describes whether a file needs a header.
type status int

const (
	hasHeader status = iota
	needsHeader
	unknownPreamble
)

func check(body []byte) status {
	switch {
	case bytes.HasPrefix(body, []byte(header)):
		return hasHeader
	case bytes.HasPrefix(body, []byte("package ")):
		return needsHeader
	default:
		return unknownPreamble
	}
}

// skipDir reports whether a directory should not be searched.  This
// excludes hidden directories, directories starting with "_" and test
// data, following the conventions of the go tool.
func skipDir(name string) bool {
	if name == "." {
		return false
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata"
}

func main() {
	dryRun := flag.Bool("n", false, "only list the files which would be changed")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "licensify"})

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		switch check(body) {
		case hasHeader:
			return nil
		case unknownPreamble:
			logger.Warn("unexpected file start, not changed", "file", path)
			return nil
		}

		logger.Info("adding header", "file", path)
		if *dryRun {
			return nil
		}
		return os.WriteFile(path, append([]byte(header), body...), 0o644)
	})
	if err != nil {
		logger.Fatal("failed", "err", err)
	}
}
