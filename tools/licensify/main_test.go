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

import "testing"

func TestCheck(t *testing.T) {
	cases := []struct {
		body string
		want status
	}{
		{header + "package x\n", hasHeader},
		{"package x\n", needsHeader},
		{"//go:build linux\n\npackage x\n", unknownPreamble},
	}
	for _, c := range cases {
		if got := check([]byte(c.body)); got != c.want {
			t.Errorf("check(%.20q) = %d, want %d", c.body, got, c.want)
		}
	}
}

func TestSkipDir(t *testing.T) {
	for name, want := range map[string]bool{
		".":         false,
		"format":    false,
		".git":      true,
		"_examples": true,
		"testdata":  true,
	} {
		if got := skipDir(name); got != want {
			t.Errorf("skipDir(%q) = %t", name, got)
		}
	}
}
