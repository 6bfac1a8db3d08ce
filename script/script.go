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

// Package script defines how label functions invoke a script engine.
//
// Label archives store the source of script functions base64 encoded; use
// [Decode] to obtain the source text.  A [Runner] evaluates the source with
// a set of string bindings and returns the resulting string.
//
// [Template] is a Runner based on the HCL template language.  Template
// interpolations can refer to bindings either directly by name, when the
// name is a valid identifier, or through the "vars" map:
//
//	${upper(Description1)} ${vars["6f0e…"]}
package script

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Runner evaluates a script.
//
// The bindings map variable and function identifiers to their current
// values.  Implementations must not modify the bindings.
type Runner interface {
	Run(src string, bindings map[string]string) (string, error)
}

// RunnerFunc adapts an ordinary function to the [Runner] interface.
type RunnerFunc func(src string, bindings map[string]string) (string, error)

// Run implements the [Runner] interface.
func (f RunnerFunc) Run(src string, bindings map[string]string) (string, error) {
	return f(src, bindings)
}

// ErrEncoding is returned by [Decode] if the script payload is not valid
// base64.
var ErrEncoding = errors.New("script is not base64 encoded")

// Decode returns the source text of a base64 encoded script payload.
// Padding is optional and white space is ignored.
func Decode(encoded string) (string, error) {
	encoded = strings.Join(strings.Fields(encoded), "")
	if encoded == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return "", ErrEncoding
		}
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}
