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

package label

import (
	"errors"
	"strconv"
)

// ErrUnknownVariable is returned when a variable reference matches
// neither a variable id nor a variable name.
var ErrUnknownVariable = errors.New("unknown variable")

// ParseError indicates that one of the two XML payloads of a label could
// not be parsed.
type ParseError struct {
	// Part is the name of the payload, "variables" or "format".
	Part string

	// Line is the line number of an XML syntax error, or 0 if unknown.
	Line int

	Err error
}

func (err *ParseError) Error() string {
	part := err.Part
	if part == "" {
		part = "label"
	}
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Line > 0 {
		tail = " (line " + strconv.Itoa(err.Line) + ")"
	}
	return "malformed " + part + " document" + middle + tail
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// NameCollision records that two functions (or two variables) share a
// name.  Name lookups resolve to Kept, the entry registered first.
type NameCollision struct {
	Kind    string // "variable" or "function"
	Name    string
	Kept    string
	Ignored string
}

func (c NameCollision) String() string {
	return c.Kind + " name " + strconv.Quote(c.Name) + " is used by " +
		c.Kept + " and " + c.Ignored + ", lookups use " + c.Kept
}

// UnresolvedRef describes a data source reference which matches neither a
// variable nor a function.
type UnresolvedRef struct {
	// Owner is the id of the item or function containing the reference.
	Owner string
	Ref   string
}
