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

// Variable is a directly valued placeholder.
type Variable struct {
	ID          string
	Name        string
	SampleValue string
}

// Function is a computed placeholder.
//
// The set of implementations is closed: every Function is either a
// [*ScriptFunction] or a [*ConcatenateFunction].
type Function interface {
	// Info returns the fields shared by all function kinds.
	Info() *FunctionInfo

	// Deps returns the ids (or names) of all variables and functions the
	// function reads, in evaluation order and without duplicates.
	Deps() []string

	isFunction()
}

// FunctionInfo holds the fields common to all function kinds.
type FunctionInfo struct {
	ID   string
	Name string

	// SampleValue is used when the function cannot be evaluated.
	SampleValue string

	// Type is the type name stored in the archive, e.g.
	// "ExecuteScriptFunction".
	Type string
}

// Info implements the [Function] interface.
func (f *FunctionInfo) Info() *FunctionInfo {
	return f
}

// ScriptFunction computes its value by running a script.
type ScriptFunction struct {
	FunctionInfo

	// Script and ScriptWithReferences hold the base64 encoded script
	// source.  ScriptWithReferences, if set, refers to inputs by name.
	Script               string
	ScriptWithReferences string

	InputIDs []string
}

// Deps implements the [Function] interface.
func (f *ScriptFunction) Deps() []string {
	return uniqueRefs(f.InputIDs)
}

func (f *ScriptFunction) isFunction() {}

// ConcatenateFunction joins the values of its sources.
type ConcatenateFunction struct {
	FunctionInfo

	Separator         string
	IgnoreEmptyValues bool
	SourceIDs         []string

	// InputIDs lists additional inputs, as for script functions.
	InputIDs []string
}

// Deps implements the [Function] interface.
func (f *ConcatenateFunction) Deps() []string {
	return uniqueRefs(f.InputIDs, f.SourceIDs)
}

func (f *ConcatenateFunction) isFunction() {}

func uniqueRefs(lists ...[]string) []string {
	var res []string
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, ref := range l {
			if ref == "" || seen[ref] {
				continue
			}
			seen[ref] = true
			res = append(res, ref)
		}
	}
	return res
}

// cloneFunction returns a copy of f which shares no mutable state with f.
func cloneFunction(f Function) Function {
	switch f := f.(type) {
	case *ScriptFunction:
		g := *f
		g.InputIDs = cloneStrings(f.InputIDs)
		return &g
	case *ConcatenateFunction:
		g := *f
		g.SourceIDs = cloneStrings(f.SourceIDs)
		g.InputIDs = cloneStrings(f.InputIDs)
		return &g
	default:
		panic("unexpected function type")
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
