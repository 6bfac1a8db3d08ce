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

// Package diagnose helps to find broken references in label documents.
//
// [Inspect] explains how a single reference is interpreted, [Tree] shows
// the dependencies of a function, and [Check] looks for problems in the
// whole document without evaluating any scripts.
package diagnose

import (
	"slices"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/google/uuid"

	"seehuhn.de/go/label"
	"seehuhn.de/go/label/script"
)

// MaxSuggestionDistance is the largest edit distance for which a name is
// suggested as an alternative to an unknown reference.
const MaxSuggestionDistance = 3

// Kind describes what a reference refers to.
type Kind int

// These are the possible kinds of references, in lookup order.
const (
	Missing Kind = iota
	FunctionID
	FunctionName
	VariableID
	VariableName
)

func (k Kind) String() string {
	switch k {
	case FunctionID:
		return "function id"
	case FunctionName:
		return "function name"
	case VariableID:
		return "variable id"
	case VariableName:
		return "variable name"
	default:
		return "missing"
	}
}

// Suggestion is a known name or id similar to an unknown reference.
type Suggestion struct {
	Text     string
	ID       string
	Distance int
}

// Report describes a reference.
type Report struct {
	Ref  string
	Kind Kind

	// ID is the id the reference resolves to, if any.
	ID string

	// IsGUID is true if the reference has the form of a GUID.  Designer
	// generated ids are GUIDs, so a GUID which is not found usually
	// points to a deleted object.
	IsGUID bool

	// ReferencedBy lists the ids of functions which use the reference,
	// either as an input, as a concatenation source, or inside the script.
	ReferencedBy []string

	// Items lists the ids of items which display the reference.
	Items []string

	// Similar lists function names and ids close to the reference.
	Similar []Suggestion
}

// Inspect analyses how ref is interpreted in doc.
func Inspect(doc *label.Document, ref string) *Report {
	r := &Report{Ref: ref}
	r.IsGUID = uuid.Validate(strings.Trim(ref, "{}")) == nil

	var name string
	if f, ok := doc.Function(ref); ok {
		r.Kind, r.ID, name = FunctionID, f.Info().ID, f.Info().Name
	} else if f, ok := doc.FunctionByName(ref); ok {
		r.Kind, r.ID, name = FunctionName, f.Info().ID, f.Info().Name
	} else if v, ok := doc.Variable(ref); ok {
		r.Kind, r.ID, name = VariableID, v.ID, v.Name
	} else if v, ok := doc.VariableByName(ref); ok {
		r.Kind, r.ID, name = VariableName, v.ID, v.Name
	}

	// references may use either the id or the name
	names := []string{ref}
	for _, alt := range []string{r.ID, name} {
		if alt != "" && !slices.Contains(names, alt) {
			names = append(names, alt)
		}
	}
	r.ReferencedBy = referencingFunctions(doc, names)
	for _, item := range doc.Items {
		info := item.Info()
		if info.DataSourceID != "" && slices.Contains(names, info.DataSourceID) {
			r.Items = append(r.Items, info.ID)
		}
	}

	if r.Kind == Missing {
		r.Similar = suggest(doc, ref)
	}
	return r
}

func referencingFunctions(doc *label.Document, names []string) []string {
	var res []string
	for _, id := range doc.FunctionIDs() {
		f, _ := doc.Function(id)
		if refersTo(f, names) {
			res = append(res, id)
		}
	}
	return res
}

func refersTo(f label.Function, names []string) bool {
	for _, dep := range f.Deps() {
		if slices.Contains(names, dep) {
			return true
		}
	}

	sf, ok := f.(*label.ScriptFunction)
	if !ok {
		return false
	}
	src := sf.ScriptWithReferences
	if src == "" {
		src = sf.Script
	}
	if src == "" {
		return false
	}
	decoded, err := script.Decode(src)
	if err != nil {
		return false
	}
	for _, name := range names {
		if strings.Contains(decoded, name) {
			return true
		}
	}
	return false
}

// suggest returns function names and ids within MaxSuggestionDistance of
// ref, closest first.
func suggest(doc *label.Document, ref string) []Suggestion {
	params := levenshtein.NewParams().MaxCost(MaxSuggestionDistance)

	var res []Suggestion
	seen := make(map[string]bool)
	add := func(text, id string) {
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		// With a maximum cost, Distance only returns a lower bound.
		if levenshtein.Distance(ref, text, params) > MaxSuggestionDistance {
			return
		}
		d := levenshtein.Distance(ref, text, nil)
		if d <= MaxSuggestionDistance {
			res = append(res, Suggestion{Text: text, ID: id, Distance: d})
		}
	}
	for _, id := range doc.FunctionIDs() {
		f, _ := doc.Function(id)
		add(f.Info().Name, id)
	}
	for _, id := range doc.FunctionIDs() {
		add(id, id)
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Distance < res[j].Distance
	})
	return res
}
