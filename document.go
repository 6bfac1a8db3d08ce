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
	"fmt"
	"slices"
)

// Document is the in-memory representation of a label.
//
// A Document is not safe for concurrent use.  Use [Document.Clone] to
// obtain independent copies for concurrent render passes.
type Document struct {
	// Width and Height give the label size in rendering units.
	Width, Height float64

	// BackgroundImage is the file name of the background image, if any.
	BackgroundImage string

	// Items lists the visual items in document order.
	Items []Item

	// VariablesXML and FormatXML hold the raw payloads the document was
	// parsed from.  They are kept for inspection only.
	VariablesXML []byte
	FormatXML    []byte

	variables    map[string]*Variable
	varOrder     []string
	varIDByName  map[string]string
	functions    map[string]Function
	funcOrder    []string
	funcIDByName map[string]string
	collisions   []NameCollision
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		variables:    make(map[string]*Variable),
		varIDByName:  make(map[string]string),
		functions:    make(map[string]Function),
		funcIDByName: make(map[string]string),
	}
}

// AddVariable adds a variable to the document.  A variable with the same
// id replaces the existing one.  If a different variable already uses the
// same name, name lookups keep resolving to the earlier variable and the
// collision is recorded.
func (d *Document) AddVariable(v *Variable) {
	d.init()
	if _, exists := d.variables[v.ID]; !exists {
		d.varOrder = append(d.varOrder, v.ID)
	}
	d.variables[v.ID] = v
	d.registerName("variable", d.varIDByName, v.Name, v.ID)
}

// AddFunction adds a function to the document.  The rules for ids and
// names are the same as for [Document.AddVariable].
func (d *Document) AddFunction(f Function) {
	d.init()
	info := f.Info()
	if _, exists := d.functions[info.ID]; !exists {
		d.funcOrder = append(d.funcOrder, info.ID)
	}
	d.functions[info.ID] = f
	d.registerName("function", d.funcIDByName, info.Name, info.ID)
}

func (d *Document) init() {
	if d.variables == nil {
		d.variables = make(map[string]*Variable)
		d.varIDByName = make(map[string]string)
	}
	if d.functions == nil {
		d.functions = make(map[string]Function)
		d.funcIDByName = make(map[string]string)
	}
}

func (d *Document) registerName(kind string, m map[string]string, name, id string) {
	if name == "" || id == "" {
		return
	}
	old, ok := m[name]
	if !ok {
		m[name] = id
		return
	}
	if old != id {
		d.collisions = append(d.collisions, NameCollision{
			Kind:    kind,
			Name:    name,
			Kept:    old,
			Ignored: id,
		})
	}
}

// AddItem appends an item to the document.
func (d *Document) AddItem(item Item) {
	d.Items = append(d.Items, item)
}

// Variable returns the variable with the given id.
func (d *Document) Variable(id string) (*Variable, bool) {
	v, ok := d.variables[id]
	return v, ok
}

// VariableByName returns the first variable registered under the given name.
func (d *Document) VariableByName(name string) (*Variable, bool) {
	id, ok := d.varIDByName[name]
	if !ok {
		return nil, false
	}
	return d.Variable(id)
}

// LookupVariable finds a variable by id or, failing that, by name.
func (d *Document) LookupVariable(ref string) (*Variable, bool) {
	if v, ok := d.variables[ref]; ok {
		return v, true
	}
	return d.VariableByName(ref)
}

// Function returns the function with the given id.
func (d *Document) Function(id string) (Function, bool) {
	f, ok := d.functions[id]
	return f, ok
}

// FunctionByName returns the first function registered under the given name.
func (d *Document) FunctionByName(name string) (Function, bool) {
	id, ok := d.funcIDByName[name]
	if !ok {
		return nil, false
	}
	return d.Function(id)
}

// LookupFunction finds a function by id or, failing that, by name.
func (d *Document) LookupFunction(ref string) (Function, bool) {
	if f, ok := d.functions[ref]; ok {
		return f, true
	}
	return d.FunctionByName(ref)
}

// FunctionID maps a function name to the corresponding id.  If ref is
// already a function id, or matches no function, it is returned unchanged.
func (d *Document) FunctionID(ref string) string {
	if _, ok := d.functions[ref]; ok {
		return ref
	}
	if id, ok := d.funcIDByName[ref]; ok {
		return id
	}
	return ref
}

// VariableIDs returns the ids of all variables, in the order they were added.
func (d *Document) VariableIDs() []string {
	return slices.Clone(d.varOrder)
}

// FunctionIDs returns the ids of all functions, in the order they were added.
func (d *Document) FunctionIDs() []string {
	return slices.Clone(d.funcOrder)
}

// NumVariables returns the number of variables in the document.
func (d *Document) NumVariables() int {
	return len(d.variables)
}

// NumFunctions returns the number of functions in the document.
func (d *Document) NumFunctions() int {
	return len(d.functions)
}

// NameCollisions lists all names which are used by more than one variable
// or function.
func (d *Document) NameCollisions() []NameCollision {
	return slices.Clone(d.collisions)
}

// SetVariableValue sets the value of the variable with the given id or
// name.  Callers holding a resolver for the document must invalidate its
// cache afterwards.
func (d *Document) SetVariableValue(ref, value string) error {
	v, ok := d.LookupVariable(ref)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownVariable, ref)
	}
	v.SampleValue = value
	return nil
}

// SortedItems returns the items in drawing order.  Items with a lower
// z-order come first; the document order is kept for items with equal
// z-order.
func (d *Document) SortedItems() []Item {
	items := slices.Clone(d.Items)
	slices.SortStableFunc(items, func(a, b Item) int {
		return a.Info().ZOrder - b.Info().ZOrder
	})
	return items
}

// NormalizeReferences rewrites data source references which use a
// function name into references by function id.  This applies to item
// data sources as well as to function inputs and sources.
//
// The method returns all references which match neither a variable nor a
// function.
func (d *Document) NormalizeReferences() []UnresolvedRef {
	var unresolved []UnresolvedRef
	fix := func(owner string, ref *string) {
		if *ref == "" {
			return
		}
		if _, ok := d.variables[*ref]; ok {
			return
		}
		if _, ok := d.functions[*ref]; ok {
			return
		}
		if id, ok := d.funcIDByName[*ref]; ok {
			*ref = id
			return
		}
		if id, ok := d.varIDByName[*ref]; ok {
			*ref = id
			return
		}
		unresolved = append(unresolved, UnresolvedRef{Owner: owner, Ref: *ref})
	}

	for _, id := range d.funcOrder {
		switch f := d.functions[id].(type) {
		case *ScriptFunction:
			for i := range f.InputIDs {
				fix(id, &f.InputIDs[i])
			}
		case *ConcatenateFunction:
			for i := range f.InputIDs {
				fix(id, &f.InputIDs[i])
			}
			for i := range f.SourceIDs {
				fix(id, &f.SourceIDs[i])
			}
		}
	}
	for _, item := range d.Items {
		info := item.Info()
		fix(info.ID, &info.DataSourceID)
	}
	return unresolved
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		Width:           d.Width,
		Height:          d.Height,
		BackgroundImage: d.BackgroundImage,
		VariablesXML:    d.VariablesXML,
		FormatXML:       d.FormatXML,
		variables:       make(map[string]*Variable, len(d.variables)),
		varOrder:        slices.Clone(d.varOrder),
		varIDByName:     make(map[string]string, len(d.varIDByName)),
		functions:       make(map[string]Function, len(d.functions)),
		funcOrder:       slices.Clone(d.funcOrder),
		funcIDByName:    make(map[string]string, len(d.funcIDByName)),
		collisions:      slices.Clone(d.collisions),
	}
	for id, v := range d.variables {
		vc := *v
		c.variables[id] = &vc
	}
	for name, id := range d.varIDByName {
		c.varIDByName[name] = id
	}
	for id, f := range d.functions {
		c.functions[id] = cloneFunction(f)
	}
	for name, id := range d.funcIDByName {
		c.funcIDByName[name] = id
	}
	if d.Items != nil {
		c.Items = make([]Item, len(d.Items))
		for i, item := range d.Items {
			c.Items[i] = cloneItem(item)
		}
	}
	return c
}
