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

// Package resolve computes the values of label variables and functions.
//
// A [Resolver] maps data source references to display strings.  Functions
// may depend on other functions; dependencies are evaluated recursively,
// results (including fallback values of failed functions) are cached for
// the duration of a render pass, and cyclic
// dependencies are reported through a marker string instead of an error.
//
// No method of a Resolver returns an error for problems in the label
// itself.  Unknown references, failing scripts and dependency cycles all
// lead to well defined fallback strings, so that a render pass always
// completes.
package resolve

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"seehuhn.de/go/label"
	"seehuhn.de/go/label/script"
)

// Placeholder is displayed for items whose data source cannot be resolved
// and which have no fixed content.
const Placeholder = "???"

// CycleMarker returns the string used as the value of function id when the
// function is reached again while it is being evaluated.
func CycleMarker(id string) string {
	return "Circular dependency detected for function " + id
}

// NotFoundMarker returns the value of a reference to a missing function.
func NotFoundMarker(ref string) string {
	return "Function " + ref + " not found"
}

// ErrorMarker returns the value of a failed function without sample value.
func ErrorMarker(err error) string {
	return "Error: " + err.Error()
}

var errNoRunner = errors.New("no script runner configured")

// Options control the behaviour of a [Resolver].
type Options struct {
	// Logger receives diagnostic messages.  If nil, messages are discarded.
	Logger *log.Logger
}

// Resolver evaluates data source references for one document.
//
// All methods of a Resolver are serialized, so a Resolver can be shared
// between goroutines.  The document must not be modified while the
// resolver is in use, except through [Resolver.SetVariable].
type Resolver struct {
	doc    *label.Document
	runner script.Runner
	logger *log.Logger

	mu         sync.Mutex
	cache      map[string]string
	inProgress map[string]bool
}

// New returns a resolver for doc.  Script functions are evaluated using
// runner, which may be nil if the document contains no script functions.
func New(doc *label.Document, runner script.Runner, opt *Options) *Resolver {
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		doc:        doc,
		runner:     runner,
		logger:     logger,
		cache:      make(map[string]string),
		inProgress: make(map[string]bool),
	}
}

// Document returns the document the resolver operates on.
func (r *Resolver) Document() *label.Document {
	return r.doc
}

// BeginPass starts a new render pass.  All cached function values are
// discarded.
func (r *Resolver) BeginPass() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
	clear(r.inProgress)
}

// Invalidate discards all cached function values.  This must be called
// after variable values in the document have been changed.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

// SetVariable changes the value of a variable, given by id or by name,
// and invalidates the cache.
func (r *Resolver) SetVariable(ref, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.doc.SetVariableValue(ref, value)
	if err != nil {
		return err
	}
	clear(r.cache)
	return nil
}

// Resolve returns the value of a reference.  The reference can be a
// function id, a function name, a variable id or a variable name.  Other
// references are returned unchanged.
func (r *Resolver) Resolve(ref string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doc.LookupFunction(ref); ok {
		return r.function(ref)
	}
	if v, ok := r.doc.LookupVariable(ref); ok {
		return v.SampleValue
	}
	return ref
}

// ResolveFunction returns the value of the function with the given id or
// name.
func (r *Resolver) ResolveFunction(ref string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.function(ref)
}

// ResolveItem returns the text displayed by an item.
//
// If the item has a data source, the value of the data source is used.
// Otherwise, or if the data source cannot be resolved, the fixed content
// of the item is returned.  Items with an unresolvable data source and no
// content show [Placeholder].
func (r *Resolver) ResolveItem(item label.Item) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	info := item.Info()
	ref := info.DataSourceID
	if ref == "" {
		return info.Content
	}
	if v, ok := r.doc.Variable(ref); ok {
		return v.SampleValue
	}
	if _, ok := r.doc.LookupFunction(ref); ok {
		return r.function(ref)
	}
	if v, ok := r.doc.VariableByName(ref); ok {
		return v.SampleValue
	}

	r.logger.Debug("unresolved data source", "item", info.ID, "ref", ref)
	if info.Content != "" {
		return info.Content
	}
	return Placeholder
}

// function evaluates a function.  The caller must hold r.mu.
func (r *Resolver) function(ref string) string {
	id := r.doc.FunctionID(ref)

	if val, ok := r.cache[id]; ok {
		return val
	}
	if r.inProgress[id] {
		r.logger.Debug("dependency cycle", "function", id)
		return CycleMarker(id)
	}
	f, ok := r.doc.Function(id)
	if !ok {
		r.logger.Debug("function not found", "ref", ref)
		return NotFoundMarker(id)
	}

	r.inProgress[id] = true
	defer delete(r.inProgress, id)

	values := r.inputs(f)

	var val string
	var err error
	switch f := f.(type) {
	case *label.ConcatenateFunction:
		val = concatenate(f, values)
	case *label.ScriptFunction:
		val, err = r.runScript(f, values)
	default:
		err = fmt.Errorf("unsupported function type %T", f)
	}
	if err != nil {
		info := f.Info()
		r.logger.Warn("function failed", "function", id, "name", info.Name, "err", err)
		val = info.SampleValue
		if val == "" {
			val = ErrorMarker(err)
		}
	}

	r.cache[id] = val
	return val
}

// inputs builds the working variable table for evaluating f.  The table
// contains all variables, keyed by id, and the values of all dependencies
// of f, keyed by the reference used in f.
func (r *Resolver) inputs(f label.Function) map[string]string {
	values := make(map[string]string, r.doc.NumVariables())
	for _, id := range r.doc.VariableIDs() {
		v, _ := r.doc.Variable(id)
		values[id] = v.SampleValue
	}
	for _, dep := range f.Deps() {
		if _, isVar := values[dep]; isVar {
			continue
		}
		if _, ok := r.doc.LookupFunction(dep); ok {
			values[dep] = r.function(dep)
		} else if v, ok := r.doc.VariableByName(dep); ok {
			values[dep] = v.SampleValue
		}
	}
	return values
}

func concatenate(f *label.ConcatenateFunction, values map[string]string) string {
	if len(f.SourceIDs) == 0 {
		return f.SampleValue
	}
	var parts []string
	for _, src := range f.SourceIDs {
		val, ok := values[src]
		if !ok {
			continue
		}
		if f.IgnoreEmptyValues && val == "" {
			continue
		}
		parts = append(parts, val)
	}
	return strings.Join(parts, f.Separator)
}

func (r *Resolver) runScript(f *label.ScriptFunction, values map[string]string) (string, error) {
	encoded := f.Script
	if encoded == "" {
		encoded = f.ScriptWithReferences
	}
	if encoded == "" {
		return f.SampleValue, nil
	}
	src, err := script.Decode(encoded)
	if err != nil {
		return "", err
	}
	if r.runner == nil {
		return "", errNoRunner
	}
	return r.runner.Run(src, r.bindings(f, values))
}

// bindings adds friendly names to the working variable table.  A name is
// only added if it does not shadow an id or an earlier name.
func (r *Resolver) bindings(f label.Function, values map[string]string) map[string]string {
	res := make(map[string]string, 2*len(values))
	for key, val := range values {
		res[key] = val
	}
	addName := func(name, key string) {
		if name == "" {
			return
		}
		if _, taken := res[name]; !taken {
			res[name] = values[key]
		}
	}
	for _, id := range r.doc.VariableIDs() {
		v, _ := r.doc.Variable(id)
		addName(v.Name, id)
	}
	for _, dep := range f.Deps() {
		if g, ok := r.doc.Function(dep); ok {
			addName(g.Info().Name, dep)
		}
	}
	return res
}
