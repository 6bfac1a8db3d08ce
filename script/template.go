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

package script

import (
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Template runs scripts written in the HCL template language.
//
// A Template is safe for concurrent use.  Parsed scripts are cached, so
// that running the same script with different bindings is cheap.
type Template struct {
	funcs map[string]function.Function

	mu     sync.Mutex
	parsed map[string]hclsyntax.Expression
}

// NewTemplate returns a template runner with the standard function set.
func NewTemplate() *Template {
	return &Template{
		funcs:  StandardFunctions(),
		parsed: make(map[string]hclsyntax.Expression),
	}
}

// StandardFunctions returns the functions available to template scripts.
func StandardFunctions() map[string]function.Function {
	return map[string]function.Function{
		"upper":         stdlib.UpperFunc,
		"lower":         stdlib.LowerFunc,
		"title":         stdlib.TitleFunc,
		"trimspace":     stdlib.TrimSpaceFunc,
		"trim":          stdlib.TrimFunc,
		"trimprefix":    stdlib.TrimPrefixFunc,
		"trimsuffix":    stdlib.TrimSuffixFunc,
		"chomp":         stdlib.ChompFunc,
		"substr":        stdlib.SubstrFunc,
		"strlen":        stdlib.StrlenFunc,
		"replace":       stdlib.ReplaceFunc,
		"regex_replace": stdlib.RegexReplaceFunc,
		"format":        stdlib.FormatFunc,
		"join":          stdlib.JoinFunc,
		"split":         stdlib.SplitFunc,
		"coalesce":      stdlib.CoalesceFunc,
		"abs":           stdlib.AbsoluteFunc,
		"ceil":          stdlib.CeilFunc,
		"floor":         stdlib.FloorFunc,
		"min":           stdlib.MinFunc,
		"max":           stdlib.MaxFunc,
	}
}

// Run implements the [Runner] interface.
func (t *Template) Run(src string, bindings map[string]string) (string, error) {
	expr, err := t.parse(src)
	if err != nil {
		return "", err
	}

	all := make(map[string]cty.Value, len(bindings))
	vars := map[string]cty.Value{}
	for key, value := range bindings {
		v := cty.StringVal(value)
		all[key] = v
		if key != "vars" && hclsyntax.ValidIdentifier(key) {
			vars[key] = v
		}
	}
	vars["vars"] = cty.MapValEmpty(cty.String)
	if len(all) > 0 {
		vars["vars"] = cty.MapVal(all)
	}

	ctx := &hcl.EvalContext{
		Variables: vars,
		Functions: t.funcs,
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return "", fmt.Errorf("script evaluation failed: %w", diags)
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("script result is unknown")
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("script result of type %s: %w",
			val.Type().FriendlyName(), err)
	}
	return str.AsString(), nil
}

func (t *Template) parse(src string) (hclsyntax.Expression, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if expr, ok := t.parsed[src]; ok {
		return expr, nil
	}
	expr, diags := hclsyntax.ParseTemplate([]byte(src), "script", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("script syntax error: %w", diags)
	}
	t.parsed[src] = expr
	return expr, nil
}
