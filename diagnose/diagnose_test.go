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

package diagnose

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/label"
)

const guid = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

func testDocument() *label.Document {
	doc := label.NewDocument()
	doc.AddVariable(&label.Variable{ID: "v1", Name: "Weight"})
	doc.AddVariable(&label.Variable{ID: "v2", Name: "Price"})
	doc.AddFunction(&label.ConcatenateFunction{
		FunctionInfo: label.FunctionInfo{ID: guid, Name: "Line"},
		SourceIDs:    []string{"Weight", "v2"},
	})
	doc.AddFunction(&label.ScriptFunction{
		FunctionInfo: label.FunctionInfo{ID: "f2", Name: "Upper"},
		Script:       base64.StdEncoding.EncodeToString([]byte("${upper(Price)}")),
	})
	doc.AddFunction(&label.ScriptFunction{
		FunctionInfo: label.FunctionInfo{ID: "f3", Name: "Total"},
		InputIDs:     []string{"Line", "f2"},
	})
	doc.AddItem(&label.TextObject{ItemInfo: label.ItemInfo{ID: "i1", DataSourceID: "Total"}})
	doc.AddItem(&label.TextObject{ItemInfo: label.ItemInfo{ID: "i2", DataSourceID: "Totl"}})
	return doc
}

func TestInspect(t *testing.T) {
	doc := testDocument()

	cases := []struct {
		ref  string
		want *Report
	}{
		{
			ref: "Total",
			want: &Report{
				Ref: "Total", Kind: FunctionName, ID: "f3",
				Items: []string{"i1"},
			},
		},
		{
			ref: guid,
			want: &Report{
				Ref: guid, Kind: FunctionID, ID: guid, IsGUID: true,
				ReferencedBy: []string{"f3"},
			},
		},
		{
			ref: "Price",
			want: &Report{
				Ref: "Price", Kind: VariableName, ID: "v2",
				ReferencedBy: []string{guid, "f2"},
			},
		},
		{
			ref: "v1",
			want: &Report{
				Ref: "v1", Kind: VariableID, ID: "v1",
				ReferencedBy: []string{guid},
			},
		},
		{
			ref: "Totl",
			want: &Report{
				Ref: "Totl", Kind: Missing,
				Items: []string{"i2"},
				Similar: []Suggestion{
					{Text: "Total", ID: "f3", Distance: 1},
				},
			},
		},
		{
			ref:  "{" + strings.ToUpper(guid) + "}",
			want: &Report{Ref: "{" + strings.ToUpper(guid) + "}", IsGUID: true},
		},
	}
	for _, c := range cases {
		t.Run(c.ref, func(t *testing.T) {
			got := Inspect(doc, c.ref)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestSuggestDistance(t *testing.T) {
	doc := label.NewDocument()
	doc.AddFunction(&label.ScriptFunction{
		FunctionInfo: label.FunctionInfo{ID: guid, Name: "Line"},
	})
	doc.AddFunction(&label.ScriptFunction{
		FunctionInfo: label.FunctionInfo{ID: "f2", Name: "Lines"},
	})

	// the upper case GUID differs from guid in ten places
	got := suggest(doc, "{"+strings.ToUpper(guid)+"}")
	if len(got) != 0 {
		t.Errorf("unexpected suggestions %v", got)
	}

	got = suggest(doc, "Lin")
	want := []Suggestion{
		{Text: "Line", ID: guid, Distance: 1},
		{Text: "Lines", ID: "f2", Distance: 2},
		{Text: "f2", ID: "f2", Distance: 3},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestTree(t *testing.T) {
	doc := testDocument()
	doc.AddFunction(&label.ScriptFunction{
		FunctionInfo: label.FunctionInfo{ID: "f4", Name: "Loop"},
		InputIDs:     []string{"f4", "nothing"},
	})

	buf := &strings.Builder{}
	if err := Tree(doc, "Total").Write(buf); err != nil {
		t.Fatal(err)
	}
	want := `function Total [f3]
├── function Line [` + guid + `]
│   ├── variable Weight [v1]
│   └── variable Price [v2]
└── function Upper [f2]
`
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Error(d)
	}

	loop := Tree(doc, "f4")
	if len(loop.Children) != 2 || !loop.Children[0].Cycle || loop.Children[1].Kind != Missing {
		t.Errorf("unexpected tree %+v", loop)
	}

	buf.Reset()
	loop.Write(buf)
	want = "function Loop [f4]\n├── function Loop [f4] (cycle)\n└── nothing (not found)\n"
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Error(d)
	}
}

func TestEvaluationOrder(t *testing.T) {
	order, err := EvaluationOrder(testDocument())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{guid, "f2", "f3"}, order); d != "" {
		t.Error(d)
	}
}

func TestCycles(t *testing.T) {
	doc := label.NewDocument()
	add := func(id string, inputs ...string) {
		doc.AddFunction(&label.ScriptFunction{
			FunctionInfo: label.FunctionInfo{ID: id, Name: "name-" + id},
			InputIDs:     inputs,
		})
	}
	add("a")
	add("b", "a", "c")
	add("c", "name-b")
	add("d", "b")
	add("e", "e")

	_, err := EvaluationOrder(doc)
	cycle, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("got error %v", err)
	}
	if d := cmp.Diff([]string{"b", "c", "e"}, cycle.Functions); d != "" {
		t.Error(d)
	}

	p := Check(doc)
	if p.OK() || p.Cycle == nil {
		t.Errorf("cycle not reported: %s", p)
	}
}

func TestCheck(t *testing.T) {
	doc := testDocument()
	p := Check(doc)
	want := []label.UnresolvedRef{{Owner: "i2", Ref: "Totl"}}
	if d := cmp.Diff(want, p.Unresolved); d != "" {
		t.Error(d)
	}
	if p.Cycle != nil || len(p.Collisions) != 0 {
		t.Errorf("unexpected problems: %s", p)
	}

	// the document itself is unchanged
	f, _ := doc.Function("f3")
	if d := cmp.Diff([]string{"Line", "f2"}, f.(*label.ScriptFunction).InputIDs); d != "" {
		t.Error(d)
	}

	clean := label.NewDocument()
	if p := Check(clean); !p.OK() || p.String() != "no problems found" {
		t.Errorf("empty document: %s", p)
	}
}
