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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testDocument() *Document {
	doc := NewDocument()
	doc.AddVariable(&Variable{ID: "v1", Name: "Weight", SampleValue: "1.5 lbs"})
	doc.AddVariable(&Variable{ID: "v2", Name: "Price", SampleValue: "$9.99"})
	doc.AddFunction(&ConcatenateFunction{
		FunctionInfo: FunctionInfo{ID: "f1", Name: "Line", Type: "ConcatenateFunction"},
		Separator:    " ",
		SourceIDs:    []string{"Weight", "v2"},
	})
	doc.AddFunction(&ScriptFunction{
		FunctionInfo: FunctionInfo{ID: "f2", Name: "Upper"},
		InputIDs:     []string{"Line"},
	})
	doc.AddItem(&TextObject{ItemInfo: ItemInfo{ID: "i1", ZOrder: 2, DataSourceID: "Upper"}})
	doc.AddItem(&TextBox{ItemInfo: ItemInfo{ID: "i2", ZOrder: 1}, BestFit: &BestFit{MinSize: 4, MaxSize: 20}})
	doc.AddItem(&Graphic{ItemInfo: ItemInfo{ID: "i3", ZOrder: 1, DataSourceID: "missing"}})
	return doc
}

func TestLookup(t *testing.T) {
	doc := testDocument()

	if v, ok := doc.LookupVariable("Weight"); !ok || v.ID != "v1" {
		t.Errorf("LookupVariable(Weight) = %v, %t", v, ok)
	}
	if v, ok := doc.LookupVariable("v2"); !ok || v.Name != "Price" {
		t.Errorf("LookupVariable(v2) = %v, %t", v, ok)
	}
	if f, ok := doc.LookupFunction("Upper"); !ok || f.Info().ID != "f2" {
		t.Errorf("LookupFunction(Upper) = %v, %t", f, ok)
	}
	if _, ok := doc.LookupFunction("nothing"); ok {
		t.Error("unexpected function")
	}
	if got := doc.FunctionID("Line"); got != "f1" {
		t.Errorf("FunctionID(Line) = %q", got)
	}
	if got := doc.FunctionID("other"); got != "other" {
		t.Errorf("FunctionID(other) = %q", got)
	}
}

func TestFirstNameWins(t *testing.T) {
	doc := NewDocument()
	doc.AddFunction(&ScriptFunction{FunctionInfo: FunctionInfo{ID: "a", Name: "Total"}})
	doc.AddFunction(&ScriptFunction{FunctionInfo: FunctionInfo{ID: "b", Name: "Total"}})
	doc.AddFunction(&ScriptFunction{FunctionInfo: FunctionInfo{ID: "a", Name: "Total"}})

	f, ok := doc.FunctionByName("Total")
	if !ok || f.Info().ID != "a" {
		t.Fatalf("FunctionByName(Total) = %v, %t", f, ok)
	}
	want := []NameCollision{{Kind: "function", Name: "Total", Kept: "a", Ignored: "b"}}
	if d := cmp.Diff(want, doc.NameCollisions()); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]string{"a", "b"}, doc.FunctionIDs()); d != "" {
		t.Error(d)
	}
}

func TestZeroDocument(t *testing.T) {
	var doc Document
	if _, ok := doc.LookupVariable("x"); ok {
		t.Error("unexpected variable")
	}
	doc.AddVariable(&Variable{ID: "x", Name: "X"})
	if doc.NumVariables() != 1 {
		t.Errorf("NumVariables() = %d", doc.NumVariables())
	}
}

func TestSetVariableValue(t *testing.T) {
	doc := testDocument()
	if err := doc.SetVariableValue("Weight", "2 lbs"); err != nil {
		t.Fatal(err)
	}
	v, _ := doc.Variable("v1")
	if v.SampleValue != "2 lbs" {
		t.Errorf("SampleValue = %q", v.SampleValue)
	}
	err := doc.SetVariableValue("nope", "x")
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSortedItems(t *testing.T) {
	doc := testDocument()
	var got []string
	for _, item := range doc.SortedItems() {
		got = append(got, item.Info().ID)
	}
	if d := cmp.Diff([]string{"i2", "i3", "i1"}, got); d != "" {
		t.Error(d)
	}
	if doc.Items[0].Info().ID != "i1" {
		t.Error("SortedItems modified the document")
	}
}

func TestNormalizeReferences(t *testing.T) {
	doc := testDocument()
	unresolved := doc.NormalizeReferences()

	want := []UnresolvedRef{{Owner: "i3", Ref: "missing"}}
	if d := cmp.Diff(want, unresolved); d != "" {
		t.Error(d)
	}
	if got := doc.Items[0].Info().DataSourceID; got != "f2" {
		t.Errorf("item data source = %q", got)
	}
	f, _ := doc.Function("f1")
	if d := cmp.Diff([]string{"v1", "v2"}, f.(*ConcatenateFunction).SourceIDs); d != "" {
		t.Error(d)
	}
	f, _ = doc.Function("f2")
	if d := cmp.Diff([]string{"f1"}, f.(*ScriptFunction).InputIDs); d != "" {
		t.Error(d)
	}
}

func TestClone(t *testing.T) {
	doc := testDocument()
	c := doc.Clone()

	if err := c.SetVariableValue("v1", "changed"); err != nil {
		t.Fatal(err)
	}
	c.Items[1].(*TextBox).BestFit.MaxSize = 99
	c.Items[0].Info().X = 7
	f, _ := c.Function("f1")
	f.(*ConcatenateFunction).SourceIDs[0] = "v2"

	v, _ := doc.Variable("v1")
	if v.SampleValue != "1.5 lbs" {
		t.Error("variable shared between clones")
	}
	if doc.Items[1].(*TextBox).BestFit.MaxSize != 20 {
		t.Error("best fit range shared between clones")
	}
	if doc.Items[0].Info().X != 0 {
		t.Error("item shared between clones")
	}
	f, _ = doc.Function("f1")
	if f.(*ConcatenateFunction).SourceIDs[0] != "Weight" {
		t.Error("function shared between clones")
	}
}

func TestDeps(t *testing.T) {
	f := &ConcatenateFunction{
		InputIDs:  []string{"a", "b"},
		SourceIDs: []string{"b", "", "c"},
	}
	if d := cmp.Diff([]string{"a", "b", "c"}, f.Deps()); d != "" {
		t.Error(d)
	}
}
