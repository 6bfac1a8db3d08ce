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

// Package sample supplies provisional values for label variables.
//
// Label files often leave sample values empty, or set them to the marker
// "??????".  [Fill] replaces such values, so that a label preview shows
// plausible text.
package sample

import (
	"strings"

	"seehuhn.de/go/label"
)

// Unset is the sample value used by the label designer for variables
// without a value.
const Unset = "??????"

// Table maps variable names to provisional values.
type Table map[string]string

// Builtin returns the provisional values for the variables used by
// retail food labels.
func Builtin() Table {
	t := Table{
		"Description1":     "Organic Chicken",
		"Description2":     "Free Range",
		"Description4":     "Fresh Daily",
		"Description5":     "Local Farm",
		"Description6":     "No Antibiotics",
		"Description7":     "100% Natural",
		"Description8":     "Premium Quality",
		"Description9":     "USDA Inspected",
		"Description10":    "Family Owned Since 1985",
		"Description12":    "PARA",
		"Description14":    "Store in refrigerator",
		"Weight":           "1.5 lbs",
		"Price":            "$9.99",
		"BarcodeVal":       "123456789012",
		"SellByDays":       "7",
		"PricePerPound":    "$6.99/LB",
		"Scaleable":        "True",
		"Ingredients":      "Chicken, Salt, Herbs, Spices",
		"NFServingSize":    "3 oz (85g)",
		"NFCalories":       "120",
		"NFCaloriesFat":    "30",
		"NFVitA":           "0%",
		"NFVitC":           "0%",
		"NFCalcium":        "0%",
		"NFIron":           "4%",
		"NFServingPerPack": "4",
	}
	nutrients := []struct {
		name, suffix, value string
	}{
		{"NFTotalFat", "G", "3g"},
		{"NFSatFat", "G", "1g"},
		{"NFTransFat", "G", "0g"},
		{"NFCholesterol", "MG", "65mg"},
		{"NFSodium", "MG", "45mg"},
		{"NFTotCarbo", "G", "0g"},
		{"NFDietFiber", "G", "0g"},
		{"NFSugars", "G", "0g"},
		{"NFProtein", "G", "22g"},
	}
	for _, n := range nutrients {
		t[n.name] = n.value
		t[n.name+n.suffix] = n.value
	}
	return t
}

// Value returns the provisional value for the variable with the given name.
// Names not in the table get "0" if they start with "NF" (nutrition
// facts), and their own name otherwise.
func (t Table) Value(name string) string {
	if v, ok := t[name]; ok {
		return v
	}
	if strings.HasPrefix(name, "NF") {
		return "0"
	}
	return name
}

// Merge returns a new table with the entries of t, overridden by the
// entries of other.
func (t Table) Merge(other Table) Table {
	res := make(Table, len(t)+len(other))
	for k, v := range t {
		res[k] = v
	}
	for k, v := range other {
		res[k] = v
	}
	return res
}

// IsUnset reports whether a sample value needs a provisional replacement.
func IsUnset(value string) bool {
	return value == "" || value == Unset
}

// Fill replaces unset sample values in doc.  Variables are looked up in
// the table, and functions get their own name.  If table is nil, the
// [Builtin] table is used.  The return value is the number of values
// which were replaced.
func Fill(doc *label.Document, table Table) int {
	if table == nil {
		table = Builtin()
	}

	count := 0
	for _, id := range doc.VariableIDs() {
		v, _ := doc.Variable(id)
		if IsUnset(v.SampleValue) {
			v.SampleValue = table.Value(v.Name)
			count++
		}
	}
	for _, id := range doc.FunctionIDs() {
		f, _ := doc.Function(id)
		info := f.Info()
		if IsUnset(info.SampleValue) {
			info.SampleValue = info.Name
			count++
		}
	}
	return count
}

// FromDocument returns the current sample values of all variables in doc,
// keyed by variable name.  Variables without a name are keyed by id.
func FromDocument(doc *label.Document) Table {
	t := make(Table, doc.NumVariables())
	for _, id := range doc.VariableIDs() {
		v, _ := doc.Variable(id)
		key := v.Name
		if key == "" {
			key = v.ID
		}
		if _, seen := t[key]; !seen {
			t[key] = v.SampleValue
		}
	}
	return t
}
