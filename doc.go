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

// Package label implements the in-memory model of a packaged label document.
//
// A label consists of a fixed size printable area, a catalog of variables
// and computed fields (functions), and a list of visual items placed on the
// label.  Items take their text either from a fixed content string or from
// a data source, which refers to a variable or to a function.
//
// The model is populated by the parser in [seehuhn.de/go/label/format],
// data sources are evaluated by [seehuhn.de/go/label/resolve], and
// [seehuhn.de/go/label/layout] computes the final geometry of all items.
// The [seehuhn.de/go/label/labelfile] package combines all steps needed
// to open a label archive:
//
//	doc, err := labelfile.Open("product.nlbl", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r := resolve.New(doc, script.NewTemplate(), nil)
//	for _, item := range doc.SortedItems() {
//		fmt.Println(item.Info().Name, r.ResolveItem(item))
//	}
//
// All lengths in the model are given in rendering units of 1/96 inch.
// Conversion from the micrometres used in the archive happens during
// parsing, see [seehuhn.de/go/label/units].
package label
