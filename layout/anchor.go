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

// Package layout computes the final geometry of label items.
//
// [AdjustOrigin] converts the stored coordinates of an item into the
// coordinates of its top-left corner, and [BestFitFontSize] finds the
// largest font size for which a text fits into a box.  A [Planner] applies
// both to all items of a document, after resolving their content.
//
// All coordinates use the screen convention: the y-axis points downwards
// and the origin is the top-left corner of the label.
package layout

import "seehuhn.de/go/label"

// AdjustOrigin returns the top-left corner of a box of size w×h whose anchor
// point is located at (x, y).
func AdjustOrigin(x, y, w, h float64, anchor label.Anchor) (float64, float64) {
	fx, fy := anchor.Fractions()
	return x - fx*w, y - fy*h
}
