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

package layout

import (
	"testing"

	"seehuhn.de/go/label"
)

func TestAdjustOrigin(t *testing.T) {
	const x, y, w, h = 100.0, 50.0, 40.0, 20.0
	cases := []struct {
		anchor label.Anchor
		x, y   float64
	}{
		{label.LeftTop, 100, 50},
		{label.CenterTop, 80, 50},
		{label.RightTop, 60, 50},
		{label.LeftMiddle, 100, 40},
		{label.CenterMiddle, 80, 40},
		{label.RightMiddle, 60, 40},
		{label.LeftBottom, 100, 30},
		{label.CenterBottom, 80, 30},
		{label.RightBottom, 60, 30},
		{label.NoAnchor, 100, 50},
	}
	for _, c := range cases {
		t.Run(c.anchor.String(), func(t *testing.T) {
			gotX, gotY := AdjustOrigin(x, y, w, h, c.anchor)
			if gotX != c.x || gotY != c.y {
				t.Errorf("got (%g, %g), want (%g, %g)", gotX, gotY, c.x, c.y)
			}
		})
	}
}
