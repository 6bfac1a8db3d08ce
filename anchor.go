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

import "strconv"

// Anchor selects the point of an item's bounding box which is located at
// the item's stored coordinates.
type Anchor int

// These are the anchor points, in the order used by label archives.
const (
	LeftTop Anchor = iota
	CenterTop
	RightTop
	LeftMiddle
	CenterMiddle
	RightMiddle
	LeftBottom
	CenterBottom
	RightBottom
	NoAnchor
)

var anchorNames = [...]string{
	"LeftTop",
	"CenterTop",
	"RightTop",
	"LeftMiddle",
	"CenterMiddle",
	"RightMiddle",
	"LeftBottom",
	"CenterBottom",
	"RightBottom",
	"None",
}

func (a Anchor) String() string {
	if a >= 0 && int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return "Anchor(" + strconv.Itoa(int(a)) + ")"
}

// Fractions returns the fraction of the box width and height which lies to
// the left of and above the anchor point.  Unknown anchors and [NoAnchor]
// behave like [LeftTop].
func (a Anchor) Fractions() (fx, fy float64) {
	if a < LeftTop || a > RightBottom {
		return 0, 0
	}
	fx = float64(a%3) / 2
	fy = float64(a/3) / 2
	return fx, fy
}
