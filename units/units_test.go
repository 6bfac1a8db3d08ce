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

package units

import (
	"math"
	"testing"
)

func TestMicronsToPixels(t *testing.T) {
	cases := []struct {
		microns float64
		px      float64
	}{
		{0, 0},
		{25400, 96},
		{-25400, -96},
		{50800, 192},
		{264.5833333333333, 1},
	}
	for _, c := range cases {
		got := MicronsToPixels(c.microns)
		if math.Abs(got-c.px) > 1e-9 {
			t.Errorf("MicronsToPixels(%g) = %g, want %g", c.microns, got, c.px)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 1, 12.5, -7, 1000, 1_000_000, 0.001} {
		got := MicronsToPixels(PixelsToMicrons(x))
		if math.Abs(got-x) > 1e-9*math.Max(1, math.Abs(x)) {
			t.Errorf("%g -> %g", x, got)
		}
		got = PixelsToMicrons(MicronsToPixels(x))
		if math.Abs(got-x) > 1e-9*math.Max(1, math.Abs(x)) {
			t.Errorf("%g -> %g", x, got)
		}
	}
}

func TestPoints(t *testing.T) {
	if got := PixelsToPoints(96); got != 72 {
		t.Errorf("PixelsToPoints(96) = %g", got)
	}
}
