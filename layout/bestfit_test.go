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
	"errors"
	"math"
	"testing"
)

// linesOf returns a measure function for a text of n characters, where
// each character is 0.6em wide and lines are 1.2em high.
func linesOf(n int) MeasureFunc {
	return func(_ string, size, wrapWidth float64) (float64, error) {
		perLine := math.Floor(wrapWidth / (0.6 * size))
		if perLine < 1 {
			perLine = 1
		}
		lines := math.Ceil(float64(n) / perLine)
		return lines * 1.2 * size, nil
	}
}

func TestBestFitMonotone(t *testing.T) {
	cases := []struct {
		n          int
		w, h       float64
		minS, maxS float64
	}{
		{10, 100, 20, 4, 40},
		{200, 150, 80, 2, 30},
		{1, 500, 500, 1, 72},
		{50, 60, 10, 6, 24},
	}
	for _, c := range cases {
		measure := linesOf(c.n)
		got, err := BestFitFontSize("", c.w, c.h, c.minS, c.maxS, measure)
		if err != nil {
			t.Fatal(err)
		}
		if got < c.minS || got > c.maxS {
			t.Errorf("%v: size %g out of range", c, got)
		}

		// Find the largest fitting size by a fine linear scan.
		best := c.minS
		for s := c.minS; s <= c.maxS; s += 0.01 {
			h, _ := measure("", s, c.w)
			if h <= c.h {
				best = s
			}
		}
		if got > c.minS {
			h, _ := measure("", got, c.w)
			if h > c.h {
				t.Errorf("%v: size %g does not fit", c, got)
			}
		}
		if best-got > BestFitPrecision+0.01 {
			t.Errorf("%v: got %g, but %g fits", c, got, best)
		}
	}
}

func TestBestFitNothingFits(t *testing.T) {
	measure := func(string, float64, float64) (float64, error) { return 1000, nil }
	got, err := BestFitFontSize("x", 10, 10, 6, 30, measure)
	if err != nil || got != 6 {
		t.Errorf("got %g, %v", got, err)
	}
}

func TestBestFitInverted(t *testing.T) {
	measure := func(_ string, size, _ float64) (float64, error) { return size, nil }
	got, err := BestFitFontSize("x", 10, 12, 30, 6, measure)
	if err != nil {
		t.Fatal(err)
	}
	if got < 11.5 || got > 12 {
		t.Errorf("got %g", got)
	}
}

func TestBestFitIterationLimit(t *testing.T) {
	calls := 0
	measure := func(_ string, size, _ float64) (float64, error) {
		calls++
		return math.NaN(), nil
	}
	got, err := BestFitFontSize("x", 10, 12, 0, 1e12, measure)
	if err != nil {
		t.Fatal(err)
	}
	if calls != BestFitMaxIterations {
		t.Errorf("measure called %d times", calls)
	}
	if got != 0 {
		t.Errorf("got %g", got)
	}
}

func TestBestFitError(t *testing.T) {
	errBroken := errors.New("broken")
	measure := func(string, float64, float64) (float64, error) { return 0, errBroken }
	_, err := BestFitFontSize("x", 10, 12, 4, 20, measure)
	if !errors.Is(err, errBroken) {
		t.Errorf("unexpected error %v", err)
	}
}
