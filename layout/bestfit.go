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

// Limits for the best fit search.
const (
	BestFitPrecision     = 0.5
	BestFitMaxIterations = 20
)

// MeasureFunc returns the height of text set at the given font size and
// wrapped to the given width.
type MeasureFunc func(text string, fontSize, wrapWidth float64) (float64, error)

// BestFitFontSize finds the largest font size in the range [minSize,
// maxSize] for which content, wrapped to boxWidth, has a height of at most
// boxHeight.
//
// The search is a bisection which stops once the search interval is
// shorter than [BestFitPrecision], or after [BestFitMaxIterations] steps.
// The result is the largest size known to fit, or minSize if no probed
// size fits.  If minSize > maxSize, the two are exchanged.
//
// If measure fails, the error is returned and the caller should keep the
// original font size.
func BestFitFontSize(content string, boxWidth, boxHeight, minSize, maxSize float64, measure MeasureFunc) (float64, error) {
	lo, hi := minSize, maxSize
	if lo > hi {
		lo, hi = hi, lo
	}

	for i := 0; i < BestFitMaxIterations && hi-lo > BestFitPrecision; i++ {
		mid := (lo + hi) / 2
		h, err := measure(content, mid, boxWidth)
		if err != nil {
			return 0, err
		}
		if h <= boxHeight {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}
