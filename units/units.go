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

// Package units converts between the physical lengths stored in label
// archives and the device independent units used for layout.
//
// Label archives store all lengths in micrometres.  Layout happens in
// rendering units of 1/96 inch, so that one unit corresponds to one pixel
// on a 96 dpi display.
package units

// PixelsPerMicron is the number of rendering units in one micrometre.
//
// One inch is 25400µm and 96 rendering units.
const PixelsPerMicron = 96.0 / 25400.0

// MicronsToPixels converts a length in micrometres to rendering units.
func MicronsToPixels(microns float64) float64 {
	return microns * PixelsPerMicron
}

// PixelsToMicrons converts a length in rendering units to micrometres.
func PixelsToMicrons(px float64) float64 {
	return px / PixelsPerMicron
}

// PixelsToPoints converts a length in rendering units to PostScript points.
func PixelsToPoints(px float64) float64 {
	return px * 72 / 96
}
