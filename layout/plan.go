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
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/label"
	"seehuhn.de/go/label/resolve"
)

// Default box sizes for items without a stored size.
const (
	DefaultGraphicWidth  = 50
	DefaultGraphicHeight = 50
	DefaultBarcodeWidth  = 100
	DefaultBarcodeHeight = 50
)

// Measurer provides text metrics.
type Measurer interface {
	// Measure returns the height of text set in the given font and size,
	// wrapped to wrapWidth.  If wrapWidth is not positive, lines are only
	// broken at newline characters.
	Measure(text, family string, size, wrapWidth float64) (float64, error)

	// Width returns the width of the widest line of text.
	Width(text, family string, size float64) (float64, error)
}

// Placement describes where and how an item is drawn.
type Placement struct {
	Item label.Item

	// Content is the resolved text of the item.  For graphics, this is
	// the image path.
	Content string

	// FontSize is the font size for text items, after applying best fit.
	FontSize float64

	// Origin is the top-left corner of the item.
	Origin vec.Vec2

	// Box is the area covered by the item.  LLx, LLy give the top-left
	// corner and URx, URy the bottom-right corner.
	Box rect.Rect

	// Err records a measurement failure.  The remaining fields are still
	// valid in this case, using the stored item size and font size.
	Err error
}

// Planner lays out all items of a document.
type Planner struct {
	Resolver *resolve.Resolver

	// Measurer is used for text objects and best fit text boxes.  If
	// Measurer is nil, the stored item sizes and font sizes are used.
	Measurer Measurer

	// ImageDir is prepended to relative image paths.
	ImageDir string

	Logger *log.Logger
}

// Plan starts a new render pass and computes the placements of all items,
// in drawing order.
func (p *Planner) Plan() []*Placement {
	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	doc := p.Resolver.Document()
	p.Resolver.BeginPass()

	items := doc.SortedItems()
	res := make([]*Placement, 0, len(items))
	for _, item := range items {
		info := item.Info()
		pl := &Placement{Item: item}
		w, h := info.Width, info.Height

		switch item := item.(type) {
		case *label.TextObject:
			pl.Content = NormalizeNewlines(p.Resolver.ResolveItem(item))
			pl.FontSize = item.FontSize
			if p.Measurer != nil {
				tw, err := p.Measurer.Width(pl.Content, item.FontName, item.FontSize)
				if err == nil {
					w = tw
				} else {
					pl.Err = err
				}
				if h <= 0 {
					th, err := p.Measurer.Measure(pl.Content, item.FontName, item.FontSize, 0)
					if err == nil {
						h = th
					} else if pl.Err == nil {
						pl.Err = err
					}
				}
			}

		case *label.TextBox:
			pl.Content = NormalizeNewlines(p.Resolver.ResolveItem(item))
			pl.FontSize = item.FontSize
			bf := item.BestFit
			if bf != nil && w > 0 && h > 0 && p.Measurer != nil {
				measure := func(text string, size, wrapWidth float64) (float64, error) {
					if item.Wrap == label.NoWrap {
						wrapWidth = 0
					}
					return p.Measurer.Measure(text, item.FontName, size, wrapWidth)
				}
				size, err := BestFitFontSize(pl.Content, w, h, bf.MinSize, bf.MaxSize, measure)
				if err != nil {
					logger.Warn("best fit failed", "item", info.Name, "err", err)
					pl.Err = err
				} else {
					logger.Debug("best fit", "item", info.Name,
						"size", item.FontSize, "fit", size)
					pl.FontSize = size
				}
			}

		case *label.Graphic:
			path := item.ImagePath
			if path == "" && info.DataSourceID != "" {
				path = p.Resolver.ResolveItem(item)
				if path == resolve.Placeholder {
					path = ""
				}
			}
			pl.Content = p.imagePath(path)
			if w <= 0 {
				w = DefaultGraphicWidth
			}
			if h <= 0 {
				h = DefaultGraphicHeight
			}

		case *label.Barcode:
			pl.Content = p.Resolver.ResolveItem(item)
			if w <= 0 {
				w = DefaultBarcodeWidth
			}
			if h <= 0 {
				h = DefaultBarcodeHeight
			}
		}

		x, y := AdjustOrigin(info.X, info.Y, w, h, info.Anchor)
		pl.Origin = vec.Vec2{X: x, Y: y}
		pl.Box = rect.Rect{LLx: x, LLy: y, URx: x + w, URy: y + h}
		res = append(res, pl)
	}
	return res
}

func (p *Planner) imagePath(path string) string {
	if path == "" || p.ImageDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.ImageDir, path)
}

// NormalizeNewlines converts all line endings in s to "\n".
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
