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

import "image/color"

// Item is a visual element placed on a label.
//
// The set of implementations is closed: every Item is one of
// [*TextObject], [*TextBox], [*Graphic] or [*Barcode].
type Item interface {
	// Info returns the fields shared by all item kinds.
	Info() *ItemInfo

	isItem()
}

// ItemInfo holds the fields common to all item kinds.
// All lengths are in rendering units.
type ItemInfo struct {
	ID   string
	Name string

	// X and Y give the location of the anchor point.
	X, Y          float64
	Width, Height float64

	// Content is the fixed text of the item.  It is used when the item has
	// no data source, or when the data source cannot be resolved.
	Content string

	// DataSourceID refers to a variable or a function.
	DataSourceID string

	Anchor Anchor
	ZOrder int
}

// Info implements the [Item] interface.
func (info *ItemInfo) Info() *ItemInfo {
	return info
}

// Alignment describes the horizontal alignment of text.
type Alignment int

// These are the supported text alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "unknown"
	}
}

// WrapMode describes how text is broken into lines.
type WrapMode int

// These are the supported wrap modes.
const (
	NoWrap WrapMode = iota
	Wrap
	WrapWithOverflow
)

func (w WrapMode) String() string {
	switch w {
	case NoWrap:
		return "none"
	case Wrap:
		return "wrap"
	case WrapWithOverflow:
		return "wrap-with-overflow"
	default:
		return "unknown"
	}
}

// ResizeMode describes how an image is fitted into its box.
type ResizeMode int

// These are the supported resize modes.
const (
	ResizeNone ResizeMode = iota
	ResizeFill
	ResizeUniform
	ResizeUniformToFill
)

// TextStyle describes the font and color used for text items.
type TextStyle struct {
	FontName  string
	FontSize  float64
	Color     color.NRGBA
	Multiline bool
	Alignment Alignment
}

// DefaultTextStyle is used for text items without a font descriptor.
var DefaultTextStyle = TextStyle{
	FontName: "Arial",
	FontSize: 10,
	Color:    color.NRGBA{A: 255},
}

// TextObject is a single text run.  The width of a text object follows
// its content.
type TextObject struct {
	ItemInfo
	TextStyle
}

func (*TextObject) isItem() {}

// TextBox is a text item with a fixed box, into which the text is wrapped.
type TextBox struct {
	ItemInfo
	TextStyle

	Wrap WrapMode

	// BestFit, if non-nil, asks for the font size to be chosen such that
	// the text fills the box.
	BestFit *BestFit
}

func (*TextBox) isItem() {}

// BestFit gives the admissible font size range for a best fit text box.
type BestFit struct {
	MinSize, MaxSize       float64
	MinScaling, MaxScaling float64
}

// Graphic is an image.
type Graphic struct {
	ItemInfo

	// ImagePath is the file name of the image.  If it is empty, the
	// image path is taken from the item's data source.
	ImagePath  string
	ForceColor bool
	Resize     ResizeMode
}

func (*Graphic) isItem() {}

// Barcode is a barcode symbol.
type Barcode struct {
	ItemInfo

	// Symbology names the barcode type, e.g. "UPC_A" or "CODE_128".
	Symbology         string
	HasCheckDigit     bool
	DisplayCheckDigit bool

	// ModuleWidth is the width of the narrowest bar, ModuleHeight the
	// height of the bars, both in rendering units.
	ModuleWidth  float64
	ModuleHeight float64
	Margin       float64
}

func (*Barcode) isItem() {}

// cloneItem returns a copy of item which shares no mutable state with item.
func cloneItem(item Item) Item {
	switch item := item.(type) {
	case *TextObject:
		c := *item
		return &c
	case *TextBox:
		c := *item
		if item.BestFit != nil {
			bf := *item.BestFit
			c.BestFit = &bf
		}
		return &c
	case *Graphic:
		c := *item
		return &c
	case *Barcode:
		c := *item
		return &c
	default:
		panic("unexpected item type")
	}
}
