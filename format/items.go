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

package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"

	"seehuhn.de/go/label"
)

// Default values for barcode items.
const (
	DefaultSymbology    = "UPC_A"
	DefaultModuleWidth  = 1
	DefaultModuleHeight = 50
	DefaultMargin       = 4
)

// DefaultBestFitMinSize is used when a best fit text box does not give a
// minimum font size.
const DefaultBestFitMinSize = 1

// textObjectCharWidth is the width of a character, relative to the font
// size, used to estimate the width of text objects.
const textObjectCharWidth = 0.6

func (p *parser) readItem(node *xmlquery.Node) label.Item {
	var item label.Item
	switch typ := node.SelectAttr("Type"); typ {
	case "TextDocumentItem":
		style := p.textStyle(node)
		if isTextBox(node) {
			item = &label.TextBox{
				TextStyle: style,
				Wrap:      wrapMode(node),
				BestFit:   p.bestFit(node, style),
			}
		} else {
			item = &label.TextObject{TextStyle: style}
		}
	case "GraphicDocumentItem":
		resize := p.integer(node, "ResizeMode", 0)
		if resize < int(label.ResizeNone) || resize > int(label.ResizeUniformToFill) {
			resize = int(label.ResizeNone)
		}
		item = &label.Graphic{
			ImagePath:  childText(node, "GraphicFileName"),
			ForceColor: p.boolValue(node, "ForceColor", false),
			Resize:     label.ResizeMode(resize),
		}
	case "BarcodeDocumentItem":
		item = p.barcode(node)
	default:
		p.logger.Debug("skipping item", "type", typ, "id", childText(node, "Id"))
		return nil
	}

	info := item.Info()
	info.ID = childText(node, "Id")
	info.Name = childText(node, "Name")
	p.geometry(node, info)
	if hasChild(node, "Contents") {
		info.Content = childText(node, "Contents/FixedValue/StringValue")
	} else {
		info.Content = childText(node, "FixedContents")
	}
	info.DataSourceID = childText(node, "DataSourceReference/Id")
	info.ZOrder = p.integer(node, "ZOrder", 0)

	if t, ok := item.(*label.TextObject); ok && info.Width <= 0 {
		n := utf8.RuneCountInString(info.Content)
		info.Width = float64(n) * t.FontSize * textObjectCharWidth
	}
	return item
}

func (p *parser) geometry(node *xmlquery.Node, info *label.ItemInfo) {
	g := child(node, "Geometry")
	if g == nil {
		return
	}

	anchor := p.integer(g, "AnchoringPoint", 0)
	if anchor < int(label.LeftTop) || anchor > int(label.NoAnchor) {
		anchor = int(label.LeftTop)
	}
	info.Anchor = label.Anchor(anchor)

	switch g.SelectAttr("Type") {
	case "PositionGeometry":
		info.X = p.length(g, "X", 0)
		info.Y = p.length(g, "Y", 0)
	case "RectGeometry":
		info.Width = p.length(g, "Width", 0)
		info.Height = p.length(g, "Height", 0)
		info.X = p.length(g, "Left", 0)
		info.Y = p.length(g, "Top", 0)
	}
}

// isTextBox decides whether a text item is a text box or a text object.
func isTextBox(node *xmlquery.Node) bool {
	if g := child(node, "Geometry"); g != nil && g.SelectAttr("Type") == "RectGeometry" {
		return true
	}
	if strings.ToLower(childText(node, "Multiline")) == "true" {
		return true
	}
	if w := child(node, "TextWrapping"); w != nil && w.InnerText() != "0" {
		return true
	}
	if _, ok := parsePositive(childText(node, "MaxWidth")); ok {
		return true
	}
	return false
}

func (p *parser) textStyle(node *xmlquery.Node) label.TextStyle {
	style := label.DefaultTextStyle

	if fd := child(node, "FontDescriptor"); fd != nil {
		if name := strings.TrimSpace(childText(fd, "Name")); name != "" {
			style.FontName = name
		}
		if size := p.number(fd, "Height", style.FontSize); size > 0 {
			style.FontSize = size
		}
		if s := childText(fd, "Color"); s != "" {
			if col, ok := parseColor(s); ok {
				style.Color = col
			} else {
				p.logger.Debug("invalid color", "value", s)
			}
		}
	}

	style.Multiline = p.boolValue(node, "Multiline", false)
	switch strings.TrimSpace(childText(node, "TextBoxAlignment")) {
	case "2":
		style.Alignment = label.AlignCenter
	case "3":
		style.Alignment = label.AlignRight
	case "4":
		style.Alignment = label.AlignJustify
	}
	return style
}

func wrapMode(node *xmlquery.Node) label.WrapMode {
	switch strings.TrimSpace(childText(node, "TextWrapping")) {
	case "0":
		return label.NoWrap
	case "2":
		return label.WrapWithOverflow
	default:
		return label.Wrap
	}
}

func (p *parser) bestFit(node *xmlquery.Node, style label.TextStyle) *label.BestFit {
	if strings.TrimSpace(childText(node, "BestFit")) != "1" {
		return nil
	}
	bf := &label.BestFit{
		MinSize:    p.number(node, "BestFitMinimumFontSize", 0),
		MaxSize:    p.number(node, "BestFitMaximumFontSize", 0),
		MinScaling: p.number(node, "BestFitMinimumFontScaling", 0),
		MaxScaling: p.number(node, "BestFitMaximumFontScaling", 0),
	}
	if bf.MinSize <= 0 {
		bf.MinSize = DefaultBestFitMinSize
	}
	if bf.MaxSize <= 0 {
		bf.MaxSize = max(style.FontSize, bf.MinSize)
	}
	return bf
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// symbology converts a barcode data type like "Code128BarcodeData" or
// "UpcABarcodeData" into a symbology name like "CODE128" or "UPC_A".
func symbology(dataType string) (string, bool) {
	name, ok := strings.CutSuffix(dataType, "BarcodeData")
	if !ok || name == "" {
		return "", false
	}
	return strings.ToUpper(camelBoundary.ReplaceAllString(name, "${1}_${2}")), true
}

func (p *parser) barcode(node *xmlquery.Node) *label.Barcode {
	b := &label.Barcode{
		Symbology:     DefaultSymbology,
		HasCheckDigit: true,
		ModuleWidth:   DefaultModuleWidth,
		ModuleHeight:  DefaultModuleHeight,
		Margin:        DefaultMargin,
	}
	data := child(node, "BarcodeData")
	if data == nil {
		return b
	}
	if s, ok := symbology(data.SelectAttr("Type")); ok {
		b.Symbology = s
	}
	b.HasCheckDigit = p.boolValue(data, "HasCheckDigit", b.HasCheckDigit)
	b.DisplayCheckDigit = p.boolValue(data, "DisplayCheckDigit", b.DisplayCheckDigit)
	b.ModuleHeight = p.length(data, "ModuleHeight", b.ModuleHeight)
	b.ModuleWidth = p.length(data, "BaseBarWidth", b.ModuleWidth)
	return b
}
