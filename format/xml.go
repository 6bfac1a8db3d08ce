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
	"bytes"
	"encoding/base64"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"seehuhn.de/go/label/units"
)

// child returns the first node matching the relative XPath expression,
// or nil.
func child(node *xmlquery.Node, expr string) *xmlquery.Node {
	if node == nil {
		return nil
	}
	res, err := xmlquery.Query(node, expr)
	if err != nil {
		return nil
	}
	return res
}

// childText returns the text content of the first node matching expr, or
// the empty string.
func childText(node *xmlquery.Node, expr string) string {
	c := child(node, expr)
	if c == nil {
		return ""
	}
	return c.InnerText()
}

// hasChild reports whether a node matching expr exists.
func hasChild(node *xmlquery.Node, expr string) bool {
	return child(node, expr) != nil
}

// sampleValue reads the sample value of a variable or function.
func sampleValue(node *xmlquery.Node) string {
	if c := child(node, "SampleValue/StringValue"); c != nil {
		return c.InnerText()
	}
	return childText(node, "SampleValue/UserValue")
}

// refList returns the non-empty Id children of all nodes matching expr.
func refList(node *xmlquery.Node, expr string) []string {
	nodes, err := xmlquery.QueryAll(node, expr)
	if err != nil {
		return nil
	}
	var res []string
	for _, n := range nodes {
		id := childText(n, "Id")
		if id != "" {
			res = append(res, id)
		}
	}
	return res
}

// decodeSeparator decodes the base64 encoded separator of a concatenate
// function.  An empty separator means a newline, and values which are
// not valid base64 are used as they are.
func decodeSeparator(s string) string {
	if s == "" {
		return "\n"
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(data)
}

// parsePositive parses a floating point number and reports whether it
// is positive.
func parsePositive(s string) (float64, bool) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return x, x > 0
}

func (p *parser) number(node *xmlquery.Node, expr string, def float64) float64 {
	s := strings.TrimSpace(childText(node, expr))
	if s == "" {
		return def
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.logger.Debug("invalid number", "field", expr, "value", s)
		return def
	}
	return x
}

// length reads a length in micrometres and converts it to rendering units.
func (p *parser) length(node *xmlquery.Node, expr string, def float64) float64 {
	s := strings.TrimSpace(childText(node, expr))
	if s == "" {
		return def
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.logger.Debug("invalid length", "field", expr, "value", s)
		return def
	}
	return units.MicronsToPixels(x)
}

func (p *parser) integer(node *xmlquery.Node, expr string, def int) int {
	s := strings.TrimSpace(childText(node, expr))
	if s == "" {
		return def
	}
	x, err := strconv.Atoi(s)
	if err != nil {
		p.logger.Debug("invalid integer", "field", expr, "value", s)
		return def
	}
	return x
}

func (p *parser) boolValue(node *xmlquery.Node, expr string, def bool) bool {
	s := strings.TrimSpace(childText(node, expr))
	if s == "" {
		return def
	}
	x, err := strconv.ParseBool(s)
	if err != nil {
		p.logger.Debug("invalid boolean", "field", expr, "value", s)
		return def
	}
	return x
}

// parseColor parses a hex color in AARRGGBB or RRGGBB notation.
func parseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var argb uint64
	var err error
	switch len(s) {
	case 6:
		argb, err = strconv.ParseUint(s, 16, 32)
		argb |= 0xFF000000
	case 8:
		argb, err = strconv.ParseUint(s, 16, 32)
	default:
		return color.NRGBA{}, false
	}
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		A: uint8(argb >> 24),
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
	}, true
}

var encodingDecl = regexp.MustCompile(`^(\s*<\?xml[^>]*?encoding\s*=\s*)("[^"]*"|'[^']*')`)

// toUTF8 converts an XML payload to UTF-8.  Byte order marks are honoured,
// UTF-16 without byte order mark is recognised from the leading '<', and
// the encoding declaration is adjusted to match the new encoding.
func toUTF8(data []byte) ([]byte, error) {
	var dec transform.Transformer
	switch {
	case len(data) >= 2 && data[0] == '<' && data[1] == 0:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case len(data) >= 2 && data[0] == 0 && data[1] == '<':
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	default:
		dec = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, err
	}
	out = bytes.TrimPrefix(out, []byte("\xef\xbb\xbf"))
	return encodingDecl.ReplaceAll(out, []byte(`${1}"utf-8"`)), nil
}
