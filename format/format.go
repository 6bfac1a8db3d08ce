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

// Package format reads the XML payloads of a label archive.
//
// A label archive contains two XML documents.  The variables document
// lists the variables and functions of the label, the format document
// gives the label size and the visual items.  [Parse] combines both into
// a [label.Document].
//
// Missing or malformed optional fields are replaced by defaults.  Only
// XML syntax errors, and missing payloads, cause Parse to fail.
package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/charmbracelet/log"

	"seehuhn.de/go/label"
)

// XPath expressions used to locate the parts of the payloads.
const (
	variablesPath  = "//EuroPlus.NiceLabel/Variables/Item[@Type='Variable']"
	functionsPath  = "//EuroPlus.NiceLabel/Functions/Item"
	mediaPath      = "//EuroPlus.NiceLabel/Media"
	backgroundPath = "//BackgroundDocumentItem"
	itemsPath      = "//DocumentDesign/Items/Item"
)

var errEmpty = errors.New("payload is empty")

// Options control the parser.
type Options struct {
	// Logger receives messages about defaulted fields and skipped
	// elements.  If nil, messages are discarded.
	Logger *log.Logger
}

// Parse builds a document from the variables and format payloads of a
// label.  On failure, the returned error is a [*label.ParseError] and no
// document is returned.
func Parse(variablesXML, formatXML []byte, opt *Options) (*label.Document, error) {
	p := newParser(opt)

	vars, err := p.load("variables", variablesXML)
	if err != nil {
		return nil, err
	}
	format, err := p.load("format", formatXML)
	if err != nil {
		return nil, err
	}

	doc := label.NewDocument()
	doc.VariablesXML = variablesXML
	doc.FormatXML = formatXML

	if err := p.readVariables(doc, vars); err != nil {
		return nil, &label.ParseError{Part: "variables", Err: err}
	}
	if err := p.readFunctions(doc, vars); err != nil {
		return nil, &label.ParseError{Part: "variables", Err: err}
	}
	if err := p.readFormat(doc, format); err != nil {
		return nil, &label.ParseError{Part: "format", Err: err}
	}

	for _, c := range doc.NameCollisions() {
		p.logger.Warn("duplicate name", "kind", c.Kind, "name", c.Name,
			"kept", c.Kept, "ignored", c.Ignored)
	}
	return doc, nil
}

type parser struct {
	logger *log.Logger
}

func newParser(opt *Options) *parser {
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &parser{logger: logger}
}

// load converts a payload to UTF-8 and parses the XML.
func (p *parser) load(part string, data []byte) (*xmlquery.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &label.ParseError{Part: part, Err: errEmpty}
	}
	utf8Data, err := toUTF8(data)
	if err != nil {
		return nil, &label.ParseError{Part: part, Err: err}
	}
	root, err := xmlquery.Parse(bytes.NewReader(utf8Data))
	if err != nil {
		perr := &label.ParseError{Part: part, Err: err}
		var serr *xml.SyntaxError
		if errors.As(err, &serr) {
			perr.Line = serr.Line
		}
		return nil, perr
	}
	if root.FirstChild == nil {
		return nil, &label.ParseError{Part: part, Err: errEmpty}
	}
	return root, nil
}

func (p *parser) readVariables(doc *label.Document, root *xmlquery.Node) error {
	nodes, err := xmlquery.QueryAll(root, variablesPath)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		v := &label.Variable{
			ID:          childText(node, "Id"),
			Name:        childText(node, "Name"),
			SampleValue: sampleValue(node),
		}
		if v.ID == "" {
			p.logger.Debug("skipping variable without id", "name", v.Name)
			continue
		}
		doc.AddVariable(v)
	}
	return nil
}

func (p *parser) readFunctions(doc *label.Document, root *xmlquery.Node) error {
	nodes, err := xmlquery.QueryAll(root, functionsPath)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		info := label.FunctionInfo{
			ID:          childText(node, "Id"),
			Name:        childText(node, "Name"),
			SampleValue: sampleValue(node),
			Type:        node.SelectAttr("Type"),
		}
		if info.Type == "" {
			info.Type = "ExecuteScriptFunction"
		}
		if info.ID == "" {
			p.logger.Debug("skipping function without id", "name", info.Name)
			continue
		}

		var f label.Function
		if info.Type == "ConcatenateFunction" {
			f = &label.ConcatenateFunction{
				FunctionInfo:      info,
				Separator:         decodeSeparator(childText(node, "Separator")),
				IgnoreEmptyValues: p.boolValue(node, "IgnoreEmptyValues", false),
				SourceIDs:         refList(node, "DataValues/Item/DataSourceReference"),
				InputIDs:          refList(node, "InputDataSourceReferences/Item"),
			}
		} else {
			f = &label.ScriptFunction{
				FunctionInfo:         info,
				Script:               childText(node, "Script"),
				ScriptWithReferences: childText(node, "ScriptWithReferences"),
				InputIDs:             refList(node, "InputDataSourceReferences/Item"),
			}
		}
		doc.AddFunction(f)
	}
	return nil
}

func (p *parser) readFormat(doc *label.Document, root *xmlquery.Node) error {
	media, err := xmlquery.Query(root, mediaPath)
	if err != nil {
		return err
	}
	if media != nil {
		doc.Width = p.length(media, "Width", 0)
		doc.Height = p.length(media, "Height", 0)
	}

	bg, err := xmlquery.Query(root, backgroundPath)
	if err != nil {
		return err
	}
	if bg != nil {
		doc.BackgroundImage = childText(bg, "GraphicFileName")
	}

	nodes, err := xmlquery.QueryAll(root, itemsPath)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		item := p.readItem(node)
		if item == nil {
			continue
		}
		doc.AddItem(item)
	}
	return nil
}
