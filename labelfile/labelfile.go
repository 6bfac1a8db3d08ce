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

// Package labelfile loads label files into label documents.
//
// [Open] combines the steps which are needed to load a label: the
// payloads are extracted from the archive, parsed into a document,
// optionally completed with provisional sample values, and finally data
// source references by name are rewritten into references by id.
package labelfile

import (
	"bytes"
	"io"

	"github.com/charmbracelet/log"

	"seehuhn.de/go/label"
	"seehuhn.de/go/label/archive"
	"seehuhn.de/go/label/format"
	"seehuhn.de/go/label/sample"
)

// Options control how a label file is loaded.
type Options struct {
	// Password is used to decrypt the archive.  If empty,
	// [archive.DefaultPassword] is used.
	Password string

	// FillSamples enables provisional values for variables and functions
	// without a sample value.
	FillSamples bool

	// Samples overrides entries of the built-in provisional value table.
	Samples sample.Table

	Logger *log.Logger
}

// Open loads the label file at path.
func Open(path string, opt *Options) (*label.Document, error) {
	opt = opt.withDefaults()
	payload, err := archive.Open(path, opt.Password)
	if err != nil {
		return nil, err
	}
	return load(payload, opt)
}

// Read loads a label file from memory.  The name of the variables entry
// is derived from baseName.
func Read(data []byte, baseName string, opt *Options) (*label.Document, error) {
	opt = opt.withDefaults()
	payload, err := archive.Read(bytes.NewReader(data), int64(len(data)), baseName, opt.Password)
	if err != nil {
		return nil, err
	}
	return load(payload, opt)
}

func load(payload *archive.Payload, opt *Options) (*label.Document, error) {
	doc, err := format.Parse(payload.Variables, payload.Format, &format.Options{Logger: opt.Logger})
	if err != nil {
		return nil, err
	}

	if opt.FillSamples {
		n := sample.Fill(doc, sample.Builtin().Merge(opt.Samples))
		opt.Logger.Debug("filled provisional values", "count", n)
	}

	for _, u := range doc.NormalizeReferences() {
		opt.Logger.Warn("unresolved reference", "owner", u.Owner, "ref", u.Ref)
	}
	opt.Logger.Debug("loaded label", "format", payload.FormatName,
		"variables", doc.NumVariables(), "functions", doc.NumFunctions(),
		"items", len(doc.Items))
	return doc, nil
}

func (opt *Options) withDefaults() *Options {
	res := &Options{}
	if opt != nil {
		*res = *opt
	}
	if res.Password == "" {
		res.Password = archive.DefaultPassword
	}
	if res.Logger == nil {
		res.Logger = log.New(io.Discard)
	}
	return res
}
