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

package sample

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encoding selects the file format of a table.
type Encoding int

// Supported table encodings.
const (
	TOML Encoding = iota
	YAML
)

func (e Encoding) String() string {
	switch e {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ErrEncoding is returned for table files with an unknown extension.
var ErrEncoding = errors.New("unknown table encoding")

// EncodingFor returns the encoding for a file name, based on its extension.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrEncoding)
	}
}

// LoadTable reads a table from a TOML or YAML file.  The file must contain
// a flat mapping from variable names to values.
func LoadTable(path string) (Table, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := DecodeTable(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// DecodeTable parses a table.
func DecodeTable(data []byte, enc Encoding) (Table, error) {
	t := Table{}
	var err error
	switch enc {
	case TOML:
		err = toml.Unmarshal(data, &t)
	case YAML:
		err = yaml.Unmarshal(data, &t)
	default:
		err = ErrEncoding
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// WriteTable writes t to w.  Keys are written in sorted order.
func WriteTable(w io.Writer, t Table, enc Encoding) error {
	var data []byte
	var err error
	switch enc {
	case TOML:
		data, err = toml.Marshal(map[string]string(t))
	case YAML:
		buf := &bytes.Buffer{}
		ye := yaml.NewEncoder(buf)
		ye.SetIndent(2)
		err = ye.Encode(map[string]string(t))
		if err == nil {
			err = ye.Close()
		}
		data = buf.Bytes()
	default:
		err = ErrEncoding
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
