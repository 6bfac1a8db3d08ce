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

// Package fontmetrics measures text using the metrics of TrueType and
// OpenType fonts.
//
// A [Registry] maps font family names, as used in label documents, to
// fonts.  The Go fonts are always available; families without a matching
// font are measured with Go Regular, and the usual monospaced families are
// mapped to Go Mono.  Additional fonts can be loaded from files.
package fontmetrics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
)

// ErrSize is returned when text is measured at a font size which is not
// positive.
var ErrSize = errors.New("invalid font size")

// Options control the construction of a [Registry].
type Options struct {
	// Logger receives messages about skipped font files.
	Logger *log.Logger
}

// Registry is a collection of fonts, indexed by family name.
//
// A Registry is safe for concurrent use.
type Registry struct {
	logger *log.Logger

	mu       sync.Mutex
	faces    map[string]*face
	aliases  map[string]string
	fallback *face
}

type face struct {
	font   *sfnt.Font
	cmap   cmap.Subtable
	widths map[rune]float64 // in em
}

var monoFamilies = []string{
	"courier", "courier new", "consolas", "lucida console", "monospace",
	"ocr-b", "ocr b",
}

// New returns a registry containing the Go fonts.
func New(opt *Options) (*Registry, error) {
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Registry{
		logger:  logger,
		faces:   make(map[string]*face),
		aliases: make(map[string]string),
	}

	for _, data := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gomono.TTF} {
		_, err := r.AddFont(data)
		if err != nil {
			return nil, fmt.Errorf("built-in font: %w", err)
		}
	}
	r.fallback = r.faces[key("Go")]
	if r.fallback == nil {
		return nil, errors.New("built-in font: Go Regular missing")
	}
	for _, name := range monoFamilies {
		r.aliases[key(name)] = key("Go Mono")
	}
	return r, nil
}

// AddFont adds a font to the registry and returns its family name.
// If a font of the same family is already present, the first font
// registered for the family is kept unless it is italic or bold and the
// new font is not.
func (r *Registry) AddFont(data []byte) (string, error) {
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if f.UnitsPerEm == 0 {
		return "", fmt.Errorf("font %q: invalid units per em", f.FamilyName)
	}
	sub, err := f.CMapTable.GetBest()
	if err != nil {
		return "", fmt.Errorf("font %q: %w", f.FamilyName, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(f.FamilyName)
	if old, ok := r.faces[k]; ok {
		oldStyled := old.font.IsItalic || old.font.IsBold
		newStyled := f.IsItalic || f.IsBold
		if !oldStyled || newStyled {
			return f.FamilyName, nil
		}
	}
	r.faces[k] = &face{
		font:   f,
		cmap:   sub,
		widths: make(map[rune]float64),
	}
	return f.FamilyName, nil
}

// AddDir loads all TrueType and OpenType fonts found in dir and its
// subdirectories.  Files which cannot be parsed are skipped.  The method
// returns the number of fonts loaded.
func (r *Registry) AddDir(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		family, err := r.AddFont(data)
		if err != nil {
			r.logger.Debug("skipping font", "file", path, "err", err)
			return nil
		}
		r.logger.Debug("font loaded", "file", path, "family", family)
		count++
		return nil
	})
	return count, err
}

// Alias makes the font family target available under the given name.
func (r *Registry) Alias(name, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[key(name)] = key(target)
}

// Has reports whether the registry contains a font for the given family,
// either directly or through an alias.
func (r *Registry) Has(family string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(family)
	if _, ok := r.faces[k]; ok {
		return true
	}
	_, ok := r.faces[r.aliases[k]]
	return ok
}

func (r *Registry) lookup(family string) *face {
	k := key(family)
	if f, ok := r.faces[k]; ok {
		return f
	}
	if f, ok := r.faces[r.aliases[k]]; ok {
		return f
	}
	return r.fallback
}

// runeWidth returns the advance width of r in em.
func (f *face) runeWidth(r rune) float64 {
	if w, ok := f.widths[r]; ok {
		return w
	}
	gid := f.cmap.Lookup(r)
	w := f.font.GlyphWidthPDF(gid) / 1000
	f.widths[r] = w
	return w
}

func (f *face) lineHeight() float64 {
	upem := float64(f.font.UnitsPerEm)
	return (float64(f.font.Ascent) - float64(f.font.Descent) + float64(f.font.LineGap)) / upem
}

func key(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
