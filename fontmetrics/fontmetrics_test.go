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

package fontmetrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestWidth(t *testing.T) {
	r := newRegistry(t)

	w0, err := r.Width("", "Arial", 10)
	if err != nil || w0 != 0 {
		t.Errorf("empty text: %g, %v", w0, err)
	}

	narrow, _ := r.Width("iiii", "Arial", 10)
	wide, _ := r.Width("MMMM", "Arial", 10)
	if !(narrow > 0 && narrow < wide) {
		t.Errorf("unexpected widths %g, %g", narrow, wide)
	}

	double, _ := r.Width("MMMM", "Arial", 20)
	if d := double - 2*wide; d > 1e-9 || d < -1e-9 {
		t.Errorf("width does not scale: %g vs %g", double, wide)
	}

	twoLines, _ := r.Width("MMMM\nii", "Arial", 10)
	if twoLines != wide {
		t.Errorf("multi-line width %g, want %g", twoLines, wide)
	}
}

func TestMonoAlias(t *testing.T) {
	r := newRegistry(t)
	if !r.Has("Courier New") {
		t.Fatal("Courier New is not mapped")
	}
	a, _ := r.Width("iiii", "Courier New", 10)
	b, _ := r.Width("MMMM", "courier new", 10)
	if a != b || a == 0 {
		t.Errorf("monospaced widths differ: %g, %g", a, b)
	}

	r.Alias("Barcode Font", "Go Mono")
	c, _ := r.Width("iiii", "Barcode Font", 10)
	if c != a {
		t.Errorf("alias width %g, want %g", c, a)
	}
}

func TestMeasure(t *testing.T) {
	r := newRegistry(t)
	text := "The quick brown fox jumps over the lazy dog"

	lh, err := r.LineHeight("Arial", 10)
	if err != nil {
		t.Fatal(err)
	}
	h, err := r.Measure(text, "Arial", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if h != lh {
		t.Errorf("unwrapped height %g, want %g", h, lh)
	}

	w, _ := r.Width(text, "Arial", 10)
	h, _ = r.Measure(text, "Arial", 10, w/2)
	if h < 2*lh || h > 3*lh {
		t.Errorf("wrapped height %g, line height %g", h, lh)
	}

	prev := 0.0
	for size := 4.0; size <= 40; size += 2 {
		h, _ := r.Measure(text, "Arial", size, 100)
		if h < prev {
			t.Errorf("height decreases at size %g", size)
		}
		prev = h
	}
}

func TestLines(t *testing.T) {
	r := newRegistry(t)

	lines, err := r.Lines("a b\n\nc", "Go Mono", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(lines, "|") != "a b||c" {
		t.Errorf("got %q", lines)
	}

	// Go Mono glyphs are about 0.6em wide.  At size 10, a width of 31
	// holds five characters.
	lines, _ = r.Lines("abc def abcdefghijkl", "Go Mono", 10, 31)
	want := "abc|def|abcde|fghij|kl"
	if got := strings.Join(lines, "|"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInvalidSize(t *testing.T) {
	r := newRegistry(t)
	for _, size := range []float64{0, -1} {
		if _, err := r.Measure("x", "Arial", size, 10); !errors.Is(err, ErrSize) {
			t.Errorf("size %g: unexpected error %v", size, err)
		}
		if _, err := r.Width("x", "Arial", size); !errors.Is(err, ErrSize) {
			t.Errorf("size %g: unexpected error %v", size, err)
		}
	}
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "mono.TTF"), gomono.TTF, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "broken.otf"), []byte("not a font"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hello"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	r := newRegistry(t)
	n, err := r.AddDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("loaded %d fonts, want 1", n)
	}
	if _, err := r.AddFont([]byte("junk")); err == nil {
		t.Error("expected error for invalid font data")
	}
}
