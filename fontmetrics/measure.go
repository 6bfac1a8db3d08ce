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
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Width returns the width of the widest line of text, set in the given
// font family and size.
func (r *Registry) Width(text, family string, size float64) (float64, error) {
	if !(size > 0) {
		return 0, ErrSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(family)
	widest := 0.0
	for _, line := range strings.Split(norm.NFC.String(text), "\n") {
		widest = max(widest, f.textWidth(line))
	}
	return widest * size, nil
}

// LineHeight returns the distance between consecutive baselines.
func (r *Registry) LineHeight(family string, size float64) (float64, error) {
	if !(size > 0) {
		return 0, ErrSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(family).lineHeight() * size, nil
}

// Measure returns the height of text, set in the given font family and
// size and wrapped to wrapWidth.  If wrapWidth is not positive, lines are
// only broken at newline characters.
//
// This implements the text measurement interface of the layout package.
func (r *Registry) Measure(text, family string, size, wrapWidth float64) (float64, error) {
	lines, err := r.Lines(text, family, size, wrapWidth)
	if err != nil {
		return 0, err
	}
	lh, err := r.LineHeight(family, size)
	if err != nil {
		return 0, err
	}
	return float64(len(lines)) * lh, nil
}

// Lines breaks text into lines of at most wrapWidth.  Lines are broken
// at spaces where possible; words which are wider than wrapWidth on their
// own are broken between characters.
func (r *Registry) Lines(text, family string, size, wrapWidth float64) ([]string, error) {
	if !(size > 0) {
		return nil, ErrSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f := r.lookup(family)
	paragraphs := strings.Split(norm.NFC.String(text), "\n")
	if !(wrapWidth > 0) {
		return paragraphs, nil
	}

	limit := wrapWidth / size // in em
	var lines []string
	for _, para := range paragraphs {
		lines = append(lines, f.wrap(para, limit)...)
	}
	return lines, nil
}

// wrap breaks a paragraph greedily.  The limit is given in em.
func (f *face) wrap(para string, limit float64) []string {
	words := strings.FieldsFunc(para, unicode.IsSpace)
	if len(words) == 0 {
		return []string{""}
	}
	space := f.runeWidth(' ')

	var lines []string
	var cur []string
	curWidth := 0.0
	flush := func() {
		lines = append(lines, strings.Join(cur, " "))
		cur = cur[:0]
		curWidth = 0
	}
	for _, word := range words {
		w := f.textWidth(word)
		if len(cur) > 0 && curWidth+space+w <= limit {
			cur = append(cur, word)
			curWidth += space + w
			continue
		}
		if len(cur) > 0 {
			flush()
		}
		for w > limit {
			head, tail := f.splitWord(word, limit)
			lines = append(lines, head)
			word = tail
			w = f.textWidth(word)
		}
		if word != "" {
			cur = append(cur, word)
			curWidth = w
		}
	}
	if len(cur) > 0 {
		flush()
	}
	return lines
}

// splitWord returns the longest prefix of word which fits into limit, and
// the remainder.  The prefix contains at least one character.
func (f *face) splitWord(word string, limit float64) (string, string) {
	width := 0.0
	for i, r := range word {
		width += f.runeWidth(r)
		if width > limit && i > 0 {
			return word[:i], word[i:]
		}
	}
	return word, ""
}

func (f *face) textWidth(s string) float64 {
	w := 0.0
	for _, r := range s {
		w += f.runeWidth(r)
	}
	return w
}
