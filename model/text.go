// seehuhn.de/go/pdfmodel - structured page models from PDF content events
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

package model

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt/glyph"
)

// Glyph is one glyph within a text run.
type Glyph struct {
	// Text is the Unicode text represented by the glyph.  Ligatures may
	// map to more than one rune.
	Text []rune

	// Advance is the advance width in device units.
	Advance float64

	GID    glyph.ID
	Origin vec.Vec2
}

// TextRun is a sequence of glyphs sharing a font and a baseline.
type TextRun struct {
	// Matrix maps glyph space of the first glyph to device space.
	Matrix matrix.Matrix

	Font       string
	FontFamily string
	FontSize   float64
	Color      RGB
	Clip       Clip

	Glyphs []Glyph

	// ActualText is set if the run was produced inside an actual text span.
	// In this case Text is the replacement text, not the glyph text.
	ActualText bool
	Text       string
}
