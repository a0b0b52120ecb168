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

package builder

import (
	"math"

	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfmodel/config"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/model"
)

const textModule = "text"

// maxFontSize is the largest font size, in device units, for which glyphs
// are kept.  This corresponds to ten inches.
const maxFontSize = 720

// baselineTolerance is the distance from the baseline, in text space
// units, up to which a glyph is considered to lie on the baseline.
const baselineTolerance = 0.01

// GlyphPlacement describes one glyph to be added to a text run.
type GlyphPlacement struct {
	// Matrix maps text space of the glyph to device space.
	Matrix matrix.Matrix

	// Advance is the advance width in device units.
	Advance float64

	Text  []rune
	GID   glyph.ID
	Font  string
	Color model.RGB
	Clip  model.Clip
}

// TextAccumulator merges consecutive glyphs into text runs.
//
// Glyphs are merged while the font, the colour and the linear part of the
// glyph matrix stay the same and the glyph origin lies on the baseline of
// the current run.  Inside an actual text span, all glyphs are collected
// into a single run whose text is the replacement text.  This run is
// passed on at its first glyph, so that it keeps its place among the other
// objects of the page, and is completed when the span closes.
type TextAccumulator struct {
	diag  *diag.Tracker
	fonts config.FontMap
	emit  func(*model.TextRun)

	run    *model.TextRun
	runInv matrix.Matrix
	invOK  bool

	span *actualTextSpan
}

type actualTextSpan struct {
	text string
	run  *model.TextRun
}

// NewTextAccumulator returns a new accumulator.  Runs are passed to emit in
// content order.
func NewTextAccumulator(d *diag.Tracker, fonts config.FontMap, emit func(*model.TextRun)) *TextAccumulator {
	if fonts == nil {
		fonts = config.StaticFontMap(nil)
	}
	return &TextAccumulator{
		diag:  d,
		fonts: fonts,
		emit:  emit,
	}
}

// AddGlyph adds a glyph to the current run, or starts a new run.
func (ta *TextAccumulator) AddGlyph(g GlyphPlacement) {
	size := math.Hypot(g.Matrix[2], g.Matrix[3])
	if size > maxFontSize || math.IsNaN(size) {
		ta.diag.Log(diag.PageData, diag.Warning, textModule,
			"glyph with excessive font size dropped")
		return
	}

	mg := model.Glyph{
		Text:    g.Text,
		Advance: g.Advance,
		GID:     g.GID,
		Origin:  vec.Vec2{X: g.Matrix[4], Y: g.Matrix[5]},
	}

	if ta.span != nil {
		if ta.span.run == nil {
			ta.span.run = ta.newRun(g, size)
			ta.emit(ta.span.run)
		}
		ta.span.run.Glyphs = append(ta.span.run.Glyphs, mg)
		return
	}

	if ta.run != nil && ta.continues(g) {
		ta.run.Glyphs = append(ta.run.Glyphs, mg)
		return
	}

	ta.flush()
	ta.run = ta.newRun(g, size)
	inv, err := graphics.Invert(g.Matrix)
	ta.runInv, ta.invOK = inv, err == nil
}

func (ta *TextAccumulator) newRun(g GlyphPlacement, size float64) *model.TextRun {
	family, _ := ta.fonts.MapFont(g.Font)
	return &model.TextRun{
		Matrix:     g.Matrix,
		Font:       g.Font,
		FontFamily: family,
		FontSize:   size,
		Color:      g.Color,
		Clip:       g.Clip,
	}
}

// continues reports whether g can be appended to the current run.
func (ta *TextAccumulator) continues(g GlyphPlacement) bool {
	r := ta.run
	if !ta.invOK || g.Font != r.Font || g.Color != r.Color || g.Clip != r.Clip {
		return false
	}

	scale := 0.0
	for i := 0; i < 4; i++ {
		scale = max(scale, math.Abs(r.Matrix[i]))
	}
	for i := 0; i < 4; i++ {
		if math.Abs(g.Matrix[i]-r.Matrix[i]) > 1e-6*scale {
			return false
		}
	}

	p := graphics.ToDevice(ta.runInv, g.Matrix[4], g.Matrix[5])
	return math.Abs(p.Y) <= baselineTolerance
}

// BeginActualText opens an actual text span with the given replacement
// text.  If a span is already open, it is closed first.
func (ta *TextAccumulator) BeginActualText(text string) {
	if ta.span != nil {
		ta.diag.Log(diag.ProtocolViolation, diag.Warning, textModule,
			"nested actual text span")
		ta.closeSpan()
	}
	ta.flush()
	ta.span = &actualTextSpan{text: text}
}

// EndActualText closes the current actual text span.  Without an open
// span, this only records a protocol violation.
func (ta *TextAccumulator) EndActualText() {
	if ta.span == nil {
		ta.diag.Log(diag.ProtocolViolation, diag.Warning, textModule,
			"end of actual text span without begin")
		return
	}
	ta.closeSpan()
}

func (ta *TextAccumulator) closeSpan() {
	span := ta.span
	ta.span = nil
	if span.run == nil {
		return
	}
	span.run.ActualText = true
	span.run.Text = norm.NFC.String(span.text)
}

// Flush emits the current run.
func (ta *TextAccumulator) Flush() {
	ta.flush()
}

func (ta *TextAccumulator) flush() {
	r := ta.run
	if r == nil {
		return
	}
	ta.run = nil

	var text []rune
	for _, g := range r.Glyphs {
		text = append(text, g.Text...)
	}
	r.Text = norm.NFC.String(string(text))
	ta.emit(r)
}

// Finish closes an open span and emits the last run.
func (ta *TextAccumulator) Finish() {
	if ta.span != nil {
		ta.diag.Log(diag.ProtocolViolation, diag.Warning, textModule,
			"unterminated actual text span")
		ta.closeSpan()
	}
	ta.flush()
}
