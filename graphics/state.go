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

package graphics

import (
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfmodel/model"
)

// State collects all graphics parameters tracked while building a page.
type State struct {
	// CTM is the "current transformation matrix", which maps positions from
	// user coordinates to device coordinates.
	CTM matrix.Matrix

	// Clip is the current clipping region, in device space.
	Clip model.Clip

	StrokeColor model.RGB
	FillColor   model.RGB
	StrokeAlpha float64
	FillAlpha   float64
	BlendMode   model.BlendMode
	SoftMask    *model.SoftMask

	LineWidth   float64
	LineCap     model.LineCap
	LineJoin    model.LineJoin
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64

	OverprintStroke bool
	OverprintFill   bool
	OverprintMode   int

	Font       string
	FontSize   float64
	RenderMode int

	// Set records which fields were explicitly changed since the page
	// started.
	Set StateBits
}

// StateBits is a bit mask for the fields of the State struct.
type StateBits uint32

// Possible values for StateBits.
const (
	StateCTM StateBits = 1 << iota
	StateClip
	StateStrokeColor
	StateFillColor
	StateStrokeAlpha
	StateFillAlpha
	StateBlendMode
	StateSoftMask
	StateLineWidth
	StateLineCap
	StateLineJoin
	StateMiterLimit
	StateDash // pattern and phase
	StateOverprint
	StateFont // includes size
	StateRenderMode
)

// RenderInvisible is the text render mode which neither fills nor strokes
// glyphs.
const RenderInvisible = 3

// NewState returns the graphics state at the start of a page.
func NewState(ctm matrix.Matrix, clip model.Clip) State {
	return State{
		CTM:         ctm,
		Clip:        clip,
		StrokeColor: model.Black,
		FillColor:   model.Black,
		StrokeAlpha: 1,
		FillAlpha:   1,
		BlendMode:   model.BlendNormal,
		LineWidth:   1,
		LineCap:     model.CapButt,
		LineJoin:    model.JoinMiter,
		MiterLimit:  10,
	}
}

// Clone returns a copy of the state which shares no mutable data with s.
func (s *State) Clone() State {
	res := *s
	res.DashPattern = slices.Clone(s.DashPattern)
	return res
}

// Stroke returns the stroke parameters implied by the state.
// The line width is converted to device space using the CTM.
func (s *State) Stroke() *model.Stroke {
	scale := LinearScale(s.CTM)
	var dash []float64
	if len(s.DashPattern) > 0 {
		dash = make([]float64, len(s.DashPattern))
		for i, d := range s.DashPattern {
			dash[i] = d * scale
		}
	}
	return &model.Stroke{
		Color:      s.StrokeColor,
		Width:      s.LineWidth * scale,
		Cap:        s.LineCap,
		Join:       s.LineJoin,
		MiterLimit: s.MiterLimit,
		Dash:       dash,
		Phase:      s.DashPhase * scale,
	}
}
