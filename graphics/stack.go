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
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/model"
)

const moduleName = "graphics"

// Stack is the stack of graphics states of one page.
//
// The stack always contains at least the initial frame of the page.
// All updates apply to the top frame only.
type Stack struct {
	frames []State
	diag   *diag.Tracker
}

// NewStack returns a stack holding only the given initial state.
// Protocol violations are reported to d.
func NewStack(initial State, d *diag.Tracker) *Stack {
	return &Stack{
		frames: []State{initial},
		diag:   d,
	}
}

// Depth returns the number of frames on the stack.
// This is 1 if all saves have been matched by restores.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Top returns the current graphics state.
// The returned pointer is valid until the next Save or Restore.
func (s *Stack) Top() *State {
	return &s.frames[len(s.frames)-1]
}

// CTM returns the current transformation matrix.
func (s *Stack) CTM() matrix.Matrix {
	return s.Top().CTM
}

// Clip returns the current clipping region.
func (s *Stack) Clip() model.Clip {
	return s.Top().Clip
}

// Save pushes a copy of the current state.
func (s *Stack) Save() {
	s.frames = append(s.frames, s.Top().Clone())
}

// Restore pops the current state.
//
// Restoring with only the initial frame present leaves the stack unchanged
// and records a protocol violation.
func (s *Stack) Restore() {
	if len(s.frames) <= 1 {
		if s.diag != nil {
			s.diag.Log(diag.ProtocolViolation, diag.Warning, moduleName,
				"restore without matching save")
		}
		return
	}
	s.frames[len(s.frames)-1] = State{}
	s.frames = s.frames[:len(s.frames)-1]
}

// UpdateTransform concatenates m with the current transformation matrix.
// The new matrix is applied before the existing CTM.
func (s *Stack) UpdateTransform(m matrix.Matrix) {
	top := s.Top()
	top.CTM = Concat(top.CTM, m)
	top.Set |= StateCTM
}

// IntersectClip restricts the clipping region to the given device space
// rectangle.
func (s *Stack) IntersectClip(r model.Clip) {
	top := s.Top()
	if r.Unbounded {
		return
	}
	top.Clip = top.Clip.Intersect(r.Rect)
	top.Set |= StateClip
}

// UpdateFillColor sets the fill colour.
func (s *Stack) UpdateFillColor(c model.RGB) {
	top := s.Top()
	top.FillColor = c
	top.Set |= StateFillColor
}

// UpdateStrokeColor sets the stroke colour.
func (s *Stack) UpdateStrokeColor(c model.RGB) {
	top := s.Top()
	top.StrokeColor = c
	top.Set |= StateStrokeColor
}

// UpdateFillAlpha sets the constant alpha for filling operations.
func (s *Stack) UpdateFillAlpha(a float64) {
	top := s.Top()
	top.FillAlpha = clamp01(a)
	top.Set |= StateFillAlpha
}

// UpdateStrokeAlpha sets the constant alpha for stroking operations.
func (s *Stack) UpdateStrokeAlpha(a float64) {
	top := s.Top()
	top.StrokeAlpha = clamp01(a)
	top.Set |= StateStrokeAlpha
}

// UpdateBlendMode sets the blend mode.  An empty name selects
// [model.BlendNormal].
func (s *Stack) UpdateBlendMode(mode model.BlendMode) {
	if mode == "" {
		mode = model.BlendNormal
	}
	top := s.Top()
	top.BlendMode = mode
	top.Set |= StateBlendMode
}

// UpdateSoftMask sets or, if mask is nil, clears the soft mask.
func (s *Stack) UpdateSoftMask(mask *model.SoftMask) {
	top := s.Top()
	top.SoftMask = mask
	top.Set |= StateSoftMask
}

// LineAttrs holds a partial update of the line drawing parameters.
// Only the fields selected in Set are applied.
type LineAttrs struct {
	Width      float64
	Cap        model.LineCap
	Join       model.LineJoin
	MiterLimit float64
	Dash       []float64
	Phase      float64

	Set StateBits
}

// UpdateLineAttrs applies the selected line parameters.
func (s *Stack) UpdateLineAttrs(a LineAttrs) {
	top := s.Top()
	if a.Set&StateLineWidth != 0 {
		top.LineWidth = a.Width
	}
	if a.Set&StateLineCap != 0 {
		top.LineCap = a.Cap
	}
	if a.Set&StateLineJoin != 0 {
		top.LineJoin = a.Join
	}
	if a.Set&StateMiterLimit != 0 {
		top.MiterLimit = a.MiterLimit
	}
	if a.Set&StateDash != 0 {
		top.DashPattern = append([]float64(nil), a.Dash...)
		top.DashPhase = a.Phase
	}
	top.Set |= a.Set & (StateLineWidth | StateLineCap | StateLineJoin | StateMiterLimit | StateDash)
}

// UpdateOverprint sets the overprint flags and mode.
func (s *Stack) UpdateOverprint(fill, stroke bool, mode int) {
	top := s.Top()
	top.OverprintFill = fill
	top.OverprintStroke = stroke
	top.OverprintMode = mode
	top.Set |= StateOverprint
}

// UpdateFont sets the current font and font size.
func (s *Stack) UpdateFont(font string, size float64) {
	top := s.Top()
	top.Font = font
	top.FontSize = size
	top.Set |= StateFont
}

// UpdateRenderMode sets the text render mode.
func (s *Stack) UpdateRenderMode(mode int) {
	top := s.Top()
	top.RenderMode = mode
	top.Set |= StateRenderMode
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
