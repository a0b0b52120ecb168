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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/model"
)

func newTestStack() (*Stack, *diag.Tracker) {
	tr := diag.NewTracker()
	page := rect.Rect{URx: 100, URy: 200}
	s := NewStack(NewState(PageMatrix(page, 0), model.ClipTo(page)), tr)
	return s, tr
}

func TestBalancedSaveRestore(t *testing.T) {
	s, tr := newTestStack()
	s.Save()
	s.UpdateFillColor(model.RGB{R: 255})
	s.Save()
	s.UpdateTransform(matrix.Scale(2, 2))
	s.Restore()
	s.Restore()

	if d := s.Depth(); d != 1 {
		t.Errorf("Depth() = %d, want 1", d)
	}
	if c := s.Top().FillColor; c != model.Black {
		t.Errorf("fill colour not restored: %v", c)
	}
	if tr.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", tr.Diagnostics())
	}
}

func TestUnmatchedRestore(t *testing.T) {
	s, tr := newTestStack()
	s.UpdateStrokeColor(model.RGB{B: 255})
	before := s.Top().Clone()

	s.Restore()

	if d := s.Depth(); d != 1 {
		t.Errorf("Depth() = %d, want 1", d)
	}
	if d := cmp.Diff(before, *s.Top()); d != "" {
		t.Errorf("top frame changed (-before +after):\n%s", d)
	}
	if n := tr.Count(diag.ProtocolViolation); n != 1 {
		t.Errorf("got %d protocol violations, want 1", n)
	}
}

func TestUpdatesAffectTopOnly(t *testing.T) {
	s, _ := newTestStack()
	s.Save()
	s.UpdateLineAttrs(LineAttrs{
		Width: 3,
		Dash:  []float64{1, 2},
		Set:   StateLineWidth | StateDash,
	})
	s.UpdateFont("F1", 12)
	s.UpdateBlendMode("")

	top := s.Top()
	if top.LineWidth != 3 || top.MiterLimit != 10 {
		t.Errorf("got width %g miter %g", top.LineWidth, top.MiterLimit)
	}
	if top.BlendMode != model.BlendNormal {
		t.Errorf("got blend mode %q", top.BlendMode)
	}
	if top.Set&(StateLineWidth|StateDash|StateFont) != StateLineWidth|StateDash|StateFont {
		t.Errorf("Set = %b", top.Set)
	}

	top.DashPattern[0] = 7
	s.Restore()
	if s.Top().LineWidth != 1 || s.Top().DashPattern != nil || s.Top().Font != "" {
		t.Error("outer frame was modified")
	}
}

func TestIntersectClip(t *testing.T) {
	s, _ := newTestStack()
	s.Save()
	s.IntersectClip(model.ClipTo(rect.Rect{LLx: 50, LLy: -10, URx: 150, URy: 20}))

	want := model.ClipTo(rect.Rect{LLx: 50, LLy: 0, URx: 100, URy: 20})
	if d := cmp.Diff(want, s.Clip()); d != "" {
		t.Error(d)
	}

	s.IntersectClip(model.ClipTo(rect.Rect{LLx: 0, LLy: 100, URx: 10, URy: 110}))
	if !s.Clip().IsEmpty() {
		t.Errorf("disjoint clip is not empty: %v", s.Clip())
	}

	s.Restore()
	if d := cmp.Diff(model.ClipTo(rect.Rect{URx: 100, URy: 200}), s.Clip()); d != "" {
		t.Error(d)
	}
}

func TestStrokeScale(t *testing.T) {
	st := NewState(matrix.Scale(2, 2), model.NoClip)
	st.LineWidth = 1.5
	st.DashPattern = []float64{3}
	got := st.Stroke()
	if got.Width != 3 || got.Dash[0] != 6 {
		t.Errorf("got width %g dash %v", got.Width, got.Dash)
	}
}
