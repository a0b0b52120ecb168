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

package annotation

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfmodel/action"
	"seehuhn.de/go/pdfmodel/destination"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/event"
	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/model"
	"seehuhn.de/go/pdfmodel/nametree"
)

func newTestResolver() (*Resolver, *diag.Tracker) {
	pages := NewPages([]event.PageInfo{
		{Ref: destination.PageRef{Num: 10}, Height: 792},
		{Ref: destination.PageRef{Num: 12}, Height: 500},
	})
	names := &nametree.InMemory{
		Data: map[string]destination.Destination{
			"chap1": &destination.XYZ{
				Page: destination.PageRef{Num: 12},
				Left: 0,
				Top:  400,
			},
			"loop":  &destination.Named{Name: "chap1"},
			"other": &destination.Fit{Page: destination.PageRef{Num: 99}},
		},
	}
	tr := diag.NewTracker()
	return NewResolver(pages, names, tr), tr
}

func TestGoTo(t *testing.T) {
	r, tr := newTestResolver()
	nan := math.NaN()

	cases := []struct {
		dest destination.Destination
		want *model.PageTarget
	}{
		{ // explicit destination
			dest: &destination.FitH{Page: destination.PageRef{Num: 10}, Top: 700},
			want: &model.PageTarget{
				Page:   0,
				Status: model.Resolved,
				View:   &model.View{Fit: "FitH", Left: nan, Top: 92, Zoom: nan},
			},
		},
		{ // named destination
			dest: &destination.Named{Name: "chap1"},
			want: &model.PageTarget{
				Page:   1,
				Name:   "chap1",
				Status: model.Resolved,
				View:   &model.View{Fit: "XYZ", Left: 0, Top: 100, Zoom: nan},
			},
		},
		{ // page number
			dest: &destination.Fit{Page: destination.PageNumber(4)},
			want: &model.PageTarget{
				Page:   4,
				Status: model.Resolved,
				View:   &model.View{Fit: "Fit", Left: nan, Top: nan, Zoom: nan},
			},
		},
		{ // neither
			dest: nil,
			want: &model.PageTarget{Page: -1, Status: model.NoDestination},
		},
		{
			dest: &destination.Named{Name: "missing"},
			want: &model.PageTarget{Page: -1, Name: "missing", Status: model.UnresolvedNamed},
		},
		{
			dest: &destination.Named{Name: "loop"},
			want: &model.PageTarget{Page: -1, Name: "loop", Status: model.UnresolvedNamed},
		},
		{
			dest: &destination.Named{Name: "other"},
			want: &model.PageTarget{Page: -1, Name: "other", Status: model.UnresolvedNamed},
		},
	}
	for i, c := range cases {
		got := r.Target(&action.GoTo{Dest: c.dest})
		if d := cmp.Diff(c.want, got, cmpopts.EquateNaNs()); d != "" {
			t.Errorf("%d: (-want +got):\n%s", i, d)
		}
	}

	if n := tr.Count(diag.UnresolvedReference); n != 4 {
		t.Errorf("got %d unresolved references, want 4", n)
	}
	if tr.Status() != diag.StatusWarnings {
		t.Errorf("status = %s", tr.Status())
	}
}

func TestOtherActions(t *testing.T) {
	r, tr := newTestResolver()

	cases := []struct {
		act  action.Action
		want model.LinkTarget
	}{
		{
			act:  &action.GoToR{File: "other.pdf", Dest: &destination.FitB{Page: destination.PageNumber(3)}},
			want: &model.RemoteTarget{File: "other.pdf", Page: 3, View: &model.View{Fit: "FitB", Left: math.NaN(), Top: math.NaN(), Zoom: math.NaN()}},
		},
		{
			act:  &action.GoToR{File: "other.pdf", Dest: &destination.Named{Name: "x"}},
			want: &model.RemoteTarget{File: "other.pdf", Page: -1},
		},
		{
			act:  &action.URI{URI: "https://example.com/"},
			want: &model.URITarget{URI: "https://example.com/"},
		},
		{
			act:  &action.Launch{File: "notes.txt"},
			want: &model.LaunchTarget{File: "notes.txt"},
		},
		{
			act:  &action.Unknown{Kind: action.TypeJavaScript},
			want: nil,
		},
		{
			act:  nil,
			want: nil,
		},
	}
	for i, c := range cases {
		got := r.Target(c.act)
		if d := cmp.Diff(c.want, got, cmpopts.EquateNaNs()); d != "" {
			t.Errorf("%d: (-want +got):\n%s", i, d)
		}
	}
	if tr.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", tr.Diagnostics())
	}
}

func TestLink(t *testing.T) {
	r, _ := newTestResolver()
	base := graphics.PageMatrix(rect.Rect{URx: 100, URy: 100}, 0)

	link := r.Link(&event.Link{
		Rect:   [4]float64{10, 20, 30, 5},
		Effect: model.EffectPush,
		Action: &action.URI{URI: "https://example.com/"},
	}, base)
	if link == nil {
		t.Fatal("link skipped")
	}
	want := rect.Rect{LLx: 10, LLy: 80, URx: 30, URy: 95}
	if link.BBox != want {
		t.Errorf("bbox = %v, want %v", link.BBox, want)
	}
	if link.Effect != model.EffectPush {
		t.Errorf("effect = %s", link.Effect)
	}

	skipped := r.Link(&event.Link{Action: &action.Unknown{Kind: action.TypeSound}}, base)
	if skipped != nil {
		t.Errorf("got %+v for unknown action", skipped)
	}
}

func TestLinkWithoutAction(t *testing.T) {
	r, tr := newTestResolver()
	base := graphics.PageMatrix(rect.Rect{URx: 100, URy: 100}, 0)

	if link := r.Link(&event.Link{Rect: [4]float64{0, 0, 10, 10}}, base); link != nil {
		t.Errorf("got %+v for link without action", link)
	}
	if n := tr.Count(diag.Internal); n != 1 {
		t.Errorf("got %d internal errors, want 1", n)
	}
	if lvl, _ := tr.Worst(); lvl != diag.Error {
		t.Errorf("worst level = %s, want %s", lvl, diag.Error)
	}
}

func TestPages(t *testing.T) {
	var nilPages *Pages
	if _, ok := nilPages.PageIndex(destination.PageRef{Num: 1}); ok {
		t.Error("nil page table resolved a reference")
	}

	p := NewPages([]event.PageInfo{
		{Ref: destination.PageRef{Num: 3}, Height: 10},
		{Ref: destination.PageRef{Num: 3}, Height: 20},
	})
	if idx, ok := p.PageIndex(destination.PageRef{Num: 3}); !ok || idx != 0 {
		t.Errorf("got %d, %t", idx, ok)
	}
	if h, ok := p.PageHeight(1); !ok || h != 20 {
		t.Errorf("got %g, %t", h, ok)
	}
	if _, ok := p.PageHeight(2); ok {
		t.Error("height of missing page")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d", p.Len())
	}
}
