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

package trace

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfmodel/action"
	"seehuhn.de/go/pdfmodel/destination"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/event"
	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/model"
)

const testTrace = `
# a small document
{"op": "catalog", "pages": [{"ref": "3 0 R", "height": 842}], "names": {"Names": ["intro", ["3 0 R", "Fit"]]}}
{"op": "metadata", "pages": 1, "version": "1.7"}
{"op": "outline", "title": "Intro", "dest": "intro"}
{"op": "start_page", "page": 0, "mediaBox": [0, 0, 595, 842]}
{"op": "save"}
{"op": "cm", "matrix": [1, 0, 0, 1, 10, 20]}
{"op": "color", "space": "DeviceGray", "values": [0.5]}
{"op": "line", "width": 2, "cap": 1}
{"op": "move_to", "x": 1, "y": 2}
{"op": "line_to", "x": 3, "y": 4}
{"op": "fill", "evenOdd": true}
{"op": "restore"}
{"op": "glyph", "matrix": [10, 0, 0, 10, 5, 5], "advance": 0.5, "text": "A", "gid": 36}
{"op": "image", "image": {"ref": 7, "width": 1, "height": 1, "samples": "/w=="}}
{"op": "image_mask", "mask": {"width": 1, "height": 1, "samples": "AA=="}, "inverted": true}
{"op": "link", "rect": [0, 0, 10, 10], "effect": "push", "action": {"S": "URI", "URI": "https://example.com/"}}
{"op": "diagnostic", "category": "page_data", "level": "warning", "msg": "odd"}
{"op": "end_page"}
`

func TestDecode(t *testing.T) {
	d := NewDecoder(strings.NewReader(testTrace))

	var got []event.Event
	for ev, err := range d.All() {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, ev)
	}

	want := []event.Event{
		&event.Catalog{
			Pages: []event.PageInfo{{Ref: destination.PageRef{Num: 3}, Height: 842}},
			NamedDests: map[string]destination.Destination{
				"intro": &destination.Fit{Page: destination.PageRef{Num: 3}},
			},
		},
		&event.Metadata{NumPages: 1, Version: "1.7"},
		&event.OutlineItem{Title: "Intro", Destination: &destination.Named{Name: "intro"}},
		&event.StartPage{
			MediaBox: rect.Rect{URx: 595, URy: 842},
			CropBox:  rect.Rect{URx: 595, URy: 842},
		},
		&event.Save{},
		&event.UpdateTransform{Matrix: [6]float64{1, 0, 0, 1, 10, 20}},
		&event.UpdateColor{Space: graphics.DeviceGray, Values: []float64{0.5}},
		&event.UpdateLineAttrs{Attrs: graphics.LineAttrs{
			Width: 2,
			Cap:   model.CapRound,
			Set:   graphics.StateLineWidth | graphics.StateLineCap,
		}},
		&event.MoveTo{X: 1, Y: 2},
		&event.LineTo{X: 3, Y: 4},
		&event.FillPath{EvenOdd: true},
		&event.Restore{},
		&event.DrawGlyph{
			Matrix:  [6]float64{10, 0, 0, 10, 5, 5},
			Advance: 0.5,
			Text:    []rune("A"),
			GID:     36,
		},
		&event.DrawImage{Image: event.Image{
			Ref: 7, Width: 1, Height: 1, Components: 1, Samples: []byte{0xFF},
		}},
		&event.DrawImageMask{
			Mask: event.Image{
				Ref: model.InlineImageRef, Width: 1, Height: 1, Components: 1, Samples: []byte{0},
			},
			Inverted: true,
		},
		&event.Link{
			Rect:   [4]float64{0, 0, 10, 10},
			Effect: model.EffectPush,
			Action: &action.URI{URI: "https://example.com/"},
		},
		&event.Diagnostic{Category: diag.PageData, Level: diag.Warning, Message: "odd"},
		&event.EndPage{},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("events (-want +got):\n%s", d)
	}
}

func TestLinkDest(t *testing.T) {
	d := NewDecoder(strings.NewReader(`{"op": "link", "rect": [0, 0, 1, 1], "dest": "chapter1"}`))
	ev, err := d.Next()
	if err != nil {
		t.Fatal(err)
	}
	want := &event.Link{
		Rect:   [4]float64{0, 0, 1, 1},
		Action: &action.GoTo{Dest: &destination.Named{Name: "chapter1"}},
	}
	if d := cmp.Diff(want, ev); d != "" {
		t.Error(d)
	}
	if _, err := d.Next(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestLinkWithoutTarget(t *testing.T) {
	d := NewDecoder(strings.NewReader(`{"op": "link", "rect": [0, 0, 1, 1]}`))
	ev, err := d.Next()
	if err != nil {
		t.Fatal(err)
	}
	want := &event.Link{
		Rect:   [4]float64{0, 0, 1, 1},
		Action: &action.Unknown{},
	}
	if d := cmp.Diff(want, ev); d != "" {
		t.Error(d)
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		in   string
		line int
	}{
		{"{\"op\": \"save\"}\n{", 2},
		{"{\"op\": \"jump\"}", 1},
		{"\n\n{\"op\": \"color\", \"space\": \"Lab\", \"values\": [1, 2, 3]}", 3},
		{"{\"op\": \"catalog\", \"pages\": [{\"ref\": \"three\"}]}", 1},
		{"{\"op\": \"diagnostic\", \"category\": \"nonsense\", \"level\": \"error\"}", 1},
	}
	for _, c := range cases {
		d := NewDecoder(strings.NewReader(c.in))
		var err error
		for _, e := range d.All() {
			if e != nil {
				err = e
			}
		}
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Errorf("%q: got %v, want *SyntaxError", c.in, err)
			continue
		}
		if synErr.Line != c.line {
			t.Errorf("%q: error on line %d, want %d", c.in, synErr.Line, c.line)
		}
	}
}

func TestUnknownOp(t *testing.T) {
	_, err := NewDecoder(strings.NewReader(`{"op": "jump"}`)).Next()
	if !errors.Is(err, errUnknownOp) {
		t.Errorf("got %v, want errUnknownOp", err)
	}
}
