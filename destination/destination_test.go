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

package destination

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var decodeCases = []struct {
	Name string
	In   any
	Want Destination
}{
	{"XYZ", []any{"10 0 R", "XYZ", 100.0, 200.0, 1.5},
		&XYZ{Page: PageRef{Num: 10}, Left: 100, Top: 200, Zoom: 1.5}},
	{"XYZ with Unset", []any{"10 0 R", "XYZ", nil, nil, nil},
		&XYZ{Page: PageRef{Num: 10}, Left: Unset, Top: Unset, Zoom: Unset}},
	{"Fit", []any{"10 0 R", "Fit"}, &Fit{Page: PageRef{Num: 10}}},
	{"FitH", []any{"10 0 R", "FitH", 500.0}, &FitH{Page: PageRef{Num: 10}, Top: 500}},
	{"FitV", []any{"10 2 R", "FitV", 100.0}, &FitV{Page: PageRef{Num: 10, Gen: 2}, Left: 100}},
	{"FitR", []any{"10 0 R", "FitR", 100.0, 200.0, 400.0, 500.0},
		&FitR{Page: PageRef{Num: 10}, Left: 100, Bottom: 200, Right: 400, Top: 500}},
	{"FitB", []any{3.0, "FitB"}, &FitB{Page: PageNumber(3)}},
	{"FitBH", []any{"10 0 R", "FitBH", 600.0}, &FitBH{Page: PageRef{Num: 10}, Top: 600}},
	{"FitBV", []any{"10 0 R", "FitBV", 50.0}, &FitBV{Page: PageRef{Num: 10}, Left: 50}},
	{"Named", "Chapter6", &Named{Name: "Chapter6"}},
}

func TestDecode(t *testing.T) {
	for _, tc := range decodeCases {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := Decode(tc.In)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.Want, got, cmpopts.EquateNaNs()); diff != "" {
				t.Errorf("decode failed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var obj any
	err := json.Unmarshal([]byte(`["4 0 R", "XYZ", 72, null, 0]`), &obj)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Decode(obj)
	if err != nil {
		t.Fatal(err)
	}
	want := &XYZ{Page: PageRef{Num: 4}, Left: 72, Top: Unset, Zoom: 0}
	if diff := cmp.Diff(want, d, cmpopts.EquateNaNs()); diff != "" {
		t.Error(diff)
	}

	left, top, zoom := Location(d)
	if left != 72 || !math.IsNaN(top) || !math.IsNaN(zoom) {
		t.Errorf("Location = %g %g %g", left, top, zoom)
	}
}

func TestDecodeFitRSwapped(t *testing.T) {
	d, err := Decode([]any{float64(1), "FitR", 400.0, 500.0, 100.0, nil})
	if err != nil {
		t.Fatal(err)
	}
	want := &FitR{Page: PageNumber(1), Left: 100, Bottom: 0, Right: 400, Top: 500}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Error(diff)
	}
}

func TestDecodeMalformed(t *testing.T) {
	bad := []any{
		"",
		[]any{"4 0 R"},
		[]any{"4 0 X", "Fit"},
		[]any{-1.0, "Fit"},
		[]any{1.5, "Fit"},
		[]any{"4 0 R", "Zoom"},
		[]any{"4 0 R", 7.0},
		[]any{"4 0 R", "FitH", "top"},
		42.0,
	}
	for i, obj := range bad {
		_, err := Decode(obj)
		var e *MalformedError
		if !errors.As(err, &e) {
			t.Errorf("%d: got %v, want MalformedError", i, err)
		}
	}
}

func TestPageOf(t *testing.T) {
	if PageOf(&Named{Name: "x"}) != nil {
		t.Error("named destination has a page")
	}
	if PageOf(nil) != nil {
		t.Error("nil destination has a page")
	}
	if p := PageOf(&FitBV{Page: PageNumber(2)}); p != PageNumber(2) {
		t.Errorf("got %v", p)
	}
}

func FuzzDecode(f *testing.F) {
	for _, tc := range decodeCases {
		data, err := json.Marshal(tc.In)
		if err != nil {
			continue
		}
		f.Add(string(data))
	}

	f.Fuzz(func(t *testing.T, s string) {
		var obj any
		if json.Unmarshal([]byte(s), &obj) != nil {
			t.Skip("invalid JSON")
		}
		d, err := Decode(obj)
		if err != nil || d == nil {
			t.Skip("not a destination")
		}
		if _, ok := d.(*Named); !ok && PageOf(d) == nil {
			t.Errorf("explicit destination %#v without page", d)
		}
		if r, ok := d.(*FitR); ok && (r.Left > r.Right || r.Bottom > r.Top) {
			t.Errorf("FitR not normalized: %#v", r)
		}
	})
}
