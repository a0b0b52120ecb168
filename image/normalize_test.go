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

package image

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfmodel/model"
)

// a 3x2 gray image:
//
//	1 2 3
//	4 5 6
var gray3x2 = []byte{1, 2, 3, 4, 5, 6}

func TestIdentityUnchanged(t *testing.T) {
	in := []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}
	for i, comp := range []int{1, 3, 4} {
		t.Run(fmt.Sprintf("comp%d", comp), func(t *testing.T) {
			w := len(in) / comp
			res, err := Normalize(in, w, 1, comp, matrix.Identity, false, false)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(in, res.Samples); d != "" {
				t.Errorf("%d: samples changed: %s", i, d)
			}
			if res.Transform != model.XformNone || res.Width != w || res.Height != 1 {
				t.Errorf("got %dx%d, %s", res.Width, res.Height, res.Transform)
			}

			// normalizing twice gives the same result
			res2, err := Normalize(res.Samples, res.Width, res.Height, comp, matrix.Identity, false, false)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(res.Samples, res2.Samples); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestScaleIgnored(t *testing.T) {
	res, err := Normalize(gray3x2, 3, 2, 1, matrix.Matrix{200, 0, 0, 50, 17, 3}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(gray3x2, res.Samples); d != "" {
		t.Error(d)
	}
}

func TestFlips(t *testing.T) {
	cases := []struct {
		orient matrix.Matrix
		want   []byte
		xform  model.ImageXform
	}{
		{matrix.Matrix{-1, 0, 0, 1, 0, 0}, []byte{3, 2, 1, 6, 5, 4}, model.FlipH},
		{matrix.Matrix{1, 0, 0, -1, 0, 0}, []byte{4, 5, 6, 1, 2, 3}, model.FlipV},
		{matrix.Matrix{-2, 0, 0, -3, 0, 0}, []byte{6, 5, 4, 3, 2, 1}, model.FlipH | model.FlipV},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("mat%d", i), func(t *testing.T) {
			res, err := Normalize(gray3x2, 3, 2, 1, c.orient, false, false)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(c.want, res.Samples); d != "" {
				t.Error(d)
			}
			if res.Transform != c.xform {
				t.Errorf("got %s, want %s", res.Transform, c.xform)
			}
		})
	}
}

func TestFlipRGB(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6}
	res, err := Normalize(in, 2, 1, 3, matrix.Matrix{-1, 0, 0, 1, 0, 0}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{4, 5, 6, 1, 2, 3}, res.Samples); d != "" {
		t.Error(d)
	}
}

func TestQuarterTurn(t *testing.T) {
	// x follows v, y follows u
	res, err := Normalize(gray3x2, 3, 2, 1, matrix.Matrix{0, 1, 1, 0, 0, 0}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 2 || res.Height != 3 {
		t.Fatalf("got %dx%d, want 2x3", res.Width, res.Height)
	}
	want := []byte{
		1, 4,
		2, 5,
		3, 6,
	}
	if d := cmp.Diff(want, res.Samples); d != "" {
		t.Error(d)
	}
	if res.Transform != model.RotOrth {
		t.Errorf("got %s", res.Transform)
	}

	// a clockwise quarter turn: x runs against v
	res, err = Normalize(gray3x2, 3, 2, 1, matrix.Matrix{0, 1, -1, 0, 0, 0}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	want = []byte{
		4, 1,
		5, 2,
		6, 3,
	}
	if d := cmp.Diff(want, res.Samples); d != "" {
		t.Error(d)
	}
	if res.Transform != model.RotOrth|model.FlipH {
		t.Errorf("got %s", res.Transform)
	}
}

func TestArbitraryRotation(t *testing.T) {
	const w, h = 8, 4
	in := make([]byte, w*h)
	for i := range in {
		in[i] = 200
	}
	phi := math.Pi / 6
	orient := matrix.Matrix{math.Cos(phi), math.Sin(phi), -math.Sin(phi), math.Cos(phi), 0, 0}
	res, err := Normalize(in, w, h, 1, orient, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Transform != model.RotArb {
		t.Errorf("got %s", res.Transform)
	}
	wantW := int(math.Ceil(w*math.Cos(phi) + h*math.Sin(phi) - eps))
	wantH := int(math.Ceil(w*math.Sin(phi) + h*math.Cos(phi) - eps))
	if res.Width != wantW || res.Height != wantH {
		t.Errorf("got %dx%d, want %dx%d", res.Width, res.Height, wantW, wantH)
	}
	if len(res.Samples) != res.Width*res.Height {
		t.Errorf("got %d samples for %dx%d", len(res.Samples), res.Width, res.Height)
	}
}

func TestArbitraryRotationRGB(t *testing.T) {
	in := make([]byte, 5*5*3)
	res, err := Normalize(in, 5, 5, 3, matrix.Matrix{1, 1, -1, 1, 0, 0}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Samples) != 3*res.Width*res.Height {
		t.Errorf("got %d samples for %dx%d", len(res.Samples), res.Width, res.Height)
	}
}

func TestMaskInversion(t *testing.T) {
	in := []byte{0, 255, 255, 0}
	res, err := Normalize(in, 2, 2, 1, matrix.Identity, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{255, 0, 0, 255}, res.Samples); d != "" {
		t.Error(d)
	}
	if in[0] != 0 {
		t.Error("input was modified")
	}

	res, err = Normalize(in, 2, 2, 1, matrix.Identity, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, res.Samples); d != "" {
		t.Error(d)
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		samples []byte
		w, h, c int
		orient  matrix.Matrix
		isMask  bool
		want    error
	}{
		{gray3x2, 3, 3, 1, matrix.Identity, false, ErrSampleCount},
		{gray3x2[:5], 3, 2, 1, matrix.Identity, false, ErrSampleCount},
		{gray3x2, 0, 2, 1, matrix.Identity, false, ErrDimensions},
		{gray3x2, 3, -2, 1, matrix.Identity, false, ErrDimensions},
		{gray3x2, 3, 1, 2, matrix.Identity, false, ErrComponents},
		{gray3x2, 1, 2, 3, matrix.Identity, true, ErrMaskComponents},
		{gray3x2, 3, 2, 1, matrix.Matrix{}, false, ErrOrientation},
		{gray3x2, 3, 2, 1, matrix.Matrix{1, 1, 1, 1, 0, 0}, false, ErrOrientation},
	}
	for i, c := range cases {
		_, err := Normalize(c.samples, c.w, c.h, c.c, c.orient, c.isMask, false)
		var te *TransformError
		if !errors.As(err, &te) {
			t.Errorf("%d: got %v, want TransformError", i, err)
			continue
		}
		if !errors.Is(err, c.want) {
			t.Errorf("%d: got %v, want %v", i, err, c.want)
		}
	}
}
