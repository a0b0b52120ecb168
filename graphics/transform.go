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
	"errors"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrSingular is returned when inverting a matrix which has no inverse.
var ErrSingular = errors.New("singular matrix")

// PageMatrix returns the initial CTM for a page.
//
// The matrix maps PDF user space, where y increases upwards, to device
// space, where the origin is the top-left corner of the displayed page and
// y increases downwards.  Rotation is the /Rotate value of the page in
// degrees; it is rounded to a multiple of 90.
func PageMatrix(box rect.Rect, rotation int) matrix.Matrix {
	switch normalizeRotation(rotation) {
	case 90:
		return matrix.Matrix{0, 1, 1, 0, -box.LLy, -box.LLx}
	case 180:
		return matrix.Matrix{-1, 0, 0, 1, box.URx, -box.LLy}
	case 270:
		return matrix.Matrix{0, -1, -1, 0, box.URy, box.URx}
	default:
		return matrix.Matrix{1, 0, 0, -1, -box.LLx, box.URy}
	}
}

// PageSize returns the width and height of the displayed page.
func PageSize(box rect.Rect, rotation int) (width, height float64) {
	w := math.Abs(box.URx - box.LLx)
	h := math.Abs(box.URy - box.LLy)
	switch normalizeRotation(rotation) {
	case 90, 270:
		return h, w
	default:
		return w, h
	}
}

func normalizeRotation(rotation int) int {
	r := rotation % 360
	if r < 0 {
		r += 360
	}
	return (r + 45) / 90 * 90 % 360
}

// Concat returns the CTM after concatenating m to ctm.
// The resulting matrix first applies m, then the previous CTM.
func Concat(ctm, m matrix.Matrix) matrix.Matrix {
	return m.Mul(ctm)
}

// Invert returns the inverse of m.
// If m is (numerically) singular, [ErrSingular] is returned.
func Invert(m matrix.Matrix) (matrix.Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Matrix{}, ErrSingular
	}
	return m.Inv(), nil
}

// ToDevice maps the point (x, y) using the matrix m.
func ToDevice(m matrix.Matrix, x, y float64) vec.Vec2 {
	x, y = m.Apply(x, y)
	return vec.Vec2{X: x, Y: y}
}

// Linear applies only the linear part of m to the vector (x, y).
func Linear(m matrix.Matrix, x, y float64) vec.Vec2 {
	return vec.Vec2{
		X: x*m[0] + y*m[2],
		Y: x*m[1] + y*m[3],
	}
}

// LinearScale returns the factor by which m scales areas, expressed as a
// length scale.
func LinearScale(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// BBox returns the smallest device space rectangle which contains the
// image of r under m.
func BBox(m matrix.Matrix, r rect.Rect) rect.Rect {
	x, y := m.Apply(r.LLx, r.LLy)
	res := rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
	res.Add(m.Apply(r.URx, r.LLy))
	res.Add(m.Apply(r.URx, r.URy))
	res.Add(m.Apply(r.LLx, r.URy))
	return res
}

// CornerBox maps the corners (x1, y1) and (x2, y2) independently and
// returns the rectangle spanned by the images.
//
// The result satisfies LLx <= URx and LLy <= URy, whichever diagonal the
// corners describe.
func CornerBox(m matrix.Matrix, x1, y1, x2, y2 float64) rect.Rect {
	x, y := m.Apply(x1, y1)
	res := rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
	res.Add(m.Apply(x2, y2))
	return res
}
