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
	"math"

	"seehuhn.de/go/geom/rect"
)

// Clip describes the clipping region active when an object was drawn.
//
// The region is approximated by a device space rectangle.  If Unbounded is
// set, no clipping is in effect and Rect is ignored.
type Clip struct {
	Rect      rect.Rect
	Unbounded bool
}

// NoClip is the clip region which does not restrict drawing.
var NoClip = Clip{Unbounded: true}

// ClipTo returns a clip region consisting of the given rectangle.
func ClipTo(r rect.Rect) Clip {
	return Clip{Rect: r}
}

// IsEmpty reports whether the clip region excludes everything.
func (c Clip) IsEmpty() bool {
	if c.Unbounded {
		return false
	}
	return !(c.Rect.URx > c.Rect.LLx && c.Rect.URy > c.Rect.LLy)
}

// Intersect returns the intersection of the clip region with r.
// An empty intersection is represented by a degenerate rectangle.
func (c Clip) Intersect(r rect.Rect) Clip {
	if c.Unbounded {
		return Clip{Rect: r}
	}
	res := rect.Rect{
		LLx: math.Max(c.Rect.LLx, r.LLx),
		LLy: math.Max(c.Rect.LLy, r.LLy),
		URx: math.Min(c.Rect.URx, r.URx),
		URy: math.Min(c.Rect.URy, r.URy),
	}
	if res.URx < res.LLx {
		res.URx = res.LLx
	}
	if res.URy < res.LLy {
		res.URy = res.LLy
	}
	return Clip{Rect: res}
}

// RGB is a colour with 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

// Some frequently used colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// LineCap is the shape used at the end of open stroked subpaths.
type LineCap uint8

// Possible values for LineCap.
const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape used at the corners of stroked paths.
type LineJoin uint8

// Possible values for LineJoin.
const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)
