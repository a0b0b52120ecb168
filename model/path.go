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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// FillRule selects how the inside of a path is determined.
type FillRule uint8

// Possible values for FillRule.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "even-odd"
	}
	return "nonzero"
}

// SegmentKind distinguishes straight and curved path segments.
type SegmentKind uint8

// Possible values for SegmentKind.
const (
	Line SegmentKind = iota
	Curve
)

// Segment is one piece of a subpath.
//
// For a straight line, only Pts[0] is used and gives the end point.
// For a cubic Bézier curve, Pts[0] and Pts[1] are the control points and
// Pts[2] is the end point.
type Segment struct {
	Kind SegmentKind
	Pts  [3]vec.Vec2
}

// End returns the end point of the segment.
func (s Segment) End() vec.Vec2 {
	if s.Kind == Curve {
		return s.Pts[2]
	}
	return s.Pts[0]
}

// Subpath is a connected sequence of segments.
type Subpath struct {
	Start    vec.Vec2
	Segments []Segment
	Closed   bool
}

// NumPoints returns the number of on-curve points of the subpath,
// including the start point.
func (s *Subpath) NumPoints() int {
	return 1 + len(s.Segments)
}

// Points returns the on-curve points of the subpath.
func (s *Subpath) Points() []vec.Vec2 {
	res := make([]vec.Vec2, 0, s.NumPoints())
	res = append(res, s.Start)
	for _, seg := range s.Segments {
		res = append(res, seg.End())
	}
	return res
}

// Stroke describes how the outline of a path is painted.
type Stroke struct {
	Color      RGB
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	Phase      float64
}

// PathObject is a painted or clipping path.
type PathObject struct {
	Subpaths []Subpath
	Rule     FillRule

	// Fill is the fill colour, or nil if the path is not filled.
	Fill *RGB

	// Stroke is set if the path is stroked.
	Stroke *Stroke

	// IsClip is set for paths which only modify the clipping region.
	IsClip bool

	Clip        Clip
	FillAlpha   float64
	StrokeAlpha float64
	BlendMode   BlendMode
	SoftMask    *SoftMask
}

// BBox returns the bounding box of all points of the path, including
// curve control points.
func (p *PathObject) BBox() rect.Rect {
	first := true
	var bbox rect.Rect
	add := func(v vec.Vec2) {
		if first {
			bbox = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
			first = false
			return
		}
		bbox.LLx = min(bbox.LLx, v.X)
		bbox.LLy = min(bbox.LLy, v.Y)
		bbox.URx = max(bbox.URx, v.X)
		bbox.URy = max(bbox.URy, v.Y)
	}
	for i := range p.Subpaths {
		sp := &p.Subpaths[i]
		add(sp.Start)
		for _, seg := range sp.Segments {
			n := 1
			if seg.Kind == Curve {
				n = 3
			}
			for _, v := range seg.Pts[:n] {
				add(v)
			}
		}
	}
	return bbox
}
