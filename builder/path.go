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

package builder

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/model"
)

// PathBuilder accumulates the current path of a page.
//
// Points are recorded in user space.  The path is mapped to device space
// when it is painted, using the CTM in effect at that moment.
type PathBuilder struct {
	subpaths []model.Subpath

	current     vec.Vec2
	start       vec.Vec2
	hasCurrent  bool
	openSubpath bool
	sealed      bool
}

// MoveTo starts a new subpath at (x, y).
func (pb *PathBuilder) MoveTo(x, y float64) {
	pb.unseal()
	pt := vec.Vec2{X: x, Y: y}
	pb.subpaths = append(pb.subpaths, model.Subpath{Start: pt})
	pb.current = pt
	pb.start = pt
	pb.hasCurrent = true
	pb.openSubpath = true
}

// LineTo appends a straight line to (x, y).
// Without a current point, this acts like MoveTo.
func (pb *PathBuilder) LineTo(x, y float64) {
	pb.unseal()
	if !pb.hasCurrent {
		pb.MoveTo(x, y)
		return
	}
	pt := vec.Vec2{X: x, Y: y}
	pb.appendSegment(model.Segment{Kind: model.Line, Pts: [3]vec.Vec2{pt}})
	pb.current = pt
}

// CurveTo appends a cubic Bézier curve with control points (x1, y1) and
// (x2, y2), ending at (x3, y3).
func (pb *PathBuilder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	pb.unseal()
	if !pb.hasCurrent {
		pb.MoveTo(x1, y1)
	}
	end := vec.Vec2{X: x3, Y: y3}
	pb.appendSegment(model.Segment{
		Kind: model.Curve,
		Pts:  [3]vec.Vec2{{X: x1, Y: y1}, {X: x2, Y: y2}, end},
	})
	pb.current = end
}

// ClosePath closes the current subpath.  Other subpaths are not affected.
func (pb *PathBuilder) ClosePath() {
	if pb.sealed || !pb.hasCurrent || !pb.openSubpath {
		return
	}
	pb.subpaths[len(pb.subpaths)-1].Closed = true
	pb.current = pb.start
	pb.openSubpath = false
}

// Rectangle appends a closed rectangular subpath.
func (pb *PathBuilder) Rectangle(x, y, width, height float64) {
	pb.MoveTo(x, y)
	pb.LineTo(x+width, y)
	pb.LineTo(x+width, y+height)
	pb.LineTo(x, y+height)
	pb.ClosePath()
}

// appendSegment adds a segment to the current subpath.  After ClosePath,
// a new subpath is started at the start point of the closed one.
func (pb *PathBuilder) appendSegment(seg model.Segment) {
	if !pb.openSubpath {
		pb.subpaths = append(pb.subpaths, model.Subpath{Start: pb.current})
		pb.start = pb.current
		pb.openSubpath = true
	}
	sp := &pb.subpaths[len(pb.subpaths)-1]
	sp.Segments = append(sp.Segments, seg)
}

// Seal marks the path as used by a clipping operation.  The path stays
// available for the following painting operator, but new construction
// starts a fresh path.
func (pb *PathBuilder) Seal() {
	pb.sealed = true
}

func (pb *PathBuilder) unseal() {
	if pb.sealed {
		pb.Reset()
	}
}

// Reset discards the current path.
func (pb *PathBuilder) Reset() {
	pb.subpaths = nil
	pb.hasCurrent = false
	pb.openSubpath = false
	pb.sealed = false
}

// IsEmpty reports whether no subpath has been started.
func (pb *PathBuilder) IsEmpty() bool {
	return len(pb.subpaths) == 0
}

// Build returns the subpaths mapped to device space by ctm.
// Subpaths with fewer than two points are omitted.
func (pb *PathBuilder) Build(ctm matrix.Matrix) []model.Subpath {
	var res []model.Subpath
	for _, sp := range pb.subpaths {
		if sp.NumPoints() < 2 {
			continue
		}
		out := model.Subpath{
			Start:    graphics.ToDevice(ctm, sp.Start.X, sp.Start.Y),
			Segments: make([]model.Segment, len(sp.Segments)),
			Closed:   sp.Closed,
		}
		for i, seg := range sp.Segments {
			n := 1
			if seg.Kind == model.Curve {
				n = 3
			}
			out.Segments[i].Kind = seg.Kind
			for j := 0; j < n; j++ {
				out.Segments[i].Pts[j] = graphics.ToDevice(ctm, seg.Pts[j].X, seg.Pts[j].Y)
			}
		}
		res = append(res, out)
	}
	return res
}
