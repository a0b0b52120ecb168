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
	"strings"

	"seehuhn.de/go/geom/rect"
)

// InlineImageRef is the reference id used for inline images, which have no
// reference in the PDF file.
const InlineImageRef = -1

// ImageXform records the transformations applied to the samples of an
// image to bring them into canonical orientation.
type ImageXform uint8

// Flags for ImageXform.
const (
	XformNone ImageXform = 0
	FlipH     ImageXform = 1 << 0
	FlipV     ImageXform = 1 << 1
	RotOrth   ImageXform = 1 << 4
	RotArb    ImageXform = 1 << 5
)

func (x ImageXform) String() string {
	if x == XformNone {
		return "none"
	}
	var parts []string
	names := []struct {
		bit  ImageXform
		name string
	}{
		{FlipH, "flip-h"},
		{FlipV, "flip-v"},
		{RotOrth, "rot-orth"},
		{RotArb, "rot-arb"},
	}
	for _, n := range names {
		if x&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ImageData holds the canonical samples of an image.
//
// Samples use one byte per component, rows are stored top to bottom and
// samples within a row left to right.
type ImageData struct {
	Ref        int
	Width      int
	Height     int
	Components int
	Samples    []byte
	Transform  ImageXform
}

// ImageObject is an image drawn on a page.
type ImageObject struct {
	Ref        int
	Width      int
	Height     int
	Components int

	// IsMask is set for stencil masks, which paint the current fill colour
	// through the mask.
	IsMask bool
	Color  RGB

	BBox      rect.Rect
	Transform ImageXform
	Clip      Clip

	Data     *ImageData
	Mask     *ImageData
	SoftMask *ImageData
}
