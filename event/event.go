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

// Package event defines the closed set of events delivered by the content
// decoder to the page-model builder.
//
// Events for a page arrive in content stream order, enclosed by
// [StartPage] and [EndPage].  Coordinates are given in PDF user space of the
// content stream, exactly as the decoder sees them; the builder maps them to
// device space.
package event

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfmodel/action"
	"seehuhn.de/go/pdfmodel/destination"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/model"
)

// Event is one decoder callback.
//
// The set of implementations is closed; consumers use a type switch with
// a default arm for events they do not handle.
type Event interface {
	isEvent()
}

// Document-level events.
type (
	// Catalog describes the page tree and the global name tree of the
	// document.  It is delivered once, before the first page.
	Catalog struct {
		Pages      []PageInfo
		NamedDests map[string]destination.Destination
	}

	// Metadata carries document information.
	Metadata struct {
		NumPages int
		Version  string

		// XMP is the raw XMP packet, or nil.
		XMP []byte
	}

	// OutlineItem is one entry in a pre-order traversal of the document
	// outline.  HasChildren indicates that the following items, up to the
	// matching end of the child list, are children of this item.  HasNext
	// indicates that a sibling follows the item (after its children).
	OutlineItem struct {
		Title       string
		Destination destination.Destination
		Action      action.Action
		HasChildren bool
		HasNext     bool
	}

	// Diagnostic is a message from the decoder.
	Diagnostic struct {
		Category diag.Category
		Level    diag.Level
		Message  string
	}
)

// PageInfo describes one page in the page tree.
type PageInfo struct {
	Ref    destination.PageRef
	Height float64
}

// Page structure events.
type (
	// StartPage begins a page.  Number is the zero-based page index.
	StartPage struct {
		Number   int
		MediaBox rect.Rect
		CropBox  rect.Rect
		Rotation int
	}

	// EndPage ends the current page.
	EndPage struct{}
)

// Graphics state events.
type (
	Save    struct{}
	Restore struct{}

	// UpdateTransform concatenates Matrix to the current transformation
	// matrix, as the "cm" operator does.
	UpdateTransform struct {
		Matrix matrix.Matrix
	}

	// UpdateColor sets the fill or stroke colour.
	UpdateColor struct {
		Stroke bool
		Space  graphics.ColorSpace
		Values []float64
	}

	// UpdateAlpha sets the constant fill or stroke alpha.
	UpdateAlpha struct {
		Stroke bool
		Alpha  float64
	}

	UpdateBlendMode struct {
		Mode model.BlendMode
	}

	// UpdateLineAttrs changes the line drawing parameters selected in
	// Attrs.Set.
	UpdateLineAttrs struct {
		Attrs graphics.LineAttrs
	}

	UpdateOverprint struct {
		Fill, Stroke bool
		Mode         int
	}

	UpdateFont struct {
		Font string
		Size float64
	}

	UpdateRenderMode struct {
		Mode int
	}
)

// Path construction and painting events.
type (
	MoveTo struct{ X, Y float64 }
	LineTo struct{ X, Y float64 }

	CurveTo struct {
		X1, Y1, X2, Y2, X3, Y3 float64
	}

	ClosePath struct{}

	// Rectangle appends a closed rectangular subpath.
	Rectangle struct {
		X, Y, Width, Height float64
	}

	FillPath struct {
		EvenOdd bool
	}

	StrokePath struct{}

	// FillStrokePath fills and then strokes the current path.
	FillStrokePath struct {
		EvenOdd bool
	}

	// ClipPath intersects the clipping region with the current path.
	ClipPath struct {
		EvenOdd bool
	}

	// EndPath discards the current path without painting it.
	EndPath struct{}
)

// Compositing events.
type (
	BeginTransparencyGroup struct {
		BBox        rect.Rect
		Isolated    bool
		Knockout    bool
		ForSoftMask bool
	}

	EndTransparencyGroup struct{}

	// SetSoftMask installs the most recently completed soft mask group as
	// the soft mask of the current graphics state.
	SetSoftMask struct {
		Alpha         bool
		BackdropSpace graphics.ColorSpace
		Backdrop      []float64
	}

	ClearSoftMask struct{}
)

// Image events.
type (
	// DrawImage draws an image into the unit square of user space.
	DrawImage struct {
		Image Image

		// Mask is an optional stencil mask.  If MaskInverted is set,
		// the mask samples are inverted before use.
		Mask         *Image
		MaskInverted bool

		// SoftMask is an optional alpha channel.
		SoftMask *Image
	}

	// DrawImageMask paints the fill colour through a stencil mask.
	DrawImageMask struct {
		Mask     Image
		Inverted bool
	}
)

// Image holds decoded image samples.
//
// Samples use one byte per component.  Rows are stored top to bottom in
// image space.  Stencil masks have one component with values 0x00 (paint)
// and 0xFF (mask out).
type Image struct {
	// Ref is the reference id of the image XObject, or
	// [model.InlineImageRef] for inline images.
	Ref        int
	Width      int
	Height     int
	Components int
	Samples    []byte
}

// Text events.
type (
	// DrawGlyph places one glyph.
	DrawGlyph struct {
		// Matrix maps glyph space, scaled to the font size, to user space.
		// Its translation part is the glyph origin.
		Matrix matrix.Matrix

		// Advance is the advance width, in the units of Matrix.
		Advance float64

		Text []rune
		GID  glyph.ID
	}

	BeginActualText struct {
		Text string
	}

	EndActualText struct{}
)

// Marked content events.
type (
	BeginMarkedContent struct {
		Tag string
	}

	EndMarkedContent struct{}

	MarkPoint struct {
		Tag string
	}
)

// Link is a link annotation on the current page.
// Rect holds the corners (x1, y1, x2, y2) in default user space.
// Action is never nil.  A /Dest entry is given as a GoTo action, and a
// link without either is given as an [action.Unknown] action.
type Link struct {
	Rect   [4]float64
	Effect model.LinkEffect
	Action action.Action
}

func (*Catalog) isEvent()     {}
func (*Metadata) isEvent()    {}
func (*OutlineItem) isEvent() {}
func (*Diagnostic) isEvent()  {}

func (*StartPage) isEvent() {}
func (*EndPage) isEvent()   {}

func (*Save) isEvent()             {}
func (*Restore) isEvent()          {}
func (*UpdateTransform) isEvent()  {}
func (*UpdateColor) isEvent()      {}
func (*UpdateAlpha) isEvent()      {}
func (*UpdateBlendMode) isEvent()  {}
func (*UpdateLineAttrs) isEvent()  {}
func (*UpdateOverprint) isEvent()  {}
func (*UpdateFont) isEvent()       {}
func (*UpdateRenderMode) isEvent() {}

func (*MoveTo) isEvent()         {}
func (*LineTo) isEvent()         {}
func (*CurveTo) isEvent()        {}
func (*ClosePath) isEvent()      {}
func (*Rectangle) isEvent()      {}
func (*FillPath) isEvent()       {}
func (*StrokePath) isEvent()     {}
func (*FillStrokePath) isEvent() {}
func (*ClipPath) isEvent()       {}
func (*EndPath) isEvent()        {}

func (*BeginTransparencyGroup) isEvent() {}
func (*EndTransparencyGroup) isEvent()   {}
func (*SetSoftMask) isEvent()            {}
func (*ClearSoftMask) isEvent()          {}

func (*DrawImage) isEvent()     {}
func (*DrawImageMask) isEvent() {}

func (*DrawGlyph) isEvent()       {}
func (*BeginActualText) isEvent() {}
func (*EndActualText) isEvent()   {}

func (*BeginMarkedContent) isEvent() {}
func (*EndMarkedContent) isEvent()   {}
func (*MarkPoint) isEvent()          {}

func (*Link) isEvent() {}
