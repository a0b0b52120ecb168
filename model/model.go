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

// Package model contains the structured representation of a PDF document
// produced by the page-model builder.
//
// All coordinates stored in the model are in device space: the origin is at
// the top-left corner of the page and y increases downwards.  Consumers of
// the model never need to apply a transformation matrix.
package model

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfmodel/diag"
)

// Document is the finalized model of a complete document.
type Document struct {
	Meta    Metadata
	Pages   []*Page
	Outline []*OutlineEntry

	Diagnostics []diag.Diagnostic
	Status      diag.Status
}

// Page is the model of a single page.
//
// Objects is an append-only log: objects are added in content stream order
// and never modified after they have been appended.
type Page struct {
	// Number is the zero-based page index within the document.
	Number int

	Width, Height float64
	Rotation      int

	// CropBox is the crop box of the page, in device space.
	CropBox rect.Rect

	Objects []Object
	Links   []*AnnotationLink

	// Images holds the image resources used on the page, keyed by
	// reference id.  Inline images are not included.
	Images map[int]*ImageData
}

// Bounds returns the page area in device space.
func (p *Page) Bounds() rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: p.Width, URy: p.Height}
}

// Object is one drawing object on a page.
// This is implemented by [*PathObject], [*ImageObject], [*TextRun] and
// [*Group].
type Object interface {
	isObject()
}

func (*PathObject) isObject()  {}
func (*ImageObject) isObject() {}
func (*TextRun) isObject()     {}
func (*Group) isObject()       {}

// Group is a transparency group.  The objects drawn while the group was
// open are collected in Objects.
type Group struct {
	BBox     rect.Rect
	Isolated bool
	Knockout bool

	// ForSoftMask is set for groups which define the shape of a soft mask.
	// Such groups are attached to the graphics state and are not part of
	// the page's object list.
	ForSoftMask bool

	Clip    Clip
	Objects []Object
}

// SoftMask is a soft mask attached to the graphics state.
type SoftMask struct {
	// Alpha selects an alpha mask.  Otherwise the mask is a luminosity mask.
	Alpha    bool
	Backdrop RGB
	Group    *Group
}

// BlendMode is the name of a PDF blend mode.
type BlendMode string

// BlendNormal is the default blend mode.
const BlendNormal BlendMode = "Normal"
