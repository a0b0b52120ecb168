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
	"math"
)

// Destination represents a PDF destination that specifies a particular
// view of a document.
type Destination interface {
	DestinationType() Type
}

// Type identifies the type of destination.
type Type string

// These are the supported destination types.
const (
	TypeXYZ   Type = "XYZ"
	TypeFit   Type = "Fit"
	TypeFitH  Type = "FitH"
	TypeFitV  Type = "FitV"
	TypeFitR  Type = "FitR"
	TypeFitB  Type = "FitB"
	TypeFitBH Type = "FitBH"
	TypeFitBV Type = "FitBV"
	TypeNamed Type = "Named"
)

// Target specifies the destination page.
// This is either a [PageRef] or a [PageNumber].
type Target interface {
	isTarget()
}

// PageRef is an indirect reference to a page object.
type PageRef struct {
	Num uint32
	Gen uint16
}

// PageNumber is a zero-based page number.  Page numbers are used in
// destinations which point into other documents.
type PageNumber int

func (PageRef) isTarget()    {}
func (PageNumber) isTarget() {}

// Unset is a sentinel value for coordinates that should retain their current
// value.  Use math.IsNaN() to test for this value.
var Unset = math.NaN()

// XYZ displays the page with coordinates (Left, Top) positioned at the
// upper-left corner of the window and contents magnified by Zoom factor.
// Use Unset (or any NaN value) for parameters that should retain their
// current value.  A Zoom of 0 has the same meaning as Unset.
type XYZ struct {
	Page            Target
	Left, Top, Zoom float64
}

// Fit displays the entire page.
type Fit struct {
	Page Target
}

// FitH fits the width of the page, with Top at the top edge of the window.
type FitH struct {
	Page Target
	Top  float64
}

// FitV fits the height of the page, with Left at the left edge of the window.
type FitV struct {
	Page Target
	Left float64
}

// FitR fits the given rectangle into the window.
type FitR struct {
	Page                     Target
	Left, Bottom, Right, Top float64
}

// FitB fits the bounding box of the page contents into the window.
type FitB struct {
	Page Target
}

// FitBH fits the width of the bounding box of the page contents.
type FitBH struct {
	Page Target
	Top  float64
}

// FitBV fits the height of the bounding box of the page contents.
type FitBV struct {
	Page Target
	Left float64
}

// Named is a destination given by name.
// The name must be looked up in the document's name tree.
type Named struct {
	Name string
}

func (d *XYZ) DestinationType() Type   { return TypeXYZ }
func (d *Fit) DestinationType() Type   { return TypeFit }
func (d *FitH) DestinationType() Type  { return TypeFitH }
func (d *FitV) DestinationType() Type  { return TypeFitV }
func (d *FitR) DestinationType() Type  { return TypeFitR }
func (d *FitB) DestinationType() Type  { return TypeFitB }
func (d *FitBH) DestinationType() Type { return TypeFitBH }
func (d *FitBV) DestinationType() Type { return TypeFitBV }
func (d *Named) DestinationType() Type { return TypeNamed }

// PageOf returns the target page of an explicit destination.
// For named destinations and nil, the result is nil.
func PageOf(d Destination) Target {
	switch d := d.(type) {
	case *XYZ:
		return d.Page
	case *Fit:
		return d.Page
	case *FitH:
		return d.Page
	case *FitV:
		return d.Page
	case *FitR:
		return d.Page
	case *FitB:
		return d.Page
	case *FitBH:
		return d.Page
	case *FitBV:
		return d.Page
	default:
		return nil
	}
}

// Location returns the position and zoom factor of an explicit
// destination, in PDF user space.  Coordinates which are not part of the
// destination type are Unset.
func Location(d Destination) (left, top, zoom float64) {
	left, top, zoom = Unset, Unset, Unset
	switch d := d.(type) {
	case *XYZ:
		left, top = d.Left, d.Top
		if d.Zoom != 0 {
			zoom = d.Zoom
		}
	case *FitH:
		top = d.Top
	case *FitV:
		left = d.Left
	case *FitR:
		left, top = d.Left, d.Top
	case *FitBH:
		top = d.Top
	case *FitBV:
		left = d.Left
	}
	return left, top, zoom
}
