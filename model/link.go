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
)

// LinkEffect is the visual effect of activating a link annotation.
type LinkEffect uint8

// Possible values for LinkEffect.
const (
	EffectNone LinkEffect = iota
	EffectInvert
	EffectOutline
	EffectPush
)

func (e LinkEffect) String() string {
	switch e {
	case EffectInvert:
		return "invert"
	case EffectOutline:
		return "outline"
	case EffectPush:
		return "push"
	default:
		return "none"
	}
}

// AnnotationLink is a link annotation on a page.
type AnnotationLink struct {
	// BBox is the active area in device space.
	BBox   rect.Rect
	Effect LinkEffect
	Target LinkTarget
}

// LinkTarget is the resolved target of a link or outline entry.
// This is implemented by [*PageTarget], [*RemoteTarget], [*URITarget] and
// [*LaunchTarget].
type LinkTarget interface {
	isLinkTarget()
}

func (*PageTarget) isLinkTarget()   {}
func (*RemoteTarget) isLinkTarget() {}
func (*URITarget) isLinkTarget()    {}
func (*LaunchTarget) isLinkTarget() {}

// LinkStatus records how a link target within the document was resolved.
type LinkStatus uint8

// Possible values for LinkStatus.
const (
	// Resolved means that the target page is known.
	Resolved LinkStatus = iota

	// UnresolvedNamed means that a named destination was given, but the
	// name could not be found or did not lead to a page.
	UnresolvedNamed

	// NoDestination means that no usable destination was given.
	NoDestination
)

func (s LinkStatus) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case UnresolvedNamed:
		return "unresolved-named"
	default:
		return "no-destination"
	}
}

// View describes the part of the target page to display.
// Unset coordinates are NaN.
type View struct {
	Fit  string
	Left float64
	Top  float64
	Zoom float64
}

// PageTarget is a location within the current document.
type PageTarget struct {
	// Page is the zero-based target page, or -1 if unresolved.
	Page int

	// Name is the named destination used to find the target, if any.
	Name string

	Status LinkStatus
	View   *View
}

// RemoteTarget is a location within another PDF file.
type RemoteTarget struct {
	File string

	// Page is the zero-based target page, or -1 if not known.
	Page int
	View *View
}

// URITarget is a uniform resource identifier.
type URITarget struct {
	URI string
}

// LaunchTarget is a file to be opened.
type LaunchTarget struct {
	File string
}
