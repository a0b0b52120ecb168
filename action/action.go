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

// Package action implements the link actions understood by the page-model
// builder.
//
// Upstream actions are translated into a closed set of Go types at the
// boundary: [*GoTo], [*GoToR], [*URI] and [*Launch] are resolved into link
// targets, all other action kinds are represented by [*Unknown] and are
// skipped.
package action

import (
	"seehuhn.de/go/pdfmodel/destination"
)

// Action is a PDF action attached to a link annotation or outline item.
type Action interface {
	ActionType() Type
}

// Type identifies the kind of an action.
type Type string

// Action types defined in section 12.6.4 of PDF 32000-1:2008.
const (
	TypeGoTo             Type = "GoTo"
	TypeGoToR            Type = "GoToR"
	TypeGoToE            Type = "GoToE"
	TypeLaunch           Type = "Launch"
	TypeThread           Type = "Thread"
	TypeURI              Type = "URI"
	TypeSound            Type = "Sound"
	TypeMovie            Type = "Movie"
	TypeHide             Type = "Hide"
	TypeNamed            Type = "Named"
	TypeSubmitForm       Type = "SubmitForm"
	TypeResetForm        Type = "ResetForm"
	TypeImportData       Type = "ImportData"
	TypeSetOCGState      Type = "SetOCGState"
	TypeRendition        Type = "Rendition"
	TypeTrans            Type = "Trans"
	TypeGoTo3DView       Type = "GoTo3DView"
	TypeJavaScript       Type = "JavaScript"
	TypeRichMediaExecute Type = "RichMediaExecute"
)

// NewWindowMode specifies how a target document should be displayed.
type NewWindowMode uint8

const (
	// NewWindowDefault indicates the viewer should use its preference.
	NewWindowDefault NewWindowMode = 0
	// NewWindowReplace indicates the target should replace the current window.
	NewWindowReplace NewWindowMode = 1
	// NewWindowNew indicates the target should open in a new window.
	NewWindowNew NewWindowMode = 2
)

// GoTo represents a go-to action, which jumps to a destination within the
// current document.
type GoTo struct {
	Dest destination.Destination
}

// ActionType returns "GoTo".
// This implements the [Action] interface.
func (a *GoTo) ActionType() Type { return TypeGoTo }

// GoToR represents a remote go-to action, which jumps to a destination in
// another PDF file.
type GoToR struct {
	File      string
	Dest      destination.Destination
	NewWindow NewWindowMode
}

// ActionType returns "GoToR".
// This implements the [Action] interface.
func (a *GoToR) ActionType() Type { return TypeGoToR }

// URI represents a URI action that resolves a uniform resource identifier.
type URI struct {
	// URI is the uniform resource identifier to resolve.
	URI string

	// IsMap indicates whether the URI is a map area.
	IsMap bool
}

// ActionType returns "URI".
// This implements the [Action] interface.
func (a *URI) ActionType() Type { return TypeURI }

// Launch represents a launch action, which opens a file.
type Launch struct {
	File      string
	NewWindow NewWindowMode
}

// ActionType returns "Launch".
// This implements the [Action] interface.
func (a *Launch) ActionType() Type { return TypeLaunch }

// Unknown is an action of a kind which is not resolved into a link target.
type Unknown struct {
	Kind Type
}

// ActionType returns the kind of the action.
// This implements the [Action] interface.
func (a *Unknown) ActionType() Type { return a.Kind }

// IsResolvable reports whether actions of the given type can be turned into
// link targets.
func IsResolvable(tp Type) bool {
	switch tp {
	case TypeGoTo, TypeGoToR, TypeURI, TypeLaunch:
		return true
	default:
		return false
	}
}
