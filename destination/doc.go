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

// Package destination implements PDF destinations as delivered by the
// content decoder.
//
// A destination defines a particular view of a document, consisting of:
//   - The page of the document to display
//   - The location of the document window on that page
//   - The magnification (zoom) factor
//
// # Explicit Destinations
//
// Eight explicit destination types are supported, corresponding to the
// syntax defined in Table 149 of PDF 32000-1:2008:
//
//   - XYZ: Position at coordinates with zoom
//   - Fit: Fit entire page in window
//   - FitH: Fit width, position at top coordinate
//   - FitV: Fit height, position at left coordinate
//   - FitR: Fit rectangle in window
//   - FitB: Fit bounding box in window
//   - FitBH: Fit bounding box width
//   - FitBV: Fit bounding box height
//
// The target page is either a [PageRef], referring to a page object of the
// current document, or a [PageNumber] as used by remote go-to actions.
//
// # Named Destinations
//
// Named destinations provide indirection: instead of embedding the full
// destination, a name is used that references a destination stored in the
// document's name tree.
//
// # Generic representation
//
// [Decode] converts the generic value representation used by event traces
// into destinations.  The representation mirrors the PDF array syntax:
//
//	["10 0 R", "XYZ", 72, 720, null]
//	"Chapter6"
package destination
