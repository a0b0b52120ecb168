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
	"seehuhn.de/go/xmp"
)

// OutlineEntry is one entry of the document outline.
type OutlineEntry struct {
	Title string

	// Page is the zero-based target page, or -1 if unresolved.
	Page int

	// Dest is the named destination of the entry, if any.
	Dest string

	Link     LinkTarget
	Children []*OutlineEntry
}

// Metadata holds document-level information.
type Metadata struct {
	NumPages int
	Version  string

	// XMP is the document's XMP metadata packet, or nil.
	XMP *xmp.Packet

	// DublinCore holds the Dublin Core properties from the XMP packet.
	// This is nil if no packet was present.
	DublinCore *xmp.DublinCore
}
