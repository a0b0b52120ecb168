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

// Package nametree implements the document-wide name tree used to resolve
// named destinations.
//
// Name trees serve a similar purpose to dictionaries, associating keys and
// values, but using string keys that are ordered lexicographically.  The
// decoder may deliver the tree either as a flat map or in the node
// structure used inside PDF files, with "Kids" arrays for intermediate
// nodes and "Names" arrays of alternating keys and values for leaves.
// [Extract] flattens the latter into an [InMemory] tree.
package nametree
