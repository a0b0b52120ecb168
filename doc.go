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

// Package pdfmodel builds structured page models from the events of a PDF
// content decoder.
//
// The decoder delivers document-level events (catalog, metadata, outline
// items) followed by the events of each page in content stream order.  A
// [Document] consumes these events and produces a [model.Document], in
// which all coordinates are given in device space:
//
//	ctx := config.NewContext(config.DefaultOptions(), nil)
//	doc := pdfmodel.New(ctx)
//	for _, ev := range events {
//	    doc.Handle(ev)
//	}
//	m, err := doc.Close()
//
// Problems found in the input do not stop the conversion.  They are
// collected in the diagnostic log of the context, and the worst level
// reported determines [model.Document.Status].
package pdfmodel
