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

package pdfmodel

import (
	"bytes"
	"errors"
	"iter"

	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfmodel/annotation"
	"seehuhn.de/go/pdfmodel/builder"
	"seehuhn.de/go/pdfmodel/config"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/event"
	"seehuhn.de/go/pdfmodel/model"
	"seehuhn.de/go/pdfmodel/nametree"
	"seehuhn.de/go/pdfmodel/outline"
)

const moduleName = "document"

// ErrClosed is returned when a closed document is closed again.
var ErrClosed = errors.New("document already closed")

// Document collects the events of one PDF document.
type Document struct {
	ctx      *config.Context
	resolver *annotation.Resolver
	outline  *outline.Builder
	numPages int

	meta  model.Metadata
	pages []*model.Page

	current  *builder.Page
	skipping bool
	closed   bool
}

// New returns a document which uses the given run context.
func New(ctx *config.Context) *Document {
	return &Document{
		ctx:      ctx,
		resolver: annotation.NewResolver(nil, nil, ctx.Diag),
	}
}

// Handle processes one event.
func (d *Document) Handle(ev event.Event) {
	if d.closed {
		return
	}

	switch ev := ev.(type) {
	case nil:
		d.ctx.Diag.Log(diag.Internal, diag.Error, moduleName, "nil event")

	case *event.Catalog:
		pages := annotation.NewPages(ev.Pages)
		var names nametree.Tree
		if len(ev.NamedDests) > 0 {
			names = &nametree.InMemory{Data: ev.NamedDests}
		}
		d.resolver = annotation.NewResolver(pages, names, d.ctx.Diag)
		d.numPages = pages.Len()

	case *event.Metadata:
		d.setMetadata(ev)

	case *event.Diagnostic:
		d.ctx.Diag.Log(ev.Category, ev.Level, "decoder", ev.Message)

	case *event.OutlineItem:
		if d.ctx.Options.OmitOutline {
			return
		}
		if d.outline == nil {
			d.outline = outline.NewBuilder(d.ctx.Diag, d.ctx.Options.MaxOutlineDepth)
		}
		d.outline.Add(ev)

	case *event.StartPage:
		if d.current != nil {
			d.ctx.Diag.Log(diag.ProtocolViolation, diag.Warning, moduleName,
				"page started inside another page")
			d.finishPage()
		}
		if !d.ctx.Options.Wants(ev.Number) {
			d.skipping = true
			return
		}
		d.skipping = false
		d.current = builder.NewPage(d.ctx, ev, d.resolver)

	case *event.EndPage:
		if d.skipping {
			d.skipping = false
			return
		}
		if d.current == nil {
			d.ctx.Diag.Log(diag.ProtocolViolation, diag.Warning, moduleName,
				"end of page without start")
			return
		}
		d.finishPage()

	default:
		switch {
		case d.current != nil:
			d.current.Handle(ev)
		case !d.skipping:
			d.ctx.Diag.Log(diag.ProtocolViolation, diag.Warning, moduleName,
				"page content outside of a page")
		}
	}
}

func (d *Document) finishPage() {
	d.pages = append(d.pages, d.current.Finish())
	d.current = nil
}

func (d *Document) setMetadata(ev *event.Metadata) {
	d.meta.NumPages = ev.NumPages
	d.meta.Version = ev.Version
	if len(ev.XMP) == 0 {
		return
	}

	packet, err := xmp.Read(bytes.NewReader(ev.XMP))
	if err != nil {
		d.ctx.Diag.Logf(diag.SyntaxWarning, diag.Warning, "metadata",
			"malformed XMP packet ignored: %v", err)
		return
	}
	dc := &xmp.DublinCore{}
	packet.Get(dc)
	d.meta.XMP = packet
	d.meta.DublinCore = dc
}

// Close finalizes the document and returns its model.
//
// If the outline exceeded the configured depth, the model with the
// truncated outline is returned together with an [*outline.DepthError].
func (d *Document) Close() (*model.Document, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.current != nil {
		d.ctx.Diag.Log(diag.ProtocolViolation, diag.Warning, moduleName,
			"document ends inside a page")
		d.finishPage()
	}
	d.closed = true

	res := &model.Document{
		Meta:  d.meta,
		Pages: d.pages,
	}
	if res.Meta.NumPages == 0 {
		res.Meta.NumPages = d.numPages
	}

	var err error
	if d.outline != nil {
		res.Outline, err = d.outline.Finish(d.resolver)
	}

	res.Diagnostics = d.ctx.Diag.Diagnostics()
	res.Status = d.ctx.Diag.Status()
	return res, err
}

// Convert feeds all events of a sequence into a new document and returns
// the document model.  Conversion stops at the first error of the
// sequence.
func Convert(ctx *config.Context, events iter.Seq2[event.Event, error]) (*model.Document, error) {
	doc := New(ctx)
	for ev, err := range events {
		if err != nil {
			return nil, err
		}
		doc.Handle(ev)
	}
	return doc.Close()
}
