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

// Package outline builds the document outline tree from a pre-order
// traversal of outline items.
package outline

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/pdfmodel/annotation"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/event"
	"seehuhn.de/go/pdfmodel/model"
)

const moduleName = "outline"

// ErrTooDeep is wrapped by [DepthError].
var ErrTooDeep = errors.New("outline too deep")

// DepthError is returned when the outline is nested more deeply than
// allowed.  The first item which exceeded the limit is recorded in Title.
type DepthError struct {
	Limit int
	Title string
}

func (err *DepthError) Error() string {
	return fmt.Sprintf("outline item %q exceeds nesting limit %d", err.Title, err.Limit)
}

func (err *DepthError) Unwrap() error {
	return ErrTooDeep
}

// Builder assembles the outline tree.
//
// Items arrive in pre-order.  The builder keeps an explicit stack of open
// levels, so the nesting depth of the input does not affect the Go stack.
// Targets are resolved when the outline is finished, so that the page
// table and name tree may arrive after the outline items.
type Builder struct {
	diag     *diag.Tracker
	maxDepth int

	root    []*model.OutlineEntry
	stack   []level
	pending []pending
	started bool
	closed  bool
	err     error
}

// pending is an entry whose target is not yet resolved.
type pending struct {
	entry *model.OutlineEntry
	item  *event.OutlineItem
}

// level is one open list of siblings.
type level struct {
	entries *[]*model.OutlineEntry

	// more is set while another item is expected in this list.
	more bool
}

// NewBuilder returns a new builder.  Levels beyond maxDepth are discarded.
func NewBuilder(d *diag.Tracker, maxDepth int) *Builder {
	b := &Builder{
		diag:     d,
		maxDepth: maxDepth,
	}
	b.stack = []level{{entries: &b.root, more: true}}
	return b
}

// Add appends the next item of the traversal.
func (b *Builder) Add(item *event.OutlineItem) {
	if b.closed {
		b.diag.Log(diag.ProtocolViolation, diag.Warning, moduleName,
			"outline item after end of outline")
		return
	}
	b.started = true

	depth := len(b.stack)
	top := &b.stack[depth-1]
	top.more = item.HasNext

	entry := &model.OutlineEntry{
		Title: norm.NFC.String(item.Title),
		Page:  -1,
	}
	if depth <= b.maxDepth {
		*top.entries = append(*top.entries, entry)
		if item.Action != nil || item.Destination != nil {
			b.pending = append(b.pending, pending{entry: entry, item: item})
		}
	} else if b.err == nil {
		b.err = &DepthError{Limit: b.maxDepth, Title: entry.Title}
		b.diag.Logf(diag.OutlineDepthExceeded, diag.Critical, moduleName,
			"outline nested more than %d levels deep, truncated", b.maxDepth)
	}

	if item.HasChildren {
		b.stack = append(b.stack, level{entries: &entry.Children, more: true})
		return
	}
	for len(b.stack) > 0 && !b.stack[len(b.stack)-1].more {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if len(b.stack) == 0 {
		b.closed = true
	}
}

func resolve(r *annotation.Resolver, e *model.OutlineEntry, item *event.OutlineItem) {
	var target model.LinkTarget
	switch {
	case item.Action != nil:
		target = r.Target(item.Action)
	case item.Destination != nil:
		target = r.Local(item.Destination)
	}
	e.Link = target
	if pt, ok := target.(*model.PageTarget); ok {
		e.Page = pt.Page
		e.Dest = pt.Name
	}
}

// Finish resolves the targets of all entries using r and returns the
// top-level entries of the outline.  If r is nil, only targets outside
// the document can be resolved.
//
// If the outline exceeded the depth limit, the truncated tree is returned
// together with a [*DepthError].
func (b *Builder) Finish(r *annotation.Resolver) ([]*model.OutlineEntry, error) {
	if b.started && !b.closed {
		b.diag.Log(diag.ProtocolViolation, diag.Warning, moduleName,
			"outline ends with open levels")
	}
	b.closed = true

	if r == nil {
		r = annotation.NewResolver(nil, nil, b.diag)
	}
	for _, p := range b.pending {
		resolve(r, p.entry, p.item)
	}
	b.pending = nil
	return b.root, b.err
}
