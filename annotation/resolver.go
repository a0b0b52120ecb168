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

package annotation

import (
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfmodel/action"
	"seehuhn.de/go/pdfmodel/destination"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/event"
	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/model"
	"seehuhn.de/go/pdfmodel/nametree"
)

const moduleName = "annotation"

// Resolver turns actions and destinations into link targets.
type Resolver struct {
	pages PageTable
	names nametree.Tree
	diag  *diag.Tracker
}

// NewResolver returns a resolver which uses the given page table and name
// tree.  Both may be nil, in which case the corresponding destinations
// cannot be resolved.  Unresolved references are reported to d.
func NewResolver(pages PageTable, names nametree.Tree, d *diag.Tracker) *Resolver {
	return &Resolver{
		pages: pages,
		names: names,
		diag:  d,
	}
}

// Link converts a link annotation event.  The base matrix maps default
// user space of the page to device space.
//
// Links with actions which cannot be resolved into a target are skipped,
// and nil is returned.  A link without an action is reported as an
// internal error.
func (r *Resolver) Link(ev *event.Link, base matrix.Matrix) *model.AnnotationLink {
	if ev.Action == nil {
		r.diag.Log(diag.Internal, diag.Error, moduleName, "link without action")
		return nil
	}
	target := r.Target(ev.Action)
	if target == nil {
		return nil
	}
	return &model.AnnotationLink{
		BBox:   graphics.CornerBox(base, ev.Rect[0], ev.Rect[1], ev.Rect[2], ev.Rect[3]),
		Effect: ev.Effect,
		Target: target,
	}
}

// Target returns the link target for an action.  For nil and for action
// kinds other than GoTo, GoToR, URI and Launch, the result is nil.
func (r *Resolver) Target(act action.Action) model.LinkTarget {
	switch a := act.(type) {
	case *action.GoTo:
		return r.Local(a.Dest)
	case *action.GoToR:
		page := -1
		if n, ok := destination.PageOf(a.Dest).(destination.PageNumber); ok && n >= 0 {
			page = int(n)
		}
		return &model.RemoteTarget{
			File: a.File,
			Page: page,
			View: view(a.Dest, math.NaN()),
		}
	case *action.URI:
		return &model.URITarget{URI: a.URI}
	case *action.Launch:
		return &model.LaunchTarget{File: a.File}
	default:
		return nil
	}
}

// Local resolves a destination within the current document.
//
// Named destinations are looked up in the name tree first.  If no page
// can be found, the result has Page -1 and the status records why.
func (r *Resolver) Local(d destination.Destination) *model.PageTarget {
	res := &model.PageTarget{Page: -1}

	if named, ok := d.(*destination.Named); ok {
		res.Name = named.Name
		d = r.lookup(named.Name)
		if d == nil {
			res.Status = model.UnresolvedNamed
			r.diag.Logf(diag.UnresolvedReference, diag.Warning, moduleName,
				"named destination %q not found", named.Name)
			return res
		}
	}

	if d == nil {
		res.Status = model.NoDestination
		r.diag.Log(diag.UnresolvedReference, diag.Warning, moduleName,
			"link without destination")
		return res
	}

	page, ok := r.pageIndex(destination.PageOf(d))
	if !ok {
		if res.Name != "" {
			res.Status = model.UnresolvedNamed
			r.diag.Logf(diag.UnresolvedReference, diag.Warning, moduleName,
				"named destination %q points to an unknown page", res.Name)
		} else {
			res.Status = model.NoDestination
			r.diag.Log(diag.UnresolvedReference, diag.Warning, moduleName,
				"destination points to an unknown page")
		}
		return res
	}

	height := math.NaN()
	if r.pages != nil {
		if h, ok := r.pages.PageHeight(page); ok {
			height = h
		}
	}
	res.Page = page
	res.Status = model.Resolved
	res.View = view(d, height)
	return res
}

// lookup returns the explicit destination stored under name, or nil.
func (r *Resolver) lookup(name string) destination.Destination {
	if r.names == nil {
		return nil
	}
	d, err := r.names.Lookup(name)
	if err != nil {
		return nil
	}
	if _, isNamed := d.(*destination.Named); isNamed {
		return nil
	}
	return d
}

func (r *Resolver) pageIndex(t destination.Target) (int, bool) {
	switch t := t.(type) {
	case destination.PageRef:
		if r.pages == nil {
			return 0, false
		}
		return r.pages.PageIndex(t)
	case destination.PageNumber:
		return int(t), t >= 0
	default:
		return 0, false
	}
}

// view describes the part of the page shown by an explicit destination.
// If the page height is known, the top coordinate is converted to device
// space.
func view(d destination.Destination, height float64) *model.View {
	if d == nil || d.DestinationType() == destination.TypeNamed {
		return nil
	}
	left, top, zoom := destination.Location(d)
	if !math.IsNaN(top) && !math.IsNaN(height) {
		top = height - top
	}
	return &model.View{
		Fit:  string(d.DestinationType()),
		Left: left,
		Top:  top,
		Zoom: zoom,
	}
}
