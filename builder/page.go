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

// Package builder turns the event stream of one page into a page model.
package builder

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfmodel/config"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/event"
	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/image"
	"seehuhn.de/go/pdfmodel/model"
)

const pageModule = "page"

// LinkResolver converts link annotation events into page model links.
// The base matrix maps default user space of the page to device space.
type LinkResolver interface {
	Link(ev *event.Link, base matrix.Matrix) *model.AnnotationLink
}

// Page builds the model of a single page.
type Page struct {
	ctx   *config.Context
	links LinkResolver

	page *model.Page
	base matrix.Matrix
	gs   *graphics.Stack
	path PathBuilder
	text *TextAccumulator

	// clipPending is set between a clipping event and the painting event
	// which completes the path.
	clipPending bool
	clipRule    model.FillRule

	groups      []*model.Group
	pendingMask *model.Group
	marked      []string
}

// NewPage starts a new page.  The resolver may be nil, in which case link
// annotations are ignored.
func NewPage(ctx *config.Context, ev *event.StartPage, links LinkResolver) *Page {
	box := ev.MediaBox
	if ctx.Options.UseCropBox && isProper(ev.CropBox) {
		box = ev.CropBox
	}
	width, height := graphics.PageSize(box, ev.Rotation)
	base := graphics.PageMatrix(box, ev.Rotation)

	mp := &model.Page{
		Number:   ev.Number,
		Width:    width,
		Height:   height,
		Rotation: ev.Rotation,
		Images:   make(map[int]*model.ImageData),
	}
	if isProper(ev.CropBox) {
		mp.CropBox = graphics.BBox(base, ev.CropBox)
	} else {
		mp.CropBox = mp.Bounds()
	}

	p := &Page{
		ctx:   ctx,
		links: links,
		page:  mp,
		base:  base,
		gs:    graphics.NewStack(graphics.NewState(base, model.ClipTo(mp.Bounds())), ctx.Diag),
	}
	p.text = NewTextAccumulator(ctx.Diag, ctx.Fonts, func(run *model.TextRun) {
		p.emit(run)
	})
	return p
}

func isProper(r rect.Rect) bool {
	return r.URx > r.LLx && r.URy > r.LLy
}

// Depth returns the current depth of the graphics state stack.
func (p *Page) Depth() int {
	return p.gs.Depth()
}

// Handle processes one page event.  Events which do not concern the page
// content are ignored.
func (p *Page) Handle(ev event.Event) {
	if p.clipPending && !isPathEvent(ev) {
		p.finishClip()
	}

	switch ev := ev.(type) {
	case nil:
		p.ctx.Diag.Log(diag.Internal, diag.Error, pageModule, "nil event")

	case *event.Save:
		p.gs.Save()
	case *event.Restore:
		p.gs.Restore()
	case *event.UpdateTransform:
		p.gs.UpdateTransform(ev.Matrix)
	case *event.UpdateColor:
		c, err := graphics.ToRGB(ev.Space, ev.Values)
		if err != nil {
			p.ctx.Diag.Logf(diag.PageData, diag.Warning, pageModule,
				"invalid %s colour ignored", ev.Space)
			return
		}
		if ev.Stroke {
			p.gs.UpdateStrokeColor(c)
		} else {
			p.gs.UpdateFillColor(c)
		}
	case *event.UpdateAlpha:
		if ev.Stroke {
			p.gs.UpdateStrokeAlpha(ev.Alpha)
		} else {
			p.gs.UpdateFillAlpha(ev.Alpha)
		}
	case *event.UpdateBlendMode:
		p.gs.UpdateBlendMode(ev.Mode)
	case *event.UpdateLineAttrs:
		p.gs.UpdateLineAttrs(ev.Attrs)
	case *event.UpdateOverprint:
		p.gs.UpdateOverprint(ev.Fill, ev.Stroke, ev.Mode)
	case *event.UpdateFont:
		p.gs.UpdateFont(ev.Font, ev.Size)
	case *event.UpdateRenderMode:
		p.gs.UpdateRenderMode(ev.Mode)

	case *event.MoveTo:
		p.applyClip()
		p.path.MoveTo(ev.X, ev.Y)
	case *event.LineTo:
		p.applyClip()
		p.path.LineTo(ev.X, ev.Y)
	case *event.CurveTo:
		p.applyClip()
		p.path.CurveTo(ev.X1, ev.Y1, ev.X2, ev.Y2, ev.X3, ev.Y3)
	case *event.ClosePath:
		p.path.ClosePath()
	case *event.Rectangle:
		p.applyClip()
		p.path.Rectangle(ev.X, ev.Y, ev.Width, ev.Height)
	case *event.FillPath:
		p.paint(true, false, rule(ev.EvenOdd))
	case *event.StrokePath:
		p.paint(false, true, model.NonZero)
	case *event.FillStrokePath:
		p.paint(true, true, rule(ev.EvenOdd))
	case *event.ClipPath:
		p.clipPending = true
		p.clipRule = rule(ev.EvenOdd)
		p.path.Seal()
	case *event.EndPath:
		p.paint(false, false, model.NonZero)

	case *event.BeginTransparencyGroup:
		p.beginGroup(ev)
	case *event.EndTransparencyGroup:
		p.endGroup()
	case *event.SetSoftMask:
		p.setSoftMask(ev)
	case *event.ClearSoftMask:
		p.gs.UpdateSoftMask(nil)

	case *event.DrawImage:
		p.drawImage(ev)
	case *event.DrawImageMask:
		p.drawImageMask(ev)

	case *event.DrawGlyph:
		p.drawGlyph(ev)
	case *event.BeginActualText:
		p.text.BeginActualText(ev.Text)
	case *event.EndActualText:
		p.text.EndActualText()

	case *event.BeginMarkedContent:
		p.marked = append(p.marked, ev.Tag)
	case *event.EndMarkedContent:
		if len(p.marked) == 0 {
			p.protocolViolation("end of marked content without begin")
			return
		}
		p.marked = p.marked[:len(p.marked)-1]

	case *event.Link:
		if p.links == nil {
			return
		}
		if l := p.links.Link(ev, p.base); l != nil {
			p.page.Links = append(p.page.Links, l)
		}

	default:
		// marked points and events for other consumers
	}
}

// isPathEvent reports whether ev belongs to path construction or painting.
func isPathEvent(ev event.Event) bool {
	switch ev.(type) {
	case *event.MoveTo, *event.LineTo, *event.CurveTo, *event.ClosePath,
		*event.Rectangle, *event.FillPath, *event.StrokePath,
		*event.FillStrokePath, *event.ClipPath, *event.EndPath:
		return true
	}
	return false
}

func rule(evenOdd bool) model.FillRule {
	if evenOdd {
		return model.EvenOdd
	}
	return model.NonZero
}

func (p *Page) protocolViolation(msg string) {
	p.ctx.Diag.Log(diag.ProtocolViolation, diag.Warning, pageModule, msg)
}

// emit appends an object to the innermost open group, or to the page.
func (p *Page) emit(obj model.Object) {
	if n := len(p.groups); n > 0 {
		g := p.groups[n-1]
		g.Objects = append(g.Objects, obj)
		return
	}
	p.page.Objects = append(p.page.Objects, obj)
}

// add appends a non-text object.  Pending text is emitted first, so that
// the object order follows the content stream.
func (p *Page) add(obj model.Object) {
	p.text.Flush()
	if p.ctx.Options.LinksOnly {
		return
	}
	p.emit(obj)
}

// paint completes the current path.
func (p *Page) paint(fill, stroke bool, r model.FillRule) {
	top := p.gs.Top()
	subpaths := p.path.Build(top.CTM)

	if (fill || stroke) && len(subpaths) > 0 {
		obj := &model.PathObject{
			Subpaths:    subpaths,
			Rule:        r,
			Clip:        top.Clip,
			FillAlpha:   top.FillAlpha,
			StrokeAlpha: top.StrokeAlpha,
			BlendMode:   top.BlendMode,
			SoftMask:    top.SoftMask,
		}
		if fill {
			c := top.FillColor
			obj.Fill = &c
		}
		if stroke {
			obj.Stroke = top.Stroke()
		}
		p.add(obj)
	}

	p.finishClip()
}

// finishClip applies a pending clip and discards the current path.
func (p *Page) finishClip() {
	p.applyClip()
	p.path.Reset()
}

// applyClip intersects the clipping region with the sealed path, if a
// clipping event is pending.
func (p *Page) applyClip() {
	if !p.clipPending {
		return
	}
	p.clipPending = false

	top := p.gs.Top()
	subpaths := p.path.Build(top.CTM)
	if len(subpaths) == 0 {
		// A degenerate clipping path excludes everything.
		p.gs.IntersectClip(model.ClipTo(rect.Rect{}))
		return
	}
	obj := &model.PathObject{
		Subpaths:  subpaths,
		Rule:      p.clipRule,
		IsClip:    true,
		Clip:      top.Clip,
		FillAlpha: top.FillAlpha,
		BlendMode: top.BlendMode,
	}
	p.add(obj)
	p.gs.IntersectClip(model.ClipTo(obj.BBox()))
}

func (p *Page) beginGroup(ev *event.BeginTransparencyGroup) {
	p.text.Flush()
	g := &model.Group{
		BBox:        graphics.BBox(p.gs.CTM(), ev.BBox),
		Isolated:    ev.Isolated,
		Knockout:    ev.Knockout,
		ForSoftMask: ev.ForSoftMask,
		Clip:        p.gs.Clip(),
	}
	p.groups = append(p.groups, g)
}

func (p *Page) endGroup() {
	n := len(p.groups)
	if n == 0 {
		p.protocolViolation("end of transparency group without begin")
		return
	}
	p.text.Flush()
	g := p.groups[n-1]
	p.groups = p.groups[:n-1]
	if g.ForSoftMask {
		p.pendingMask = g
		return
	}
	p.add(g)
}

func (p *Page) setSoftMask(ev *event.SetSoftMask) {
	if p.pendingMask == nil {
		p.protocolViolation("soft mask without mask group")
		return
	}
	backdrop := model.Black
	if len(ev.Backdrop) > 0 {
		c, err := graphics.ToRGB(ev.BackdropSpace, ev.Backdrop)
		if err != nil {
			p.ctx.Diag.Log(diag.PageData, diag.Warning, pageModule,
				"invalid soft mask backdrop ignored")
		} else {
			backdrop = c
		}
	}
	p.gs.UpdateSoftMask(&model.SoftMask{
		Alpha:    ev.Alpha,
		Backdrop: backdrop,
		Group:    p.pendingMask,
	})
	p.pendingMask = nil
}

// orientation returns the matrix which maps image sample space to device
// space.  Image rows run from the top of the unit square downwards.
func (p *Page) orientation() matrix.Matrix {
	ctm := p.gs.CTM()
	return matrix.Matrix{ctm[0], ctm[1], -ctm[2], -ctm[3], 0, 0}
}

func (p *Page) unitSquare() rect.Rect {
	return graphics.BBox(p.gs.CTM(), rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 1})
}

func (p *Page) drawImage(ev *event.DrawImage) {
	if p.ctx.Options.LinksOnly {
		return
	}
	orient := p.orientation()

	data, err := p.imageData(&ev.Image, orient, false, false)
	if err != nil {
		p.imageFailed(err)
		return
	}
	obj := &model.ImageObject{
		Ref:        ev.Image.Ref,
		Width:      ev.Image.Width,
		Height:     ev.Image.Height,
		Components: ev.Image.Components,
		BBox:       p.unitSquare(),
		Transform:  data.Transform,
		Clip:       p.gs.Clip(),
		Data:       data,
	}
	if ev.Mask != nil {
		obj.Mask, err = p.imageData(ev.Mask, orient, true, ev.MaskInverted)
		if err != nil {
			p.imageFailed(err)
			return
		}
	}
	if ev.SoftMask != nil {
		obj.SoftMask, err = p.imageData(ev.SoftMask, orient, false, false)
		if err != nil {
			p.imageFailed(err)
			return
		}
	}
	p.remember(obj.Data, obj.Mask, obj.SoftMask)
	p.add(obj)
}

func (p *Page) drawImageMask(ev *event.DrawImageMask) {
	if p.ctx.Options.LinksOnly {
		return
	}
	data, err := p.imageData(&ev.Mask, p.orientation(), true, ev.Inverted)
	if err != nil {
		p.imageFailed(err)
		return
	}
	p.remember(data)
	p.add(&model.ImageObject{
		Ref:        ev.Mask.Ref,
		Width:      ev.Mask.Width,
		Height:     ev.Mask.Height,
		Components: 1,
		IsMask:     true,
		Color:      p.gs.Top().FillColor,
		BBox:       p.unitSquare(),
		Transform:  data.Transform,
		Clip:       p.gs.Clip(),
		Data:       data,
	})
}

// imageData returns the canonical samples of an image.  An entry of the
// page's image table is reused when the new placement leads to the same
// canonical form.
func (p *Page) imageData(img *event.Image, orient matrix.Matrix, isMask, inverted bool) (*model.ImageData, error) {
	res, err := image.Normalize(img.Samples, img.Width, img.Height, img.Components, orient, isMask, inverted)
	if err != nil {
		return nil, err
	}

	if img.Ref != model.InlineImageRef {
		cached, ok := p.page.Images[img.Ref]
		if ok && cached.Transform == res.Transform && res.Transform&model.RotArb == 0 &&
			cached.Width == res.Width && cached.Height == res.Height {
			return cached, nil
		}
	}

	data := &model.ImageData{
		Ref:        img.Ref,
		Width:      res.Width,
		Height:     res.Height,
		Components: img.Components,
		Samples:    res.Samples,
		Transform:  res.Transform,
	}
	return data, nil
}

// remember stores image data with a reference id in the page's image
// table, unless an entry for the id exists.  Nil entries are skipped.
func (p *Page) remember(data ...*model.ImageData) {
	for _, d := range data {
		if d == nil || d.Ref == model.InlineImageRef {
			continue
		}
		if _, ok := p.page.Images[d.Ref]; !ok {
			p.page.Images[d.Ref] = d
		}
	}
}

func (p *Page) imageFailed(err error) {
	var te *image.TransformError
	if errors.As(err, &te) {
		p.ctx.Diag.Logf(diag.ImageTransform, diag.Error, "image",
			"cannot transform %dx%d image: %v", te.Width, te.Height, te.Err)
		return
	}
	p.ctx.Diag.Log(diag.ImageTransform, diag.Error, "image", err.Error())
}

func (p *Page) drawGlyph(ev *event.DrawGlyph) {
	if p.ctx.Options.LinksOnly {
		return
	}
	top := p.gs.Top()
	if top.RenderMode == graphics.RenderInvisible && !p.ctx.Options.IncludeInvisibleText {
		return
	}

	dev := ev.Matrix.Mul(top.CTM)
	adv := graphics.Linear(dev, ev.Advance, 0)

	color := top.FillColor
	if top.RenderMode == 1 || top.RenderMode == 5 {
		// stroke only
		color = top.StrokeColor
	}

	p.text.AddGlyph(GlyphPlacement{
		Matrix:  dev,
		Advance: math.Hypot(adv.X, adv.Y),
		Text:    ev.Text,
		GID:     ev.GID,
		Font:    top.Font,
		Color:   color,
		Clip:    top.Clip,
	})
}

// Finish completes the page and returns its model.  Open graphics states,
// groups and marked content sections are reported and closed.
func (p *Page) Finish() *model.Page {
	p.finishClip()
	p.text.Finish()

	if p.gs.Depth() > 1 {
		p.ctx.Diag.Logf(diag.ProtocolViolation, diag.Warning, pageModule,
			"%d unbalanced saves at end of page", p.gs.Depth()-1)
	}
	if len(p.groups) > 0 {
		p.protocolViolation("unterminated transparency group at end of page")
		for len(p.groups) > 0 {
			p.endGroup()
		}
	}
	if len(p.marked) > 0 {
		p.protocolViolation("unterminated marked content at end of page")
		p.marked = nil
	}
	return p.page
}
