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

// Package edn writes page models in the extensible data notation (EDN).
//
// The output is a single map with the keys :meta, :outline, :pages,
// :status and :diagnostics.  Coordinates are device space numbers rounded
// to three decimal places.  Image samples are written as base64 strings
// with the tag #base64.
package edn

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"io"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/model"
)

// Options control the EDN output.
type Options struct {
	// Indent puts every map entry on a line of its own.
	Indent bool

	// IncludeDebugInfo adds compositing details to drawing objects.
	IncludeDebugInfo bool
}

// Writer writes documents to an io.Writer.
type Writer struct {
	enc   encoder
	debug bool

	// images is the image table of the page being written.
	images map[int]*model.ImageData
}

// NewWriter returns a writer which writes to w.  If opt is nil, default
// options are used.
func NewWriter(w io.Writer, opt *Options) *Writer {
	if opt == nil {
		opt = &Options{}
	}
	return &Writer{
		enc: encoder{
			w:      bufio.NewWriter(w),
			indent: opt.Indent,
		},
		debug: opt.IncludeDebugInfo,
	}
}

// Write writes the document, followed by a newline.
func (w *Writer) Write(doc *model.Document) error {
	w.enc.encode(w.document(doc), 0)
	w.enc.w.WriteByte('\n')
	return w.enc.w.Flush()
}

func (w *Writer) document(doc *model.Document) Map {
	var m Map
	m.set("meta", metadata(&doc.Meta))

	outline := Vector{}
	for _, e := range doc.Outline {
		outline = append(outline, outlineEntry(e))
	}
	m.set("outline", outline)

	pages := Vector{}
	for _, p := range doc.Pages {
		pages = append(pages, w.page(p))
	}
	m.set("pages", pages)

	m.set("status", Keyword(doc.Status.String()))
	m.set("diagnostics", diagnostics(doc.Diagnostics))
	return m
}

func metadata(meta *model.Metadata) Map {
	var m Map
	m.set("num-pages", meta.NumPages)
	m.set("version", meta.Version)
	if meta.XMP != nil {
		buf := &bytes.Buffer{}
		if err := meta.XMP.Write(buf, nil); err == nil {
			m.set("xmp", buf.String())
		}
	}
	return m
}

func diagnostics(list []diag.Diagnostic) Vector {
	res := Vector{}
	for _, d := range list {
		var m Map
		m.set("category", Keyword(d.Category.String()))
		m.set("level", Keyword(d.Level.String()))
		m.set("module", d.Module)
		m.set("msg", d.Message)
		m.set("count", d.Count)
		res = append(res, m)
	}
	return res
}

func outlineEntry(e *model.OutlineEntry) Map {
	var m Map
	m.set("title", e.Title)
	m.set("page", e.Page)
	if e.Dest != "" {
		m.set("dest", e.Dest)
	}
	if e.Link != nil {
		m.set("link", target(e.Link))
	}
	if len(e.Children) > 0 {
		children := Vector{}
		for _, c := range e.Children {
			children = append(children, outlineEntry(c))
		}
		m.set("children", children)
	}
	return m
}

func (w *Writer) page(p *model.Page) Map {
	var m Map
	m.set("pgnum", p.Number)
	m.set("width", p.Width)
	m.set("height", p.Height)
	m.set("rotation", p.Rotation)
	m.set("crop-box", box(p.CropBox))

	w.images = p.Images
	defer func() { w.images = nil }()

	objects := Vector{}
	for _, obj := range p.Objects {
		objects = append(objects, w.object(obj))
	}
	m.set("objects", objects)

	links := Vector{}
	for _, l := range p.Links {
		var lm Map
		lm.set("bbox", box(l.BBox))
		lm.set("effect", Keyword(l.Effect.String()))
		lm.set("target", target(l.Target))
		links = append(links, lm)
	}
	m.set("links", links)

	refs := make([]int, 0, len(p.Images))
	for ref := range p.Images {
		refs = append(refs, ref)
	}
	slices.Sort(refs)
	images := Vector{}
	for _, ref := range refs {
		images = append(images, imageData(p.Images[ref], true))
	}
	m.set("images", images)
	return m
}

func (w *Writer) object(obj model.Object) Map {
	switch obj := obj.(type) {
	case *model.PathObject:
		return w.path(obj)
	case *model.ImageObject:
		return w.image(obj)
	case *model.TextRun:
		return text(obj)
	case *model.Group:
		var m Map
		m.set("type", Keyword("group"))
		m.set("bbox", box(obj.BBox))
		m.set("isolated", obj.Isolated)
		m.set("knockout", obj.Knockout)
		m.set("clip", clip(obj.Clip))
		objects := Vector{}
		for _, child := range obj.Objects {
			objects = append(objects, w.object(child))
		}
		m.set("objects", objects)
		return m
	default:
		panic("edn: unknown object type")
	}
}

func (w *Writer) path(p *model.PathObject) Map {
	var m Map
	m.set("type", Keyword("path"))
	if p.IsClip {
		m.set("clip-path", true)
	}
	m.set("rule", Keyword(p.Rule.String()))

	subpaths := Vector{}
	for i := range p.Subpaths {
		sp := &p.Subpaths[i]
		segs := Vector{}
		for _, seg := range sp.Segments {
			if seg.Kind == model.Curve {
				segs = append(segs, Vector{Keyword("c"),
					seg.Pts[0].X, seg.Pts[0].Y,
					seg.Pts[1].X, seg.Pts[1].Y,
					seg.Pts[2].X, seg.Pts[2].Y})
			} else {
				segs = append(segs, Vector{Keyword("l"), seg.Pts[0].X, seg.Pts[0].Y})
			}
		}
		var sm Map
		sm.set("start", point(sp.Start))
		sm.set("segments", segs)
		sm.set("closed", sp.Closed)
		subpaths = append(subpaths, sm)
	}
	m.set("subpaths", subpaths)
	m.set("bbox", box(p.BBox()))

	if p.Fill != nil {
		m.set("fill", color(*p.Fill))
	}
	if s := p.Stroke; s != nil {
		var sm Map
		sm.set("color", color(s.Color))
		sm.set("width", s.Width)
		sm.set("cap", int(s.Cap))
		sm.set("join", int(s.Join))
		sm.set("miter-limit", s.MiterLimit)
		if len(s.Dash) > 0 {
			dash := Vector{}
			for _, d := range s.Dash {
				dash = append(dash, d)
			}
			sm.set("dash", dash)
			sm.set("phase", s.Phase)
		}
		m.set("stroke", sm)
	}
	m.set("clip", clip(p.Clip))

	if w.debug {
		m.set("fill-alpha", p.FillAlpha)
		m.set("stroke-alpha", p.StrokeAlpha)
		m.set("blend-mode", string(p.BlendMode))
		m.set("soft-mask", p.SoftMask != nil)
	}
	return m
}

// image describes an image object.  Samples are written inline unless they
// are available from the page's image table.
func (w *Writer) image(img *model.ImageObject) Map {
	var m Map
	m.set("type", Keyword("image"))
	m.set("ref", img.Ref)
	m.set("width", img.Width)
	m.set("height", img.Height)
	m.set("components", img.Components)
	if img.IsMask {
		m.set("stencil", true)
		m.set("color", color(img.Color))
	}
	m.set("bbox", box(img.BBox))
	m.set("transform", img.Transform.String())
	m.set("clip", clip(img.Clip))
	if img.Data != nil {
		m.set("data", imageData(img.Data, !w.shared(img.Data)))
	}
	if img.Mask != nil {
		m.set("mask", imageData(img.Mask, !w.shared(img.Mask)))
	}
	if img.SoftMask != nil {
		m.set("soft-mask", imageData(img.SoftMask, !w.shared(img.SoftMask)))
	}
	return m
}

func (w *Writer) shared(d *model.ImageData) bool {
	return d.Ref != model.InlineImageRef && w.images[d.Ref] == d
}

// imageData describes image samples.  The samples themselves are only
// included if withSamples is set; otherwise the resource is referenced by
// its id.
func imageData(d *model.ImageData, withSamples bool) Map {
	var m Map
	m.set("ref", d.Ref)
	m.set("width", d.Width)
	m.set("height", d.Height)
	m.set("components", d.Components)
	m.set("transform", d.Transform.String())
	if withSamples {
		m.set("samples", Tagged{
			Tag:   "base64",
			Value: base64.StdEncoding.EncodeToString(d.Samples),
		})
	}
	return m
}

func text(r *model.TextRun) Map {
	var m Map
	m.set("type", Keyword("text"))
	m.set("text", r.Text)
	if r.ActualText {
		m.set("actual-text", true)
	}
	m.set("font", r.Font)
	if r.FontFamily != "" {
		m.set("family", r.FontFamily)
	}
	m.set("size", r.FontSize)
	m.set("color", color(r.Color))
	m.set("matrix", mat(r.Matrix))
	m.set("clip", clip(r.Clip))

	glyphs := Vector{}
	for _, g := range r.Glyphs {
		var gm Map
		gm.set("gid", int(g.GID))
		gm.set("origin", point(g.Origin))
		gm.set("advance", g.Advance)
		gm.set("text", string(g.Text))
		glyphs = append(glyphs, gm)
	}
	m.set("glyphs", glyphs)
	return m
}

func target(t model.LinkTarget) any {
	var m Map
	switch t := t.(type) {
	case *model.PageTarget:
		m.set("type", Keyword("page"))
		m.set("page", t.Page)
		if t.Name != "" {
			m.set("name", t.Name)
		}
		m.set("status", Keyword(t.Status.String()))
		if t.View != nil {
			m.set("view", view(t.View))
		}
	case *model.RemoteTarget:
		m.set("type", Keyword("remote"))
		m.set("file", t.File)
		m.set("page", t.Page)
		if t.View != nil {
			m.set("view", view(t.View))
		}
	case *model.URITarget:
		m.set("type", Keyword("uri"))
		m.set("uri", t.URI)
	case *model.LaunchTarget:
		m.set("type", Keyword("launch"))
		m.set("file", t.File)
	default:
		return nil
	}
	return m
}

func view(v *model.View) Map {
	var m Map
	m.set("fit", v.Fit)
	m.set("left", v.Left)
	m.set("top", v.Top)
	m.set("zoom", v.Zoom)
	return m
}

func point(p vec.Vec2) Vector {
	return Vector{p.X, p.Y}
}

func box(r rect.Rect) Vector {
	return Vector{r.LLx, r.LLy, r.URx, r.URy}
}

func mat(m matrix.Matrix) Vector {
	return Vector{m[0], m[1], m[2], m[3], m[4], m[5]}
}

func color(c model.RGB) string {
	const hex = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, x := range []uint8{c.R, c.G, c.B} {
		buf[1+2*i] = hex[x>>4]
		buf[2+2*i] = hex[x&15]
	}
	return string(buf)
}

func clip(c model.Clip) any {
	if c.Unbounded {
		return nil
	}
	return box(c.Rect)
}
