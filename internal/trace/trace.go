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

// Package trace reads recorded decoder events in JSON-lines format.
//
// Every line holds one JSON object.  The "op" member selects the event;
// the remaining members hold its fields:
//
//	{"op": "start_page", "page": 0, "mediaBox": [0, 0, 595, 842]}
//	{"op": "color", "space": "DeviceRGB", "values": [1, 0, 0]}
//	{"op": "move_to", "x": 10, "y": 10}
//	{"op": "fill"}
//	{"op": "end_page"}
//
// Empty lines and lines starting with "#" are ignored.
package trace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfmodel/action"
	"seehuhn.de/go/pdfmodel/destination"
	"seehuhn.de/go/pdfmodel/diag"
	"seehuhn.de/go/pdfmodel/event"
	"seehuhn.de/go/pdfmodel/graphics"
	"seehuhn.de/go/pdfmodel/model"
	"seehuhn.de/go/pdfmodel/nametree"
)

// maxLineSize bounds the length of one trace line.  Lines with image data
// can be long.
const maxLineSize = 256 << 20

// SyntaxError reports a malformed trace line.
type SyntaxError struct {
	Line int
	Err  error
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("trace line %d: %v", err.Line, err.Err)
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

var errUnknownOp = errors.New("unknown op")

// Decoder reads events from a trace.
type Decoder struct {
	sc   *bufio.Scanner
	line int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{sc: sc}
}

// Next returns the next event.  At the end of the input, io.EOF is
// returned.
func (d *Decoder) Next() (event.Event, error) {
	for d.sc.Scan() {
		d.line++
		line := bytes.TrimSpace(d.sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		ev, err := decodeLine(line)
		if err != nil {
			return nil, &SyntaxError{Line: d.line, Err: err}
		}
		return ev, nil
	}
	if err := d.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// All returns an iterator over the remaining events.  Iteration stops
// after the first error.
func (d *Decoder) All() iter.Seq2[event.Event, error] {
	return func(yield func(event.Event, error) bool) {
		for {
			ev, err := d.Next()
			if err == io.EOF {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

type decodeFunc func(data []byte) (event.Event, error)

// plain decodes events whose fields map directly to JSON members.
func plain[T any, P interface {
	*T
	event.Event
}]() decodeFunc {
	return func(data []byte) (event.Event, error) {
		var ev T
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return P(&ev), nil
	}
}

var decoders map[string]decodeFunc

func init() {
	decoders = map[string]decodeFunc{
		"catalog":    decodeCatalog,
		"metadata":   decodeMetadata,
		"outline":    decodeOutlineItem,
		"diagnostic": decodeDiagnostic,

		"start_page": decodeStartPage,
		"end_page":   plain[event.EndPage](),

		"save":        plain[event.Save](),
		"restore":     plain[event.Restore](),
		"cm":          plain[event.UpdateTransform](),
		"color":       decodeColor,
		"alpha":       plain[event.UpdateAlpha](),
		"blend":       plain[event.UpdateBlendMode](),
		"line":        decodeLineAttrs,
		"overprint":   plain[event.UpdateOverprint](),
		"font":        plain[event.UpdateFont](),
		"render_mode": plain[event.UpdateRenderMode](),

		"move_to":     plain[event.MoveTo](),
		"line_to":     plain[event.LineTo](),
		"curve_to":    plain[event.CurveTo](),
		"close_path":  plain[event.ClosePath](),
		"rect":        plain[event.Rectangle](),
		"fill":        plain[event.FillPath](),
		"stroke":      plain[event.StrokePath](),
		"fill_stroke": plain[event.FillStrokePath](),
		"clip":        plain[event.ClipPath](),
		"end_path":    plain[event.EndPath](),

		"begin_group":     decodeBeginGroup,
		"end_group":       plain[event.EndTransparencyGroup](),
		"set_soft_mask":   decodeSetSoftMask,
		"clear_soft_mask": plain[event.ClearSoftMask](),

		"image":      decodeImage,
		"image_mask": decodeImageMask,

		"glyph":             decodeGlyph,
		"begin_actual_text": plain[event.BeginActualText](),
		"end_actual_text":   plain[event.EndActualText](),

		"begin_marked": plain[event.BeginMarkedContent](),
		"end_marked":   plain[event.EndMarkedContent](),
		"mark_point":   plain[event.MarkPoint](),

		"link": decodeLink,
	}
}

func decodeLine(line []byte) (event.Event, error) {
	var head struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(line, &head); err != nil {
		return nil, err
	}
	dec, ok := decoders[head.Op]
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownOp, head.Op)
	}
	return dec(line)
}

func toRect(a [4]float64) rect.Rect {
	return rect.Rect{LLx: a[0], LLy: a[1], URx: a[2], URy: a[3]}
}

func decodeCatalog(data []byte) (event.Event, error) {
	var raw struct {
		Pages []struct {
			Ref    string  `json:"ref"`
			Height float64 `json:"height"`
		} `json:"pages"`
		Names map[string]any `json:"names"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	ev := &event.Catalog{}
	for _, p := range raw.Pages {
		ref, err := destination.ParseRef(p.Ref)
		if err != nil {
			return nil, err
		}
		ev.Pages = append(ev.Pages, event.PageInfo{Ref: ref, Height: p.Height})
	}
	tree, err := nametree.Extract(raw.Names)
	if err != nil {
		return nil, err
	}
	if tree != nil {
		ev.NamedDests = tree.Data
	}
	return ev, nil
}

func decodeMetadata(data []byte) (event.Event, error) {
	var raw struct {
		Pages   int    `json:"pages"`
		Version string `json:"version"`
		XMP     string `json:"xmp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	ev := &event.Metadata{NumPages: raw.Pages, Version: raw.Version}
	if raw.XMP != "" {
		ev.XMP = []byte(raw.XMP)
	}
	return ev, nil
}

func decodeOutlineItem(data []byte) (event.Event, error) {
	var raw struct {
		Title    string         `json:"title"`
		Dest     any            `json:"dest"`
		Action   map[string]any `json:"action"`
		Children bool           `json:"children"`
		Next     bool           `json:"next"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	dest, err := destination.Decode(raw.Dest)
	if err != nil {
		return nil, err
	}
	act, err := action.Decode(raw.Action)
	if err != nil {
		return nil, err
	}
	return &event.OutlineItem{
		Title:       raw.Title,
		Destination: dest,
		Action:      act,
		HasChildren: raw.Children,
		HasNext:     raw.Next,
	}, nil
}

func decodeDiagnostic(data []byte) (event.Event, error) {
	var raw struct {
		Category string `json:"category"`
		Level    string `json:"level"`
		Message  string `json:"msg"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	c, ok := diag.ParseCategory(raw.Category)
	if !ok {
		return nil, fmt.Errorf("unknown diagnostic category %q", raw.Category)
	}
	l, ok := diag.ParseLevel(raw.Level)
	if !ok {
		return nil, fmt.Errorf("unknown diagnostic level %q", raw.Level)
	}
	return &event.Diagnostic{Category: c, Level: l, Message: raw.Message}, nil
}

func decodeStartPage(data []byte) (event.Event, error) {
	var raw struct {
		Page     int         `json:"page"`
		MediaBox [4]float64  `json:"mediaBox"`
		CropBox  *[4]float64 `json:"cropBox"`
		Rotate   int         `json:"rotate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	ev := &event.StartPage{
		Number:   raw.Page,
		MediaBox: toRect(raw.MediaBox),
		CropBox:  toRect(raw.MediaBox),
		Rotation: raw.Rotate,
	}
	if raw.CropBox != nil {
		ev.CropBox = toRect(*raw.CropBox)
	}
	return ev, nil
}

func parseColorSpace(name string) (graphics.ColorSpace, error) {
	switch name {
	case "DeviceGray", "G":
		return graphics.DeviceGray, nil
	case "DeviceRGB", "RGB", "":
		return graphics.DeviceRGB, nil
	case "DeviceCMYK", "CMYK":
		return graphics.DeviceCMYK, nil
	default:
		return 0, fmt.Errorf("unsupported colour space %q", name)
	}
}

func decodeColor(data []byte) (event.Event, error) {
	var raw struct {
		Stroke bool      `json:"stroke"`
		Space  string    `json:"space"`
		Values []float64 `json:"values"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cs, err := parseColorSpace(raw.Space)
	if err != nil {
		return nil, err
	}
	return &event.UpdateColor{Stroke: raw.Stroke, Space: cs, Values: raw.Values}, nil
}

func decodeLineAttrs(data []byte) (event.Event, error) {
	var raw struct {
		Width      *float64  `json:"width"`
		Cap        *int      `json:"cap"`
		Join       *int      `json:"join"`
		MiterLimit *float64  `json:"miterLimit"`
		Dash       []float64 `json:"dash"`
		Phase      *float64  `json:"phase"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var a graphics.LineAttrs
	if raw.Width != nil {
		a.Width = *raw.Width
		a.Set |= graphics.StateLineWidth
	}
	if raw.Cap != nil {
		a.Cap = model.LineCap(*raw.Cap)
		a.Set |= graphics.StateLineCap
	}
	if raw.Join != nil {
		a.Join = model.LineJoin(*raw.Join)
		a.Set |= graphics.StateLineJoin
	}
	if raw.MiterLimit != nil {
		a.MiterLimit = *raw.MiterLimit
		a.Set |= graphics.StateMiterLimit
	}
	if raw.Dash != nil || raw.Phase != nil {
		a.Dash = raw.Dash
		if raw.Phase != nil {
			a.Phase = *raw.Phase
		}
		a.Set |= graphics.StateDash
	}
	return &event.UpdateLineAttrs{Attrs: a}, nil
}

func decodeBeginGroup(data []byte) (event.Event, error) {
	var raw struct {
		BBox     [4]float64 `json:"bbox"`
		Isolated bool       `json:"isolated"`
		Knockout bool       `json:"knockout"`
		SoftMask bool       `json:"softMask"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &event.BeginTransparencyGroup{
		BBox:        toRect(raw.BBox),
		Isolated:    raw.Isolated,
		Knockout:    raw.Knockout,
		ForSoftMask: raw.SoftMask,
	}, nil
}

func decodeSetSoftMask(data []byte) (event.Event, error) {
	var raw struct {
		Alpha         bool      `json:"alpha"`
		BackdropSpace string    `json:"backdropSpace"`
		Backdrop      []float64 `json:"backdrop"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	ev := &event.SetSoftMask{Alpha: raw.Alpha, Backdrop: raw.Backdrop}
	if len(raw.Backdrop) > 0 {
		cs, err := parseColorSpace(raw.BackdropSpace)
		if err != nil {
			return nil, err
		}
		ev.BackdropSpace = cs
	}
	return ev, nil
}

// rawImage is the JSON form of an image.  Samples are base64 encoded.
// A missing ref denotes an inline image.
type rawImage struct {
	Ref        *int   `json:"ref"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Components int    `json:"components"`
	Samples    []byte `json:"samples"`
}

func (raw *rawImage) image() event.Image {
	img := event.Image{
		Ref:        model.InlineImageRef,
		Width:      raw.Width,
		Height:     raw.Height,
		Components: raw.Components,
		Samples:    raw.Samples,
	}
	if raw.Ref != nil {
		img.Ref = *raw.Ref
	}
	if img.Components == 0 {
		img.Components = 1
	}
	return img
}

func decodeImage(data []byte) (event.Event, error) {
	var raw struct {
		Image        rawImage  `json:"image"`
		Mask         *rawImage `json:"mask"`
		MaskInverted bool      `json:"maskInverted"`
		SoftMask     *rawImage `json:"softMask"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	ev := &event.DrawImage{
		Image:        raw.Image.image(),
		MaskInverted: raw.MaskInverted,
	}
	if raw.Mask != nil {
		m := raw.Mask.image()
		ev.Mask = &m
	}
	if raw.SoftMask != nil {
		m := raw.SoftMask.image()
		ev.SoftMask = &m
	}
	return ev, nil
}

func decodeImageMask(data []byte) (event.Event, error) {
	var raw struct {
		Mask     rawImage `json:"mask"`
		Inverted bool     `json:"inverted"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &event.DrawImageMask{Mask: raw.Mask.image(), Inverted: raw.Inverted}, nil
}

func decodeGlyph(data []byte) (event.Event, error) {
	var raw struct {
		Matrix  matrix.Matrix `json:"matrix"`
		Advance float64       `json:"advance"`
		Text    string        `json:"text"`
		GID     uint16        `json:"gid"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &event.DrawGlyph{
		Matrix:  raw.Matrix,
		Advance: raw.Advance,
		Text:    []rune(raw.Text),
		GID:     glyph.ID(raw.GID),
	}, nil
}

func parseEffect(name string) model.LinkEffect {
	switch name {
	case "invert", "I":
		return model.EffectInvert
	case "outline", "O":
		return model.EffectOutline
	case "push", "P":
		return model.EffectPush
	default:
		return model.EffectNone
	}
}

func decodeLink(data []byte) (event.Event, error) {
	var raw struct {
		Rect   [4]float64     `json:"rect"`
		Effect string         `json:"effect"`
		Action map[string]any `json:"action"`
		Dest   any            `json:"dest"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	act, err := action.Decode(raw.Action)
	if err != nil {
		return nil, err
	}
	if act == nil && raw.Dest != nil {
		// a /Dest entry acts like a GoTo action
		dest, err := destination.Decode(raw.Dest)
		if err != nil {
			return nil, err
		}
		act = &action.GoTo{Dest: dest}
	}
	if act == nil {
		act = &action.Unknown{}
	}
	return &event.Link{Rect: raw.Rect, Effect: parseEffect(raw.Effect), Action: act}, nil
}
