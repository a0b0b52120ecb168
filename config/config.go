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

// Package config holds the run-time options and the explicit run context
// shared by all parts of the page-model builder.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/pdfmodel/diag"
)

// DefaultMaxOutlineDepth is the default bound for the nesting depth of
// the document outline.
const DefaultMaxOutlineDepth = 64

// AllPages is the value of Options.PageNumber which selects all pages.
const AllPages = -1

// Options control the conversion of one document.
type Options struct {
	// OmitOutline disables the conversion of the document outline.
	OmitOutline bool

	// UseCropBox selects the crop box instead of the media box as the
	// visible page area.
	UseCropBox bool

	// IncludeInvisibleText keeps glyphs drawn with text render mode 3.
	IncludeInvisibleText bool

	// LinksOnly restricts page output to link annotations.
	LinksOnly bool

	// IncludeDebugInfo adds graphics state details to the output.
	IncludeDebugInfo bool

	// ForceOutput writes the document even if errors were reported.
	ForceOutput bool

	// PageNumber selects a single zero-based page, or AllPages.
	PageNumber int

	// MaxOutlineDepth bounds the nesting depth of the outline.
	MaxOutlineDepth int

	// Indent makes the serializer emit indented output.
	Indent bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		PageNumber:      AllPages,
		MaxOutlineDepth: DefaultMaxOutlineDepth,
	}
}

// Wants reports whether the page with the given index is selected.
func (o *Options) Wants(page int) bool {
	return o.PageNumber < 0 || o.PageNumber == page
}

// FontMap maps PDF font names to the font families used for output.
type FontMap interface {
	MapFont(name string) (family string, ok bool)
}

// StaticFontMap is a [FontMap] backed by a Go map.
//
// Keys are matched exactly first.  Otherwise a subset prefix of the form
// "ABCDEF+" is removed and the name is matched again.
type StaticFontMap map[string]string

// MapFont implements the [FontMap] interface.
func (m StaticFontMap) MapFont(name string) (string, bool) {
	if family, ok := m[name]; ok {
		return family, true
	}
	if base, ok := stripSubsetTag(name); ok {
		family, ok := m[base]
		return family, ok
	}
	return "", false
}

func stripSubsetTag(name string) (string, bool) {
	if len(name) < 8 || name[6] != '+' {
		return "", false
	}
	for _, c := range name[:6] {
		if c < 'A' || c > 'Z' {
			return "", false
		}
	}
	return name[7:], true
}

// fontMapFile is the JSON layout of a font map file.
type fontMapFile struct {
	Fonts map[string]string `json:"fonts"`
}

// ReadFontMap reads a font map in JSON format:
//
//	{"fonts": {"Helvetica": "sans-serif", "Times-Roman": "serif"}}
//
// Duplicate keys differing only in case are reported to d as
// [diag.FontMapDup] warnings; the later entry wins.
func ReadFontMap(r io.Reader, d *diag.Tracker) (StaticFontMap, error) {
	var f fontMapFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("font map: %w", err)
	}

	res := make(StaticFontMap, len(f.Fonts))
	seen := make(map[string]string, len(f.Fonts))
	for name, family := range f.Fonts {
		if name == "" || family == "" {
			if d != nil {
				d.Log(diag.FontMap, diag.Warning, "config", "empty font map entry ignored")
			}
			continue
		}
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup && d != nil {
			d.Logf(diag.FontMapDup, diag.Warning, "config",
				"font map entries %q and %q differ only in case", min(prev, name), max(prev, name))
		}
		seen[key] = name
		res[name] = family
	}
	return res, nil
}

// Context is the state shared by all parts of one conversion run.
type Context struct {
	Options Options
	Diag    *diag.Tracker
	Fonts   FontMap
}

// NewContext returns a run context.  A nil font map disables font
// substitution.
func NewContext(opt Options, fonts FontMap) *Context {
	if opt.MaxOutlineDepth <= 0 {
		opt.MaxOutlineDepth = DefaultMaxOutlineDepth
	}
	if fonts == nil {
		fonts = StaticFontMap(nil)
	}
	return &Context{
		Options: opt,
		Diag:    diag.NewTracker(),
		Fonts:   fonts,
	}
}

// FontFamily returns the substituted family for the given font, or the
// empty string.
func (c *Context) FontFamily(font string) string {
	family, _ := c.Fonts.MapFont(font)
	return family
}
