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
	"seehuhn.de/go/pdfmodel/destination"
	"seehuhn.de/go/pdfmodel/event"
)

// PageTable maps page references to page indices.
type PageTable interface {
	// PageIndex returns the zero-based index of the page with the given
	// reference.
	PageIndex(ref destination.PageRef) (int, bool)

	// PageHeight returns the height of the page with the given index, in
	// PDF units.
	PageHeight(index int) (float64, bool)
}

// Pages is a [PageTable] built from the page list of the document catalog.
type Pages struct {
	index   map[destination.PageRef]int
	heights []float64
}

var _ PageTable = (*Pages)(nil)

// NewPages returns a page table for the given pages.  If a reference
// occurs more than once, the first occurrence is used.
func NewPages(pages []event.PageInfo) *Pages {
	p := &Pages{
		index:   make(map[destination.PageRef]int, len(pages)),
		heights: make([]float64, len(pages)),
	}
	for i, info := range pages {
		if _, seen := p.index[info.Ref]; !seen {
			p.index[info.Ref] = i
		}
		p.heights[i] = info.Height
	}
	return p
}

// PageIndex implements the [PageTable] interface.
func (p *Pages) PageIndex(ref destination.PageRef) (int, bool) {
	if p == nil {
		return 0, false
	}
	idx, ok := p.index[ref]
	return idx, ok
}

// PageHeight implements the [PageTable] interface.
func (p *Pages) PageHeight(index int) (float64, bool) {
	if p == nil || index < 0 || index >= len(p.heights) {
		return 0, false
	}
	return p.heights[index], true
}

// Len returns the number of pages.
func (p *Pages) Len() int {
	if p == nil {
		return 0
	}
	return len(p.heights)
}
