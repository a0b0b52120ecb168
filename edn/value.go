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

package edn

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Keyword is an EDN keyword.  The leading colon is added on output.
type Keyword string

// Map is an EDN map with a fixed key order.
type Map []Entry

// Entry is one key/value pair of a [Map].
type Entry struct {
	Key   Keyword
	Value any
}

// Vector is an EDN vector.
type Vector []any

// Tagged is an EDN tagged element, written as #tag value.
type Tagged struct {
	Tag   string
	Value any
}

// set appends an entry to the map.
func (m *Map) set(key Keyword, value any) {
	*m = append(*m, Entry{Key: key, Value: value})
}

// encoder writes EDN values.  Write errors are sticky and reported by
// the bufio.Writer on Flush.
type encoder struct {
	w      *bufio.Writer
	indent bool
}

func (e *encoder) encode(v any, level int) {
	switch v := v.(type) {
	case nil:
		e.w.WriteString("nil")
	case bool:
		e.w.WriteString(strconv.FormatBool(v))
	case int:
		e.w.WriteString(strconv.Itoa(v))
	case uint8:
		e.w.WriteString(strconv.Itoa(int(v)))
	case float64:
		e.w.WriteString(formatFloat(v))
	case string:
		e.w.WriteString(quote(v))
	case Keyword:
		e.w.WriteByte(':')
		e.w.WriteString(string(v))
	case Tagged:
		e.w.WriteByte('#')
		e.w.WriteString(v.Tag)
		e.w.WriteByte(' ')
		e.encode(v.Value, level)
	case Vector:
		e.w.WriteByte('[')
		for i, x := range v {
			if i > 0 {
				e.w.WriteByte(' ')
			}
			e.encode(x, level)
		}
		e.w.WriteByte(']')
	case Map:
		e.encodeMap(v, level)
	default:
		panic(fmt.Sprintf("edn: unsupported value of type %T", v))
	}
}

func (e *encoder) encodeMap(m Map, level int) {
	e.w.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			e.separate(level + 1)
		}
		e.w.WriteByte(':')
		e.w.WriteString(string(entry.Key))
		e.w.WriteByte(' ')
		e.encode(entry.Value, level+1)
	}
	e.w.WriteByte('}')
}

func (e *encoder) separate(level int) {
	if !e.indent {
		e.w.WriteByte(' ')
		return
	}
	e.w.WriteByte('\n')
	e.w.WriteString(strings.Repeat(" ", level))
}

// formatFloat writes numbers with at most three decimal places.
// NaN and infinite values have no EDN representation here and become nil.
func formatFloat(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "nil"
	}
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // avoid "-0"
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
