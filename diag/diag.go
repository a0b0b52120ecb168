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

// Package diag implements the diagnostic log shared by all parts of the
// page-model builder.
//
// Diagnostics are data, not log lines: every recoverable problem found while
// processing a document is recorded in a [Tracker], which de-duplicates
// repeated reports and ranks them by severity.  At the end of a run the
// worst retained level determines the process exit status.
package diag

import (
	"fmt"
	"sync"
)

// Category classifies a diagnostic.
type Category uint8

// The closed set of diagnostic categories.  The first block mirrors the
// categories reported by the upstream decoder, the remaining ones are
// produced by the builder itself.
const (
	SyntaxWarning Category = iota
	SyntaxError
	Config
	CLI
	IO
	NotAllowed
	Unimplemented
	Internal

	InvalidArgs
	UnhandledLinkAction
	FontEngineInit
	FontRead
	FontReadUnsupported
	FontMap
	FontMapDup
	RuntimeError
	UnimplementedCallback
	PageData
	ImageEncode
	ImageTransform
	ProtocolViolation
	UnresolvedReference
	OutlineDepthExceeded

	numCategories
)

var categoryNames = [numCategories]string{
	SyntaxWarning:         "syntax_warning",
	SyntaxError:           "syntax_error",
	Config:                "config",
	CLI:                   "cli",
	IO:                    "io",
	NotAllowed:            "not_allowed",
	Unimplemented:         "unimplemented",
	Internal:              "internal",
	InvalidArgs:           "invalid_args",
	UnhandledLinkAction:   "unhandled_link_action",
	FontEngineInit:        "fe_init_failure",
	FontRead:              "fe_font_read",
	FontReadUnsupported:   "fe_font_read_unsupported_type",
	FontMap:               "fe_font_map",
	FontMapDup:            "fe_font_map_dup",
	RuntimeError:          "od_runtime_error",
	UnimplementedCallback: "od_unimplemented_cb",
	PageData:              "page_data",
	ImageEncode:           "ut_image_encode",
	ImageTransform:        "ut_image_xform",
	ProtocolViolation:     "protocol_violation",
	UnresolvedReference:   "unresolved_reference",
	OutlineDepthExceeded:  "outline_depth_exceeded",
}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory returns the category with the given name, as produced by
// [Category.String].
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return Category(c), true
		}
	}
	return 0, false
}

// Level is the severity of a diagnostic.
type Level uint8

// Possible values for Level, in increasing order of severity.
const (
	Info Level = iota
	Warning
	Error
	Critical
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// ParseLevel returns the level with the given name.
func ParseLevel(name string) (Level, bool) {
	for l := Info; l <= Critical; l++ {
		if l.String() == name {
			return l, true
		}
	}
	return 0, false
}

// Diagnostic is one retained entry of the diagnostic log.
type Diagnostic struct {
	Category Category
	Level    Level
	Module   string
	Message  string

	// Count is the number of times this diagnostic was reported.
	Count int
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s [%s] %s: %s", d.Level, d.Category, d.Module, d.Message)
	if d.Count > 1 {
		s += fmt.Sprintf(" (x%d)", d.Count)
	}
	return s
}

type key struct {
	category Category
	module   string
	message  string
}

// Tracker collects diagnostics for one document.
//
// A Tracker is safe for concurrent use.  The zero value is not usable,
// use [NewTracker].
type Tracker struct {
	mu      sync.Mutex
	entries []*Diagnostic
	index   map[key]*Diagnostic
	muted   map[Category]bool
}

// NewTracker returns an empty diagnostic log.
func NewTracker() *Tracker {
	return &Tracker{
		index: make(map[key]*Diagnostic),
		muted: make(map[Category]bool),
	}
}

// Log records a diagnostic.
//
// Reports with the same category, module and message are merged into one
// entry whose count is incremented.  If a repeated report carries a higher
// level, the entry is raised to that level.  Reports for muted categories
// are dropped.  Logging to a nil Tracker does nothing.
func (t *Tracker) Log(c Category, l Level, module, msg string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.muted[c] {
		return
	}

	k := key{category: c, module: module, message: msg}
	if d, ok := t.index[k]; ok {
		d.Count++
		if l > d.Level {
			d.Level = l
		}
		return
	}

	d := &Diagnostic{
		Category: c,
		Level:    l,
		Module:   module,
		Message:  msg,
		Count:    1,
	}
	t.entries = append(t.entries, d)
	t.index[k] = d
}

// Logf is like [Tracker.Log], but formats the message using [fmt.Sprintf].
func (t *Tracker) Logf(c Category, l Level, module, format string, args ...any) {
	t.Log(c, l, module, fmt.Sprintf(format, args...))
}

// Mute causes all subsequent reports of the given category to be dropped.
// Entries which have already been retained are kept.
func (t *Tracker) Mute(c Category) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.muted[c] = true
}

// IsMuted reports whether the category has been muted.
func (t *Tracker) IsMuted(c Category) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.muted[c]
}

// HasBlockingErrors reports whether any retained diagnostic has a level
// above [Warning].
func (t *Tracker) HasBlockingErrors() bool {
	worst, ok := t.Worst()
	return ok && worst > Warning
}

// Worst returns the highest level of all retained diagnostics.
// The second return value is false if the log is empty.
func (t *Tracker) Worst() (Level, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) == 0 {
		return Info, false
	}
	worst := Info
	for _, d := range t.entries {
		if d.Level > worst {
			worst = d.Level
		}
	}
	return worst, true
}

// Diagnostics returns a copy of the retained diagnostics, in the order
// they were first reported.
func (t *Tracker) Diagnostics() []Diagnostic {
	t.mu.Lock()
	defer t.mu.Unlock()

	res := make([]Diagnostic, len(t.entries))
	for i, d := range t.entries {
		res[i] = *d
	}
	return res
}

// Len returns the number of retained diagnostics.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Count returns the number of reports merged into retained diagnostics of
// the given category.
func (t *Tracker) Count(c Category) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, d := range t.entries {
		if d.Category == c {
			n += d.Count
		}
	}
	return n
}

// Reset discards all retained diagnostics.  Muted categories stay muted.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = t.entries[:0]
	clear(t.index)
}
