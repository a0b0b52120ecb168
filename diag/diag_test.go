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

package diag

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDuplicatesCollapse(t *testing.T) {
	tr := NewTracker()
	tr.Log(ProtocolViolation, Warning, "graphics", "restore without save")
	tr.Log(ProtocolViolation, Warning, "graphics", "restore without save")

	got := tr.Diagnostics()
	want := []Diagnostic{{
		Category: ProtocolViolation,
		Level:    Warning,
		Module:   "graphics",
		Message:  "restore without save",
		Count:    2,
	}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected diagnostics (-want +got):\n%s", d)
	}
}

func TestIdentity(t *testing.T) {
	tr := NewTracker()
	tr.Log(ProtocolViolation, Warning, "graphics", "a")
	tr.Log(ProtocolViolation, Warning, "text", "a")
	tr.Log(PageData, Warning, "graphics", "a")
	tr.Log(ProtocolViolation, Warning, "graphics", "b")

	if n := tr.Len(); n != 4 {
		t.Errorf("Len() = %d, want 4", n)
	}
}

func TestRepeatRaisesLevel(t *testing.T) {
	tr := NewTracker()
	tr.Log(ImageTransform, Warning, "image", "bad")
	tr.Log(ImageTransform, Error, "image", "bad")
	tr.Log(ImageTransform, Info, "image", "bad")

	got := tr.Diagnostics()
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Level != Error || got[0].Count != 3 {
		t.Errorf("got level %s count %d, want error/3", got[0].Level, got[0].Count)
	}
}

func TestMute(t *testing.T) {
	tr := NewTracker()
	tr.Log(SyntaxWarning, Warning, "poppler", "before")
	tr.Mute(SyntaxWarning)
	tr.Log(SyntaxWarning, Warning, "poppler", "after")
	tr.Log(SyntaxError, Error, "poppler", "other")

	if !tr.IsMuted(SyntaxWarning) {
		t.Error("SyntaxWarning not reported as muted")
	}
	if n := tr.Count(SyntaxWarning); n != 1 {
		t.Errorf("Count(SyntaxWarning) = %d, want 1", n)
	}
	if n := tr.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestStatus(t *testing.T) {
	cases := []struct {
		levels   []Level
		blocking bool
		status   Status
	}{
		{nil, false, StatusOK},
		{[]Level{Info}, false, StatusOK},
		{[]Level{Info, Warning}, false, StatusWarnings},
		{[]Level{Warning, Error}, true, StatusErrors},
		{[]Level{Critical, Warning}, true, StatusCritical},
	}
	for i, c := range cases {
		tr := NewTracker()
		for j, l := range c.levels {
			tr.Logf(PageData, l, "test", "message %d", j)
		}
		if got := tr.HasBlockingErrors(); got != c.blocking {
			t.Errorf("%d: HasBlockingErrors() = %t, want %t", i, got, c.blocking)
		}
		if got := tr.Status(); got != c.status {
			t.Errorf("%d: Status() = %s, want %s", i, got, c.status)
		}
	}
}

func TestCategoryNames(t *testing.T) {
	for c := Category(0); c < numCategories; c++ {
		name := c.String()
		if name == "" {
			t.Errorf("category %d has no name", c)
			continue
		}
		back, ok := ParseCategory(name)
		if !ok || back != c {
			t.Errorf("ParseCategory(%q) = %d, %t", name, back, ok)
		}
	}
	if _, ok := ParseCategory("no_such_thing"); ok {
		t.Error("unknown category name accepted")
	}
}

func TestConcurrentLog(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Log(PageData, Info, "page", "same")
			}
		}()
	}
	wg.Wait()

	got := tr.Diagnostics()
	if len(got) != 1 || got[0].Count != 800 {
		t.Errorf("got %v, want one entry with count 800", got)
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.Mute(IO)
	tr.Log(PageData, Error, "page", "x")
	tr.Reset()
	if tr.Len() != 0 || tr.HasBlockingErrors() {
		t.Error("Reset did not clear the log")
	}
	if !tr.IsMuted(IO) {
		t.Error("Reset unmuted a category")
	}
	tr.Log(PageData, Error, "page", "x")
	if got := tr.Diagnostics(); len(got) != 1 || got[0].Count != 1 {
		t.Errorf("after Reset got %v", got)
	}
}
