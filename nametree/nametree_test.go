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

package nametree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfmodel/destination"
)

func TestInMemoryBasic(t *testing.T) {
	tree := &InMemory{
		Data: map[string]destination.Destination{
			"apple":  &destination.Fit{Page: destination.PageRef{Num: 1}},
			"banana": &destination.Fit{Page: destination.PageRef{Num: 2}},
			"cherry": &destination.Fit{Page: destination.PageRef{Num: 3}},
		},
	}

	tests := []struct {
		key     string
		want    destination.Destination
		wantErr bool
	}{
		{"apple", &destination.Fit{Page: destination.PageRef{Num: 1}}, false},
		{"banana", &destination.Fit{Page: destination.PageRef{Num: 2}}, false},
		{"cherry", &destination.Fit{Page: destination.PageRef{Num: 3}}, false},
		{"durian", nil, true},
	}

	for _, tt := range tests {
		got, err := tree.Lookup(tt.key)
		if (err != nil) != tt.wantErr {
			t.Errorf("Lookup(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Lookup(%q) error = %v, want ErrKeyNotFound", tt.key, err)
		}
		if d := cmp.Diff(tt.want, got); d != "" {
			t.Errorf("Lookup(%q): %s", tt.key, d)
		}
	}

	var keys []string
	for key := range tree.All() {
		keys = append(keys, key)
	}
	if d := cmp.Diff([]string{"apple", "banana", "cherry"}, keys); d != "" {
		t.Error(d)
	}
}

func TestNilTree(t *testing.T) {
	var tree *InMemory
	if _, err := tree.Lookup("x"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("got %v", err)
	}
	for range tree.All() {
		t.Error("nil tree has entries")
	}
}

func TestExtract(t *testing.T) {
	root := map[string]any{
		"Kids": []any{
			map[string]any{
				"Names": []any{
					"a", []any{"4 0 R", "Fit"},
					"b", []any{"5 0 R", "XYZ", 0.0, 700.0, nil},
				},
			},
			map[string]any{
				"Kids": []any{
					map[string]any{
						"Names": []any{"c", []any{"6 0 R", "FitH", 500.0}},
					},
				},
			},
		},
	}

	n, err := Size(root)
	if err != nil || n != 3 {
		t.Errorf("Size() = %d, %v", n, err)
	}

	tree, err := Extract(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Data) != 3 {
		t.Fatalf("got %d entries, want 3", len(tree.Data))
	}
	got, err := tree.Lookup("c")
	if err != nil {
		t.Fatal(err)
	}
	want := &destination.FitH{Page: destination.PageRef{Num: 6}, Top: 500}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestExtractMalformed(t *testing.T) {
	bad := []map[string]any{
		{"Names": []any{"a"}},
		{"Names": []any{1.0, "x"}},
		{"Kids": "nope"},
		{"Kids": []any{"nope"}},
		{"Names": []any{"a", []any{"bad"}}},
	}
	for i, root := range bad {
		if _, err := Extract(root); err == nil {
			t.Errorf("%d: malformed tree accepted", i)
		}
	}

	// a chain of nodes deeper than the limit
	root := map[string]any{"Names": []any{}}
	for i := 0; i < maxDepth+2; i++ {
		root = map[string]any{"Kids": []any{root}}
	}
	if _, err := Extract(root); !errors.Is(err, errTooDeep) {
		t.Errorf("got %v, want errTooDeep", err)
	}
}
