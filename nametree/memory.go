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
	"fmt"
	"iter"
	"slices"

	"seehuhn.de/go/pdfmodel/destination"
)

// maxDepth limits the nesting of name tree nodes.
const maxDepth = 32

var (
	errTooDeep        = errors.New("name tree too deep")
	errMalformedNames = errors.New("malformed Names array")
	errMalformedKids  = errors.New("malformed Kids array")
)

// InMemory is a name tree held in a Go map.
type InMemory struct {
	Data map[string]destination.Destination
}

var _ Tree = (*InMemory)(nil)

// Extract reads a name tree given in node form into memory.
// If root is nil, it returns nil.
func Extract(root map[string]any) (*InMemory, error) {
	if root == nil {
		return nil, nil
	}

	tree := &InMemory{
		Data: make(map[string]destination.Destination),
	}

	err := extractFromNode(root, tree.Data, 0)
	if err != nil {
		return nil, err
	}

	return tree, nil
}

func extractFromNode(node map[string]any, data map[string]destination.Destination, depth int) error {
	if depth > maxDepth {
		return errTooDeep
	}

	// check if this is a leaf node with Names
	if names, ok := node["Names"]; ok {
		arr, ok := names.([]any)
		if !ok || len(arr)%2 != 0 {
			return errMalformedNames
		}

		// extract key-value pairs from Names array
		for i := 0; i < len(arr); i += 2 {
			key, ok := arr[i].(string)
			if !ok {
				return errMalformedNames
			}
			dest, err := destination.Decode(arr[i+1])
			if err != nil {
				return fmt.Errorf("name tree entry %q: %w", key, err)
			}
			data[key] = dest
		}
		return nil
	}

	// check if this is an intermediate node with Kids
	if kids, ok := node["Kids"]; ok {
		arr, ok := kids.([]any)
		if !ok {
			return errMalformedKids
		}

		// recursively extract from all children
		for _, kid := range arr {
			childNode, ok := kid.(map[string]any)
			if !ok {
				return errMalformedKids
			}

			err := extractFromNode(childNode, data, depth+1)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Lookup implements the [Tree] interface.
func (t *InMemory) Lookup(key string) (destination.Destination, error) {
	if t == nil || t.Data == nil {
		return nil, ErrKeyNotFound
	}

	value, ok := t.Data[key]
	if !ok || value == nil {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

// All iterates over the entries of the tree in lexicographic key order.
func (t *InMemory) All() iter.Seq2[string, destination.Destination] {
	return func(yield func(string, destination.Destination) bool) {
		if t == nil || t.Data == nil {
			return
		}

		keys := make([]string, 0, len(t.Data))
		for key := range t.Data {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		for _, key := range keys {
			if !yield(key, t.Data[key]) {
				return
			}
		}
	}
}
