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

	"seehuhn.de/go/pdfmodel/destination"
)

// Tree maps names to destinations.
type Tree interface {
	// Lookup returns the destination stored under the given name.
	// If the name is not present, [ErrKeyNotFound] is returned.
	Lookup(name string) (destination.Destination, error)
}

var ErrKeyNotFound = errors.New("key not found")

// Size returns the number of entries in a name tree given in node form,
// without decoding the destinations.
func Size(root map[string]any) (int, error) {
	return sizeNode(root, 0)
}

func sizeNode(node map[string]any, depth int) (int, error) {
	if depth > maxDepth {
		return 0, errTooDeep
	}

	// leaf or single-node tree with Names
	if names, ok := node["Names"]; ok {
		arr, ok := names.([]any)
		if !ok {
			return 0, errMalformedNames
		}
		return len(arr) / 2, nil // Names array has key-value pairs
	}

	// intermediate or root node with Kids
	if kids, ok := node["Kids"]; ok {
		arr, ok := kids.([]any)
		if !ok {
			return 0, errMalformedKids
		}

		total := 0
		for _, kid := range arr {
			childNode, ok := kid.(map[string]any)
			if !ok {
				return 0, errMalformedKids
			}
			childSize, err := sizeNode(childNode, depth+1)
			if err != nil {
				return 0, err
			}
			total += childSize
		}
		return total, nil
	}

	return 0, nil
}
