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

package action

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfmodel/destination"
)

var errMissingType = errors.New("action without type")

// Decode reads an action from its generic representation, a map which uses
// the keys of the PDF action dictionary:
//
//	{"S": "GoTo", "D": ["3 0 R", "Fit"]}
//	{"S": "GoToR", "F": "other.pdf", "D": [0, "Fit"], "NewWindow": true}
//	{"S": "URI", "URI": "https://example.com/"}
//	{"S": "Launch", "F": "notes.txt"}
//
// Action types other than GoTo, GoToR, URI and Launch decode to [*Unknown].
func Decode(dict map[string]any) (Action, error) {
	if dict == nil {
		return nil, nil
	}
	tp, _ := dict["S"].(string)
	if tp == "" {
		return nil, errMissingType
	}

	switch Type(tp) {
	case TypeGoTo:
		dest, err := destination.Decode(dict["D"])
		if err != nil {
			return nil, fmt.Errorf("GoTo action: %w", err)
		}
		return &GoTo{Dest: dest}, nil

	case TypeGoToR:
		dest, err := destination.Decode(dict["D"])
		if err != nil {
			return nil, fmt.Errorf("GoToR action: %w", err)
		}
		file, _ := dict["F"].(string)
		return &GoToR{
			File:      file,
			Dest:      dest,
			NewWindow: decodeNewWindow(dict["NewWindow"]),
		}, nil

	case TypeURI:
		// A missing URI is kept as the empty string.
		uri, _ := dict["URI"].(string)
		isMap, _ := dict["IsMap"].(bool)
		return &URI{URI: uri, IsMap: isMap}, nil

	case TypeLaunch:
		file, _ := dict["F"].(string)
		return &Launch{
			File:      file,
			NewWindow: decodeNewWindow(dict["NewWindow"]),
		}, nil

	default:
		return &Unknown{Kind: Type(tp)}, nil
	}
}

func decodeNewWindow(obj any) NewWindowMode {
	b, ok := obj.(bool)
	switch {
	case !ok:
		return NewWindowDefault
	case b:
		return NewWindowNew
	default:
		return NewWindowReplace
	}
}
