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

package destination

import (
	"fmt"
	"math"
)

// MalformedError indicates that a destination could not be decoded.
type MalformedError struct {
	Err error
}

func (err *MalformedError) Error() string {
	if err.Err == nil {
		return "malformed destination"
	}
	return "malformed destination: " + err.Err.Error()
}

func (err *MalformedError) Unwrap() error {
	return err.Err
}

func malformed(format string, args ...any) error {
	return &MalformedError{Err: fmt.Errorf(format, args...)}
}

// Decode converts the generic representation of a destination into a
// [Destination].
//
// A string is a named destination.  An array holds the target page
// followed by the destination type and its parameters.  The page is either
// a reference of the form "12 0 R" or a page number.  Null parameters
// decode as [Unset].  A nil obj decodes to a nil destination.
func Decode(obj any) (Destination, error) {
	switch obj := obj.(type) {
	case nil:
		return nil, nil
	case string:
		if obj == "" {
			return nil, malformed("empty destination name")
		}
		return &Named{Name: obj}, nil
	case []any:
		return decodeArray(obj)
	default:
		return nil, malformed("unexpected %T", obj)
	}
}

func decodeArray(a []any) (Destination, error) {
	if len(a) < 2 {
		return nil, malformed("array too short")
	}
	page, err := decodeTarget(a[0])
	if err != nil {
		return nil, err
	}
	tp, ok := a[1].(string)
	if !ok {
		return nil, malformed("invalid destination type %v", a[1])
	}

	args := a[2:]
	arg := func(i int) (float64, error) {
		if i >= len(args) || args[i] == nil {
			return Unset, nil
		}
		x, ok := toFloat(args[i])
		if !ok || math.IsInf(x, 0) {
			return 0, malformed("%s: invalid parameter %v", tp, args[i])
		}
		return x, nil
	}

	var x [4]float64
	need := map[Type]int{
		TypeXYZ: 3, TypeFit: 0, TypeFitH: 1, TypeFitV: 1,
		TypeFitR: 4, TypeFitB: 0, TypeFitBH: 1, TypeFitBV: 1,
	}
	n, known := need[Type(tp)]
	if !known {
		return nil, malformed("unknown destination type %q", tp)
	}
	for i := 0; i < n; i++ {
		x[i], err = arg(i)
		if err != nil {
			return nil, err
		}
	}

	switch Type(tp) {
	case TypeXYZ:
		return &XYZ{Page: page, Left: x[0], Top: x[1], Zoom: x[2]}, nil
	case TypeFit:
		return &Fit{Page: page}, nil
	case TypeFitH:
		return &FitH{Page: page, Top: x[0]}, nil
	case TypeFitV:
		return &FitV{Page: page, Left: x[0]}, nil
	case TypeFitR:
		for i := range x {
			if math.IsNaN(x[i]) {
				x[i] = 0
			}
		}
		left, right := min(x[0], x[2]), max(x[0], x[2])
		bottom, top := min(x[1], x[3]), max(x[1], x[3])
		return &FitR{Page: page, Left: left, Bottom: bottom, Right: right, Top: top}, nil
	case TypeFitB:
		return &FitB{Page: page}, nil
	case TypeFitBH:
		return &FitBH{Page: page, Top: x[0]}, nil
	default: // TypeFitBV
		return &FitBV{Page: page, Left: x[0]}, nil
	}
}

func decodeTarget(obj any) (Target, error) {
	switch obj := obj.(type) {
	case string:
		ref, err := ParseRef(obj)
		if err != nil {
			return nil, err
		}
		return ref, nil
	default:
		x, ok := toFloat(obj)
		if !ok || x < 0 || x != math.Trunc(x) || x > math.MaxInt32 {
			return nil, malformed("invalid page %v", obj)
		}
		return PageNumber(x), nil
	}
}

// ParseRef parses a page reference of the form "12 0 R".
func ParseRef(s string) (PageRef, error) {
	var ref PageRef
	var r string
	n, err := fmt.Sscanf(s, "%d %d %s", &ref.Num, &ref.Gen, &r)
	if err != nil || n != 3 || r != "R" {
		return PageRef{}, malformed("invalid page reference %q", s)
	}
	return ref, nil
}

func toFloat(obj any) (float64, bool) {
	switch x := obj.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
