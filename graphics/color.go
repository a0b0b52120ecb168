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

package graphics

import (
	"fmt"
	"math"

	"seehuhn.de/go/pdfmodel/model"
)

// ColorSpace identifies the device colour space of colour values.
type ColorSpace uint8

// Supported colour spaces.
const (
	DeviceGray ColorSpace = iota
	DeviceRGB
	DeviceCMYK
)

func (cs ColorSpace) String() string {
	switch cs {
	case DeviceGray:
		return "DeviceGray"
	case DeviceRGB:
		return "DeviceRGB"
	case DeviceCMYK:
		return "DeviceCMYK"
	default:
		return fmt.Sprintf("ColorSpace(%d)", uint8(cs))
	}
}

// Channels returns the number of colour components of the space.
func (cs ColorSpace) Channels() int {
	switch cs {
	case DeviceGray:
		return 1
	case DeviceRGB:
		return 3
	case DeviceCMYK:
		return 4
	default:
		return 0
	}
}

// ToRGB converts colour values in the given space to an 8-bit RGB colour.
// Component values are clamped to the range [0, 1].
func ToRGB(cs ColorSpace, values []float64) (model.RGB, error) {
	if n := cs.Channels(); n == 0 || len(values) != n {
		return model.RGB{}, fmt.Errorf("%s: expected %d colour values, got %d",
			cs, cs.Channels(), len(values))
	}

	switch cs {
	case DeviceGray:
		g := toByte(values[0])
		return model.RGB{R: g, G: g, B: g}, nil
	case DeviceRGB:
		return model.RGB{
			R: toByte(values[0]),
			G: toByte(values[1]),
			B: toByte(values[2]),
		}, nil
	default: // DeviceCMYK
		c, m, y, k := clamp01(values[0]), clamp01(values[1]), clamp01(values[2]), clamp01(values[3])
		return model.RGB{
			R: toByte((1 - c) * (1 - k)),
			G: toByte((1 - m) * (1 - k)),
			B: toByte((1 - y) * (1 - k)),
		}, nil
	}
}

func toByte(x float64) uint8 {
	return uint8(math.Round(clamp01(x) * 255))
}
