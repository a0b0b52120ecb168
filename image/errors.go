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

package image

import (
	"errors"
	"fmt"
)

// Errors wrapped by [TransformError].
var (
	ErrDimensions     = errors.New("invalid image dimensions")
	ErrComponents     = errors.New("unsupported number of components")
	ErrMaskComponents = errors.New("stencil mask with more than one component")
	ErrSampleCount    = errors.New("sample count mismatch")
	ErrOrientation    = errors.New("singular image orientation")
)

// TransformError indicates that the samples of an image could not be
// brought into canonical form.  The image must be dropped.
type TransformError struct {
	Width, Height, Components int
	Err                       error
}

func (err *TransformError) Error() string {
	return fmt.Sprintf("image transform (%dx%d, %d components): %v",
		err.Width, err.Height, err.Components, err.Err)
}

func (err *TransformError) Unwrap() error {
	return err.Err
}
