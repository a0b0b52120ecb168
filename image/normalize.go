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

// Package image brings decoded image samples into the canonical orientation
// used by the page model.
//
// Canonical samples are stored top-left first, left to right and top to
// bottom in device space, with one byte per component.
package image

import (
	"fmt"
	goimage "image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfmodel/model"
)

// Result holds canonical image samples.
type Result struct {
	Samples       []byte
	Width, Height int
	Transform     model.ImageXform
}

// eps is the tolerance for treating matrix entries as zero,
// relative to the largest entry.
const eps = 1e-6

// Normalize converts image samples into canonical orientation.
//
// The linear part of orient maps image sample space, where u runs along a
// row and v runs down the rows, to device space: x = orient[0]*u +
// orient[2]*v and y = orient[1]*u + orient[3]*v.  The translation part is
// ignored, and so is scaling: only the direction of the axes matters.
// Axis-aligned orientations are handled by mirroring, quarter turns by
// transposing and all other orientations by bilinear resampling.
//
// If isMask is set, the image is a stencil mask with one component.  If in
// addition inverted is set, the mask samples are inverted.
//
// The identity orientation with inverted unset returns the input samples
// unchanged.  Malformed input is reported as a [*TransformError].
func Normalize(samples []byte, width, height, components int, orient matrix.Matrix, isMask, inverted bool) (*Result, error) {
	fail := func(err error) (*Result, error) {
		return nil, &TransformError{
			Width:      width,
			Height:     height,
			Components: components,
			Err:        err,
		}
	}

	if width <= 0 || height <= 0 {
		return fail(ErrDimensions)
	}
	switch components {
	case 1, 3, 4:
		// pass
	default:
		return fail(ErrComponents)
	}
	if isMask && components != 1 {
		return fail(ErrMaskComponents)
	}
	need := int64(width) * int64(height) * int64(components)
	if need/int64(width)/int64(height) != int64(components) || int64(len(samples)) != need {
		return fail(fmt.Errorf("%w: have %d, need %d", ErrSampleCount, len(samples), need))
	}

	res := &Result{
		Samples: samples,
		Width:   width,
		Height:  height,
	}

	if isMask && inverted {
		inv := make([]byte, len(samples))
		for i, s := range samples {
			inv[i] = 255 - s
		}
		res.Samples = inv
	}

	a, b, c, d := orient[0], orient[1], orient[2], orient[3]
	scale := max(math.Abs(a), math.Abs(b), math.Abs(c), math.Abs(d))
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return fail(ErrOrientation)
	}
	tiny := eps * scale
	isZero := func(x float64) bool { return math.Abs(x) <= tiny }

	switch {
	case isZero(b) && isZero(c):
		if isZero(a) || isZero(d) {
			return fail(ErrOrientation)
		}
		flipH := a < 0
		flipV := d < 0
		if flipH || flipV {
			res.Samples = flip(res.Samples, width, height, components, flipH, flipV)
		}
		if flipH {
			res.Transform |= model.FlipH
		}
		if flipV {
			res.Transform |= model.FlipV
		}

	case isZero(a) && isZero(d):
		if isZero(b) || isZero(c) {
			return fail(ErrOrientation)
		}
		// device x follows image v, device y follows image u
		revX := c < 0
		revY := b < 0
		res.Samples = transpose(res.Samples, width, height, components, revX, revY)
		res.Width, res.Height = height, width
		res.Transform |= model.RotOrth
		if revX {
			res.Transform |= model.FlipH
		}
		if revY {
			res.Transform |= model.FlipV
		}

	default:
		if math.Abs(a*d-b*c) <= tiny*scale {
			return fail(ErrOrientation)
		}
		out, w, h := rotate(res.Samples, width, height, components, orient, isMask)
		res.Samples = out
		res.Width, res.Height = w, h
		res.Transform |= model.RotArb
	}

	return res, nil
}

// flip mirrors the samples horizontally and/or vertically.
func flip(samples []byte, width, height, components int, flipH, flipV bool) []byte {
	out := make([]byte, len(samples))
	rowLen := width * components
	for y := 0; y < height; y++ {
		srcY := y
		if flipV {
			srcY = height - 1 - y
		}
		src := samples[srcY*rowLen : (srcY+1)*rowLen]
		dst := out[y*rowLen : (y+1)*rowLen]
		if !flipH {
			copy(dst, src)
			continue
		}
		for x := 0; x < width; x++ {
			srcX := width - 1 - x
			copy(dst[x*components:(x+1)*components], src[srcX*components:(srcX+1)*components])
		}
	}
	return out
}

// transpose swaps the image axes.  The output is height samples wide and
// width samples tall; output pixel (X, Y) is input pixel (u=Y, v=X), with
// the optional reversal of either output axis.
func transpose(samples []byte, width, height, components int, revX, revY bool) []byte {
	outW, outH := height, width
	out := make([]byte, len(samples))
	for Y := 0; Y < outH; Y++ {
		u := Y
		if revY {
			u = width - 1 - Y
		}
		for X := 0; X < outW; X++ {
			v := X
			if revX {
				v = height - 1 - X
			}
			src := (v*width + u) * components
			dst := (Y*outW + X) * components
			copy(out[dst:dst+components], samples[src:src+components])
		}
	}
	return out
}

// rotate resamples the image for an arbitrary orientation.
// The axes of orient are normalized to unit length, so that the output has
// roughly the same resolution as the input.
func rotate(samples []byte, width, height, components int, orient matrix.Matrix, isMask bool) ([]byte, int, int) {
	lu := math.Hypot(orient[0], orient[1])
	lv := math.Hypot(orient[2], orient[3])
	a, b := orient[0]/lu, orient[1]/lu
	c, d := orient[2]/lv, orient[3]/lv

	// bounding box of the transformed image rectangle
	w, h := float64(width), float64(height)
	xs := [4]float64{0, a * w, c * h, a*w + c*h}
	ys := [4]float64{0, b * w, d * h, b*w + d*h}
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
	}
	outW := max(1, int(math.Ceil(maxX-minX-eps)))
	outH := max(1, int(math.Ceil(maxY-minY-eps)))

	src, dst := newImages(samples, width, height, outW, outH, components)
	op := draw.Src
	if isMask {
		// pixels outside the image footprint are masked out
		g := dst.(*goimage.Gray)
		for i := range g.Pix {
			g.Pix[i] = 0xFF
		}
		op = draw.Over
	}

	s2d := f64.Aff3{
		a, c, -minX,
		b, d, -minY,
	}
	xdraw.BiLinear.Transform(dst, s2d, src, src.Bounds(), op, nil)

	return imageSamples(dst), outW, outH
}

func newImages(samples []byte, width, height, outW, outH, components int) (goimage.Image, draw.Image) {
	srcRect := goimage.Rect(0, 0, width, height)
	dstRect := goimage.Rect(0, 0, outW, outH)
	switch components {
	case 1:
		src := &goimage.Gray{Pix: samples, Stride: width, Rect: srcRect}
		return src, goimage.NewGray(dstRect)
	case 3:
		src := goimage.NewRGBA(srcRect)
		for i := 0; i < width*height; i++ {
			copy(src.Pix[4*i:4*i+3], samples[3*i:3*i+3])
			src.Pix[4*i+3] = 0xFF
		}
		return src, goimage.NewRGBA(dstRect)
	default:
		src := &goimage.CMYK{Pix: samples, Stride: 4 * width, Rect: srcRect}
		return src, goimage.NewCMYK(dstRect)
	}
}

func imageSamples(img draw.Image) []byte {
	switch img := img.(type) {
	case *goimage.Gray:
		return img.Pix
	case *goimage.CMYK:
		return img.Pix
	case *goimage.RGBA:
		n := len(img.Pix) / 4
		out := make([]byte, 3*n)
		for i := 0; i < n; i++ {
			copy(out[3*i:3*i+3], img.Pix[4*i:4*i+3])
		}
		return out
	default:
		panic(fmt.Sprintf("unexpected image type %T", img))
	}
}
