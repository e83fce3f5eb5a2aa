// Package image holds the RGBA pixel buffers behind tileset textures.
//
// Buffers are non-premultiplied RGBA8, row-major with a top-left origin,
// which is the layout GPU texture uploads and PNG encoding both expect.
package image

import (
	"errors"
	"fmt"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// ErrInvalidDimensions is returned when width or height is non-positive.
var ErrInvalidDimensions = errors.New("image: invalid dimensions")

// ImageBuf is an RGBA8 pixel buffer.
//
// A buffer returned by SubImage shares pixels with its parent and keeps the
// parent stride. ImageBuf is safe for concurrent reads; writers need external
// synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
}

// NewImageBuf allocates a zeroed (transparent) width x height buffer.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	stride := width * BytesPerPixel
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int { return b.height }

// Bounds returns width and height.
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// RowBytes returns the pixels of row y, or nil if y is out of range.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width*BytesPerPixel]
}

// SubImage returns a view of the rectangle at (x, y) with the given size.
// The view shares pixels with b. It returns nil if the rectangle is empty
// or not fully inside the image.
func (b *ImageBuf) SubImage(x, y, width, height int) *ImageBuf {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil
	}
	if x+width > b.width || y+height > b.height {
		return nil
	}
	offset := y*b.stride + x*BytesPerPixel
	end := (y+height-1)*b.stride + (x+width)*BytesPerPixel
	return &ImageBuf{
		data:   b.data[offset:end],
		width:  width,
		height: height,
		stride: b.stride,
	}
}

// Packed returns a tightly packed width*height*4 copy of the pixels.
func (b *ImageBuf) Packed() []byte {
	rowSize := b.width * BytesPerPixel
	out := make([]byte, rowSize*b.height)
	for y := range b.height {
		copy(out[y*rowSize:], b.RowBytes(y))
	}
	return out
}
