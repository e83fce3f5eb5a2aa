package image

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// LoadImage loads an image file, detecting the format from its content.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func LoadImage(path string) (*ImageBuf, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r and returns it with the detected format name.
func Decode(r io.Reader) (*ImageBuf, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	buf, err := FromStdImage(img)
	if err != nil {
		return nil, "", err
	}
	return buf, format, nil
}

// FromStdImage copies a standard library image into a new RGBA8 buffer.
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// NRGBA shares the buffer layout, so rows copy straight across.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range buf.height {
			start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), nrgba.Pix[start:start+buf.width*BytesPerPixel])
		}
		return buf, nil
	}

	// Everything else goes through draw, which un-premultiplies into NRGBA.
	dst := buf.ToStdImage()
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return buf, nil
}

// ToStdImage returns an *image.NRGBA sharing b's pixels.
func (b *ImageBuf) ToStdImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.data,
		Stride: b.stride,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// EncodePNG encodes the image as PNG to w.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeToBytes encodes the image to PNG and returns the bytes.
func (b *ImageBuf) EncodeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
