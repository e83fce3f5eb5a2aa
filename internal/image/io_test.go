package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestFromStdImage(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 10, 10))
	rgba.Set(5, 5, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	nrgba := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	nrgba.Set(3, 3, color.NRGBA{R: 128, G: 64, B: 32, A: 200})

	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	gray.SetGray(5, 5, color.Gray{Y: 128})

	tests := []struct {
		name string
		img  image.Image
		x, y int
		want [4]uint8
	}{
		{"rgba", rgba, 5, 5, [4]uint8{200, 100, 50, 255}},
		{"nrgba", nrgba, 3, 3, [4]uint8{128, 64, 32, 200}},
		{"gray", gray, 5, 5, [4]uint8{128, 128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := FromStdImage(tt.img)
			if err != nil {
				t.Fatalf("FromStdImage() error = %v", err)
			}
			if buf.Width() != 10 || buf.Height() != 10 {
				t.Errorf("size = %dx%d, want 10x10", buf.Width(), buf.Height())
			}
			c := buf.ToStdImage().NRGBAAt(tt.x, tt.y)
			if got := [4]uint8{c.R, c.G, c.B, c.A}; got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromStdImageOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 14, 22))
	src.Set(10, 20, color.NRGBA{R: 7, A: 255})
	buf, err := FromStdImage(src)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if r := buf.ToStdImage().NRGBAAt(0, 0).R; r != 7 {
		t.Errorf("origin pixel R = %d, want 7", r)
	}

	if _, err := FromStdImage(image.NewNRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromStdImage(empty) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	buf, _ := NewImageBuf(3, 2)
	buf.ToStdImage().SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	data, err := buf.EncodeToBytes()
	if err != nil {
		t.Fatalf("EncodeToBytes() error = %v", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}

	var streamed bytes.Buffer
	if err := buf.EncodePNG(&streamed); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if !bytes.Equal(streamed.Bytes(), data) {
		t.Error("EncodePNG() and EncodeToBytes() disagree")
	}

	got, format, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if c := got.ToStdImage().NRGBAAt(2, 1); c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("pixel = %v, want (10, 20, 30)", c)
	}
}

func TestLoadImageBMP(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.Set(1, 2, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	path := filepath.Join(t.TempDir(), "tiles.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	buf, format, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if format != "bmp" {
		t.Errorf("format = %q, want bmp", format)
	}
	if c := buf.ToStdImage().NRGBAAt(1, 2); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("pixel = %v, want red", c)
	}
}

func TestLoadImageErrors(t *testing.T) {
	if _, _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadImage(missing) succeeded")
	}
	if _, _, err := Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode(empty) succeeded")
	}
	if _, _, err := Decode(strings.NewReader("not an image")); err == nil {
		t.Error("Decode(garbage) succeeded")
	}
}
