// Package assets loads tileset images into textures usable by tilescene.
//
// A Texture satisfies tilescene.Texture and keeps its pixels in CPU memory
// as RGBA8. Renderers pull either a whole image (preview, ebiten) or one
// packed sprite at a time (GPU upload).
package assets

import (
	"errors"
	"fmt"
	stdimage "image"
	"io"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tilescene"
	"github.com/gogpu/tilescene/internal/image"
)

// ErrSpriteBounds is returned when a sprite rectangle lies outside the texture.
var ErrSpriteBounds = errors.New("assets: sprite rectangle outside texture")

// Texture is a decoded tileset image.
// It is immutable after loading and safe for concurrent use.
type Texture struct {
	buf    *image.ImageBuf
	path   string
	format string
}

// Load decodes the image file at path.
func Load(path string) (*Texture, error) {
	buf, format, err := image.LoadImage(path)
	if err != nil {
		return nil, err
	}
	tilescene.Logger().Debug("texture loaded",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("width", buf.Width()),
		slog.Int("height", buf.Height()))
	return &Texture{buf: buf, path: path, format: format}, nil
}

// Decode decodes a texture from r.
func Decode(r io.Reader) (*Texture, error) {
	buf, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &Texture{buf: buf, format: format}, nil
}

// FromImage copies img into a new texture.
func FromImage(img stdimage.Image) (*Texture, error) {
	buf, err := image.FromStdImage(img)
	if err != nil {
		return nil, err
	}
	return &Texture{buf: buf}, nil
}

// Size returns the texture size in pixels. A nil texture has size 0x0.
func (t *Texture) Size() (width, height int) {
	if t == nil {
		return 0, 0
	}
	return t.buf.Bounds()
}

// Path returns the file the texture was loaded from, if any.
func (t *Texture) Path() string { return t.path }

// SourceFormat returns the decoder name ("png", "bmp", ...), if known.
func (t *Texture) SourceFormat() string { return t.format }

// Format returns the GPU texture format of the pixel data.
func (t *Texture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the whole texture as an image sharing the texture's pixels.
// Callers must not modify it.
func (t *Texture) Image() *stdimage.NRGBA {
	return t.buf.ToStdImage()
}

// SubImage returns a view of one sprite rectangle.
func (t *Texture) SubImage(r tilescene.Rect) (*stdimage.NRGBA, error) {
	sub, err := t.sprite(r)
	if err != nil {
		return nil, err
	}
	return sub.ToStdImage(), nil
}

// SpriteRGBA returns the pixels of one sprite rectangle as tightly packed
// RGBA rows, ready for NewTextureFromRGBA. The slice is always a copy.
func (t *Texture) SpriteRGBA(r tilescene.Rect) ([]byte, error) {
	sub, err := t.sprite(r)
	if err != nil {
		return nil, err
	}
	return sub.Packed(), nil
}

// PNG returns the texture encoded as PNG.
func (t *Texture) PNG() ([]byte, error) {
	return t.buf.EncodeToBytes()
}

func (t *Texture) sprite(r tilescene.Rect) (*image.ImageBuf, error) {
	sub := t.buf.SubImage(r.X, r.Y, r.Width, r.Height)
	if sub == nil {
		w, h := t.buf.Bounds()
		return nil, fmt.Errorf("%w: %+v in %dx%d", ErrSpriteBounds, r, w, h)
	}
	return sub, nil
}
