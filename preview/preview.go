// Package preview composites a projected scene into an image on the CPU.
//
// The compositor is the reference renderer for tilescene: it converts every
// placement back to top-left screen space with Placement.DrawOrigin and draws
// the sprite there, so the output looks the same for every Profile.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/tilescene"
)

// ErrNilScene is returned when Render is called without a scene.
var ErrNilScene = errors.New("preview: nil scene")

// SpriteSource supplies sprite pixels by atlas rectangle.
// *assets.Texture implements SpriteSource.
type SpriteSource interface {
	SubImage(r tilescene.Rect) (*image.NRGBA, error)
}

// Render draws scene into a new image the size of the scene viewport times
// the configured scale. Sprites are composited in placement order with
// source-over blending; placements outside the viewport are clipped.
func Render(scene *tilescene.Scene, src SpriteSource, opts ...Option) (*image.NRGBA, error) {
	if scene == nil || scene.Atlas == nil {
		return nil, ErrNilScene
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	scale := o.scale
	width := int(math.Ceil(float64(scene.Viewport.Width))) * scale
	height := int(math.Ceil(float64(scene.Viewport.Height))) * scale
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("preview: empty viewport %vx%v", scene.Viewport.Width, scene.Viewport.Height)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(o.clear), image.Point{}, xdraw.Src)

	tw, th := scene.TileSize()
	drawn := 0
	for _, pl := range scene.Placements {
		sprite, ok := scene.Atlas.Sprite(pl.SpriteIndex)
		if !ok {
			return nil, fmt.Errorf("%w: placement at row %d, column %d uses sprite %d",
				tilescene.ErrSpriteIndexOutOfRange, pl.Row, pl.Column, pl.SpriteIndex)
		}
		img, err := src.SubImage(sprite.Rect)
		if err != nil {
			return nil, err
		}

		x, y := pl.DrawOrigin(scene.Profile, scene.Viewport.Height, tw, th)
		r := image.Rect(0, 0, sprite.Rect.Width*scale, sprite.Rect.Height*scale).
			Add(image.Pt(int(math.Round(float64(x)))*scale, int(math.Round(float64(y)))*scale))
		if !r.Overlaps(dst.Bounds()) {
			continue
		}
		if scale == 1 {
			xdraw.Draw(dst, r, img, img.Bounds().Min, xdraw.Over)
		} else {
			xdraw.NearestNeighbor.Scale(dst, r, img, img.Bounds(), xdraw.Over, nil)
		}
		drawn++
	}

	if o.grid != nil {
		drawGrid(dst, scene, tw*scale, th*scale, o.grid)
	}
	if o.labels != nil {
		if err := drawLabels(dst, scene, scale, o.labels); err != nil {
			return nil, err
		}
	}

	tilescene.Logger().Debug("preview rendered",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("drawn", drawn),
		slog.Int("placements", len(scene.Placements)))

	return dst, nil
}

// RenderPNG renders scene and encodes the result as PNG to w.
func RenderPNG(w io.Writer, scene *tilescene.Scene, src SpriteSource, opts ...Option) error {
	img, err := Render(scene, src, opts...)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encode PNG: %w", err)
	}
	return nil
}

// drawGrid outlines every cell of the projected layer.
// Screen row r always starts at r*tileHeight: UpwardY positions are mirrored
// back by DrawOrigin.
func drawGrid(dst *image.NRGBA, scene *tilescene.Scene, tw, th int, c color.Color) {
	b := dst.Bounds()
	right := min(scene.Width*tw, b.Max.X-1)
	bottom := min(scene.Height*th, b.Max.Y-1)
	for col := 0; col <= scene.Width; col++ {
		x := min(col*tw, b.Max.X-1)
		for y := 0; y <= bottom; y++ {
			dst.Set(x, y, c)
		}
	}
	for row := 0; row <= scene.Height; row++ {
		y := min(row*th, b.Max.Y-1)
		for x := 0; x <= right; x++ {
			dst.Set(x, y, c)
		}
	}
}
