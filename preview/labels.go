package preview

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/tilescene"
)

var labelFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// labelSize returns a font size that fits a short number inside a cell.
func labelSize(cellHeight int) float64 {
	return max(6, float64(cellHeight)/3)
}

// drawLabels writes the sprite index of every placement near the top-left
// corner of its cell.
func drawLabels(dst *image.NRGBA, scene *tilescene.Scene, scale int, c color.Color) error {
	f, err := labelFont()
	if err != nil {
		return fmt.Errorf("preview: parse label font: %w", err)
	}

	tw, th := scene.TileSize()
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    labelSize(th * scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("preview: label face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	for _, pl := range scene.Placements {
		x, y := pl.DrawOrigin(scene.Profile, scene.Viewport.Height, tw, th)
		d.Dot = fixed.Point26_6{
			X: fixed.I(int(x)*scale + 2),
			Y: fixed.I(int(y)*scale+1) + ascent,
		}
		d.DrawString(strconv.Itoa(pl.SpriteIndex))
	}
	return nil
}
