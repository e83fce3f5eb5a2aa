package tilescene

// Rect is a pixel rectangle inside a tileset image.
// X and Y locate the top-left corner; y grows downward as in image storage.
type Rect struct {
	X, Y          int
	Width, Height int
}

// TexCoords is a normalized texture rectangle.
// U grows to the right; V grows upward, so the bottom row of the image is V=0.
type TexCoords struct {
	Left, Right float32
	Bottom, Top float32
}

// PixelRect converts normalized coordinates back to a pixel rectangle in an
// image of the given size. It is the inverse of SpriteDefinition.TexCoords.
func (tc TexCoords) PixelRect(imageWidth, imageHeight int) (x, y, width, height float64) {
	w := float64(imageWidth)
	h := float64(imageHeight)
	x = float64(tc.Left) * w
	y = (1 - float64(tc.Top)) * h
	width = float64(tc.Right-tc.Left) * w
	height = float64(tc.Top-tc.Bottom) * h
	return x, y, width, height
}

// SpriteDefinition is one tile sliced out of a tileset image.
// Its identity is its index in SpriteAtlas.Sprites.
type SpriteDefinition struct {
	// Row and Column locate the tile in the source image, row 0 at the top.
	Row, Column int

	// Rect is the pixel rectangle of the tile in the source image.
	Rect Rect

	// Offset is the pivot offset in pixels applied when the sprite is drawn.
	Offset [2]float32

	imageWidth, imageHeight int
}

// TexCoords returns the normalized rectangle for the sprite.
func (s SpriteDefinition) TexCoords() TexCoords {
	w := float32(s.imageWidth)
	h := float32(s.imageHeight)
	if w == 0 || h == 0 {
		return TexCoords{}
	}
	return TexCoords{
		Left:   float32(s.Rect.X) / w,
		Right:  float32(s.Rect.X+s.Rect.Width) / w,
		Top:    1 - float32(s.Rect.Y)/h,
		Bottom: 1 - float32(s.Rect.Y+s.Rect.Height)/h,
	}
}
