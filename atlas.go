package tilescene

import "fmt"

// Texture is an opaque handle to a tileset image owned by an asset loader.
// The atlas only inspects its size; pixels stay with the loader.
type Texture interface {
	Size() (width, height int)
}

// SpriteAtlas is a tileset texture plus its sliced sprite sequence.
// It is immutable after BuildAtlas returns and safe for concurrent reads.
type SpriteAtlas struct {
	// Texture is the handle passed to BuildAtlas. It may be nil.
	Texture Texture

	// Tileset is the descriptor the atlas was built from.
	Tileset TilesetDescriptor

	// Order is the scan order that assigned sprite indices.
	Order ScanOrder

	// Sprites is indexed by sprite index (gid - 1).
	Sprites []SpriteDefinition
}

// BuildAtlas slices a tileset into one sprite per tile position.
//
// With TopRowFirst the sprite at image row r, column c gets index
// r*columns + c. With BottomRowFirst it gets (rows-1-r)*columns + c.
// The pixel rectangle of a sprite is always measured from the top-left corner
// of the image regardless of scan order.
//
// BuildAtlas returns ErrMalformedTileset if the image is not an exact multiple
// of the tile size, or if texture is non-nil and its size differs from the
// descriptor.
func BuildAtlas(tileset TilesetDescriptor, texture Texture, opts ...AtlasOption) (*SpriteAtlas, error) {
	o := defaultAtlasOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := tileset.Validate(); err != nil {
		return nil, err
	}
	if texture != nil {
		w, h := texture.Size()
		if w != tileset.ImageWidth || h != tileset.ImageHeight {
			return nil, fmt.Errorf("%w: texture is %dx%d, tileset declares %dx%d",
				ErrMalformedTileset, w, h, tileset.ImageWidth, tileset.ImageHeight)
		}
	}

	offset := o.offset
	if o.pivot == PivotCenter {
		offset[0] += float32(tileset.TileWidth) / 2
		offset[1] += float32(tileset.TileHeight) / 2
	}

	rows, cols := tileset.Rows(), tileset.Columns()
	sprites := make([]SpriteDefinition, 0, rows*cols)
	for i := range rows {
		r := i
		if o.order == BottomRowFirst {
			r = rows - 1 - i
		}
		for c := range cols {
			sprites = append(sprites, SpriteDefinition{
				Row:    r,
				Column: c,
				Rect: Rect{
					X:      c * tileset.TileWidth,
					Y:      r * tileset.TileHeight,
					Width:  tileset.TileWidth,
					Height: tileset.TileHeight,
				},
				Offset:      offset,
				imageWidth:  tileset.ImageWidth,
				imageHeight: tileset.ImageHeight,
			})
		}
	}

	Logger().Debug("atlas built",
		"tileset", tileset.Name,
		"columns", cols,
		"rows", rows,
		"order", o.order.String())

	return &SpriteAtlas{
		Texture: texture,
		Tileset: tileset,
		Order:   o.order,
		Sprites: sprites,
	}, nil
}

// Len returns the number of sprites in the atlas.
func (a *SpriteAtlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Sprites)
}

// Sprite returns the sprite at index i.
func (a *SpriteAtlas) Sprite(i int) (SpriteDefinition, bool) {
	if a == nil || i < 0 || i >= len(a.Sprites) {
		return SpriteDefinition{}, false
	}
	return a.Sprites[i], true
}

// IndexOf returns the sprite index of the tile at image row and column,
// or -1 if the position is outside the tileset.
func (a *SpriteAtlas) IndexOf(row, col int) int {
	if a == nil {
		return -1
	}
	rows, cols := a.Tileset.Rows(), a.Tileset.Columns()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return -1
	}
	if a.Order == BottomRowFirst {
		row = rows - 1 - row
	}
	return row*cols + col
}
