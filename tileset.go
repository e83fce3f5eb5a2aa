package tilescene

import "fmt"

// TilesetDescriptor describes how a tileset image is cut into tiles.
// It is read once from map metadata and never modified.
type TilesetDescriptor struct {
	// Name is the tileset name as authored in the map editor.
	Name string

	// FirstGID is the global tile id of the first tile in this tileset.
	// Zero is treated as 1.
	FirstGID uint32

	// ImagePath is the tileset image location as referenced by the map.
	ImagePath string

	// TileWidth and TileHeight are the pixel size of one tile.
	TileWidth, TileHeight int

	// ImageWidth and ImageHeight are the pixel size of the whole image.
	ImageWidth, ImageHeight int
}

// Validate reports ErrMalformedTileset unless all dimensions are positive and
// the image packs a whole number of tile columns and rows.
func (d TilesetDescriptor) Validate() error {
	if d.TileWidth <= 0 || d.TileHeight <= 0 {
		return fmt.Errorf("%w: tile size %dx%d", ErrMalformedTileset, d.TileWidth, d.TileHeight)
	}
	if d.ImageWidth <= 0 || d.ImageHeight <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrMalformedTileset, d.ImageWidth, d.ImageHeight)
	}
	if d.ImageWidth%d.TileWidth != 0 {
		return fmt.Errorf("%w: image width %d is not a multiple of tile width %d",
			ErrMalformedTileset, d.ImageWidth, d.TileWidth)
	}
	if d.ImageHeight%d.TileHeight != 0 {
		return fmt.Errorf("%w: image height %d is not a multiple of tile height %d",
			ErrMalformedTileset, d.ImageHeight, d.TileHeight)
	}
	return nil
}

// Columns returns the number of tile columns in the image.
func (d TilesetDescriptor) Columns() int {
	if d.TileWidth <= 0 {
		return 0
	}
	return d.ImageWidth / d.TileWidth
}

// Rows returns the number of tile rows in the image.
func (d TilesetDescriptor) Rows() int {
	if d.TileHeight <= 0 {
		return 0
	}
	return d.ImageHeight / d.TileHeight
}

// Count returns the number of tiles in the image.
func (d TilesetDescriptor) Count() int {
	return d.Columns() * d.Rows()
}

// firstGID returns FirstGID with the zero value mapped to 1.
func (d TilesetDescriptor) firstGID() uint32 {
	if d.FirstGID == 0 {
		return 1
	}
	return d.FirstGID
}

// Covers reports whether gid falls inside this tileset's gid range.
func (d TilesetDescriptor) Covers(gid uint32) bool {
	first := d.firstGID()
	return gid >= first && uint64(gid) < uint64(first)+uint64(d.Count())
}
