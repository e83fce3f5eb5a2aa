// Package tmx reads orthogonal, finite Tiled maps (.tmx) and their external
// tilesets (.tsx) into plain Go values.
//
// Parsing and layer data decoding are done by github.com/lafriks/go-tiled.
// This package keeps only what scene projection needs: map and tile size,
// tilesets with their image, and tile layers as gid grids.
package tmx

import "errors"

// Decoding errors.
var (
	// ErrInfiniteMap is returned for maps saved with infinite="1".
	ErrInfiniteMap = errors.New("tmx: infinite maps are not supported")

	// ErrUnsupportedOrientation is returned for non-orthogonal maps.
	ErrUnsupportedOrientation = errors.New("tmx: unsupported orientation")

	// ErrLayerSize is returned when a layer does not hold width*height tiles.
	ErrLayerSize = errors.New("tmx: layer data size mismatch")
)

// Tiled stores flip flags in the top bits of every gid.
const (
	FlippedHorizontally uint32 = 0x80000000
	FlippedVertically   uint32 = 0x40000000
	FlippedDiagonally   uint32 = 0x20000000

	flagShift = 28
)

// Map is a decoded tile map.
type Map struct {
	Version     string
	Orientation string
	RenderOrder string

	// Width and Height are the map size in tiles.
	Width, Height int

	// TileWidth and TileHeight are the map grid cell size in pixels.
	TileWidth, TileHeight int

	Tilesets []Tileset

	// Layers holds the tile layers in document order.
	Layers []Layer
}

// Tileset is a tileset referenced by the map, with external tilesets resolved.
type Tileset struct {
	FirstGID   uint32
	Name       string
	TileWidth  int
	TileHeight int
	TileCount  int
	Columns    int
	Spacing    int
	Margin     int
	Image      Image

	// Source is the .tsx path for external tilesets, empty when embedded.
	Source string

	// imagePath is Image.Source resolved against the file that referenced it.
	imagePath string
}

// Image is the tileset image reference.
type Image struct {
	Source        string
	Width, Height int
}

// ImagePath returns the tileset image path resolved against the directory of
// the .tmx or .tsx file that referenced it.
func (ts *Tileset) ImagePath() string {
	if ts.imagePath == "" {
		return ts.Image.Source
	}
	return ts.imagePath
}

// Layer is a finite tile layer.
type Layer struct {
	ID            int
	Name          string
	Width, Height int
	Visible       bool

	// GIDs holds Width*Height gids in row-major order with flip flags removed.
	GIDs []uint32

	// Flags holds the removed flip flags (gid >> 28) for each cell.
	Flags []uint8
}

// Flipped returns the number of cells that carried flip flags.
func (l *Layer) Flipped() int {
	n := 0
	for _, f := range l.Flags {
		if f != 0 {
			n++
		}
	}
	return n
}
