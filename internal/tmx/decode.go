package tmx

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/lafriks/go-tiled"
)

// Load decodes the map at path. External tilesets and image sources are
// resolved relative to the map's directory.
func Load(path string) (*Map, error) {
	path = filepath.Clean(path)
	tm, err := tiled.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tmx: load %s: %w", path, err)
	}
	return convert(tm)
}

// Decode decodes a map from r. External tilesets are resolved relative to
// the working directory.
func Decode(r io.Reader) (*Map, error) {
	tm, err := tiled.LoadReader("", r)
	if err != nil {
		return nil, fmt.Errorf("tmx: decode map: %w", err)
	}
	return convert(tm)
}

// convert keeps the parts of a parsed map that scene projection needs and
// turns layer tiles back into gids.
func convert(tm *tiled.Map) (*Map, error) {
	if tm.Infinite {
		return nil, ErrInfiniteMap
	}
	if tm.Orientation != "" && tm.Orientation != "orthogonal" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOrientation, tm.Orientation)
	}

	m := &Map{
		Version:     tm.Version,
		Orientation: tm.Orientation,
		RenderOrder: tm.RenderOrder,
		Width:       tm.Width,
		Height:      tm.Height,
		TileWidth:   tm.TileWidth,
		TileHeight:  tm.TileHeight,
		Tilesets:    make([]Tileset, 0, len(tm.Tilesets)),
		Layers:      make([]Layer, 0, len(tm.Layers)),
	}

	for _, ts := range tm.Tilesets {
		m.Tilesets = append(m.Tilesets, newTileset(ts))
	}

	for _, tl := range tm.Layers {
		l, err := newLayer(tl, tm.Width, tm.Height)
		if err != nil {
			return nil, fmt.Errorf("tmx: layer %q: %w", tl.Name, err)
		}
		m.Layers = append(m.Layers, l)
	}

	return m, nil
}

func newTileset(ts *tiled.Tileset) Tileset {
	out := Tileset{
		FirstGID:   ts.FirstGID,
		Name:       ts.Name,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		TileCount:  ts.TileCount,
		Columns:    ts.Columns,
		Spacing:    ts.Spacing,
		Margin:     ts.Margin,
		Source:     ts.Source,
	}
	if ts.Image == nil {
		return out
	}
	out.Image = Image{
		Source: ts.Image.Source,
		Width:  ts.Image.Width,
		Height: ts.Image.Height,
	}
	// GetFileFullPath joins the directory of the .tmx or .tsx file the
	// tileset was read from.
	if src := ts.Image.Source; src != "" && !filepath.IsAbs(src) {
		out.imagePath = ts.GetFileFullPath(src)
	}
	return out
}

func newLayer(tl *tiled.Layer, width, height int) (Layer, error) {
	n := width * height
	if len(tl.Tiles) != n {
		return Layer{}, fmt.Errorf("%w: %d tiles for %dx%d", ErrLayerSize, len(tl.Tiles), width, height)
	}

	l := Layer{
		ID:      int(tl.ID),
		Name:    tl.Name,
		Width:   width,
		Height:  height,
		Visible: tl.Visible,
		GIDs:    make([]uint32, n),
		Flags:   make([]uint8, n),
	}
	for i, t := range tl.Tiles {
		l.GIDs[i], l.Flags[i] = tileGID(t)
	}
	return l, nil
}

// tileGID rebuilds the gid and flip flags of a parsed layer tile.
func tileGID(t *tiled.LayerTile) (gid uint32, flags uint8) {
	if t == nil || t.Nil || t.Tileset == nil {
		return 0, 0
	}
	var raw uint32
	if t.HorizontalFlip {
		raw |= FlippedHorizontally
	}
	if t.VerticalFlip {
		raw |= FlippedVertically
	}
	if t.DiagonalFlip {
		raw |= FlippedDiagonally
	}
	return t.Tileset.FirstGID + t.ID, uint8(raw >> flagShift)
}
