package tilescene

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/tilescene/internal/tmx"
)

// LoadTMX decodes a Tiled map file into MapData.
// Tile layers keep document order; flip flags are dropped because placements
// carry no rotation.
func LoadTMX(path string) (*MapData, error) {
	m, err := tmx.Load(path)
	if err != nil {
		return nil, err
	}
	return fromTMX(m)
}

func fromTMX(m *tmx.Map) (*MapData, error) {
	md := &MapData{
		Width:      m.Width,
		Height:     m.Height,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		Tilesets:   make([]TilesetDescriptor, 0, len(m.Tilesets)),
		Layers:     make([]TileGrid, 0, len(m.Layers)),
	}

	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		if ts.Spacing != 0 || ts.Margin != 0 {
			return nil, fmt.Errorf("%w: tileset %q uses spacing %d and margin %d",
				ErrMalformedTileset, ts.Name, ts.Spacing, ts.Margin)
		}
		md.Tilesets = append(md.Tilesets, TilesetDescriptor{
			Name:        ts.Name,
			FirstGID:    ts.FirstGID,
			ImagePath:   ts.ImagePath(),
			TileWidth:   ts.TileWidth,
			TileHeight:  ts.TileHeight,
			ImageWidth:  ts.Image.Width,
			ImageHeight: ts.Image.Height,
		})
	}

	for i := range m.Layers {
		l := &m.Layers[i]
		grid, err := NewTileGrid(l.Width, l.Height, l.GIDs)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
		if n := l.Flipped(); n > 0 {
			Logger().Debug("flip flags dropped", slog.String("layer", l.Name), slog.Int("cells", n))
		}
		md.Layers = append(md.Layers, grid)
	}

	return md, nil
}
