package tilescene

import (
	"fmt"
	"log/slog"
)

// MapData is a decoded tile map as consumed by LoadScene.
// Only the first entry of Layers is projected.
type MapData struct {
	// Width and Height are the map size in tiles.
	Width, Height int

	// TileWidth and TileHeight are the map grid cell size in pixels.
	// LoadScene projects with the tileset's tile size, not this one.
	TileWidth, TileHeight int

	Tilesets []TilesetDescriptor

	// Layers holds the tile layers in document order.
	Layers []TileGrid
}

// Viewport is the size of the render target in pixels.
type Viewport struct {
	Width, Height float32
}

// Scene is a projected tile layer ready to hand to a renderer.
// It is immutable once returned by LoadScene.
type Scene struct {
	// ID identifies one load of a scene. LoadScene leaves it empty; servers
	// assign one when publishing.
	ID string

	Atlas      *SpriteAtlas
	Placements []Placement
	Viewport   Viewport
	Camera     Camera
	Profile    Profile

	// Width and Height are the projected layer size in tiles.
	Width, Height int
}

// TileSize returns the tile size used for projection.
func (s *Scene) TileSize() (width, height int) {
	return s.Atlas.Tileset.TileWidth, s.Atlas.Tileset.TileHeight
}

// WithID returns a shallow copy of s carrying id.
func (s *Scene) WithID(id string) *Scene {
	c := *s
	c.ID = id
	return &c
}

// LoadScene builds the atlas for the first tile layer of m and projects it.
//
// The tileset is the one covering the smallest non-zero gid of the layer.
// Every non-zero gid must be covered by some tileset of the map, otherwise
// ErrMissingTileset is returned before any atlas or projection work. Gids
// are rebased so that the chosen tileset's FirstGID selects sprite 0.
//
// Placements are spaced by the chosen tileset's tile size. The map's own
// TileWidth and TileHeight are ignored when they differ. A zero viewport
// dimension is replaced by the layer extent in tileset tiles, so UpwardY
// scenes start at the top of the layer.
func LoadScene(m *MapData, texture Texture, vp Viewport, p Profile) (*Scene, error) {
	if m == nil || len(m.Layers) == 0 {
		return nil, ErrNoTileLayer
	}
	grid := m.Layers[0]
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	ts, err := selectTileset(m.Tilesets, grid)
	if err != nil {
		return nil, err
	}
	grid = rebase(grid, ts.firstGID())

	if m.TileWidth != ts.TileWidth || m.TileHeight != ts.TileHeight {
		Logger().Debug("tileset tile size differs from map grid",
			slog.Int("map_tile_width", m.TileWidth),
			slog.Int("map_tile_height", m.TileHeight),
			slog.Int("tile_width", ts.TileWidth),
			slog.Int("tile_height", ts.TileHeight))
	}

	cols, rows := grid.Size()
	if vp.Width == 0 {
		vp.Width = float32(cols * ts.TileWidth)
	}
	if vp.Height == 0 {
		vp.Height = float32(rows * ts.TileHeight)
	}

	atlas, err := BuildAtlas(ts, texture, p.AtlasOptions()...)
	if err != nil {
		return nil, err
	}
	placements, err := Project(grid, atlas, vp.Height, ts.TileWidth, ts.TileHeight, WithProfile(p))
	if err != nil {
		return nil, err
	}

	Logger().Info("scene loaded",
		slog.String("tileset", ts.Name),
		slog.Int("sprites", atlas.Len()),
		slog.Int("placements", len(placements)),
		slog.String("profile", p.String()))

	return &Scene{
		Atlas:      atlas,
		Placements: placements,
		Viewport:   vp,
		Camera:     NewCamera(vp.Width, vp.Height),
		Profile:    p,
		Width:      cols,
		Height:     rows,
	}, nil
}

// LayerTileset returns the tileset LoadScene would use for m, so callers can
// load the matching texture first.
func (m *MapData) LayerTileset() (TilesetDescriptor, error) {
	if len(m.Layers) == 0 {
		return TilesetDescriptor{}, ErrNoTileLayer
	}
	if err := m.Layers[0].Validate(); err != nil {
		return TilesetDescriptor{}, err
	}
	return selectTileset(m.Tilesets, m.Layers[0])
}

// selectTileset picks the tileset for a layer and checks gid coverage.
func selectTileset(tilesets []TilesetDescriptor, grid TileGrid) (TilesetDescriptor, error) {
	if len(tilesets) == 0 {
		return TilesetDescriptor{}, fmt.Errorf("%w: map declares no tilesets", ErrMissingTileset)
	}

	minGID := grid.MinGID()
	if minGID == 0 {
		return tilesets[0], nil
	}

	chosen := -1
	for r, row := range grid {
		for c, gid := range row {
			if gid == 0 {
				continue
			}
			i := coveringTileset(tilesets, gid)
			if i < 0 {
				return TilesetDescriptor{}, fmt.Errorf("%w: gid %d at row %d, column %d",
					ErrMissingTileset, gid, r, c)
			}
			if gid == minGID {
				chosen = i
			}
		}
	}
	return tilesets[chosen], nil
}

func coveringTileset(tilesets []TilesetDescriptor, gid uint32) int {
	for i, ts := range tilesets {
		if ts.Covers(gid) {
			return i
		}
	}
	return -1
}

// rebase shifts gids so that first maps to 1. The input grid is not modified.
func rebase(grid TileGrid, first uint32) TileGrid {
	if first <= 1 {
		return grid
	}
	shift := first - 1
	out := make(TileGrid, len(grid))
	for r, row := range grid {
		out[r] = make([]uint32, len(row))
		for c, gid := range row {
			// gid >= first here: the chosen tileset covers the smallest gid.
			if gid != 0 {
				out[r][c] = gid - shift
			}
		}
	}
	Logger().Debug("gids rebased", slog.Uint64("firstgid", uint64(first)))
	return out
}
