package tilescene

import "fmt"

// Placement is one drawable tile produced by Project.
type Placement struct {
	// SpriteIndex selects a sprite in the atlas.
	SpriteIndex int

	// Position is the world-space (x, y, z) of the tile anchor.
	Position [3]float32

	// Row and Column locate the source cell in the grid.
	Row, Column int
}

// ScreenPosition converts the placement's world position to top-left-origin
// pixel coordinates, the space image compositors and most GPU blitters use.
// For UpwardY the y axis is mirrored about viewportHeight.
func (pl Placement) ScreenPosition(c Convention, viewportHeight float32) (x, y float32) {
	x = pl.Position[0]
	y = pl.Position[1]
	if c == UpwardY {
		y = viewportHeight - y
	}
	return x, y
}

// DrawOrigin returns the top-left screen pixel at which the placement's
// sprite is drawn, undoing the anchor chosen by p.Pivot.
func (pl Placement) DrawOrigin(p Profile, viewportHeight float32, tileWidth, tileHeight int) (x, y float32) {
	x, y = pl.ScreenPosition(p.Convention, viewportHeight)
	if p.Pivot == PivotCenter {
		x -= float32(tileWidth) / 2
		y -= float32(tileHeight) / 2
	}
	return x, y
}

// Project converts a tile grid into placements, one per non-empty cell,
// in row-major order.
//
// Positions follow the convention chosen with WithConvention (DownwardY by
// default):
//
//	x = col*tileWidth
//	y = row*tileHeight                      (DownwardY)
//	y = viewportHeight - row*tileHeight     (UpwardY)
//
// PivotCenter moves the anchor half a tile into the tile along both axes.
// viewportHeight is ignored for DownwardY.
//
// The grid is validated completely before any placement is built: a ragged
// grid yields ErrRaggedGrid and a gid beyond the atlas yields
// ErrSpriteIndexOutOfRange. On error the returned slice is nil.
func Project(grid TileGrid, atlas *SpriteAtlas, viewportHeight float32, tileWidth, tileHeight int, opts ...ProjectOption) ([]Placement, error) {
	o := defaultProjectOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if atlas == nil {
		return nil, ErrNilAtlas
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTileSize, tileWidth, tileHeight)
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	n := 0
	count := atlas.Len()
	for r, row := range grid {
		for c, gid := range row {
			if gid == 0 {
				continue
			}
			if uint64(gid-1) >= uint64(count) {
				return nil, fmt.Errorf("%w: gid %d at row %d, column %d (atlas has %d sprites)",
					ErrSpriteIndexOutOfRange, gid, r, c, count)
			}
			n++
		}
	}

	tw := float32(tileWidth)
	th := float32(tileHeight)
	var offX, offY float32
	if o.pivot == PivotCenter {
		offX = tw / 2
		offY = th / 2
	}

	placements := make([]Placement, 0, n)
	for r, row := range grid {
		y := rowY(o.convention, r, th, offY, viewportHeight)
		for c, gid := range row {
			if gid == 0 {
				continue
			}
			placements = append(placements, Placement{
				SpriteIndex: int(gid - 1),
				Position:    [3]float32{float32(c)*tw + offX, y, o.depth},
				Row:         r,
				Column:      c,
			})
		}
	}

	w, h := grid.Size()
	Logger().Debug("layer projected",
		"width", w,
		"height", h,
		"placements", len(placements),
		"convention", o.convention.String(),
		"pivot", o.pivot.String())

	return placements, nil
}

// rowY returns the y coordinate of grid row r.
func rowY(c Convention, r int, th, offY, viewportHeight float32) float32 {
	if c == UpwardY {
		return viewportHeight - float32(r)*th - offY
	}
	return float32(r)*th + offY
}
