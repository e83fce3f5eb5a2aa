package tilescene

import "fmt"

// TileGrid is one tile layer as rows of global tile ids.
// Row 0 is the topmost row as authored. A gid of 0 marks an empty cell;
// gid N >= 1 selects sprite N-1.
type TileGrid [][]uint32

// NewTileGrid builds a grid from a row-major flat slice.
// It returns ErrRaggedGrid if len(flat) != width*height.
func NewTileGrid(width, height int, flat []uint32) (TileGrid, error) {
	if width < 0 || height < 0 || len(flat) != width*height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d layer", ErrRaggedGrid, len(flat), width, height)
	}
	g := make(TileGrid, height)
	for r := range height {
		g[r] = flat[r*width : (r+1)*width : (r+1)*width]
	}
	return g, nil
}

// Validate returns ErrRaggedGrid if any row differs in length from row 0.
func (g TileGrid) Validate() error {
	if len(g) == 0 {
		return nil
	}
	want := len(g[0])
	for r, row := range g {
		if len(row) != want {
			return fmt.Errorf("%w: row %d has %d cells, row 0 has %d", ErrRaggedGrid, r, len(row), want)
		}
	}
	return nil
}

// Size returns the grid width (columns) and height (rows).
// The width is taken from row 0.
func (g TileGrid) Size() (width, height int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g[0]), len(g)
}

// MaxGID returns the largest gid in the grid.
func (g TileGrid) MaxGID() uint32 {
	var m uint32
	for _, row := range g {
		for _, gid := range row {
			m = max(m, gid)
		}
	}
	return m
}

// MinGID returns the smallest non-zero gid, or 0 for an empty grid.
func (g TileGrid) MinGID() uint32 {
	var m uint32
	for _, row := range g {
		for _, gid := range row {
			if gid != 0 && (m == 0 || gid < m) {
				m = gid
			}
		}
	}
	return m
}

// Occupied returns the number of non-empty cells.
func (g TileGrid) Occupied() int {
	n := 0
	for _, row := range g {
		for _, gid := range row {
			if gid != 0 {
				n++
			}
		}
	}
	return n
}
