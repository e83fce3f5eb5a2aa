package tilescene

import (
	"fmt"
	"strings"
)

// Convention is the vertical-axis convention of the target renderer.
type Convention uint8

const (
	// DownwardY places the origin at the top-left corner with y growing down.
	// Grid rows map to y = row*tileHeight and no viewport size is needed.
	DownwardY Convention = iota

	// UpwardY places the origin at the bottom-left corner with y growing up.
	// Grid rows map to y = viewportHeight - row*tileHeight.
	UpwardY
)

// String returns "down" or "up".
func (c Convention) String() string {
	switch c {
	case DownwardY:
		return "down"
	case UpwardY:
		return "up"
	default:
		return fmt.Sprintf("Convention(%d)", uint8(c))
	}
}

// ParseConvention parses "up"/"upward" or "down"/"downward".
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "downward", "downward-y", "y-down":
		return DownwardY, nil
	case "up", "upward", "upward-y", "y-up":
		return UpwardY, nil
	default:
		return DownwardY, fmt.Errorf("tilescene: unknown convention %q", s)
	}
}

// ScanOrder is the order in which tileset rows are assigned sprite indices.
type ScanOrder uint8

const (
	// TopRowFirst numbers tiles left to right starting at the top image row.
	// This matches how Tiled numbers tileset tiles.
	TopRowFirst ScanOrder = iota

	// BottomRowFirst numbers tiles left to right starting at the bottom image
	// row, for formats that address tiles in bottom-up texture space.
	BottomRowFirst
)

// String returns "top" or "bottom".
func (o ScanOrder) String() string {
	switch o {
	case TopRowFirst:
		return "top"
	case BottomRowFirst:
		return "bottom"
	default:
		return fmt.Sprintf("ScanOrder(%d)", uint8(o))
	}
}

// ParseScanOrder parses "top" or "bottom".
func ParseScanOrder(s string) (ScanOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "top-first", "top-row-first":
		return TopRowFirst, nil
	case "bottom", "bottom-first", "bottom-row-first":
		return BottomRowFirst, nil
	default:
		return TopRowFirst, fmt.Errorf("tilescene: unknown scan order %q", s)
	}
}

// Pivot selects where a placement is anchored inside its tile.
type Pivot uint8

const (
	// PivotNone anchors placements at the tile corner nearest the origin.
	PivotNone Pivot = iota

	// PivotCenter anchors placements at the tile center.
	PivotCenter
)

// String returns "none" or "center".
func (p Pivot) String() string {
	switch p {
	case PivotNone:
		return "none"
	case PivotCenter:
		return "center"
	default:
		return fmt.Sprintf("Pivot(%d)", uint8(p))
	}
}

// ParsePivot parses "none" or "center".
func ParsePivot(s string) (Pivot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "corner", "":
		return PivotNone, nil
	case "center", "centre", "half":
		return PivotCenter, nil
	default:
		return PivotNone, fmt.Errorf("tilescene: unknown pivot %q", s)
	}
}

// Profile bundles the rendering-convention choices of one renderer family.
type Profile struct {
	Convention Convention
	Pivot      Pivot
	ScanOrder  ScanOrder
	Depth      float32
}

// Predefined profiles for the two renderer families.
var (
	// ProfileUpwardY targets bottom-left-origin renderers that anchor sprites
	// at their center and draw tiles at depth 1.
	ProfileUpwardY = Profile{Convention: UpwardY, Pivot: PivotCenter, ScanOrder: TopRowFirst, Depth: 1}

	// ProfileDownwardY targets top-left-origin renderers (ebiten, gpucontext)
	// that draw sprites from their top-left corner.
	ProfileDownwardY = Profile{Convention: DownwardY, Pivot: PivotNone, ScanOrder: TopRowFirst, Depth: 0}
)

// String returns a compact description such as "up/center/top/z=1".
func (p Profile) String() string {
	return fmt.Sprintf("%s/%s/%s/z=%g", p.Convention, p.Pivot, p.ScanOrder, p.Depth)
}
