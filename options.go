package tilescene

// AtlasOption configures BuildAtlas.
//
// Example:
//
//	// Default: top row first, no pivot offset
//	atlas, err := tilescene.BuildAtlas(ts, tex)
//
//	// Bottom-up texture space with centered sprites
//	atlas, err := tilescene.BuildAtlas(ts, tex,
//	    tilescene.WithScanOrder(tilescene.BottomRowFirst),
//	    tilescene.WithSpritePivot(tilescene.PivotCenter))
type AtlasOption func(*atlasOptions)

// atlasOptions holds optional configuration for atlas construction.
type atlasOptions struct {
	order  ScanOrder
	pivot  Pivot
	offset [2]float32
}

// defaultAtlasOptions returns the default atlas options.
func defaultAtlasOptions() atlasOptions {
	return atlasOptions{order: TopRowFirst}
}

// WithScanOrder selects the order in which tileset rows receive sprite indices.
func WithScanOrder(order ScanOrder) AtlasOption {
	return func(o *atlasOptions) {
		o.order = order
	}
}

// WithSpriteOffset sets an explicit pivot offset in pixels for every sprite.
// It is added to any offset implied by WithSpritePivot.
func WithSpriteOffset(x, y float32) AtlasOption {
	return func(o *atlasOptions) {
		o.offset = [2]float32{x, y}
	}
}

// WithSpritePivot derives the sprite offset from the tile size:
// PivotCenter yields a half-tile offset, PivotNone yields none.
func WithSpritePivot(p Pivot) AtlasOption {
	return func(o *atlasOptions) {
		o.pivot = p
	}
}

// ProjectOption configures Project.
type ProjectOption func(*projectOptions)

// projectOptions holds optional configuration for projection.
type projectOptions struct {
	convention Convention
	pivot      Pivot
	depth      float32
}

// defaultProjectOptions returns the default projection options.
func defaultProjectOptions() projectOptions {
	return projectOptions{
		convention: ProfileDownwardY.Convention,
		pivot:      ProfileDownwardY.Pivot,
		depth:      ProfileDownwardY.Depth,
	}
}

// WithConvention selects the vertical-axis convention for the whole run.
func WithConvention(c Convention) ProjectOption {
	return func(o *projectOptions) {
		o.convention = c
	}
}

// WithPivot selects the placement anchor inside each tile.
func WithPivot(p Pivot) ProjectOption {
	return func(o *projectOptions) {
		o.pivot = p
	}
}

// WithDepth sets the constant z value of every placement.
func WithDepth(z float32) ProjectOption {
	return func(o *projectOptions) {
		o.depth = z
	}
}

// WithProfile applies the convention, pivot and depth of p.
// The scan order of a profile applies to BuildAtlas; see Profile.AtlasOptions.
func WithProfile(p Profile) ProjectOption {
	return func(o *projectOptions) {
		o.convention = p.Convention
		o.pivot = p.Pivot
		o.depth = p.Depth
	}
}

// AtlasOptions returns the atlas options implied by p.
func (p Profile) AtlasOptions() []AtlasOption {
	return []AtlasOption{WithScanOrder(p.ScanOrder)}
}
