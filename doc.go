// Package tilescene projects grid-based tile maps into renderable scenes.
//
// # Overview
//
// A tile map names its tiles by global tile id (gid) on a grid whose row 0 is
// the top row. tilescene turns that into two things a renderer understands:
//
//   - a SpriteAtlas: the tileset image sliced into an ordered sprite sequence
//   - a list of Placements: one (sprite index, world position) per non-empty cell
//
// # Quick Start
//
//	md, err := tilescene.LoadTMX("resources/map.tmx")
//	if err != nil {
//	    return err
//	}
//	tex, err := assets.Load(md.Tilesets[0].ImagePath)
//	if err != nil {
//	    return err
//	}
//	scene, err := tilescene.LoadScene(md, tex, tilescene.Viewport{Width: 1024, Height: 768},
//	    tilescene.ProfileDownwardY)
//
// # Coordinate Conventions
//
// The map grid uses a top-left origin with y growing down. Renderers come in
// two families, selected once per projection with a Convention:
//
//   - DownwardY: origin at top-left, y = row*tileHeight
//   - UpwardY: origin at bottom-left, y = viewportHeight - row*tileHeight
//
// In both conventions row 0 is drawn at the top of the screen. A Pivot moves
// the placement anchor to the tile center, and Profile bundles convention,
// pivot, scan order and depth for a renderer family.
//
// # Sprite Indices
//
// A gid N >= 1 selects sprite N-1. With the default TopRowFirst scan order the
// tile at image row r, column c is sprite r*columns + c, which is how Tiled
// numbers tiles. BottomRowFirst numbers rows from the bottom of the image for
// formats whose texture space is bottom-up.
//
// # Errors
//
// Malformed input is never partially projected: ErrMalformedTileset,
// ErrRaggedGrid, ErrSpriteIndexOutOfRange and ErrMissingTileset abort the
// whole operation.
//
// # Related Packages
//
//   - assets: texture loading and file-based LoadScene
//   - preview: software compositing to PNG
//   - server: HTTP and websocket publishing of a scene
//   - integration/gpuscene: drawing through gpucontext
//   - integration/ebitenscene: an ebiten viewer
package tilescene
