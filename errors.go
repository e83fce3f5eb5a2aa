package tilescene

import "errors"

// Projection errors. All of them are fatal for the layer or tileset being
// processed; callers match them with errors.Is.
var (
	// ErrMalformedTileset is returned when the tileset image is not an exact
	// multiple of the tile size, or the texture disagrees with the metadata.
	ErrMalformedTileset = errors.New("tilescene: malformed tileset")

	// ErrRaggedGrid is returned when tile layer rows have unequal lengths.
	ErrRaggedGrid = errors.New("tilescene: ragged grid")

	// ErrSpriteIndexOutOfRange is returned when a gid resolves to a sprite
	// index beyond the atlas.
	ErrSpriteIndexOutOfRange = errors.New("tilescene: sprite index out of range")

	// ErrMissingTileset is returned when no tileset covers the gids of a layer.
	ErrMissingTileset = errors.New("tilescene: missing tileset")

	// ErrInvalidTileSize is returned when a tile width or height is not positive.
	ErrInvalidTileSize = errors.New("tilescene: invalid tile size")

	// ErrNilAtlas is returned when Project is called without an atlas.
	ErrNilAtlas = errors.New("tilescene: nil atlas")

	// ErrNoTileLayer is returned when a map has no tile layer to project.
	ErrNoTileLayer = errors.New("tilescene: map has no tile layer")
)
