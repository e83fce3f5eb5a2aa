package server

import (
	"image"
	"image/png"
	"io"

	"github.com/gogpu/tilescene"
)

type viewportJSON struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

type spriteJSON struct {
	Index  int        `json:"index"`
	Rect   [4]int     `json:"rect"`
	UV     [4]float32 `json:"uv"`
	Offset [2]float32 `json:"offset"`
}

type atlasJSON struct {
	Tileset    string       `json:"tileset"`
	FirstGID   uint32       `json:"firstgid"`
	TileWidth  int          `json:"tile_width"`
	TileHeight int          `json:"tile_height"`
	Image      string       `json:"image,omitempty"`
	Order      string       `json:"order"`
	Sprites    []spriteJSON `json:"sprites"`
}

type entityJSON struct {
	Sprite   int        `json:"sprite"`
	Position [3]float32 `json:"position"`
	Row      int        `json:"row"`
	Column   int        `json:"column"`
}

type sceneJSON struct {
	ID         string       `json:"id"`
	Convention string       `json:"convention"`
	Pivot      string       `json:"pivot"`
	Depth      float32      `json:"depth"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Viewport   viewportJSON `json:"viewport"`
	Camera     [3]float32   `json:"camera"`
	Atlas      atlasJSON    `json:"atlas"`
	Entities   []entityJSON `json:"entities,omitempty"`
}

// sceneHeader is the scene without its entities, sent ahead of a stream.
func sceneHeader(s *tilescene.Scene) sceneJSON {
	a := s.Atlas
	sprites := make([]spriteJSON, len(a.Sprites))
	for i, sd := range a.Sprites {
		tc := sd.TexCoords()
		sprites[i] = spriteJSON{
			Index:  i,
			Rect:   [4]int{sd.Rect.X, sd.Rect.Y, sd.Rect.Width, sd.Rect.Height},
			UV:     [4]float32{tc.Left, tc.Bottom, tc.Right, tc.Top},
			Offset: sd.Offset,
		}
	}
	return sceneJSON{
		ID:         s.ID,
		Convention: s.Profile.Convention.String(),
		Pivot:      s.Profile.Pivot.String(),
		Depth:      s.Profile.Depth,
		Width:      s.Width,
		Height:     s.Height,
		Viewport:   viewportJSON{s.Viewport.Width, s.Viewport.Height},
		Camera:     s.Camera.Position,
		Atlas: atlasJSON{
			Tileset:    a.Tileset.Name,
			FirstGID:   a.Tileset.FirstGID,
			TileWidth:  a.Tileset.TileWidth,
			TileHeight: a.Tileset.TileHeight,
			Image:      a.Tileset.ImagePath,
			Order:      a.Order.String(),
			Sprites:    sprites,
		},
	}
}

func newEntityJSON(pl tilescene.Placement) entityJSON {
	return entityJSON{
		Sprite:   pl.SpriteIndex,
		Position: pl.Position,
		Row:      pl.Row,
		Column:   pl.Column,
	}
}

func newSceneJSON(s *tilescene.Scene) sceneJSON {
	sj := sceneHeader(s)
	sj.Entities = make([]entityJSON, len(s.Placements))
	for i, pl := range s.Placements {
		sj.Entities[i] = newEntityJSON(pl)
	}
	return sj
}

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
