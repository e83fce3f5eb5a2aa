package assets

import (
	"fmt"

	"github.com/gogpu/tilescene"
)

// SceneSource names the files a scene is loaded from.
type SceneSource struct {
	// MapPath is the Tiled .tmx file.
	MapPath string

	// TexturePath overrides the tileset image referenced by the map.
	TexturePath string
}

// LoadScene decodes the map, loads the texture of the tileset used by its
// first layer and projects the layer with profile p.
func LoadScene(src SceneSource, vp tilescene.Viewport, p tilescene.Profile) (*tilescene.Scene, *Texture, error) {
	md, err := tilescene.LoadTMX(src.MapPath)
	if err != nil {
		return nil, nil, err
	}

	ts, err := md.LayerTileset()
	if err != nil {
		return nil, nil, err
	}

	path := src.TexturePath
	if path == "" {
		path = ts.ImagePath
	}
	if path == "" {
		return nil, nil, fmt.Errorf("%w: tileset %q has no image", tilescene.ErrMalformedTileset, ts.Name)
	}

	tex, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	scene, err := tilescene.LoadScene(md, tex, vp, p)
	if err != nil {
		return nil, nil, err
	}
	return scene, tex, nil
}
