package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tilescene"
)

// tileColor is the fill color of tile (row, col) in the test tileset.
func tileColor(row, col int) color.NRGBA {
	return color.NRGBA{R: uint8(40 * col), G: uint8(100 * row), B: 200, A: 255}
}

// tilesetImage returns a cols x rows tileset of size x size tiles, each
// filled with tileColor.
func tilesetImage(cols, rows, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cols*size, rows*size))
	for y := range rows * size {
		for x := range cols * size {
			img.SetNRGBA(x, y, tileColor(y/size, x/size))
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.png")
	writePNG(t, path, tilesetImage(4, 2, 8))

	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if w, h := tex.Size(); w != 32 || h != 16 {
		t.Errorf("Size() = %dx%d, want 32x16", w, h)
	}
	if tex.Path() != path || tex.SourceFormat() != "png" {
		t.Errorf("Path() = %q, SourceFormat() = %q", tex.Path(), tex.SourceFormat())
	}
	if tex.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", tex.Format())
	}

	data, err := tex.PNG()
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	again, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if w, h := again.Size(); w != 32 || h != 16 {
		t.Errorf("decoded Size() = %dx%d", w, h)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestSpriteRGBA(t *testing.T) {
	tex, err := FromImage(tilesetImage(4, 2, 8))
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	atlas, err := tilescene.BuildAtlas(tilescene.TilesetDescriptor{
		TileWidth: 8, TileHeight: 8, ImageWidth: 32, ImageHeight: 16,
	}, tex)
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}

	for i, s := range atlas.Sprites {
		data, err := tex.SpriteRGBA(s.Rect)
		if err != nil {
			t.Fatalf("SpriteRGBA(%d) error = %v", i, err)
		}
		if len(data) != 8*8*4 {
			t.Fatalf("sprite %d has %d bytes, want 256", i, len(data))
		}
		want := tileColor(s.Row, s.Column)
		for p := 0; p < len(data); p += 4 {
			got := color.NRGBA{R: data[p], G: data[p+1], B: data[p+2], A: data[p+3]}
			if got != want {
				t.Fatalf("sprite %d pixel %d = %v, want %v", i, p/4, got, want)
			}
		}

		sub, err := tex.SubImage(s.Rect)
		if err != nil {
			t.Fatalf("SubImage(%d) error = %v", i, err)
		}
		if sub.NRGBAAt(7, 7) != want {
			t.Errorf("SubImage(%d) corner = %v, want %v", i, sub.NRGBAAt(7, 7), want)
		}
	}

	// Returned bytes are a copy.
	data, _ := tex.SpriteRGBA(atlas.Sprites[0].Rect)
	data[0] = 255
	if tex.Image().NRGBAAt(0, 0).R != 0 {
		t.Error("SpriteRGBA() aliases texture pixels")
	}

	row, err := tex.SpriteRGBA(tilescene.Rect{Width: 32, Height: 8})
	if err != nil {
		t.Fatalf("SpriteRGBA(full row) error = %v", err)
	}
	row[0] = 255
	if tex.Image().NRGBAAt(0, 0).R != 0 {
		t.Error("SpriteRGBA(full row) aliases texture pixels")
	}
}

func TestSpriteBounds(t *testing.T) {
	tex, _ := FromImage(tilesetImage(2, 2, 8))
	for _, r := range []tilescene.Rect{
		{X: 8, Y: 8, Width: 16, Height: 8},
		{X: -1, Y: 0, Width: 8, Height: 8},
		{X: 0, Y: 0, Width: 0, Height: 8},
	} {
		if _, err := tex.SpriteRGBA(r); !errors.Is(err, ErrSpriteBounds) {
			t.Errorf("SpriteRGBA(%+v) error = %v, want ErrSpriteBounds", r, err)
		}
	}
}

func TestNilTextureSize(t *testing.T) {
	var tex *Texture
	if w, h := tex.Size(); w != 0 || h != 0 {
		t.Errorf("nil Size() = %dx%d", w, h)
	}
}

const sceneTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="8" tileheight="8" infinite="0">
 <tileset firstgid="1" name="tiles" tilewidth="8" tileheight="8" tilecount="8" columns="4">
  <image source="%s" width="32" height="16"/>
 </tileset>
 <layer id="1" name="ground" width="2" height="2">
  <data encoding="csv">1,2,0,8</data>
 </layer>
</map>`

func writeScene(t *testing.T, imageSource string) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "tiles.png"), tilesetImage(4, 2, 8))
	path := filepath.Join(dir, "map.tmx")
	if err := os.WriteFile(path, []byte(fmt.Sprintf(sceneTMX, imageSource)), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	path := writeScene(t, "tiles.png")

	scene, tex, err := LoadScene(SceneSource{MapPath: path}, tilescene.Viewport{}, tilescene.ProfileDownwardY)
	if err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if scene.Atlas.Texture != tex {
		t.Error("scene atlas does not hold the loaded texture")
	}
	if len(scene.Placements) != 3 {
		t.Errorf("len(placements) = %d, want 3", len(scene.Placements))
	}
	if scene.Viewport != (tilescene.Viewport{Width: 16, Height: 16}) {
		t.Errorf("Viewport = %+v", scene.Viewport)
	}
}

func TestLoadSceneTextureOverride(t *testing.T) {
	path := writeScene(t, "missing.png")
	if _, _, err := LoadScene(SceneSource{MapPath: path}, tilescene.Viewport{}, tilescene.ProfileDownwardY); err == nil {
		t.Fatal("LoadScene() with a missing image succeeded")
	}

	override := filepath.Join(filepath.Dir(path), "tiles.png")
	_, tex, err := LoadScene(SceneSource{MapPath: path, TexturePath: override},
		tilescene.Viewport{}, tilescene.ProfileUpwardY)
	if err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if tex.Path() != override {
		t.Errorf("texture Path() = %q, want %q", tex.Path(), override)
	}
}

func TestLoadSceneTextureMismatch(t *testing.T) {
	path := writeScene(t, "small.png")
	writePNG(t, filepath.Join(filepath.Dir(path), "small.png"), tilesetImage(2, 2, 8))

	_, _, err := LoadScene(SceneSource{MapPath: path}, tilescene.Viewport{}, tilescene.ProfileDownwardY)
	if !errors.Is(err, tilescene.ErrMalformedTileset) {
		t.Errorf("LoadScene() error = %v, want ErrMalformedTileset", err)
	}
}
