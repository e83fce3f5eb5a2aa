package tilescene

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

type fakeTexture struct{ w, h int }

func (f fakeTexture) Size() (int, int) { return f.w, f.h }

// terrain4x2 is a 4 column, 2 row tileset of 64x64 tiles.
var terrain4x2 = TilesetDescriptor{
	Name:        "terrain",
	TileWidth:   64,
	TileHeight:  64,
	ImageWidth:  256,
	ImageHeight: 128,
}

func TestBuildAtlasDeterministic(t *testing.T) {
	a1, err := BuildAtlas(terrain4x2, fakeTexture{256, 128})
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	a2, err := BuildAtlas(terrain4x2, fakeTexture{256, 128})
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	if a1.Len() != 8 {
		t.Errorf("Len() = %d, want 8", a1.Len())
	}
	if !reflect.DeepEqual(a1.Sprites, a2.Sprites) {
		t.Error("two builds of the same tileset produced different sprites")
	}
}

func TestBuildAtlasScanOrder(t *testing.T) {
	tests := []struct {
		name  string
		order ScanOrder
		// index of the sprite for image (row, col)
		topLeft     int
		bottomRight int
	}{
		{"top row first", TopRowFirst, 0, 7},
		{"bottom row first", BottomRowFirst, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := BuildAtlas(terrain4x2, nil, WithScanOrder(tt.order))
			if err != nil {
				t.Fatalf("BuildAtlas() error = %v", err)
			}
			if a.Order != tt.order {
				t.Errorf("Order = %v, want %v", a.Order, tt.order)
			}

			if got := a.IndexOf(0, 0); got != tt.topLeft {
				t.Errorf("IndexOf(0, 0) = %d, want %d", got, tt.topLeft)
			}
			if got := a.IndexOf(1, 3); got != tt.bottomRight {
				t.Errorf("IndexOf(1, 3) = %d, want %d", got, tt.bottomRight)
			}

			s := a.Sprites[tt.topLeft]
			if s.Row != 0 || s.Column != 0 {
				t.Errorf("sprite %d at (%d, %d), want (0, 0)", tt.topLeft, s.Row, s.Column)
			}
			if s.Rect != (Rect{X: 0, Y: 0, Width: 64, Height: 64}) {
				t.Errorf("sprite %d Rect = %+v, want offset (0, 0)", tt.topLeft, s.Rect)
			}

			s = a.Sprites[tt.bottomRight]
			if s.Row != 1 || s.Column != 3 {
				t.Errorf("sprite %d at (%d, %d), want (1, 3)", tt.bottomRight, s.Row, s.Column)
			}
			if s.Rect != (Rect{X: 192, Y: 64, Width: 64, Height: 64}) {
				t.Errorf("sprite %d Rect = %+v, want offset (192, 64)", tt.bottomRight, s.Rect)
			}

			// Every index follows the documented formula.
			for i, s := range a.Sprites {
				row := s.Row
				if tt.order == BottomRowFirst {
					row = terrain4x2.Rows() - 1 - s.Row
				}
				if want := row*terrain4x2.Columns() + s.Column; i != want {
					t.Errorf("sprite (%d, %d) has index %d, want %d", s.Row, s.Column, i, want)
				}
				if s.Rect.X != s.Column*64 || s.Rect.Y != s.Row*64 {
					t.Errorf("sprite %d Rect = %+v, want (%d, %d)", i, s.Rect, s.Column*64, s.Row*64)
				}
			}
		})
	}
}

func TestTexCoordsRoundTrip(t *testing.T) {
	tilesets := []TilesetDescriptor{
		terrain4x2,
		{TileWidth: 48, TileHeight: 32, ImageWidth: 144, ImageHeight: 96},
		{TileWidth: 16, TileHeight: 16, ImageWidth: 80, ImageHeight: 48},
	}
	const eps = 1e-5

	for _, ts := range tilesets {
		for _, order := range []ScanOrder{TopRowFirst, BottomRowFirst} {
			a, err := BuildAtlas(ts, nil, WithScanOrder(order))
			if err != nil {
				t.Fatalf("BuildAtlas(%+v) error = %v", ts, err)
			}
			for i, s := range a.Sprites {
				tc := s.TexCoords()
				if tc.Left < 0 || tc.Right > 1 || tc.Bottom < 0 || tc.Top > 1 {
					t.Errorf("sprite %d TexCoords = %+v, want within [0,1]", i, tc)
				}
				if tc.Bottom >= tc.Top {
					t.Errorf("sprite %d TexCoords bottom %v >= top %v", i, tc.Bottom, tc.Top)
				}
				x, y, w, h := tc.PixelRect(ts.ImageWidth, ts.ImageHeight)
				if math.Abs(x-float64(s.Rect.X)) > eps || math.Abs(y-float64(s.Rect.Y)) > eps ||
					math.Abs(w-float64(s.Rect.Width)) > eps || math.Abs(h-float64(s.Rect.Height)) > eps {
					t.Errorf("sprite %d PixelRect = (%v, %v, %v, %v), want %+v", i, x, y, w, h, s.Rect)
				}
			}
		}
	}
}

func TestTexCoordsBottomRowStartsAtZero(t *testing.T) {
	a, err := BuildAtlas(terrain4x2, nil)
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	// Image row 1 is the bottom of the image, so its V range starts at 0.
	tc := a.Sprites[a.IndexOf(1, 0)].TexCoords()
	if tc.Bottom != 0 || tc.Top != 0.5 {
		t.Errorf("bottom-row TexCoords = %+v, want Bottom 0, Top 0.5", tc)
	}
	tc = a.Sprites[a.IndexOf(0, 3)].TexCoords()
	if tc.Left != 0.75 || tc.Right != 1 || tc.Top != 1 {
		t.Errorf("top-right TexCoords = %+v, want Left 0.75, Right 1, Top 1", tc)
	}
}

func TestBuildAtlasMalformed(t *testing.T) {
	tests := []struct {
		name    string
		tileset TilesetDescriptor
		texture Texture
	}{
		{"width not a multiple", TilesetDescriptor{TileWidth: 64, TileHeight: 64, ImageWidth: 250, ImageHeight: 128}, nil},
		{"height not a multiple", TilesetDescriptor{TileWidth: 64, TileHeight: 64, ImageWidth: 256, ImageHeight: 100}, nil},
		{"zero tile", TilesetDescriptor{TileWidth: 0, TileHeight: 64, ImageWidth: 256, ImageHeight: 128}, nil},
		{"zero image", TilesetDescriptor{TileWidth: 64, TileHeight: 64}, nil},
		{"texture mismatch", terrain4x2, fakeTexture{512, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := BuildAtlas(tt.tileset, tt.texture)
			if !errors.Is(err, ErrMalformedTileset) {
				t.Errorf("BuildAtlas() error = %v, want ErrMalformedTileset", err)
			}
			if a != nil {
				t.Error("BuildAtlas() returned an atlas on error")
			}
		})
	}
}

func TestBuildAtlasOffsets(t *testing.T) {
	a, err := BuildAtlas(terrain4x2, nil, WithSpritePivot(PivotCenter), WithSpriteOffset(1, -2))
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	want := [2]float32{33, 30}
	for i, s := range a.Sprites {
		if s.Offset != want {
			t.Fatalf("sprite %d Offset = %v, want %v", i, s.Offset, want)
		}
	}

	a, err = BuildAtlas(terrain4x2, nil)
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	if a.Sprites[0].Offset != [2]float32{} {
		t.Errorf("default Offset = %v, want zero", a.Sprites[0].Offset)
	}
}

func TestSpriteAtlasAccessors(t *testing.T) {
	a, err := BuildAtlas(terrain4x2, nil)
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	if _, ok := a.Sprite(8); ok {
		t.Error("Sprite(8) ok = true for an 8-sprite atlas")
	}
	if _, ok := a.Sprite(-1); ok {
		t.Error("Sprite(-1) ok = true")
	}
	if s, ok := a.Sprite(5); !ok || s.Row != 1 || s.Column != 1 {
		t.Errorf("Sprite(5) = %+v, %v, want row 1 column 1", s, ok)
	}
	if got := a.IndexOf(2, 0); got != -1 {
		t.Errorf("IndexOf(2, 0) = %d, want -1", got)
	}

	var nilAtlas *SpriteAtlas
	if nilAtlas.Len() != 0 {
		t.Error("nil atlas Len() != 0")
	}
}

func TestTilesetDescriptorCovers(t *testing.T) {
	ts := terrain4x2
	ts.FirstGID = 9
	tests := []struct {
		gid  uint32
		want bool
	}{
		{0, false},
		{8, false},
		{9, true},
		{16, true},
		{17, false},
	}
	for _, tt := range tests {
		if got := ts.Covers(tt.gid); got != tt.want {
			t.Errorf("Covers(%d) = %v, want %v", tt.gid, got, tt.want)
		}
	}

	ts.FirstGID = 0
	if !ts.Covers(1) || ts.Covers(9) {
		t.Error("zero FirstGID should behave like 1")
	}
}
