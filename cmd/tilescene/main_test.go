package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="3" height="2" tilewidth="8" tileheight="8" infinite="0">
 <tileset firstgid="1" name="tiles" tilewidth="8" tileheight="8" tilecount="2" columns="2">
  <image source="tiles.png" width="16" height="8"/>
 </tileset>
 <layer id="1" name="ground" width="3" height="2">
  <data encoding="csv">1,2,0,0,1,2</data>
 </layer>
</map>`

func writeMap(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := range 8 {
		for x := range 16 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: 90, B: 160, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "tiles.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	path := filepath.Join(dir, "map.tmx")
	if err := os.WriteFile(path, []byte(testTMX), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	path := writeMap(t)
	out, err := execute(t, "inspect", "--env-file", "", "--log-level", "error", "--map", path, "--sprites")
	if err != nil {
		t.Fatalf("inspect error = %v\n%s", err, out)
	}
	for _, want := range []string{
		"tileset   tiles (firstgid 1)",
		"atlas     2 sprites, top row first",
		"layer     3 x 2 cells",
		"placed    4 of 6 cells",
		"profile   down/none/top/z=0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestRender(t *testing.T) {
	path := writeMap(t)
	output := filepath.Join(t.TempDir(), "out.png")
	out, err := execute(t, "render", "--env-file", "", "--log-level", "error",
		"--map", path, "--convention", "up", "-o", output, "--grid")
	if err != nil {
		t.Fatalf("render error = %v\n%s", err, out)
	}
	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("decode rendered PNG: %v", err)
	}
}

func TestBadConvention(t *testing.T) {
	path := writeMap(t)
	if _, err := execute(t, "inspect", "--env-file", "", "--map", path, "--convention", "sideways"); err == nil {
		t.Error("inspect accepted --convention sideways")
	}
	convention = ""
}
