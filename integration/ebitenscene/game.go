// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenscene shows a tilescene scene in an ebiten window.
//
// Game implements ebiten.Game. The tileset is uploaded once as an
// ebiten.Image and every placement is drawn from a sub-image of it, so one
// frame costs one draw call per placement and no texture uploads.
//
// Keys: arrows pan the camera, G toggles the cell grid, Escape quits.
package ebitenscene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/gogpu/tilescene"
)

// ErrNilScene is returned when a nil scene or source is passed.
var ErrNilScene = errors.New("ebitenscene: nil scene")

// panSpeed is the camera speed in pixels per tick.
const panSpeed = 4

// ImageSource supplies the whole tileset image.
// *assets.Texture implements ImageSource.
type ImageSource interface {
	Image() *image.NRGBA
}

// Options configures a Game.
type Options struct {
	// Title is the window title.
	Title string

	// ClearColor fills the screen before tiles are drawn.
	ClearColor color.Color

	// Scale multiplies the window size. Zero means 1.
	Scale int
}

type loaded struct {
	scene   *tilescene.Scene
	atlas   *ebiten.Image
	sprites []*ebiten.Image
}

type update struct {
	scene *tilescene.Scene
	src   ImageSource
}

// Game draws one scene and swaps it atomically on SetScene.
type Game struct {
	opts    Options
	current *loaded
	pending atomic.Pointer[update]
	camera  tilescene.Camera
	grid    bool
}

// New returns a game showing scene.
func New(scene *tilescene.Scene, src ImageSource, opts Options) (*Game, error) {
	g := &Game{opts: opts}
	if g.opts.Scale <= 0 {
		g.opts.Scale = 1
	}
	if g.opts.ClearColor == nil {
		g.opts.ClearColor = colornames.Black
	}
	if err := g.SetScene(scene, src); err != nil {
		return nil, err
	}
	return g, nil
}

// SetScene queues scene for display from the next Update.
// It is safe to call from any goroutine.
func (g *Game) SetScene(scene *tilescene.Scene, src ImageSource) error {
	if scene == nil || scene.Atlas == nil || src == nil {
		return ErrNilScene
	}
	g.pending.Store(&update{scene: scene, src: src})
	return nil
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	vp := g.viewport()
	ebiten.SetWindowSize(int(vp.Width)*g.opts.Scale, int(vp.Height)*g.opts.Scale)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebitenscene: %w", err)
	}
	return nil
}

// Update applies a queued scene and handles input.
func (g *Game) Update() error {
	if u := g.pending.Swap(nil); u != nil {
		g.load(u.scene, u.src)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.grid = !g.grid
	}

	// World y grows up under UpwardY, so "up" pans toward larger y there.
	up := float32(-panSpeed)
	if g.current != nil && g.current.scene.Profile.Convention == tilescene.UpwardY {
		up = panSpeed
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyLeft):
		g.camera = g.camera.Pan(-panSpeed, 0)
	case ebiten.IsKeyPressed(ebiten.KeyRight):
		g.camera = g.camera.Pan(panSpeed, 0)
	case ebiten.IsKeyPressed(ebiten.KeyUp):
		g.camera = g.camera.Pan(0, up)
	case ebiten.IsKeyPressed(ebiten.KeyDown):
		g.camera = g.camera.Pan(0, -up)
	}
	return nil
}

func (g *Game) load(s *tilescene.Scene, src ImageSource) {
	if g.current != nil && g.current.atlas != nil {
		g.current.atlas.Deallocate()
	}
	atlas := ebiten.NewImageFromImage(src.Image())
	sprites := make([]*ebiten.Image, s.Atlas.Len())
	for i, sd := range s.Atlas.Sprites {
		r := image.Rect(sd.Rect.X, sd.Rect.Y, sd.Rect.X+sd.Rect.Width, sd.Rect.Y+sd.Rect.Height)
		sprites[i] = atlas.SubImage(r).(*ebiten.Image)
	}
	g.current = &loaded{scene: s, atlas: atlas, sprites: sprites}
	g.camera = s.Camera

	tilescene.Logger().Info("ebiten scene loaded",
		"id", s.ID,
		"sprites", len(sprites),
		"placements", len(s.Placements))
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.ClearColor)
	if g.current == nil {
		return
	}
	s := g.current.scene
	tw, th := s.TileSize()

	ox, oy := g.camera.Origin()
	if s.Profile.Convention == tilescene.UpwardY {
		oy = -oy
	}

	op := &ebiten.DrawImageOptions{}
	for _, pl := range s.Placements {
		x, y := pl.DrawOrigin(s.Profile, s.Viewport.Height, tw, th)
		op.GeoM.Reset()
		op.GeoM.Translate(float64(x-ox), float64(y-oy))
		screen.DrawImage(g.current.sprites[pl.SpriteIndex], op)
	}

	if g.grid {
		drawGrid(screen, s.Width, s.Height, float32(tw), float32(th), -ox, -oy)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %d tiles  %.0f FPS",
		s.Profile, len(s.Placements), ebiten.ActualFPS()))
}

func drawGrid(dst *ebiten.Image, cols, rows int, tw, th, ox, oy float32) {
	w := float32(cols) * tw
	h := float32(rows) * th
	for c := 0; c <= cols; c++ {
		x := ox + float32(c)*tw
		vector.StrokeLine(dst, x, oy, x, oy+h, 1, colornames.Darkslategray, false)
	}
	for r := 0; r <= rows; r++ {
		y := oy + float32(r)*th
		vector.StrokeLine(dst, ox, y, ox+w, y, 1, colornames.Darkslategray, false)
	}
}

// Layout keeps the logical screen at the viewport size.
func (g *Game) Layout(_, _ int) (int, int) {
	vp := g.viewport()
	return max(1, int(vp.Width)), max(1, int(vp.Height))
}

func (g *Game) viewport() tilescene.Viewport {
	if u := g.pending.Load(); u != nil {
		return u.scene.Viewport
	}
	if g.current != nil {
		return g.current.scene.Viewport
	}
	return tilescene.Viewport{}
}
