// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuscene

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/tilescene"
	"github.com/gogpu/tilescene/internal/cache"
)

// Common errors returned by Renderer operations.
var (
	// ErrRendererClosed is returned when operations are attempted on a closed renderer.
	ErrRendererClosed = errors.New("gpuscene: renderer is closed")

	// ErrNilScene is returned when a nil scene or a scene without atlas is passed.
	ErrNilScene = errors.New("gpuscene: nil scene")

	// ErrNilSource is returned when no sprite source is passed.
	ErrNilSource = errors.New("gpuscene: nil sprite source")

	// ErrNoTextureCreator is returned when the draw context has no texture creator.
	ErrNoTextureCreator = errors.New("gpuscene: draw context has no TextureCreator")
)

// SpriteSource supplies packed RGBA pixels for one sprite rectangle.
// *assets.Texture implements SpriteSource.
type SpriteSource interface {
	SpriteRGBA(r tilescene.Rect) ([]byte, error)
}

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// Renderer draws one scene per frame.
type Renderer struct {
	scene    *tilescene.Scene
	src      SpriteSource
	textures *cache.Cache[int, gpucontext.Texture]
	retired  []gpucontext.Texture
	closed   bool
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	textureLimit int
}

// WithTextureLimit bounds the number of sprite textures kept on the GPU.
// Least recently drawn sprites are released first. Zero, the default,
// keeps every sprite the scene uses.
func WithTextureLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.textureLimit = n
		}
	}
}

// New creates a renderer for scene whose sprites are read from src.
func New(scene *tilescene.Scene, src SpriteSource, opts ...Option) (*Renderer, error) {
	if scene == nil || scene.Atlas == nil {
		return nil, ErrNilScene
	}
	if src == nil {
		return nil, ErrNilSource
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		scene: scene,
		src:   src,
	}
	// Evicted textures may still be referenced by the frame being recorded,
	// so they are destroyed at the start of the next frame.
	r.textures = cache.New(o.textureLimit, func(_ int, tex gpucontext.Texture) {
		r.retired = append(r.retired, tex)
	})
	return r, nil
}

// Scene returns the scene being drawn.
func (r *Renderer) Scene() *tilescene.Scene {
	return r.scene
}

// SetScene replaces the scene. Cached sprite textures are kept when the new
// scene uses the same atlas texture and tileset; otherwise they are retired.
func (r *Renderer) SetScene(scene *tilescene.Scene, src SpriteSource) error {
	if r.closed {
		return ErrRendererClosed
	}
	if scene == nil || scene.Atlas == nil {
		return ErrNilScene
	}
	if src == nil {
		return ErrNilSource
	}

	same := sameTexture(r.scene.Atlas.Texture, scene.Atlas.Texture) &&
		r.scene.Atlas.Tileset == scene.Atlas.Tileset &&
		r.scene.Atlas.Order == scene.Atlas.Order
	if !same {
		r.textures.Clear()
	}
	r.scene = scene
	r.src = src
	return nil
}

// sameTexture reports whether a and b are the same texture. Textures whose
// dynamic values cannot be compared are treated as different.
func sameTexture(a, b tilescene.Texture) bool {
	if a == nil || b == nil {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return a == b
}

// Textures returns the number of cached sprite textures.
func (r *Renderer) Textures() int {
	return r.textures.Len()
}

// Stats returns sprite texture cache statistics.
func (r *Renderer) Stats() cache.Stats {
	return r.textures.Stats()
}

// Draw draws every placement of the scene with the viewport's top-left
// corner at the window origin.
func (r *Renderer) Draw(dc gpucontext.TextureDrawer) error {
	return r.DrawAt(dc, 0, 0)
}

// DrawAt draws the scene offset by (x, y) window pixels.
func (r *Renderer) DrawAt(dc gpucontext.TextureDrawer, x, y float32) error {
	if r.closed {
		return ErrRendererClosed
	}
	// The previous frame has been submitted by now.
	r.destroyRetired()

	s := r.scene
	tw, th := s.TileSize()
	for _, pl := range s.Placements {
		tex, err := r.texture(dc, pl.SpriteIndex)
		if err != nil {
			return err
		}
		px, py := pl.DrawOrigin(s.Profile, s.Viewport.Height, tw, th)
		if err := dc.DrawTexture(tex, px+x, py+y); err != nil {
			return fmt.Errorf("gpuscene: draw sprite %d at row %d, column %d: %w",
				pl.SpriteIndex, pl.Row, pl.Column, err)
		}
	}
	return nil
}

// texture returns the cached GPU texture of sprite i, uploading it on first use.
func (r *Renderer) texture(dc gpucontext.TextureDrawer, i int) (gpucontext.Texture, error) {
	if tex, ok := r.textures.Get(i); ok {
		return tex, nil
	}

	sprite, ok := r.scene.Atlas.Sprite(i)
	if !ok {
		return nil, fmt.Errorf("%w: sprite %d", tilescene.ErrSpriteIndexOutOfRange, i)
	}
	data, err := r.src.SpriteRGBA(sprite.Rect)
	if err != nil {
		return nil, err
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return nil, ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(sprite.Rect.Width, sprite.Rect.Height, data)
	if err != nil {
		return nil, fmt.Errorf("gpuscene: NewTextureFromRGBA failed: %w", err)
	}
	r.textures.Set(i, tex)
	tilescene.Logger().Debug("sprite uploaded",
		slog.Int("sprite", i),
		slog.Int("cached", r.textures.Len()))
	return tex, nil
}

func (r *Renderer) destroyRetired() {
	for _, tex := range r.retired {
		destroy(tex)
	}
	r.retired = nil
}

func destroy(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// Close releases every texture the renderer created.
// Close is idempotent.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.textures.Clear()
	r.destroyRetired()
	r.scene = nil
	r.src = nil
	return nil
}
