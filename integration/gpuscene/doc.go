// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuscene draws tilescene scenes through a gpucontext.TextureDrawer.
//
// The data flow is:
//
//	Scene placements -> sprite pixels (CPU) -> one GPU texture per sprite -> window
//
// # Usage
//
//	r, err := gpuscene.New(scene, tex)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = r.Draw(dc.AsTextureDrawer())
//	})
//
// Sprite textures are created lazily the first time a sprite is drawn and
// reused for every placement of that sprite. Replacing the scene with one
// built on a different atlas retires the cached textures; they are destroyed
// when the next frame starts. WithTextureLimit bounds the cache, releasing the
// least recently drawn sprites the same way.
//
// # Coordinates
//
// gpucontext draws with a top-left origin, so placements are converted with
// Placement.DrawOrigin. Scenes projected with either Profile render the same.
//
// # Thread Safety
//
// Renderer is NOT safe for concurrent use. Draw from the render goroutine only.
package gpuscene
