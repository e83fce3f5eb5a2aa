// Package server publishes a tilescene scene over HTTP and websocket.
//
// The current scene lives behind an atomic pointer, so request handlers
// never block on a reload. Concurrent reloads share one load.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/tilescene"
	"github.com/gogpu/tilescene/assets"
	"github.com/gogpu/tilescene/preview"
)

// ErrNoScene is returned when no scene has been loaded yet.
var ErrNoScene = errors.New("server: no scene loaded")

// LoadFunc loads a scene and the texture its atlas was built from.
type LoadFunc func(ctx context.Context) (*tilescene.Scene, *assets.Texture, error)

// FileLoader returns a LoadFunc reading src from disk on every call.
func FileLoader(src assets.SceneSource, vp tilescene.Viewport, p tilescene.Profile) LoadFunc {
	return func(context.Context) (*tilescene.Scene, *assets.Texture, error) {
		return assets.LoadScene(src, vp, p)
	}
}

type current struct {
	scene    *tilescene.Scene
	texture  *assets.Texture
	loadedAt time.Time
}

// Server holds the published scene.
type Server struct {
	load     LoadFunc
	preview  []preview.Option
	cur      atomic.Pointer[current]
	group    singleflight.Group
	upgrader websocket.Upgrader
	newID    func() string
}

// Option configures a Server.
type Option func(*Server)

// WithPreviewOptions sets the options used by /v1/preview.png.
func WithPreviewOptions(opts ...preview.Option) Option {
	return func(s *Server) {
		s.preview = opts
	}
}

// WithCheckOrigin replaces the websocket origin check. The default accepts
// every origin.
func WithCheckOrigin(f func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = f
	}
}

// New returns a server loading scenes with load. No scene is loaded until
// Reload is called.
func New(load LoadFunc, opts ...Option) *Server {
	s := &Server{
		load: load,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scene returns the published scene and its texture.
func (s *Server) Scene() (*tilescene.Scene, *assets.Texture, error) {
	c := s.cur.Load()
	if c == nil {
		return nil, nil, ErrNoScene
	}
	return c.scene, c.texture, nil
}

// Reload loads a new scene, assigns it a fresh ID and publishes it.
// Calls that overlap an in-flight reload wait for it and share its result.
// On error the previously published scene stays in place.
func (s *Server) Reload(ctx context.Context) (*tilescene.Scene, error) {
	v, err, shared := s.group.Do("reload", func() (any, error) {
		scene, tex, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		c := &current{
			scene:    scene.WithID(s.newID()),
			texture:  tex,
			loadedAt: time.Now(),
		}
		s.cur.Store(c)
		tilescene.Logger().Info("scene published",
			slog.String("id", c.scene.ID),
			slog.String("profile", c.scene.Profile.String()),
			slog.Int("placements", len(c.scene.Placements)))
		return c.scene, nil
	})
	if err != nil {
		tilescene.Logger().Warn("scene reload failed", slog.Any("error", err))
		return nil, fmt.Errorf("server: reload: %w", err)
	}
	if shared {
		tilescene.Logger().Debug("reload shared", slog.String("id", v.(*tilescene.Scene).ID))
	}
	return v.(*tilescene.Scene), nil
}

// HTTPServer returns an http.Server serving the router on addr.
func (s *Server) HTTPServer(addr string, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
