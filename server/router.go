package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gogpu/tilescene"
	"github.com/gogpu/tilescene/preview"
)

// Router builds the /v1 router with middlewares and routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Scene-Id"},
		MaxAge:         300,
	}))

	r.Route("/v1", func(sub chi.Router) {
		sub.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		sub.Get("/scene", s.handleScene)
		sub.Get("/atlas.png", s.handleAtlas)
		sub.Get("/preview.png", s.handlePreview)
		sub.Post("/reload", s.handleReload)
		sub.Get("/ws", s.handleStream)
	})

	return r
}

// requestLogger logs one record per request on the package logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			tilescene.Logger().Info("http request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("elapsed", time.Since(start)))
		}()
		next.ServeHTTP(ww, r)
	})
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}

func sceneError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoScene) {
		errorJSON(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	errorJSON(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	scene, _, err := s.Scene()
	if err != nil {
		sceneError(w, err)
		return
	}
	w.Header().Set("X-Scene-Id", scene.ID)
	writeJSON(w, http.StatusOK, newSceneJSON(scene))
}

func (s *Server) handleAtlas(w http.ResponseWriter, r *http.Request) {
	scene, tex, err := s.Scene()
	if err != nil {
		sceneError(w, err)
		return
	}
	data, err := tex.PNG()
	if err != nil {
		tilescene.Logger().Warn("atlas encode failed", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Scene-Id", scene.ID)
	_, _ = w.Write(data)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	scene, tex, err := s.Scene()
	if err != nil {
		sceneError(w, err)
		return
	}
	img, err := preview.Render(scene, tex, s.preview...)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Scene-Id", scene.ID)
	if err := encodePNG(w, img); err != nil {
		tilescene.Logger().Warn("preview encode failed", slog.Any("error", err))
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	scene, err := s.Reload(r.Context())
	if err != nil {
		errorJSON(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("X-Scene-Id", scene.ID)
	writeJSON(w, http.StatusOK, newSceneJSON(scene))
}
