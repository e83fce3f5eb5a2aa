package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/tilescene"
	"github.com/gogpu/tilescene/server"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scene over HTTP and websocket",
	Long: `serve publishes the scene under /v1: /health, /scene, /atlas.png,
/preview.png, POST /reload and the /ws entity stream. SIGHUP reloads the map.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}

		srv := server.New(
			server.FileLoader(sceneSource(cfg), cfg.Viewport(), cfg.Profile),
			server.WithPreviewOptions(previewOptions(cfg)...),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := srv.Reload(ctx); err != nil {
			return err
		}

		httpServer := srv.HTTPServer(cfg.Addr, cfg.ReadTimeout, cfg.WriteTimeout)
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			tilescene.Logger().Info("server listening", "addr", cfg.Addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hup:
					// A failed reload keeps the previous scene.
					_, _ = srv.Reload(ctx)
				}
			}
		})

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			tilescene.Logger().Info("server shutting down")
			return httpServer.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address.")
	serveCmd.Flags().IntVar(&renderScale, "scale", 1, "Integer upscale factor of /v1/preview.png.")
}
