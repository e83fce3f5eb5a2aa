// Command tilescene loads a Tiled map and projects it into a renderable scene.
//
// Usage:
//
//	tilescene inspect --map level.tmx
//	tilescene render --map level.tmx -o level.png
//	tilescene serve --map level.tmx
//	tilescene view --map level.tmx --convention up
//
// Settings come from TILESCENE_* environment variables, optionally read from
// an .env file, and are overridden by flags.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/tilescene"
	"github.com/gogpu/tilescene/assets"
	"github.com/gogpu/tilescene/internal/config"
)

// Global variables for command-line flags.
var (
	envFile    string
	logLevel   string
	mapPath    string
	texture    string
	convention string
	pivot      string
)

var rootCmd = &cobra.Command{
	Use:   "tilescene",
	Short: "Project Tiled maps into renderable scenes",
	Long: `tilescene builds a sprite atlas from a map's tileset image and projects the
first tile layer into placements for an upward-y or downward-y renderer.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional file of TILESCENE_* variables.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	rootCmd.PersistentFlags().StringVar(&mapPath, "map", "", "Path of the .tmx map.")
	rootCmd.PersistentFlags().StringVar(&texture, "texture", "", "Tileset image overriding the one the map references.")
	rootCmd.PersistentFlags().StringVar(&convention, "convention", "", "Vertical convention: up or down.")
	rootCmd.PersistentFlags().StringVar(&pivot, "pivot", "", "Placement anchor: none or center.")

	rootCmd.AddCommand(inspectCmd, renderCmd, serveCmd, viewCmd)
}

// loadConfig resolves the configuration: environment, then flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("map") {
		cfg.MapPath = mapPath
	}
	if flags.Changed("texture") {
		cfg.TexturePath = texture
	}
	if flags.Changed("convention") {
		c, err := tilescene.ParseConvention(convention)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Profile = config.ProfileFor(c)
	}
	if flags.Changed("pivot") {
		p, err := tilescene.ParsePivot(pivot)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Profile.Pivot = p
	}
	if flags.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return config.Config{}, fmt.Errorf("--log-level: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	tilescene.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))
	return cfg, nil
}

func sceneSource(cfg config.Config) assets.SceneSource {
	return assets.SceneSource{MapPath: cfg.MapPath, TexturePath: cfg.TexturePath}
}

// loadScene loads the configured map.
func loadScene(cmd *cobra.Command) (config.Config, *tilescene.Scene, *assets.Texture, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, nil, err
	}
	scene, tex, err := assets.LoadScene(sceneSource(cfg), cfg.Viewport(), cfg.Profile)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, scene, tex, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
