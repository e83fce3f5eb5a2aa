package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/tilescene"
	"github.com/gogpu/tilescene/internal/config"
	"github.com/gogpu/tilescene/preview"
)

var (
	renderOutput string
	renderScale  int
	renderGrid   bool
	renderLabels bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Composite the scene into a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, scene, tex, err := loadScene(cmd)
		if err != nil {
			return err
		}

		f, err := os.Create(renderOutput)
		if err != nil {
			return err
		}
		if err := preview.RenderPNG(f, scene, tex, previewOptions(cfg)...); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		tilescene.Logger().Info("preview written", "path", renderOutput, "placements", len(scene.Placements))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", renderOutput)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "scene.png", "Output PNG file.")
	renderCmd.Flags().IntVar(&renderScale, "scale", 1, "Integer upscale factor.")
	renderCmd.Flags().BoolVar(&renderGrid, "grid", false, "Draw cell grid lines.")
	renderCmd.Flags().BoolVar(&renderLabels, "labels", false, "Label every tile with its sprite index.")
}

func previewOptions(cfg config.Config) []preview.Option {
	c := cfg.ClearColor
	opts := []preview.Option{
		preview.WithScale(renderScale),
		preview.WithClearColor(preview.ClearColor(c[0], c[1], c[2], c[3])),
	}
	if renderGrid {
		opts = append(opts, preview.WithGrid(nil))
	}
	if renderLabels {
		opts = append(opts, preview.WithLabels(nil))
	}
	return opts
}
