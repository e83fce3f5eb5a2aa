package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/tilescene/integration/ebitenscene"
	"github.com/gogpu/tilescene/preview"
)

var viewScale int

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the scene in a window",
	Long:  `view opens an ebiten window. Arrows pan, G toggles the grid, Escape quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, scene, tex, err := loadScene(cmd)
		if err != nil {
			return err
		}
		c := cfg.ClearColor
		game, err := ebitenscene.New(scene, tex, ebitenscene.Options{
			Title:      cfg.Title,
			ClearColor: preview.ClearColor(c[0], c[1], c[2], c[3]),
			Scale:      viewScale,
		})
		if err != nil {
			return err
		}
		return game.Run()
	},
}

func init() {
	viewCmd.Flags().IntVar(&viewScale, "scale", 1, "Window size multiplier.")
}
