package main

import (
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/tilescene"
)

var inspectSprites bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the atlas and scene summary of a map",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, scene, tex, err := loadScene(cmd)
		if err != nil {
			return err
		}
		w, h := tex.Size()
		printSummary(cmd.OutOrStdout(), scene, w, h, inspectSprites)
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectSprites, "sprites", false, "List every sprite rectangle.")
}

// printSummary writes a human-readable description of s. Counts use
// English digit grouping.
func printSummary(out io.Writer, s *tilescene.Scene, texWidth, texHeight int, sprites bool) {
	p := message.NewPrinter(language.English)
	ts := s.Atlas.Tileset
	p.Fprintf(out, "tileset   %s (firstgid %d)\n", ts.Name, ts.FirstGID)
	p.Fprintf(out, "image     %s %dx%d\n", ts.ImagePath, texWidth, texHeight)
	p.Fprintf(out, "tiles     %dx%d px, %d columns x %d rows\n", ts.TileWidth, ts.TileHeight, ts.Columns(), ts.Rows())
	p.Fprintf(out, "atlas     %d sprites, %s row first\n", s.Atlas.Len(), s.Atlas.Order)
	p.Fprintf(out, "layer     %d x %d cells\n", s.Width, s.Height)
	p.Fprintf(out, "viewport  %v x %v\n", s.Viewport.Width, s.Viewport.Height)
	p.Fprintf(out, "profile   %s\n", s.Profile)
	p.Fprintf(out, "placed    %d of %d cells\n", len(s.Placements), s.Width*s.Height)
	if !sprites {
		return
	}
	for i, sd := range s.Atlas.Sprites {
		tc := sd.TexCoords()
		p.Fprintf(out, "  %4d  r%d c%d  %d,%d %dx%d  uv %.4f..%.4f, %.4f..%.4f\n",
			i, sd.Row, sd.Column, sd.Rect.X, sd.Rect.Y, sd.Rect.Width, sd.Rect.Height,
			tc.Left, tc.Right, tc.Bottom, tc.Top)
	}
}
