package gym

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/vovakirdan/snake-env/internal/core"
)

// Palette maps cell codes to display colors.
var Palette = map[core.CellCode]color.RGBA{
	core.CellEmpty:     {0, 0, 0, 255},
	core.CellWall:      {255, 255, 255, 255},
	core.CellFood:      {255, 0, 0, 255},
	core.CellSnakeBody: {0, 204, 0, 255},
	core.CellSnakeHead: {0, 77, 0, 255},
}

// Colorize converts an observation into an RGB image with every cell
// scaled to a zoom x zoom block. Unknown codes render black.
func Colorize(obs core.Observation, zoom int) *image.RGBA {
	zoom = max(zoom, 1)
	img := image.NewRGBA(image.Rect(0, 0, obs.Cols*zoom, obs.Rows*zoom))

	for row := range obs.Rows {
		for col := range obs.Cols {
			c, ok := Palette[obs.At(core.Pt(row, col))]
			if !ok {
				c = Palette[core.CellEmpty]
			}
			for dy := range zoom {
				for dx := range zoom {
					img.SetRGBA(col*zoom+dx, row*zoom+dy, c)
				}
			}
		}
	}
	return img
}

// WritePNG encodes img as a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gym: write png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("gym: write png: %w", err)
	}
	return f.Close()
}
