package gym

import (
	"fmt"

	"github.com/vovakirdan/snake-env/internal/core"
)

// glyphs maps cell codes to their two-column terminal form.
var glyphs = map[core.CellCode]struct {
	runes [2]rune
	color core.Color
}{
	core.CellEmpty:     {[2]rune{' ', ' '}, core.ColorDefault},
	core.CellWall:      {[2]rune{'#', '#'}, core.ColorWall},
	core.CellFood:      {[2]rune{'*', ' '}, core.ColorFood},
	core.CellSnakeBody: {[2]rune{'o', ' '}, core.ColorBody},
	core.CellSnakeHead: {[2]rune{'@', ' '}, core.ColorHead},
}

// hudLines is the number of rows above the board.
const hudLines = 2

// FrameSize returns the screen size DrawFrame needs for obs.
func FrameSize(obs core.Observation) (w, h int) {
	return max(obs.Cols*2, 40), obs.Rows + hudLines
}

// DrawFrame draws the HUD and the board onto dst. A non-empty status is
// shown in a box over the board.
func DrawFrame(dst *core.Screen, obs core.Observation, stats Stats, status string) {
	dst.Clear()

	hud := fmt.Sprintf(" Len %d  Food %d  Steps %d  Reward %.1f",
		stats.Length, stats.FoodEaten, stats.Steps, stats.TotalReward)
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '-')

	DrawObservation(dst, obs, 0, hudLines)

	if status != "" {
		drawStatus(dst, status, hudLines+obs.Rows/2)
	}
}

// DrawObservation draws obs with its top-left corner at (x0, y0).
// Each cell takes two columns so the board keeps a square aspect.
func DrawObservation(dst *core.Screen, obs core.Observation, x0, y0 int) {
	for row := range obs.Rows {
		for col := range obs.Cols {
			g, ok := glyphs[obs.At(core.Pt(row, col))]
			if !ok {
				continue
			}
			x := x0 + col*2
			dst.SetColored(x, y0+row, g.runes[0], g.color)
			dst.SetColored(x+1, y0+row, g.runes[1], g.color)
		}
	}
}

func drawStatus(dst *core.Screen, text string, y int) {
	w := len([]rune(text)) + 4
	r := core.NewRect((dst.Width()-w)/2, y-1, w, 3)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawTextCentered(y, text, core.ColorAlert)
}
