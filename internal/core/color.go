package core

// Color is the display role of a screen cell. The platform layer decides
// how each role looks on a terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorFood
	ColorBody
	ColorHead
	ColorHUD   // Score line above the board
	ColorAlert // Pause and game-over overlays
)
