package core

import "strconv"

// Color is the foreground color of a screen cell.
type Color uint8

// Palette shared by every game. Games pick colors by role: green for a
// correct answer, bright red for a lost life, bright yellow for coins and
// gray for hints and inactive elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// xterm-256 codes for colors outside the 16 standard ones.
var extendedCodes = map[Color]int{
	ColorOrange: 208,
	ColorGray:   245,
}

// ANSI returns the xterm-256 color code, or "" for the terminal default.
func (c Color) ANSI() string {
	switch {
	case c == ColorDefault:
		return ""
	case c <= ColorWhite:
		return strconv.Itoa(int(c))
	case c <= ColorBrightWhite:
		// Bright variants skip bright black (8).
		return strconv.Itoa(int(c) + 1)
	}
	if code, ok := extendedCodes[c]; ok {
		return strconv.Itoa(code)
	}
	return ""
}
