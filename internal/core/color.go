package core

// Color is a foreground colour for a screen cell.
// The platform layer maps it onto ANSI colours.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorDarkGray
	ColorWhite
	ColorBrightWhite
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorBrightRed
	ColorCyan
	ColorBlue
)
