package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the corridor renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	colorCount
)

var colorInfo = [colorCount]struct {
	name string
	ansi string
}{
	ColorDefault:      {"default", ""},
	ColorRed:          {"red", "1"},
	ColorGreen:        {"green", "2"},
	ColorYellow:       {"yellow", "3"},
	ColorBlue:         {"blue", "4"},
	ColorMagenta:      {"magenta", "5"},
	ColorCyan:         {"cyan", "6"},
	ColorWhite:        {"white", "7"},
	ColorGray:         {"gray", "8"},
	ColorBrightRed:    {"bright_red", "9"},
	ColorBrightYellow: {"bright_yellow", "11"},
	ColorBrightCyan:   {"bright_cyan", "14"},
	ColorBrightWhite:  {"bright_white", "15"},
}

// Colors returns every palette entry except ColorDefault.
func Colors() []Color {
	out := make([]Color, 0, colorCount-1)
	for c := ColorDefault + 1; c < colorCount; c++ {
		out = append(out, c)
	}
	return out
}

// ANSI returns the terminal color code, or "" for the default color.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return colorInfo[c].ansi
}

func (c Color) String() string {
	if c >= colorCount {
		return "unknown"
	}
	return colorInfo[c].name
}
