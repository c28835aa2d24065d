package render

import "github.com/mattn/go-runewidth"

const ellipsis = "…"

// Width returns the display width of s in terminal cells
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most w cells, marking the cut with an ellipsis
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return ellipsis
	}
	return runewidth.Truncate(s, w, ellipsis)
}
