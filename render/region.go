// Package render draws the prize wheel and its panels onto a tcell screen
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Region is a clipped rectangle of a screen; coordinates are relative to its origin
type Region struct {
	Screen tcell.Screen
	X, Y   int
	W, H   int
}

// NewRegion covers the whole screen
func NewRegion(s tcell.Screen) Region {
	w, h := s.Size()
	return Region{Screen: s, W: w, H: h}
}

// Sub returns a nested region, clipped to the parent bounds
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Region{Screen: r.Screen, X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Centered returns a w×h region centered in r
func (r Region) Centered(w, h int) Region {
	return r.Sub((r.W-w)/2, (r.H-h)/2, w, h)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Screen.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Fill paints every cell with a blank in style
func (r Region) Fill(style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ' ', style)
		}
	}
}

// Text writes s starting at (x, y) and returns the display width written; wide runes take two cells
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	start := x
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > r.W {
			break
		}
		r.Cell(x, y, ch, style)
		x += w
	}
	return x - start
}

// TextCenter writes s horizontally centered on row y, truncated to fit
func (r Region) TextCenter(y int, s string, style tcell.Style) {
	s = Truncate(s, r.W)
	r.Text((r.W-Width(s))/2, y, s, style)
}
