package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/prize-wheel/pool"
	"github.com/lixenwraith/prize-wheel/spin"
)

// Start control captions
const (
	StartCaption    = "start"
	DrawingCaption  = "drawing..."
	AllDrawnCaption = "all drawn"
)

// StartLabel is the caption of the start control; it reads as disabled unless it says StartCaption
func StartLabel(entries []pool.Entry, snap spin.Snapshot) string {
	switch {
	case snap.Spinning():
		return DrawingCaption
	case pool.AvailableCount(entries) == 0:
		return AllDrawnCaption
	default:
		return StartCaption
	}
}

// entryStyle picks the style for entry i: highlight wins over removal
func (t Theme) entryStyle(e pool.Entry, i int, snap spin.Snapshot) tcell.Style {
	switch {
	case snap.IsHighlighted(i) && snap.Phase == spin.PhaseSettled:
		return t.Winner
	case snap.IsHighlighted(i):
		return t.Highlighted
	case e.Removed:
		return t.Removed
	default:
		return t.Prize
	}
}

// drawWheel renders the ring, every prize label at its slot and the central start control
func (t Theme) drawWheel(r Region, entries []pool.Entry, snap spin.Snapshot) {
	layout := ComputeLayout(len(entries), r.W, r.H)

	for _, p := range layout.RingPoints() {
		r.Cell(p.X, p.Y, '·', t.Ring)
	}

	for i, e := range entries {
		slot := layout.Slots[i]
		label := Truncate(e.Label, layout.LabelWidth)
		w := Width(label)
		style := t.entryStyle(e, i, snap)
		x := slot.X - w/2
		// Pad highlighted labels so the marker stands out on short names
		if style != t.Prize && style != t.Removed {
			r.Cell(x-1, slot.Y, ' ', style)
			r.Cell(x+w, slot.Y, ' ', style)
		}
		r.Text(x, slot.Y, label, style)
	}

	caption := StartLabel(entries, snap)
	button := "[ " + caption + " ]"
	style := t.Button
	if caption != StartCaption {
		style = t.ButtonIdle
	}
	c := layout.Center
	r.Text(c.X-Width(button)/2, c.Y, button, style)

	if len(entries) == 0 {
		r.TextCenter(c.Y+1, "pool is empty, press e to add prizes", t.Help)
		return
	}
	left := fmt.Sprintf("%d/%d left", pool.AvailableCount(entries), len(entries))
	r.Text(c.X-Width(left)/2, c.Y+1, left, t.Help)
}
