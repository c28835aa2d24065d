package render

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/prize-wheel/spin"
	"github.com/lixenwraith/prize-wheel/store"
)

const gaugeCells = 20

// ResultMessage is the headline of the result dialog
func ResultMessage(snap spin.Snapshot) string {
	if e, ok := snap.WinnerEntry(); ok {
		return "You won: " + e.Label
	}
	return "Nothing left to draw"
}

func (t Theme) drawResult(r Region, snap spin.Snapshot) {
	msg := ResultMessage(snap)
	w := min(r.W-2, max(36, Width(msg)+8))
	content := r.Centered(w, 7).Pane(PaneOpts{
		Title:      "Result",
		Border:     LineDouble,
		Style:      t.Panel,
		TitleStyle: t.PanelTitle,
	})
	content.TextCenter(1, msg, t.PanelTitle)
	content.TextCenter(3, "enter close · g go again", t.Panel)
}

func (t Theme) drawEditor(r Region, e *EditorState) {
	w := min(r.W-2, 60)
	h := min(r.H-2, 16)
	content := r.Centered(w, h).Pane(PaneOpts{
		Title:      "Custom pool",
		Border:     LineRounded,
		Style:      t.Panel,
		TitleStyle: t.PanelTitle,
	})
	if content.H < 3 {
		return
	}
	content.Text(0, 0, Truncate("Separate prizes with # or new lines", content.W), t.Panel)
	e.Draw(content.Sub(0, 1, content.W, content.H-2), t.Panel, t.Cursor)
	content.Text(0, content.H-1, Truncate("ctrl+s apply · esc cancel", content.W), t.Panel)
}

// VolumeGauge renders volume in [0, 1] as a fixed-width bar with a percentage
func VolumeGauge(volume float64) string {
	filled := int(volume*gaugeCells + 0.5)
	filled = max(0, min(filled, gaugeCells))
	return fmt.Sprintf("%s%s %3d%%",
		strings.Repeat("█", filled), strings.Repeat("░", gaugeCells-filled), int(volume*100+0.5))
}

func (t Theme) drawAudio(r Region, prefs store.AudioPrefs) {
	w := min(r.W-2, 44)
	content := r.Centered(w, 8).Pane(PaneOpts{
		Title:      "Sound",
		Border:     LineRounded,
		Style:      t.Panel,
		TitleStyle: t.PanelTitle,
	})

	check := "[ ]"
	if prefs.Enabled {
		check = "[x]"
	}
	content.Text(0, 1, check+" sound effects", t.Panel)
	n := content.Text(0, 2, "volume ", t.Panel)
	content.Text(n, 2, VolumeGauge(prefs.Volume), t.Gauge)
	content.Text(0, 4, Truncate("space toggle · ←/→ volume · enter apply · esc cancel", content.W), t.Panel)
}
