package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/prize-wheel/input"
	"github.com/lixenwraith/prize-wheel/pool"
	"github.com/lixenwraith/prize-wheel/spin"
	"github.com/lixenwraith/prize-wheel/store"
)

const (
	minWidth  = 24
	minHeight = 10
)

// Frame is everything one redraw needs
type Frame struct {
	// Entries shown on the dial: the session entries while a spin exists, else the current pool
	Entries  []pool.Entry
	Snapshot spin.Snapshot
	Mode     input.Mode

	Editor *EditorState     // ModeEditor
	Audio  store.AudioPrefs // ModeAudio draft
}

var helpLines = map[input.Mode]string{
	input.ModeWheel:  "space start · r reset · e edit pool · a sound · q quit",
	input.ModeResult: "enter close · g go again",
	input.ModeEditor: "ctrl+s apply · esc cancel",
	input.ModeAudio:  "space toggle · ←/→ volume · enter apply · esc cancel",
}

// Renderer draws frames with a theme
type Renderer struct {
	theme Theme
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Draw clears the screen, renders f and shows it
func (rd *Renderer) Draw(s tcell.Screen, f Frame) {
	t := rd.theme
	s.SetStyle(t.Base)
	s.Clear()

	full := NewRegion(s)
	if full.W < minWidth || full.H < minHeight {
		full.TextCenter(full.H/2, "terminal too small", t.Help)
		s.Show()
		return
	}

	full.TextCenter(0, "PRIZE WHEEL", t.Title)
	full.Text(0, full.H-1, Truncate(helpLines[f.Mode], full.W), t.Help)

	t.drawWheel(full, f.Entries, f.Snapshot)

	switch f.Mode {
	case input.ModeResult:
		t.drawResult(full, f.Snapshot)
	case input.ModeEditor:
		if f.Editor != nil {
			t.drawEditor(full, f.Editor)
		}
	case input.ModeAudio:
		t.drawAudio(full, f.Audio)
	}
	s.Show()
}
