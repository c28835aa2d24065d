package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/prize-wheel/input"
	"github.com/lixenwraith/prize-wheel/pool"
	"github.com/lixenwraith/prize-wheel/spin"
	"github.com/lixenwraith/prize-wheel/store"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// find returns the first cell where text starts
func find(s tcell.Screen, text string) (int, int, bool) {
	_, h := s.Size()
	for y := 0; y < h; y++ {
		if x := strings.Index(rowText(s, y), text); x >= 0 {
			return len([]rune(rowText(s, y)[:x])), y, true
		}
	}
	return 0, 0, false
}

func styleAt(s tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y)
	return style
}

func idle() spin.Snapshot {
	return spin.Snapshot{Phase: spin.PhaseIdle, Winner: -1}
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(8, 80, 24)

	if len(l.Slots) != 8 {
		t.Fatalf("slots = %d", len(l.Slots))
	}
	if top := l.Slots[0]; top.X != l.Center.X || top.Y != l.Center.Y-l.RadiusY {
		t.Errorf("first slot %+v should sit straight above center %+v", top, l.Center)
	}
	// Clockwise: second slot is right of center
	if l.Slots[2].X <= l.Center.X || l.Slots[2].Y != l.Center.Y {
		t.Errorf("quarter-turn slot %+v not at 3 o'clock", l.Slots[2])
	}
	if l.RadiusX != l.RadiusY*cellAspect {
		t.Errorf("radii %d/%d not aspect-corrected", l.RadiusX, l.RadiusY)
	}
}

func TestComputeLayout_StaysOnScreen(t *testing.T) {
	sizes := [][2]int{{80, 24}, {120, 40}, {40, 30}, {24, 10}, {200, 12}}
	for _, sz := range sizes {
		for _, count := range []int{1, 2, 5, 13, 40} {
			l := ComputeLayout(count, sz[0], sz[1])
			for i, p := range l.Slots {
				if p.X < 0 || p.X >= sz[0] || p.Y < 1 || p.Y >= sz[1]-1 {
					t.Errorf("%dx%d count %d: slot %d at %+v off the dial area", sz[0], sz[1], count, i, p)
				}
			}
		}
	}
}

func TestComputeLayout_LabelWidth(t *testing.T) {
	few := ComputeLayout(3, 120, 40).LabelWidth
	many := ComputeLayout(60, 120, 40).LabelWidth
	if few != maxLabelWidth {
		t.Errorf("few prizes label width = %d, want %d", few, maxLabelWidth)
	}
	if many >= few || many < minLabelWidth {
		t.Errorf("crowded label width = %d, want between %d and %d", many, minLabelWidth, few)
	}
	if l := ComputeLayout(0, 80, 24); len(l.Slots) != 0 {
		t.Error("empty pool should have no slots")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "he…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.w); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}

	if got := Truncate("一等奖大礼包", 7); Width(got) > 7 {
		t.Errorf("wide truncation %q is %d cells", got, Width(got))
	}
	if Width("奖") != 2 {
		t.Errorf("Width of a CJK rune = %d, want 2", Width("奖"))
	}
}

func TestStartLabel(t *testing.T) {
	entries := pool.Parse("A#B", nil)
	exhausted := pool.Parse("A#B", []string{"A", "B"})
	spinning := spin.Snapshot{Session: 1, Phase: spin.PhaseSpinning, Winner: -1}
	landed := spin.Snapshot{Session: 1, Phase: spin.PhaseLanded, Winner: 0}
	settled := spin.Snapshot{Session: 1, Phase: spin.PhaseSettled, Winner: 0}

	tests := []struct {
		name    string
		entries []pool.Entry
		snap    spin.Snapshot
		want    string
	}{
		{"idle", entries, idle(), StartCaption},
		{"spinning", entries, spinning, DrawingCaption},
		{"landed", entries, landed, DrawingCaption},
		{"settled", entries, settled, StartCaption},
		{"exhausted", exhausted, idle(), AllDrawnCaption},
		{"empty", nil, idle(), AllDrawnCaption},
	}
	for _, tt := range tests {
		if got := StartLabel(tt.entries, tt.snap); got != tt.want {
			t.Errorf("%s: StartLabel = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestVolumeGauge(t *testing.T) {
	g := VolumeGauge(0.6)
	if !strings.HasSuffix(g, " 60%") {
		t.Errorf("gauge %q missing percentage", g)
	}
	if n := strings.Count(g, "█"); n != 12 {
		t.Errorf("filled cells = %d, want 12", n)
	}
	if strings.Count(VolumeGauge(0), "█") != 0 || strings.Count(VolumeGauge(1), "░") != 0 {
		t.Error("gauge bounds wrong")
	}
}

func TestResultMessage(t *testing.T) {
	entries := pool.Parse("Car#Bike", nil)
	won := spin.Snapshot{Phase: spin.PhaseSettled, Entries: entries, Winner: 1}
	if got := ResultMessage(won); got != "You won: Bike" {
		t.Errorf("ResultMessage = %q", got)
	}
	if got := ResultMessage(spin.Snapshot{Phase: spin.PhaseSettled, Winner: -1}); got != "Nothing left to draw" {
		t.Errorf("no-winner ResultMessage = %q", got)
	}
}

func TestDraw_IdleWheel(t *testing.T) {
	screen := newScreen(t, 80, 24)
	theme := DefaultTheme()
	entries := pool.Parse("Car#Bike#Boat", []string{"Bike"})

	NewRenderer(theme).Draw(screen, Frame{Entries: entries, Snapshot: idle(), Mode: input.ModeWheel})

	for _, want := range []string{"PRIZE WHEEL", "Car", "Bike", "Boat", "[ start ]", "2/3 left"} {
		if _, _, ok := find(screen, want); !ok {
			t.Errorf("%q not drawn", want)
		}
	}
	if x, y, ok := find(screen, "Bike"); ok && styleAt(screen, x, y) != theme.Removed {
		t.Error("removed prize not drawn with the removed style")
	}
	if x, y, ok := find(screen, "Car"); ok && styleAt(screen, x, y) != theme.Prize {
		t.Error("available prize not drawn with the prize style")
	}
	if !strings.Contains(rowText(screen, 23), "space start") {
		t.Errorf("help line = %q", rowText(screen, 23))
	}
}

func TestDraw_SpinningHighlight(t *testing.T) {
	screen := newScreen(t, 80, 24)
	theme := DefaultTheme()
	entries := pool.Parse("Car#Bike#Boat", nil)
	snap := spin.Snapshot{Session: 1, Phase: spin.PhaseSpinning, Entries: entries, Highlighted: []int{2}, Winner: -1}

	NewRenderer(theme).Draw(screen, Frame{Entries: entries, Snapshot: snap, Mode: input.ModeWheel})

	x, y, ok := find(screen, "Boat")
	if !ok {
		t.Fatal("Boat not drawn")
	}
	if styleAt(screen, x, y) != theme.Highlighted {
		t.Error("highlighted prize not emphasised")
	}
	if _, _, ok := find(screen, "[ drawing... ]"); !ok {
		t.Error("start control should read drawing...")
	}
}

func TestDraw_ResultDialog(t *testing.T) {
	screen := newScreen(t, 80, 24)
	theme := DefaultTheme()
	entries := pool.Parse("Car#Bike", nil)
	snap := spin.Snapshot{Session: 1, Phase: spin.PhaseSettled, Entries: entries, Highlighted: []int{0}, Winner: 0}

	NewRenderer(theme).Draw(screen, Frame{Entries: entries, Snapshot: snap, Mode: input.ModeResult})

	if _, _, ok := find(screen, "You won: Car"); !ok {
		t.Error("result message not drawn")
	}
	if _, _, ok := find(screen, "g go again"); !ok {
		t.Error("go-again hint not drawn")
	}
}

func TestDraw_EditorAndAudioPanels(t *testing.T) {
	screen := newScreen(t, 80, 24)
	rd := NewRenderer(DefaultTheme())

	rd.Draw(screen, Frame{Snapshot: idle(), Mode: input.ModeEditor, Editor: NewEditorState("Car\nBike")})
	for _, want := range []string{"Custom pool", "Car", "Bike", "ctrl+s apply"} {
		if _, _, ok := find(screen, want); !ok {
			t.Errorf("editor: %q not drawn", want)
		}
	}

	rd.Draw(screen, Frame{Snapshot: idle(), Mode: input.ModeAudio, Audio: store.AudioPrefs{Enabled: true, Volume: 0.6}})
	for _, want := range []string{"Sound", "[x] sound effects", "60%"} {
		if _, _, ok := find(screen, want); !ok {
			t.Errorf("audio: %q not drawn", want)
		}
	}
}

func TestDraw_EmptyPool(t *testing.T) {
	screen := newScreen(t, 80, 24)
	NewRenderer(DefaultTheme()).Draw(screen, Frame{Snapshot: idle(), Mode: input.ModeWheel})

	if _, _, ok := find(screen, "[ all drawn ]"); !ok {
		t.Error("empty pool should disable the start control")
	}
	if _, _, ok := find(screen, "pool is empty"); !ok {
		t.Error("empty pool hint not drawn")
	}
}

func TestDraw_TooSmall(t *testing.T) {
	screen := newScreen(t, 20, 6)
	NewRenderer(DefaultTheme()).Draw(screen, Frame{Entries: pool.Parse("A", nil), Snapshot: idle()})

	if _, _, ok := find(screen, "terminal too small"); !ok {
		t.Error("size warning not drawn")
	}
}

func TestRegion_SubClips(t *testing.T) {
	screen := newScreen(t, 10, 5)
	r := NewRegion(screen)

	sub := r.Sub(8, 3, 10, 10)
	if sub.W != 2 || sub.H != 2 || sub.X != 8 || sub.Y != 3 {
		t.Errorf("Sub = %+v", sub)
	}
	if n := sub.Text(0, 0, "abcdef", tcell.StyleDefault); n != 2 {
		t.Errorf("Text wrote %d cells, want 2 (clipped)", n)
	}
	if got := rowText(screen, 3); got != "        ab" {
		t.Errorf("row = %q", got)
	}
	sub.Cell(5, 5, 'x', tcell.StyleDefault) // out of bounds, ignored
}
