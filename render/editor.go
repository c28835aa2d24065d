package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// EditorState holds multi-line text editor state
type EditorState struct {
	Lines      []string
	CursorLine int
	CursorCol  int // in runes
	ScrollY    int
}

// NewEditorState creates an editor holding initial
func NewEditorState(initial string) *EditorState {
	e := &EditorState{}
	e.SetValue(initial)
	return e
}

// Value returns all lines joined with newlines
func (e *EditorState) Value() string {
	return strings.Join(e.Lines, "\n")
}

// SetValue replaces all content and moves the cursor to the end
func (e *EditorState) SetValue(s string) {
	e.Lines = strings.Split(s, "\n")
	e.CursorLine = len(e.Lines) - 1
	e.CursorCol = len([]rune(e.Lines[e.CursorLine]))
	e.ScrollY = 0
}

func (e *EditorState) clampCursor() {
	if len(e.Lines) == 0 {
		e.Lines = []string{""}
	}
	e.CursorLine = max(0, min(e.CursorLine, len(e.Lines)-1))
	e.CursorCol = max(0, min(e.CursorCol, len([]rune(e.Lines[e.CursorLine]))))
}

// Insert adds a rune at the cursor
func (e *EditorState) Insert(r rune) {
	e.clampCursor()
	line := []rune(e.Lines[e.CursorLine])
	line = append(line[:e.CursorCol], append([]rune{r}, line[e.CursorCol:]...)...)
	e.Lines[e.CursorLine] = string(line)
	e.CursorCol++
}

// InsertNewline splits the current line at the cursor
func (e *EditorState) InsertNewline() {
	e.clampCursor()
	runes := []rune(e.Lines[e.CursorLine])
	before, after := string(runes[:e.CursorCol]), string(runes[e.CursorCol:])

	e.Lines[e.CursorLine] = before
	e.Lines = append(e.Lines[:e.CursorLine+1], append([]string{after}, e.Lines[e.CursorLine+1:]...)...)
	e.CursorLine++
	e.CursorCol = 0
}

// DeleteBackward deletes the rune before the cursor or merges with the previous line
func (e *EditorState) DeleteBackward() bool {
	e.clampCursor()
	if e.CursorCol > 0 {
		line := []rune(e.Lines[e.CursorLine])
		line = append(line[:e.CursorCol-1], line[e.CursorCol:]...)
		e.Lines[e.CursorLine] = string(line)
		e.CursorCol--
		return true
	}
	if e.CursorLine > 0 {
		prev := e.Lines[e.CursorLine-1]
		e.Lines[e.CursorLine-1] = prev + e.Lines[e.CursorLine]
		e.Lines = append(e.Lines[:e.CursorLine], e.Lines[e.CursorLine+1:]...)
		e.CursorLine--
		e.CursorCol = len([]rune(prev))
		return true
	}
	return false
}

// DeleteForward deletes the rune at the cursor or merges with the next line
func (e *EditorState) DeleteForward() bool {
	e.clampCursor()
	line := []rune(e.Lines[e.CursorLine])
	if e.CursorCol < len(line) {
		e.Lines[e.CursorLine] = string(append(line[:e.CursorCol], line[e.CursorCol+1:]...))
		return true
	}
	if e.CursorLine < len(e.Lines)-1 {
		e.Lines[e.CursorLine] += e.Lines[e.CursorLine+1]
		e.Lines = append(e.Lines[:e.CursorLine+1], e.Lines[e.CursorLine+2:]...)
		return true
	}
	return false
}

// MoveLeft moves the cursor left, wrapping to the previous line
func (e *EditorState) MoveLeft() {
	e.clampCursor()
	if e.CursorCol > 0 {
		e.CursorCol--
	} else if e.CursorLine > 0 {
		e.CursorLine--
		e.CursorCol = len([]rune(e.Lines[e.CursorLine]))
	}
}

// MoveRight moves the cursor right, wrapping to the next line
func (e *EditorState) MoveRight() {
	e.clampCursor()
	if e.CursorCol < len([]rune(e.Lines[e.CursorLine])) {
		e.CursorCol++
	} else if e.CursorLine < len(e.Lines)-1 {
		e.CursorLine++
		e.CursorCol = 0
	}
}

func (e *EditorState) MoveUp() {
	if e.CursorLine > 0 {
		e.CursorLine--
	}
	e.clampCursor()
}

func (e *EditorState) MoveDown() {
	if e.CursorLine < len(e.Lines)-1 {
		e.CursorLine++
	}
	e.clampCursor()
}

func (e *EditorState) MoveLineStart() { e.CursorCol = 0 }

func (e *EditorState) MoveLineEnd() {
	e.clampCursor()
	e.CursorCol = len([]rune(e.Lines[e.CursorLine]))
}

// Draw renders the visible lines into r, scrolling to keep the cursor in view
func (e *EditorState) Draw(r Region, style, cursor tcell.Style) {
	e.clampCursor()
	if r.H <= 0 {
		return
	}
	if e.CursorLine < e.ScrollY {
		e.ScrollY = e.CursorLine
	}
	if e.CursorLine >= e.ScrollY+r.H {
		e.ScrollY = e.CursorLine - r.H + 1
	}

	for row := 0; row < r.H; row++ {
		idx := e.ScrollY + row
		if idx >= len(e.Lines) {
			break
		}
		runes := []rune(e.Lines[idx])
		x := 0
		for col := 0; col <= len(runes); col++ {
			ch := ' '
			if col < len(runes) {
				ch = runes[col]
			}
			st := style
			if idx == e.CursorLine && col == e.CursorCol {
				st = cursor
			}
			if x >= r.W {
				break
			}
			r.Cell(x, row, ch, st)
			if w := Width(string(ch)); w > 0 {
				x += w
			} else {
				x++
			}
		}
	}
}
