// Package input parses terminal key events into semantic intents for the current screen mode
package input

// Mode is the screen the user is interacting with
type Mode uint8

const (
	ModeWheel  Mode = iota // dial with the start control
	ModeResult             // result dialog shown after a settled spin
	ModeEditor             // custom pool text editor
	ModeAudio              // audio settings panel
)

func (m Mode) String() string {
	switch m {
	case ModeWheel:
		return "wheel"
	case ModeResult:
		return "result"
	case ModeEditor:
		return "editor"
	case ModeAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit   // Ctrl+C anywhere, q/Esc on the wheel
	IntentResize // Terminal resize event

	// Wheel
	IntentStart      // Space, Enter, s
	IntentReset      // r
	IntentOpenEditor // e
	IntentOpenAudio  // a

	// Result dialog
	IntentAcknowledge // Enter, Space, Esc
	IntentGoAgain     // g

	// Editor and audio panels
	IntentCancel  // Esc
	IntentConfirm // Ctrl+S in the editor, Enter in the audio panel

	// Editor text entry
	IntentTextChar      // Printable character
	IntentTextNewline   // Enter
	IntentTextBackspace // Backspace
	IntentTextDelete    // Delete
	IntentTextNav       // Arrow keys, Home, End

	// Audio panel
	IntentToggleEnabled // Space, m
	IntentVolumeUp      // Right, +, =, l
	IntentVolumeDown    // Left, -, h
)

// NavOp identifies an editor cursor motion
type NavOp uint8

const (
	NavNone NavOp = iota
	NavLeft
	NavRight
	NavUp
	NavDown
	NavLineStart
	NavLineEnd
)

// Intent is a parsed user action
type Intent struct {
	Type IntentType
	Char rune  // IntentTextChar
	Nav  NavOp // IntentTextNav
}
