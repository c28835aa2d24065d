package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine maps tcell events to Intents according to the active mode
type Machine struct {
	mode Mode
}

// NewMachine creates a machine in wheel mode
func NewMachine() *Machine {
	return &Machine{mode: ModeWheel}
}

// SetMode updates the parser's mode context
func (m *Machine) SetMode(mode Mode) {
	m.mode = mode
}

// Mode returns the active mode
func (m *Machine) Mode() Mode {
	return m.mode
}

// Process parses one event; events without meaning in the current mode yield IntentNone
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return Intent{Type: IntentQuit}
		}
		switch m.mode {
		case ModeWheel:
			return m.processWheel(ev)
		case ModeResult:
			return m.processResult(ev)
		case ModeEditor:
			return m.processEditor(ev)
		case ModeAudio:
			return m.processAudio(ev)
		}
	}
	return Intent{}
}

func (m *Machine) processWheel(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyEscape:
		return Intent{Type: IntentQuit}
	case tcell.KeyEnter:
		return Intent{Type: IntentStart}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 's':
			return Intent{Type: IntentStart}
		case 'r':
			return Intent{Type: IntentReset}
		case 'e':
			return Intent{Type: IntentOpenEditor}
		case 'a':
			return Intent{Type: IntentOpenAudio}
		case 'q':
			return Intent{Type: IntentQuit}
		}
	}
	return Intent{}
}

func (m *Machine) processResult(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyEscape:
		return Intent{Type: IntentAcknowledge}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return Intent{Type: IntentAcknowledge}
		case 'g':
			return Intent{Type: IntentGoAgain}
		}
	}
	return Intent{}
}

func (m *Machine) processEditor(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyEscape:
		return Intent{Type: IntentCancel}
	case tcell.KeyCtrlS:
		return Intent{Type: IntentConfirm}
	case tcell.KeyEnter:
		return Intent{Type: IntentTextNewline}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Intent{Type: IntentTextBackspace}
	case tcell.KeyDelete:
		return Intent{Type: IntentTextDelete}
	case tcell.KeyLeft:
		return Intent{Type: IntentTextNav, Nav: NavLeft}
	case tcell.KeyRight:
		return Intent{Type: IntentTextNav, Nav: NavRight}
	case tcell.KeyUp:
		return Intent{Type: IntentTextNav, Nav: NavUp}
	case tcell.KeyDown:
		return Intent{Type: IntentTextNav, Nav: NavDown}
	case tcell.KeyHome, tcell.KeyCtrlA:
		return Intent{Type: IntentTextNav, Nav: NavLineStart}
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return Intent{Type: IntentTextNav, Nav: NavLineEnd}
	case tcell.KeyRune:
		return Intent{Type: IntentTextChar, Char: ev.Rune()}
	}
	return Intent{}
}

func (m *Machine) processAudio(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyEscape:
		return Intent{Type: IntentCancel}
	case tcell.KeyEnter:
		return Intent{Type: IntentConfirm}
	case tcell.KeyLeft:
		return Intent{Type: IntentVolumeDown}
	case tcell.KeyRight:
		return Intent{Type: IntentVolumeUp}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'm':
			return Intent{Type: IntentToggleEnabled}
		case '+', '=', 'l':
			return Intent{Type: IntentVolumeUp}
		case '-', 'h':
			return Intent{Type: IntentVolumeDown}
		}
	}
	return Intent{}
}
