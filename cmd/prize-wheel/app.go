package main

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/prize-wheel/audio"
	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/core"
	"github.com/lixenwraith/prize-wheel/input"
	"github.com/lixenwraith/prize-wheel/pool"
	"github.com/lixenwraith/prize-wheel/render"
	"github.com/lixenwraith/prize-wheel/spin"
	"github.com/lixenwraith/prize-wheel/store"
	"github.com/lixenwraith/prize-wheel/wheel"
)

const volumeStep = 0.05

// App is the terminal front end: it owns the screen loop and all panel state
type App struct {
	screen   tcell.Screen
	ctrl     *wheel.Controller
	machine  *input.Machine
	renderer *render.Renderer

	editor     *render.EditorState
	audioDraft store.AudioPrefs

	unsubscribe []func()
}

// NewApp wires the app to ctrl; snapshot and pool changes wake the UI loop through the screen's event queue
func NewApp(screen tcell.Screen, ctrl *wheel.Controller) *App {
	a := &App{
		screen:   screen,
		ctrl:     ctrl,
		machine:  input.NewMachine(),
		renderer: render.NewRenderer(render.DefaultTheme()),
	}
	// PostEvent does not block; a dropped wake-up is covered by the frame ticker
	a.unsubscribe = append(a.unsubscribe,
		ctrl.Subscribe(func(s spin.Snapshot) { screen.PostEvent(tcell.NewEventInterrupt(s)) }),
		ctrl.SubscribePool(func(store.PoolState) { screen.PostEvent(tcell.NewEventInterrupt(nil)) }),
	)
	return a
}

// Close detaches the app from the controller
func (a *App) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
	a.unsubscribe = nil
}

// Run processes events until the user quits or the screen is finalized
func (a *App) Run() {
	eventChan := make(chan tcell.Event, constants.EventChannelSize)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	a.Draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || a.HandleEvent(ev) {
				return
			}
			a.Draw()
		case <-ticker.C:
			if a.ctrl.Snapshot().Spinning() {
				a.Draw()
			}
		}
	}
}

// Mode returns the active screen mode
func (a *App) Mode() input.Mode {
	return a.machine.Mode()
}

// Frame assembles the current render state
func (a *App) Frame() render.Frame {
	snap := a.ctrl.Snapshot()
	entries := a.ctrl.Entries()
	if snap.Session != 0 {
		entries = snap.Entries
	}
	return render.Frame{
		Entries:  entries,
		Snapshot: snap,
		Mode:     a.machine.Mode(),
		Editor:   a.editor,
		Audio:    a.audioDraft,
	}
}

func (a *App) Draw() {
	a.renderer.Draw(a.screen, a.Frame())
}

// HandleEvent applies one event and reports whether the app should quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	in := a.machine.Process(ev)
	quit := a.apply(in)
	a.syncMode()
	return quit
}

// syncMode opens the result dialog once a spin settles and closes it when the result is gone
func (a *App) syncMode() {
	settled := a.ctrl.Snapshot().ResultVisible()
	switch a.machine.Mode() {
	case input.ModeWheel:
		if settled {
			a.machine.SetMode(input.ModeResult)
		}
	case input.ModeResult:
		if !settled {
			a.machine.SetMode(input.ModeWheel)
		}
	}
}

func (a *App) apply(in input.Intent) bool {
	switch in.Type {
	case input.IntentQuit:
		return true
	case input.IntentResize:
		a.screen.Sync()

	case input.IntentStart:
		a.ctrl.Start()
	case input.IntentReset:
		a.ctrl.Reset()
	case input.IntentOpenEditor:
		if a.ctrl.Snapshot().Spinning() {
			break
		}
		labels := pool.Split(a.ctrl.PoolState().RawInput)
		a.editor = render.NewEditorState(strings.Join(labels, "\n"))
		a.machine.SetMode(input.ModeEditor)
	case input.IntentOpenAudio:
		a.audioDraft = a.ctrl.AudioPrefs()
		a.machine.SetMode(input.ModeAudio)

	case input.IntentAcknowledge:
		a.ctrl.Acknowledge()
		a.machine.SetMode(input.ModeWheel)
	case input.IntentGoAgain:
		a.ctrl.GoAgain()
		a.machine.SetMode(input.ModeWheel)

	case input.IntentCancel:
		a.closePanel()
	case input.IntentConfirm:
		switch a.machine.Mode() {
		case input.ModeEditor:
			a.ctrl.ApplyCustomPool(a.editor.Value())
		case input.ModeAudio:
			a.ctrl.ApplyAudioSettings(a.audioDraft.Enabled, a.audioDraft.Volume)
		}
		a.closePanel()

	case input.IntentTextChar:
		a.editor.Insert(in.Char)
	case input.IntentTextNewline:
		a.editor.InsertNewline()
	case input.IntentTextBackspace:
		a.editor.DeleteBackward()
	case input.IntentTextDelete:
		a.editor.DeleteForward()
	case input.IntentTextNav:
		a.navigate(in.Nav)

	case input.IntentToggleEnabled:
		a.audioDraft.Enabled = !a.audioDraft.Enabled
	case input.IntentVolumeUp:
		a.audioDraft.Volume = audio.ClampVolume(a.audioDraft.Volume + volumeStep)
	case input.IntentVolumeDown:
		a.audioDraft.Volume = audio.ClampVolume(a.audioDraft.Volume - volumeStep)
	}
	return false
}

func (a *App) navigate(op input.NavOp) {
	switch op {
	case input.NavLeft:
		a.editor.MoveLeft()
	case input.NavRight:
		a.editor.MoveRight()
	case input.NavUp:
		a.editor.MoveUp()
	case input.NavDown:
		a.editor.MoveDown()
	case input.NavLineStart:
		a.editor.MoveLineStart()
	case input.NavLineEnd:
		a.editor.MoveLineEnd()
	}
}

func (a *App) closePanel() {
	a.editor = nil
	a.machine.SetMode(input.ModeWheel)
}
