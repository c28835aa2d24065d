package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1
	prevOut, prevExit := crashOutput, crashExit
	crashOutput = &out
	crashExit = func(c int) { code = c }
	t.Cleanup(func() {
		crashOutput, crashExit = prevOut, prevExit
		SetCrashScreen(nil)
	})
	return &out, &code
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	out, code := captureCrash(t)
	HandleCrash(nil)
	if out.Len() != 0 || *code != -1 {
		t.Error("nil recover value should be ignored")
	}
}

func TestHandleCrash_RestoresScreenAndExits(t *testing.T) {
	out, code := captureCrash(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	SetCrashScreen(screen)

	HandleCrash("boom")

	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: boom") || !strings.Contains(out.String(), "Stack Trace:") {
		t.Errorf("crash report = %q", out.String())
	}
	crashMu.Lock()
	registered := crashScreen
	crashMu.Unlock()
	if registered != nil {
		t.Error("screen should be unregistered after crash cleanup")
	}
}

func TestGo_RecoversPanics(t *testing.T) {
	out, code := captureCrash(t)
	done := make(chan struct{})

	prevExit := crashExit
	crashExit = func(c int) {
		prevExit(c)
		close(done)
	}

	Go(func() { panic("worker failed") })
	<-done

	if *code != 1 || !strings.Contains(out.String(), "worker failed") {
		t.Errorf("code=%d output=%q", *code, out.String())
	}
}
