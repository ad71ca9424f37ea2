package app

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/snipstorm/internal/snippet"
)

func newTestApp(t *testing.T, cfg Config) (*Application, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	cfg.Screen = sim
	cfg.LogOutput = io.Discard
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return a, sim
}

func typeString(sim tcell.SimulationScreen, s string) {
	for _, r := range s {
		sim.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func runSession(t *testing.T, a *Application, sim tcell.SimulationScreen, drive func()) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	// Wait for the screen to initialize before injecting events.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cells, w, h := sim.GetContents(); cells != nil && w > 0 && h > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	drive()
	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("session did not quit")
	}
}

func TestSessionTypingAndExpansion(t *testing.T) {
	a, sim := newTestApp(t, Config{})
	if err := a.Store().Add(snippet.Snippet{Trigger: "sig", Template: "Regards,\nDave"}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	runSession(t, a, sim, func() {
		typeString(sim, "hello /sig")
		sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	})

	got := a.Engine().Buffer().Text()
	want := "hello Regards,\nDave"
	if got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
	msg, ok := a.Status().Last()
	if !ok || !strings.Contains(msg.Text, "sig") {
		t.Errorf("expected expansion notification, got %v %v", msg, ok)
	}
}

func TestSessionSpaceWithoutMatchInserts(t *testing.T) {
	a, sim := newTestApp(t, Config{})

	runSession(t, a, sim, func() {
		typeString(sim, "plain")
		sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
		typeString(sim, "text")
	})

	if got := a.Engine().Buffer().Text(); got != "plain text" {
		t.Errorf("buffer = %q, want %q", got, "plain text")
	}
}

func TestSessionBackspaceAndEnter(t *testing.T) {
	a, sim := newTestApp(t, Config{})

	runSession(t, a, sim, func() {
		typeString(sim, "ab")
		sim.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
		sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
		typeString(sim, "c")
	})

	if got := a.Engine().Buffer().Text(); got != "a\nc" {
		t.Errorf("buffer = %q, want %q", got, "a\nc")
	}
}

func TestSessionOpensAndSavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("start"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, sim := newTestApp(t, Config{FilePath: path})

	runSession(t, a, sim, func() {
		typeString(sim, "!")
		sim.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "start!" {
		t.Errorf("file = %q, want %q", data, "start!")
	}
}

func TestSessionLoadsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "trigger_key = \";\"\n\n[[snippets]]\ntrigger = \"brb\"\ntemplate = \"be right back\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	a, sim := newTestApp(t, Config{SettingsPath: path})
	if got := a.Store().TriggerKey(); got != ";" {
		t.Fatalf("trigger key = %q, want %q", got, ";")
	}

	runSession(t, a, sim, func() {
		typeString(sim, ";brb")
		sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	})

	if got := a.Engine().Buffer().Text(); got != "be right back" {
		t.Errorf("buffer = %q, want %q", got, "be right back")
	}
}

func TestNewMissingFileStartsEmpty(t *testing.T) {
	a, _ := newTestApp(t, Config{FilePath: filepath.Join(t.TempDir(), "absent.txt")})
	if !a.Engine().Buffer().IsEmpty() {
		t.Errorf("buffer not empty: %q", a.Engine().Buffer().Text())
	}
}
