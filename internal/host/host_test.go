package host

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/rcliao/ghost/internal/model"
	"github.com/rcliao/ghost/internal/speech"
)

func TestTerminalPresenter(t *testing.T) {
	var buf bytes.Buffer
	p := NewTerminalPresenter(&buf)

	p.Present(model.Message{Text: "hello", IsUser: true})
	p.Present(model.Message{Text: "📋 Your tasks:\n1. buy milk"})

	want := "ghost> 📋 Your tasks:\n       1. buy milk\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestDesktopNotifier_HeadlessSkips(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("headless detection only applies to linux")
	}
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	if !Headless() {
		t.Fatal("expected headless")
	}
	n := &DesktopNotifier{}
	if err := n.Notify("Reminder", "stretch"); err != nil {
		t.Errorf("expected silent skip, got %v", err)
	}
}

func lookup(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available", name)
	}
	return path
}

func TestCommandSpeaker_RunsPerUtterance(t *testing.T) {
	s := &CommandSpeaker{Bin: lookup(t, "true"), Opts: speech.DefaultOptions()}
	if err := s.Speak(context.Background(), "✅ Saved. Anything else?"); err != nil {
		t.Errorf("speak: %v", err)
	}
}

func TestCommandSpeaker_ReportsFailure(t *testing.T) {
	s := &CommandSpeaker{Bin: lookup(t, "false"), Opts: speech.DefaultOptions()}
	if err := s.Speak(context.Background(), "hello"); err == nil {
		t.Error("expected error from failing command")
	}
}

func TestCommandSpeaker_NothingToSay(t *testing.T) {
	// A failing binary proves no command ran
	s := &CommandSpeaker{Bin: lookup(t, "false"), Opts: speech.DefaultOptions()}
	if err := s.Speak(context.Background(), "🎉🎉"); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestCommandSpeaker_StopWithoutSpeech(t *testing.T) {
	s := &CommandSpeaker{Bin: "unused"}
	s.Stop()
	s.Stop()
}
