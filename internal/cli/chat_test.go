package cli

import (
	"strings"
	"testing"
	"time"
)

func TestReadLinesInterruptsBeforeDelivery(t *testing.T) {
	seen := make(chan string, 4)
	lines := readLines(strings.NewReader("tell me a joke\nstop\n"), func(line string) bool {
		seen <- line
		return line == "stop"
	})

	if got := <-lines; got != "tell me a joke" {
		t.Fatalf("expected first line, got %q", got)
	}
	<-seen

	// The first line is still being handled; stop must be seen anyway.
	select {
	case got := <-seen:
		if got != "stop" {
			t.Errorf("expected stop, got %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stop was not seen while the previous line was in progress")
	}

	if got := <-lines; got != "stop" {
		t.Errorf("expected stop delivered, got %q", got)
	}
	if _, ok := <-lines; ok {
		t.Error("expected channel closed at EOF")
	}
}
