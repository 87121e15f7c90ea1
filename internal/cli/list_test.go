package cli

import (
	"encoding/json"
	"testing"
)

func TestRecordText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"id":"01H","created_at":"2026-03-02T09:00:00Z","text":"buy milk","done":true}`, "buy milk (done)"},
		{`{"id":"01H","amount":250,"description":"lunch","category":"food"}`, "250 lunch food"},
		{`{"id":"01H","name":"John Smith","phone":"5551234"}`, "John Smith 5551234"},
		{`not json`, "not json"},
	}
	for _, tt := range tests {
		if got := recordText(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("recordText(%s): expected %q, got %q", tt.raw, tt.want, got)
		}
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]string{"tasks": "task", "Notes": "note", "health": "health", "flashcards": "flashcard"} {
		if got := parseKind(in); string(got) != want {
			t.Errorf("parseKind(%q): expected %q, got %q", in, want, got)
		}
	}
}
