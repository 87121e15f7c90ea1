package speech

import (
	"strings"
	"testing"
)

func TestSanitize_StripsEmoji(t *testing.T) {
	cases := []struct{ in, want string }{
		{"✅ Task added!", "Task added!"},
		{"🏁 Quiz over! You scored 3/3.", "Quiz over! You scored 3/3."},
		{"✊✋✌️ Let's play", "Let's play"},
		{"⏰ Time's up!", "Time's up!"},
		{"**Bold** and `code`", "Bold and code"},
		{"plain text stays", "plain text stays"},
		{"1. one\n\n  2.   two  ", "1. one\n2. two"},
		{"Namaste 🙏🏽, kaise ho?", "Namaste , kaise ho?"},
		{"👨\u200d👩\u200d👧 family", "family"},
		{"café and naïve accents", "café and naïve accents"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUtterances_EmptyInput(t *testing.T) {
	if result := Utterances("", DefaultOptions()); result != nil {
		t.Errorf("expected nil, got %v", result)
	}
	if result := Utterances("🎉🎉", DefaultOptions()); result != nil {
		t.Errorf("expected nil for emoji-only text, got %v", result)
	}
}

func TestUtterances_ShortReply(t *testing.T) {
	result := Utterances("📋 Your tasks:\n1. buy milk\n2. call mom", DefaultOptions())
	if len(result) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(result))
	}
	if result[0] != "Your tasks: 1. buy milk 2. call mom" {
		t.Errorf("unexpected utterance %q", result[0])
	}
}

func TestUtterances_RespectsMaxSize(t *testing.T) {
	opts := Options{TargetSize: 60, MaxSize: 90}
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "This line is roughly forty characters.")
	}
	result := Utterances(strings.Join(lines, "\n"), opts)
	if len(result) < 2 {
		t.Fatalf("expected several utterances, got %d", len(result))
	}
	for _, u := range result {
		if len(u) > opts.MaxSize {
			t.Errorf("utterance exceeds max size (%d): %q", len(u), u)
		}
	}
}

func TestUtterances_SplitsLongSentenceRun(t *testing.T) {
	opts := Options{TargetSize: 50, MaxSize: 80}
	text := strings.Repeat("Drink some water. ", 20)
	result := Utterances(text, opts)
	if len(result) < 2 {
		t.Fatalf("expected split, got %d", len(result))
	}
	for _, u := range result {
		if !strings.HasSuffix(u, ".") {
			t.Errorf("expected sentence boundary, got %q", u)
		}
		if len(u) > opts.MaxSize {
			t.Errorf("utterance too long: %q", u)
		}
	}
}

func TestUtterances_SplitsUnpunctuatedText(t *testing.T) {
	opts := Options{TargetSize: 30, MaxSize: 40}
	text := strings.Repeat("word ", 50)
	result := Utterances(text, opts)
	total := 0
	for _, u := range result {
		if len(u) > opts.MaxSize {
			t.Errorf("utterance too long: %q", u)
		}
		total += len(strings.Fields(u))
	}
	if total != 50 {
		t.Errorf("expected all 50 words preserved, got %d", total)
	}
}
