package intent

import "testing"

func TestExact(t *testing.T) {
	r := Exact("quiz", "start quiz", "quiz me")

	for _, in := range []string{"start quiz", "  Start   QUIZ ", "quiz me!", "quiz me?"} {
		if _, ok := r.Match(in); !ok {
			t.Errorf("expected %q to match", in)
		}
	}
	for _, in := range []string{"start quiz now", "quiz", "please start quiz"} {
		if _, ok := r.Match(in); ok {
			t.Errorf("expected %q not to match", in)
		}
	}
}

func TestPrefixKeepsCase(t *testing.T) {
	r := Prefix("note", "note:", "save:")
	p, ok := r.Match("Note: Buy Milk")
	if !ok {
		t.Fatal("expected match")
	}
	if p.Get("rest") != "Buy Milk" {
		t.Errorf("expected 'Buy Milk', got %q", p.Get("rest"))
	}
}

func TestWordsWholeWord(t *testing.T) {
	r := Words("greet", "hi", "hello", "good morning")

	for _, in := range []string{"hi", "Hi there!", "oh, hello", "good morning ghost"} {
		if _, ok := r.Match(in); !ok {
			t.Errorf("expected %q to match", in)
		}
	}
	for _, in := range []string{"this is it", "shell", "chill"} {
		if _, ok := r.Match(in); ok {
			t.Errorf("expected %q not to match", in)
		}
	}
}

func TestContains(t *testing.T) {
	r := Contains("help", "what can you do")
	if _, ok := r.Match("So, WHAT can you do?"); !ok {
		t.Error("expected match")
	}
}

func TestRegexpNamedGroups(t *testing.T) {
	r := Regexp("remove", `^(?:remove|delete)\s+task\s+(?P<index>\d+)$`)
	p, ok := r.Match("Remove Task 12")
	if !ok {
		t.Fatal("expected match")
	}
	if p.Get("index") != "12" {
		t.Errorf("expected index 12, got %q", p.Get("index"))
	}
}

func TestWhere(t *testing.T) {
	r := Regexp("num", `^(?P<n>\d+)$`).Where(func(_ string, p Params) bool { return p.Get("n") != "0" })
	if _, ok := r.Match("0"); ok {
		t.Error("expected filtered out")
	}
	if _, ok := r.Match("7"); !ok {
		t.Error("expected match")
	}
}

func TestTableFirstMatchWins(t *testing.T) {
	table := NewTable(
		Regexp("bmi", `weight.*?\d.*height.*?\d`),
		Contains("weight", "weight"),
		Func("always", func(string) bool { return true }),
	)

	tests := []struct {
		in   string
		want string
	}{
		{"my weight 60kg, height 160cm", "bmi"},
		{"my weight is fine", "weight"},
		{"anything", "always"},
	}
	for _, tt := range tests {
		m, ok := table.Classify(tt.in)
		if !ok || m.Name != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.in, m.Name, tt.want)
		}
	}
}

func TestTableNoMatch(t *testing.T) {
	table := NewTable(Exact("a", "a"))
	if _, ok := table.Classify("b"); ok {
		t.Error("expected no match")
	}
}
