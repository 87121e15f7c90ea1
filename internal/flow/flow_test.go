package flow

import (
	"errors"
	"strings"
	"testing"
)

// seqRand returns Intn values from a fixed sequence and the identity permutation.
type seqRand struct {
	ints []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)] % n
	r.i++
	return v
}

func (r *seqRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func newTestMachine(opts Options) *Machine {
	return NewMachine(&seqRand{}, opts)
}

func lastReply(s Step) string {
	if len(s.Replies) == 0 {
		return ""
	}
	return s.Replies[len(s.Replies)-1]
}

func TestQuizPerfectScore(t *testing.T) {
	m := newTestMachine(Options{QuizQuestions: 10})

	step, err := m.StartQuiz()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !step.ArmQuiz || step.QuizIndex != 0 {
		t.Errorf("expected first question armed, got %+v", step)
	}
	q := m.State().(*Quiz)
	if len(q.Questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(q.Questions))
	}

	questions := append([]Question(nil), q.Questions...)
	for i, qq := range questions {
		// Alternate between answering by letter and by text
		answer := qq.CorrectKey()
		if i%2 == 1 {
			answer = strings.ToUpper(qq.Options[qq.Answer])
		}
		step = m.Input(answer)
	}

	if !step.Ended {
		t.Fatal("expected quiz to end after last answer")
	}
	if !strings.Contains(lastReply(step), "10/10") {
		t.Errorf("expected perfect score, got %q", lastReply(step))
	}
	if m.Active() {
		t.Error("expected idle after quiz")
	}
}

func TestQuizWrongAnswersAndTimeouts(t *testing.T) {
	m := newTestMachine(Options{QuizQuestions: 3})
	m.StartQuiz()
	q := m.State().(*Quiz)

	// Wrong answer: reveal and advance without scoring
	wrong := Letter((q.Questions[0].Answer + 1) % 4)
	step := m.Input(wrong)
	if q.Score != 0 || q.Current != 1 {
		t.Errorf("expected score 0 at question 2, got score %d at %d", q.Score, q.Current+1)
	}
	if !strings.Contains(step.Replies[0], "Wrong") {
		t.Errorf("expected wrong-answer reply, got %q", step.Replies[0])
	}

	// Deadline for question 2 fires
	step, ok := m.QuizTimeout(q.Generation, 1)
	if !ok {
		t.Fatal("expected live timeout")
	}
	if !strings.Contains(step.Replies[0], "Time's up") || q.Current != 2 || q.Score != 0 {
		t.Errorf("expected timeout to advance without score, got %+v", step)
	}

	// A late timer for question 2 is stale now
	if _, ok := m.QuizTimeout(q.Generation, 1); ok {
		t.Error("expected stale timeout for answered question")
	}

	step = m.Input(q.Questions[2].CorrectKey())
	if !step.Ended || !strings.Contains(lastReply(step), "1/3") {
		t.Errorf("expected 1/3, got %q", lastReply(step))
	}
}

func TestQuizStaleGenerationAfterRestart(t *testing.T) {
	m := newTestMachine(Options{QuizQuestions: 2})
	m.StartQuiz()
	oldGen := m.State().(*Quiz).Generation
	m.Input("exit quiz")

	m.StartQuiz()
	q := m.State().(*Quiz)
	if q.Generation == oldGen {
		t.Fatal("expected a new generation")
	}
	if _, ok := m.QuizTimeout(oldGen, 0); ok {
		t.Error("old quiz timer must not affect the new quiz")
	}
	if q.Current != 0 {
		t.Errorf("expected new quiz untouched, at %d", q.Current)
	}
}

func TestQuizBankSmallerThanCount(t *testing.T) {
	bank := DefaultQuizBank()[:3]
	m := newTestMachine(Options{QuizQuestions: 10, QuizBank: bank})
	m.StartQuiz()
	if n := len(m.State().(*Quiz).Questions); n != 3 {
		t.Errorf("expected 3 questions, got %d", n)
	}
}

func TestQuestionMatches(t *testing.T) {
	q := Question{Prompt: "?", Options: []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"}, Answer: 1}
	for _, in := range []string{"b", "B", "b)", "(b)", "option b", "carbon dioxide", "Carbon Dioxide!"} {
		if !q.Matches(in) {
			t.Errorf("expected %q to match", in)
		}
	}
	for _, in := range []string{"a", "oxygen", "carbon", "", "bb"} {
		if q.Matches(in) {
			t.Errorf("expected %q not to match", in)
		}
	}
}

func TestStartWhileBusy(t *testing.T) {
	m := newTestMachine(Options{})
	m.StartRPS()

	if _, err := m.StartQuiz(); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if m.State().Kind() != KindRPS {
		t.Errorf("expected RPS still active, got %q", m.State().Kind())
	}
}

func TestPlayAllPairs(t *testing.T) {
	moves := []Move{Rock, Paper, Scissors}
	beats := map[Move]Move{Rock: Scissors, Scissors: Paper, Paper: Rock}
	for _, u := range moves {
		for _, b := range moves {
			got := Play(u, b)
			switch {
			case u == b:
				if got != Tie {
					t.Errorf("%s vs %s: expected tie", u, b)
				}
			case beats[u] == b:
				if got != Win {
					t.Errorf("%s vs %s: expected win", u, b)
				}
			default:
				if got != Lose {
					t.Errorf("%s vs %s: expected lose", u, b)
				}
			}
		}
	}
}

func TestRPSRounds(t *testing.T) {
	// Bot draws rock, then scissors, then paper
	m := NewMachine(&seqRand{ints: []int{0, 2, 1}}, Options{})
	m.StartRPS()
	g := m.State().(*RPS)

	step := m.Input("rock")
	if g.Ties != 1 || !strings.Contains(step.Replies[0], "tie") {
		t.Errorf("expected tie, got %q", step.Replies[0])
	}

	// Invalid move: rejected, tally and rng untouched
	step = m.Input("lizard")
	if g.Wins+g.Losses+g.Ties != 1 {
		t.Errorf("invalid move changed tally: %+v", g)
	}
	if !strings.Contains(step.Replies[0], "rock, paper or scissors") {
		t.Errorf("expected re-prompt, got %q", step.Replies[0])
	}

	m.Input("ROCK") // vs scissors
	if g.Wins != 1 {
		t.Errorf("expected a win, got %+v", g)
	}
	m.Input("rock") // vs paper
	if g.Losses != 1 {
		t.Errorf("expected a loss, got %+v", g)
	}

	step = m.Input("exit game")
	if !step.Ended || m.Active() {
		t.Error("expected game to end")
	}
	if !strings.Contains(step.Replies[0], "You 1 - Me 1 (ties 1)") {
		t.Errorf("unexpected final score %q", step.Replies[0])
	}
}

func TestEntryContactFlow(t *testing.T) {
	m := newTestMachine(Options{})
	step, err := m.StartEntry(EntryContact, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(lastReply(step), "name") {
		t.Errorf("expected name prompt, got %q", lastReply(step))
	}

	m.Input("Asha")
	step = m.Input("call her maybe")
	if !strings.Contains(step.Replies[0], "phone number") {
		t.Errorf("expected phone re-prompt, got %q", step.Replies[0])
	}

	step = m.Input("+91 98765-43210")
	if !strings.Contains(lastReply(step), "(yes/no)") {
		t.Errorf("expected confirmation, got %q", lastReply(step))
	}

	step = m.Input("maybe")
	if step.Commit != nil || step.Ended {
		t.Error("non yes/no must re-ask")
	}

	step = m.Input("yes")
	if step.Commit == nil || !step.Ended {
		t.Fatal("expected commit")
	}
	if step.Commit.Values[FieldName] != "Asha" || step.Commit.Values[FieldPhone] != "+919876543210" {
		t.Errorf("unexpected values %v", step.Commit.Values)
	}
}

func TestEntryDiscard(t *testing.T) {
	m := newTestMachine(Options{})
	m.StartEntry(EntryTask, nil)
	m.Input("buy milk and eggs")
	step := m.Input("no")
	if step.Commit != nil || !step.Ended {
		t.Errorf("expected discard, got %+v", step)
	}
}

func TestEntryPrefillAndSkip(t *testing.T) {
	m := newTestMachine(Options{})
	step, _ := m.StartEntry(EntryExpense, map[string]string{FieldAmount: "₹250", FieldDescription: "lunch"})
	if !strings.Contains(lastReply(step), "Category") {
		t.Fatalf("expected category prompt, got %q", lastReply(step))
	}
	m.Input("skip")
	m.Input("UPI")
	step = m.Input("y")
	if step.Commit == nil {
		t.Fatal("expected commit")
	}
	v := step.Commit.Values
	if v[FieldAmount] != "250" || v[FieldCategory] != "" || v[FieldPayment] != "upi" {
		t.Errorf("unexpected values %v", v)
	}
}

func TestEntryCancel(t *testing.T) {
	m := newTestMachine(Options{})
	m.StartEntry(EntryReminder, nil)
	m.Input("stretch")
	step := m.Input("cancel")
	if !step.Ended || step.Commit != nil {
		t.Errorf("expected cancel, got %+v", step)
	}
}

func TestConfirmClear(t *testing.T) {
	m := newTestMachine(Options{})
	m.StartConfirmClear(false)
	if step := m.Input("nah"); step.ClearAll || !step.Ended {
		t.Errorf("expected abort, got %+v", step)
	}

	m.StartConfirmClear(false)
	if step := m.Input("YES"); !step.ClearAll || step.ClearChat {
		t.Errorf("expected full clear on yes, got %+v", step)
	}
}

func TestConfirmClearChatOnly(t *testing.T) {
	m := newTestMachine(Options{})
	m.StartConfirmClear(true)
	if got := m.State().Title(); got != "clearing the chat history" {
		t.Errorf("Title() = %q", got)
	}
	step := m.Input("yes")
	if !step.ClearChat || step.ClearAll {
		t.Errorf("expected chat-only clear, got %+v", step)
	}
	if m.Active() {
		t.Error("expected idle after confirming")
	}
}

func TestParseAmount(t *testing.T) {
	good := map[string]string{"250": "250", "₹250": "250", "Rs. 99.5": "99.5", "1,200 rupees": "1200", "$12": "12"}
	for in, want := range good {
		got, err := ParseAmount(in)
		if err != nil || got != want {
			t.Errorf("ParseAmount(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, in := range []string{"", "abc", "-5", "0", "NaN"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q): expected error", in)
		}
	}
}
