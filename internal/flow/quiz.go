package flow

import (
	"fmt"
	"strings"
)

// Question is one multiple-choice quiz item. Answer indexes Options.
type Question struct {
	Prompt  string
	Options []string
	Answer  int
}

// Letter returns the option key for index i ("A", "B", ...).
func Letter(i int) string {
	return string(rune('A' + i))
}

// CorrectKey returns the letter of the correct option.
func (q Question) CorrectKey() string { return Letter(q.Answer) }

// Matches reports whether answer picks the correct option, by letter or by
// option text, ignoring case.
func (q Question) Matches(answer string) bool {
	a := cleanLine(answer)
	a = strings.TrimPrefix(a, "option ")
	a = strings.Trim(a, "() ")
	if a == "" {
		return false
	}
	if strings.EqualFold(a, q.CorrectKey()) {
		return true
	}
	return strings.EqualFold(a, strings.TrimSpace(q.Options[q.Answer]))
}

func (q Question) reveal() string {
	return fmt.Sprintf("%s) %s", q.CorrectKey(), q.Options[q.Answer])
}

// Quiz is an in-progress quiz.
type Quiz struct {
	Questions  []Question
	Current    int
	Score      int
	Generation uint64
}

func (*Quiz) Kind() Kind { return KindQuiz }
func (*Quiz) Title() string { return "the quiz" }

// StartQuiz draws min(configured, bank) questions without replacement in
// random order and asks the first.
func (m *Machine) StartQuiz() (Step, error) {
	bank := m.opts.QuizBank
	n := m.opts.QuizQuestions
	if n > len(bank) {
		n = len(bank)
	}
	picked := make([]Question, 0, n)
	for _, i := range m.rng.Perm(len(bank))[:n] {
		picked = append(picked, bank[i])
	}

	q := &Quiz{Questions: picked}
	if err := m.begin(q); err != nil {
		return Step{}, err
	}
	q.Generation = m.gens[KindQuiz]

	var step Step
	step.say("🧠 Quiz time! %d questions. Answer with the letter or the option text. Say 'exit quiz' to stop.", n)
	m.ask(q, &step)
	return step, nil
}

func (m *Machine) ask(q *Quiz, step *Step) {
	cur := q.Questions[q.Current]
	var b strings.Builder
	fmt.Fprintf(&b, "Q%d/%d: %s", q.Current+1, len(q.Questions), cur.Prompt)
	for i, opt := range cur.Options {
		fmt.Fprintf(&b, "\n%s) %s", Letter(i), opt)
	}
	step.Replies = append(step.Replies, b.String())
	step.ArmQuiz = true
	step.QuizGen = q.Generation
	step.QuizIndex = q.Current
}

func (m *Machine) advance(q *Quiz, step *Step) {
	q.Current++
	if q.Current < len(q.Questions) {
		m.ask(q, step)
		return
	}
	step.say("🏁 Quiz over! You scored %d/%d.", q.Score, len(q.Questions))
	m.end(step)
}

func (m *Machine) quizAnswer(q *Quiz, line string) Step {
	var step Step
	cur := q.Questions[q.Current]
	if cur.Matches(line) {
		q.Score++
		step.say("✅ Correct!")
	} else {
		step.say("❌ Wrong! The answer was %s.", cur.reveal())
	}
	m.advance(q, &step)
	return step
}

// QuizTimeout handles a question deadline. ok is false when the timer is
// stale: the quiz it belonged to has ended, or that question was answered.
func (m *Machine) QuizTimeout(gen uint64, index int) (step Step, ok bool) {
	q, active := m.state.(*Quiz)
	if !active || q.Generation != gen || q.Current != index {
		return Step{}, false
	}
	step.say("⏰ Time's up! The answer was %s.", q.Questions[q.Current].reveal())
	m.advance(q, &step)
	return step, true
}

// DefaultQuizBank returns the built-in general-knowledge questions.
func DefaultQuizBank() []Question {
	return []Question{
		{"What is the capital of France?", []string{"Berlin", "Paris", "Rome", "Madrid"}, 1},
		{"Which planet is known as the Red Planet?", []string{"Venus", "Jupiter", "Mars", "Saturn"}, 2},
		{"How many continents are there?", []string{"5", "6", "7", "8"}, 2},
		{"What is the largest ocean on Earth?", []string{"Atlantic", "Indian", "Arctic", "Pacific"}, 3},
		{"Who wrote 'Romeo and Juliet'?", []string{"William Shakespeare", "Charles Dickens", "Jane Austen", "Mark Twain"}, 0},
		{"What is the chemical symbol for gold?", []string{"Ag", "Au", "Gd", "Go"}, 1},
		{"What is the square root of 144?", []string{"10", "11", "12", "14"}, 2},
		{"Which gas do plants absorb from the air?", []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"}, 1},
		{"What is the national animal of India?", []string{"Lion", "Elephant", "Tiger", "Peacock"}, 2},
		{"How many days are in a leap year?", []string{"364", "365", "366", "367"}, 2},
		{"Which is the longest river in the world?", []string{"Amazon", "Nile", "Ganga", "Yangtze"}, 1},
		{"What is the boiling point of water at sea level in Celsius?", []string{"90", "100", "110", "120"}, 1},
		{"Who painted the Mona Lisa?", []string{"Van Gogh", "Picasso", "Leonardo da Vinci", "Michelangelo"}, 2},
		{"What is the smallest prime number?", []string{"0", "1", "2", "3"}, 2},
		{"Which language has the most native speakers?", []string{"English", "Hindi", "Spanish", "Mandarin Chinese"}, 3},
	}
}
