// Package flow holds ghost's multi-turn conversations. At most one flow is
// active; while it is, every input line goes to it instead of the intent table.
package flow

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind names a flow.
type Kind string

const (
	KindIdle    Kind = ""
	KindQuiz    Kind = "quiz"
	KindRPS     Kind = "rps"
	KindEntry   Kind = "entry"
	KindConfirm Kind = "confirm"
)

// State is the active conversation. Exactly one of the concrete types below.
type State interface {
	Kind() Kind
	// Title names the flow in replies ("the quiz", "adding a contact").
	Title() string
}

// Idle means no flow is active.
type Idle struct{}

func (Idle) Kind() Kind { return KindIdle }
func (Idle) Title() string { return "" }

// ConfirmClear waits for a yes before wiping stored data. ChatOnly limits
// the wipe to the chat history.
type ConfirmClear struct {
	ChatOnly bool
}

func (*ConfirmClear) Kind() Kind { return KindConfirm }

func (c *ConfirmClear) Title() string {
	if c.ChatOnly {
		return "clearing the chat history"
	}
	return "clearing all data"
}

// Rand is the randomness the machine needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
}

// ErrBusy is returned when a flow is started while another is active.
var ErrBusy = errors.New("another conversation is in progress")

// Step is the outcome of feeding the machine one event.
type Step struct {
	Replies []string

	// Ended is set when this step returned the machine to Idle.
	Ended bool

	// Commit carries a confirmed guided entry for the caller to persist.
	Commit *Commit

	// ClearAll is set when the user confirmed wiping all data.
	ClearAll bool

	// ClearChat is set when the user confirmed deleting the chat history.
	ClearChat bool

	// ArmQuiz asks the caller to (re)start the deadline timer for the
	// question identified by QuizGen and QuizIndex.
	ArmQuiz   bool
	QuizGen   uint64
	QuizIndex int
}

func (s *Step) say(format string, args ...any) {
	s.Replies = append(s.Replies, fmt.Sprintf(format, args...))
}

// Options configures a Machine.
type Options struct {
	QuizQuestions int
	QuizBank      []Question
}

// Machine owns the single ConversationState and the per-kind session generations.
type Machine struct {
	state State
	gens  map[Kind]uint64
	rng   Rand
	opts  Options
}

// NewMachine returns an idle machine.
func NewMachine(rng Rand, opts Options) *Machine {
	if opts.QuizQuestions <= 0 {
		opts.QuizQuestions = 10
	}
	if len(opts.QuizBank) == 0 {
		opts.QuizBank = DefaultQuizBank()
	}
	return &Machine{state: Idle{}, gens: map[Kind]uint64{}, rng: rng, opts: opts}
}

// State returns the active state.
func (m *Machine) State() State { return m.state }

// Active reports whether a flow is in progress.
func (m *Machine) Active() bool { return m.state.Kind() != KindIdle }

// WholeLine reports whether the active flow takes a whole input line
// (free-text fields) rather than one queued command at a time.
func (m *Machine) WholeLine() bool {
	switch m.state.Kind() {
	case KindEntry, KindConfirm:
		return true
	}
	return false
}

func (m *Machine) begin(s State) error {
	if m.Active() {
		return fmt.Errorf("%w: %s", ErrBusy, m.state.Title())
	}
	m.gens[s.Kind()]++
	m.state = s
	return nil
}

func (m *Machine) end(step *Step) {
	if k := m.state.Kind(); k != KindIdle {
		m.gens[k]++
	}
	m.state = Idle{}
	step.Ended = true
}

var cancelRegex = regexp.MustCompile(`^(?:exit|stop|quit|cancel|end|leave)(?:\s+(?:the\s+)?(?:quiz|game|rps|rock paper scissors|task|reminder|contact|expense|entry|it|this))?$`)

// IsCancel reports whether line asks to abandon the active flow.
func IsCancel(line string) bool {
	return cancelRegex.MatchString(cleanLine(line))
}

// Cancel abandons the active flow and discards its data.
func (m *Machine) Cancel() Step {
	var step Step
	switch st := m.state.(type) {
	case Idle:
		return step
	case *RPS:
		step.say("Game over! Final score: You %d - Me %d (ties %d). Thanks for playing!", st.Wins, st.Losses, st.Ties)
	case *Quiz:
		step.say("Quiz stopped. You scored %d/%d before stopping.", st.Score, len(st.Questions))
	default:
		step.say("Okay, cancelled %s. Nothing was saved.", m.state.Title())
	}
	m.end(&step)
	return step
}

// Input feeds one line to the active flow.
func (m *Machine) Input(line string) Step {
	if IsCancel(line) {
		return m.Cancel()
	}
	switch st := m.state.(type) {
	case *Quiz:
		return m.quizAnswer(st, line)
	case *RPS:
		return m.rpsRound(st, line)
	case *Entry:
		return m.entryInput(st, line)
	case *ConfirmClear:
		return m.confirmClear(st, line)
	}
	return Step{}
}

// StartConfirmClear asks for confirmation before wiping everything, or
// only the chat history when chatOnly is set.
func (m *Machine) StartConfirmClear(chatOnly bool) (Step, error) {
	if err := m.begin(&ConfirmClear{ChatOnly: chatOnly}); err != nil {
		return Step{}, err
	}
	var step Step
	if chatOnly {
		step.say("⚠️ This will delete your whole chat history. Type 'yes' to confirm or anything else to keep it.")
	} else {
		step.say("⚠️ This will delete all your tasks, notes, trackers and chat history. Type 'yes' to confirm or anything else to keep them.")
	}
	return step, nil
}

func (m *Machine) confirmClear(c *ConfirmClear, line string) Step {
	var step Step
	switch {
	case !isYes(line):
		step.say("Okay, nothing was deleted.")
	case c.ChatOnly:
		step.ClearChat = true
	default:
		step.ClearAll = true
	}
	m.end(&step)
	return step
}

func cleanLine(line string) string {
	s := strings.Join(strings.Fields(strings.ToLower(line)), " ")
	return strings.Trim(s, "!.?,;: ")
}

func isYes(line string) bool {
	switch cleanLine(line) {
	case "yes", "y", "yeah", "yep", "sure", "ok", "okay", "confirm", "save", "do it":
		return true
	}
	return false
}

func isNo(line string) bool {
	switch cleanLine(line) {
	case "no", "n", "nope", "nah", "discard", "don't", "dont":
		return true
	}
	return false
}
