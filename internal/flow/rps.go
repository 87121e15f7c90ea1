package flow

import "fmt"

// Move is a rock-paper-scissors choice.
type Move int

const (
	Rock Move = iota
	Paper
	Scissors
)

var moveNames = [...]string{"rock", "paper", "scissors"}

func (m Move) String() string { return moveNames[m] }

// ParseMove reads a move case-insensitively. ok is false for anything else.
func ParseMove(s string) (Move, bool) {
	switch cleanLine(s) {
	case "rock":
		return Rock, true
	case "paper":
		return Paper, true
	case "scissors", "scissor":
		return Scissors, true
	}
	return 0, false
}

// Outcome of a round from the user's side.
type Outcome int

const (
	Tie Outcome = iota
	Win
	Lose
)

// Play applies standard precedence: rock beats scissors, scissors beats
// paper, paper beats rock.
func Play(user, bot Move) Outcome {
	switch {
	case user == bot:
		return Tie
	case (user == Rock && bot == Scissors) ||
		(user == Scissors && bot == Paper) ||
		(user == Paper && bot == Rock):
		return Win
	default:
		return Lose
	}
}

// RPS is an in-progress rock-paper-scissors game.
type RPS struct {
	Wins   int
	Losses int
	Ties   int
}

func (*RPS) Kind() Kind { return KindRPS }
func (*RPS) Title() string { return "rock-paper-scissors" }

// StartRPS begins a game that lasts until the user exits.
func (m *Machine) StartRPS() (Step, error) {
	if err := m.begin(&RPS{}); err != nil {
		return Step{}, err
	}
	var step Step
	step.say("✊✋✌️ Let's play rock-paper-scissors! Type rock, paper or scissors. Say 'exit game' to stop.")
	return step, nil
}

func (m *Machine) rpsRound(g *RPS, line string) Step {
	var step Step
	user, ok := ParseMove(line)
	if !ok {
		step.say("Please choose rock, paper or scissors (or say 'exit game').")
		return step
	}

	bot := Move(m.rng.Intn(3))
	var verdict string
	switch Play(user, bot) {
	case Win:
		g.Wins++
		verdict = "You win! 🎉"
	case Lose:
		g.Losses++
		verdict = "I win! 😎"
	default:
		g.Ties++
		verdict = "It's a tie! 🤝"
	}
	step.Replies = append(step.Replies, fmt.Sprintf("You chose %s, I chose %s. %s Score: You %d - Me %d (ties %d).",
		user, bot, verdict, g.Wins, g.Losses, g.Ties))
	return step
}
