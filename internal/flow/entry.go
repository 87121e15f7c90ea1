package flow

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/ghost/internal/durations"
)

// EntryKind names a guided data-entry wizard.
type EntryKind string

const (
	EntryTask     EntryKind = "task"
	EntryReminder EntryKind = "reminder"
	EntryContact  EntryKind = "contact"
	EntryExpense  EntryKind = "expense"
)

// Field names used in Commit.Values.
const (
	FieldText        = "text"
	FieldWhen        = "when"
	FieldName        = "name"
	FieldPhone       = "phone"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPayment     = "payment mode"
)

// Field is one step of a wizard. Parse validates and normalises the input;
// an error re-prompts for the same field.
type Field struct {
	Name     string
	Prompt   string
	Optional bool
	Parse    func(string) (string, error)
}

var entryFields = map[EntryKind][]Field{
	EntryTask: {
		{Name: FieldText, Prompt: "What's the task?", Parse: nonEmpty},
	},
	EntryReminder: {
		{Name: FieldText, Prompt: "What should I remind you about?", Parse: nonEmpty},
		{Name: FieldWhen, Prompt: "In how long? (e.g. 10 minutes, 1 hour)", Parse: parseWhen},
	},
	EntryContact: {
		{Name: FieldName, Prompt: "What's the contact's name?", Parse: nonEmpty},
		{Name: FieldPhone, Prompt: "What's their phone number?", Parse: ParsePhone},
	},
	EntryExpense: {
		{Name: FieldAmount, Prompt: "How much did you spend?", Parse: ParseAmount},
		{Name: FieldDescription, Prompt: "What was it for?", Parse: nonEmpty},
		{Name: FieldCategory, Prompt: "Category? (e.g. food, travel, bills, or 'skip')", Optional: true, Parse: lowerTrim},
		{Name: FieldPayment, Prompt: "Payment mode? (cash, card, upi, or 'skip')", Optional: true, Parse: lowerTrim},
	},
}

// Entry is an in-progress guided entry.
type Entry struct {
	Of         EntryKind
	Values     map[string]string
	Next       int
	Confirming bool
}

func (*Entry) Kind() Kind { return KindEntry }
func (e *Entry) Title() string { return "adding a " + string(e.Of) }

// Commit is a confirmed entry ready to persist.
type Commit struct {
	Of     EntryKind
	Values map[string]string
}

// StartEntry begins a wizard. Values already known from the command line
// are passed in prefill and validated; their prompts are skipped.
func (m *Machine) StartEntry(kind EntryKind, prefill map[string]string) (Step, error) {
	fields, ok := entryFields[kind]
	if !ok {
		return Step{}, fmt.Errorf("unknown entry kind %q", kind)
	}
	e := &Entry{Of: kind, Values: map[string]string{}}
	for _, f := range fields {
		raw, ok := prefill[f.Name]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if v, err := f.Parse(raw); err == nil {
			e.Values[f.Name] = v
		}
	}
	if err := m.begin(e); err != nil {
		return Step{}, err
	}

	var step Step
	step.say("Okay, let's add a %s. Say 'cancel' anytime to stop.", kind)
	m.promptNext(e, &step)
	return step, nil
}

func (m *Machine) promptNext(e *Entry, step *Step) {
	fields := entryFields[e.Of]
	for e.Next < len(fields) {
		if _, done := e.Values[fields[e.Next].Name]; !done {
			step.say("%s", fields[e.Next].Prompt)
			return
		}
		e.Next++
	}
	e.Confirming = true
	step.say("Save this %s? %s (yes/no)", e.Of, summary(e))
}

func (m *Machine) entryInput(e *Entry, line string) Step {
	var step Step
	if e.Confirming {
		switch {
		case isYes(line):
			step.Commit = &Commit{Of: e.Of, Values: e.Values}
			m.end(&step)
		case isNo(line):
			step.say("Okay, discarded the %s.", e.Of)
			m.end(&step)
		default:
			step.say("Please answer yes or no. Save this %s? %s", e.Of, summary(e))
		}
		return step
	}

	f := entryFields[e.Of][e.Next]
	if f.Optional && isSkip(line) {
		e.Values[f.Name] = ""
	} else {
		v, err := f.Parse(line)
		if err != nil {
			step.say("❌ %s. %s", capitalize(err.Error()), f.Prompt)
			return step
		}
		e.Values[f.Name] = v
	}
	e.Next++
	m.promptNext(e, &step)
	return step
}

func summary(e *Entry) string {
	var parts []string
	for _, f := range entryFields[e.Of] {
		v := e.Values[f.Name]
		if v == "" {
			v = "-"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Name, v))
	}
	return strings.Join(parts, ", ")
}

func isSkip(line string) bool {
	switch cleanLine(line) {
	case "skip", "-", "none", "no", "n/a", "na":
		return true
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func nonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("that can't be empty")
	}
	return s, nil
}

func lowerTrim(s string) (string, error) {
	return strings.ToLower(strings.TrimSpace(s)), nil
}

func parseWhen(s string) (string, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "in "))
	if _, err := durations.Parse(s); err != nil {
		return "", err
	}
	return s, nil
}

var (
	phoneStrip  = regexp.MustCompile(`[\s\-().]`)
	phoneDigits = regexp.MustCompile(`^\+?\d{3,15}$`)
	amountStrip = regexp.MustCompile(`(?i)^(?:rs\.?|inr|usd|eur|₹|\$|€)\s*|\s*(?:rs\.?|rupees|inr|usd|dollars|eur|euros)$`)
)

// ParsePhone accepts 3 to 15 digits with an optional leading +, ignoring
// spaces, dashes, dots and parentheses.
func ParsePhone(s string) (string, error) {
	p := phoneStrip.ReplaceAllString(strings.TrimSpace(s), "")
	if !phoneDigits.MatchString(p) {
		return "", fmt.Errorf("%q doesn't look like a phone number", strings.TrimSpace(s))
	}
	return p, nil
}

// ParseAmount reads a positive money amount like "250", "₹250" or "1,200.50 rs".
func ParseAmount(s string) (string, error) {
	raw := strings.TrimSpace(s)
	a := amountStrip.ReplaceAllString(raw, "")
	a = strings.ReplaceAll(strings.TrimSpace(a), ",", "")
	v, err := strconv.ParseFloat(a, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return "", fmt.Errorf("%q is not a valid amount", raw)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}
