// Package intent classifies one line of input into a named intent with
// extracted parameters, using an ordered table of rules where the first
// match wins.
package intent

import (
	"regexp"
	"strings"
)

// Params holds values captured from the input, keyed by capture-group name.
type Params map[string]string

// Get returns the trimmed value for key, or "".
func (p Params) Get(key string) string {
	return strings.TrimSpace(p[key])
}

// Rule is one entry of the table. Name identifies the handler it dispatches to.
type Rule struct {
	Name  string
	Match func(line string) (Params, bool)
}

// Where narrows a rule with an extra check on its params.
func (r Rule) Where(ok func(line string, p Params) bool) Rule {
	match := r.Match
	r.Match = func(line string) (Params, bool) {
		p, matched := match(line)
		if !matched || !ok(line, p) {
			return nil, false
		}
		return p, true
	}
	return r
}

// Normalize lowercases and trims a line and collapses inner whitespace.
func Normalize(line string) string {
	return strings.Join(strings.Fields(strings.ToLower(line)), " ")
}

// Exact matches when the normalised line equals one of phrases.
// A trailing "!" "." or "?" on the input is ignored.
func Exact(name string, phrases ...string) Rule {
	set := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		set[Normalize(p)] = true
	}
	return Rule{Name: name, Match: func(line string) (Params, bool) {
		n := strings.TrimRight(Normalize(line), "!.? ")
		if set[n] {
			return Params{}, true
		}
		return nil, false
	}}
}

// Prefix matches when the normalised line starts with one of prefixes. The
// rest of the original line (case preserved) is captured as "rest".
func Prefix(name string, prefixes ...string) Rule {
	return Rule{Name: name, Match: func(line string) (Params, bool) {
		trimmed := strings.TrimSpace(line)
		for _, p := range prefixes {
			if len(trimmed) >= len(p) && strings.EqualFold(trimmed[:len(p)], p) {
				return Params{"rest": strings.TrimSpace(trimmed[len(p):])}, true
			}
		}
		return nil, false
	}}
}

// Contains matches when the normalised line contains one of subs.
func Contains(name string, subs ...string) Rule {
	return Rule{Name: name, Match: func(line string) (Params, bool) {
		n := Normalize(line)
		for _, s := range subs {
			if strings.Contains(n, s) {
				return Params{}, true
			}
		}
		return nil, false
	}}
}

var wordSplit = regexp.MustCompile(`[^a-z0-9']+`)

// Words matches when any of words appears as a whole word, so "hi" matches
// "hi there" but not "this". Multi-word entries match as a phrase.
func Words(name string, words ...string) Rule {
	return Rule{Name: name, Match: func(line string) (Params, bool) {
		tokens := wordSplit.Split(strings.ToLower(line), -1)
		padded := " " + strings.Join(tokens, " ") + " "
		for _, w := range words {
			if strings.Contains(padded, " "+w+" ") {
				return Params{}, true
			}
		}
		return nil, false
	}}
}

// Regexp matches a case-insensitive pattern against the trimmed line. Named
// capture groups become params; the original casing is kept.
func Regexp(name, pattern string) Rule {
	re := regexp.MustCompile(`(?i)` + pattern)
	names := re.SubexpNames()
	return Rule{Name: name, Match: func(line string) (Params, bool) {
		m := re.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			return nil, false
		}
		p := Params{}
		for i, n := range names {
			if n != "" && i < len(m) {
				p[n] = m[i]
			}
		}
		return p, true
	}}
}

// Func wraps a predicate that needs no params.
func Func(name string, ok func(line string) bool) Rule {
	return Rule{Name: name, Match: func(line string) (Params, bool) {
		if ok(line) {
			return Params{"line": strings.TrimSpace(line)}, true
		}
		return nil, false
	}}
}

// Match is the result of classifying a line.
type Match struct {
	Name   string
	Params Params
}

// Table is an ordered rule list.
type Table struct {
	rules []Rule
}

// NewTable builds a table evaluated in the given order.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// Classify returns the first matching rule. ok is false when nothing matched.
func (t *Table) Classify(line string) (Match, bool) {
	for _, r := range t.rules {
		if p, ok := r.Match(line); ok {
			return Match{Name: r.Name, Params: p}, true
		}
	}
	return Match{}, false
}
