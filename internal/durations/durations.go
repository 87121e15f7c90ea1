// Package durations parses "N unit" phrases such as "5 minutes" or "1 hr"
// and formats durations for replies.
package durations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
)

// DefaultUnit applies when a phrase has no unit or one we don't recognise.
const DefaultUnit = time.Minute

// MaxDuration caps any parsed duration.
const MaxDuration = 7 * 24 * time.Hour

var phraseRegex = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*-?\s*([a-z]*)\s*$`)

// Unit maps a unit word to its duration. ok is false for unknown or empty words.
func Unit(word string) (time.Duration, bool) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "s", "sec", "secs", "second", "seconds":
		return time.Second, true
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute, true
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, true
	case "d", "day", "days":
		return 24 * time.Hour, true
	}
	return 0, false
}

// Of returns n units. Unknown or empty units fall back to DefaultUnit.
func Of(n float64, unit string) (time.Duration, error) {
	if !(n > 0) {
		return 0, fmt.Errorf("duration must be positive, got %v", n)
	}
	u, ok := Unit(unit)
	if !ok {
		u = DefaultUnit
	}
	// Compare before converting; a large n overflows time.Duration.
	if n*float64(u) > float64(MaxDuration) {
		return 0, fmt.Errorf("duration is longer than %s", Format(MaxDuration))
	}
	d := time.Duration(n * float64(u))
	if d < time.Second {
		return 0, fmt.Errorf("duration must be at least one second")
	}
	return d, nil
}

// Parse reads a phrase like "5 minutes", "90s", "2 hrs" or a bare "10".
func Parse(phrase string) (time.Duration, error) {
	m := phraseRegex.FindStringSubmatch(phrase)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q (use e.g. 30 seconds, 5 minutes, 1 hour)", strings.TrimSpace(phrase))
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", m[1])
	}
	return Of(n, m[2])
}

// Format renders d as e.g. "5 minutes" or "1 hour 30 minutes".
func Format(d time.Duration) string {
	if d < time.Second {
		return "0 seconds"
	}
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).String()
}
