package ghost

import (
	"regexp"
	"strings"
)

var conjunction = regexp.MustCompile(`(?i)\s*,?\s+(?:and then|and also|and|then|also|&)\s+`)

// span is a [start, end) byte range of the input line.
type span struct{ start, end int }

// splitSpans cuts line at conjunctions that are not inside double quotes.
func splitSpans(line string) []span {
	quoted := quotedRanges(line)
	var spans []span
	start := 0
	for _, m := range conjunction.FindAllStringIndex(line, -1) {
		if inRanges(quoted, m[0]) {
			continue
		}
		spans = append(spans, span{start, m[0]})
		start = m[1]
	}
	return append(spans, span{start, len(line)})
}

func quotedRanges(line string) []span {
	var out []span
	open := -1
	for i, r := range line {
		switch r {
		case '"', '“', '”':
			if open < 0 {
				open = i
			} else {
				out = append(out, span{open, i})
				open = -1
			}
		}
	}
	if open >= 0 {
		out = append(out, span{open, len(line)})
	}
	return out
}

func inRanges(ranges []span, pos int) bool {
	for _, r := range ranges {
		if pos > r.start && pos < r.end {
			return true
		}
	}
	return false
}

// nextCommand takes the first command off line. A piece that matches no
// rule on its own belongs to the command before it, so "note: bread and
// butter" stays one command.
func nextCommand(line string, matches func(string) bool) (seg, rest string) {
	spans := splitSpans(line)
	cur := spans[0]
	i := 1
	for ; i < len(spans); i++ {
		piece := strings.TrimSpace(line[spans[i].start:spans[i].end])
		if piece != "" && matches != nil && matches(piece) {
			break
		}
		cur.end = spans[i].end
	}
	seg = strings.TrimSpace(line[cur.start:cur.end])
	if i < len(spans) {
		rest = strings.TrimSpace(line[spans[i].start:])
	}
	return seg, rest
}

// next takes the first command off pending given the current flow. Guided
// entry and the clear confirmation read the whole line; quiz and
// rock-paper-scissors take one piece at a time without merging.
func (e *Engine) next(pending string) (seg, rest string) {
	switch {
	case e.flows.WholeLine():
		return strings.TrimSpace(pending), ""
	case e.flows.Active():
		return nextCommand(pending, func(string) bool { return true })
	}
	return nextCommand(pending, e.matches)
}

func (e *Engine) matches(piece string) bool {
	_, ok := e.table.Classify(piece)
	return ok
}
