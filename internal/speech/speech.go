// Package speech prepares reply text for a text-to-speech engine: emoji and
// markup are stripped and long replies are split into utterances.
package speech

import (
	"strings"
	"unicode"
)

const (
	DefaultTargetSize = 160
	DefaultMaxSize    = 240
)

// Options configures utterance splitting.
type Options struct {
	TargetSize int
	MaxSize    int
}

// DefaultOptions returns default splitting options.
func DefaultOptions() Options {
	return Options{
		TargetSize: DefaultTargetSize,
		MaxSize:    DefaultMaxSize,
	}
}

// Sanitize removes emoji, pictographs and markdown emphasis so the engine
// does not read them aloud, and collapses whitespace within each line.
func Sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		if isEmoji(r) {
			continue
		}
		switch r {
		case '*', '_', '`', '#':
			continue
		}
		b.WriteRune(r)
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, transport, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // arrows and stars
		return true
	case r >= 0x2300 && r <= 0x23FF: // watch, hourglass, alarm clock
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r == 0x200D || r == 0x20E3: // zero width joiner, keycap
		return true
	case r >= 0xE0020 && r <= 0xE007F: // tag sequences
		return true
	}
	return unicode.Is(unicode.Co, r)
}

// Utterances sanitizes text and splits it into pieces no longer than
// opts.MaxSize, preferring line and sentence boundaries. Short text returns a
// single utterance; text with nothing speakable returns nil.
func Utterances(text string, opts Options) []string {
	if opts.TargetSize == 0 {
		opts = DefaultOptions()
	}

	text = Sanitize(text)
	if len(text) == 0 {
		return nil
	}
	if len(text) <= opts.MaxSize {
		return []string{flatten(text)}
	}
	return mergeBlocks(strings.Split(text, "\n"), opts)
}

// mergeBlocks combines short lines and splits oversized ones, targeting
// opts.TargetSize.
func mergeBlocks(blocks []string, opts Options) []string {
	var results []string
	var accum string

	flushAccum := func() {
		t := strings.TrimSpace(accum)
		if t == "" {
			return
		}
		if len(t) > opts.MaxSize {
			results = append(results, hardSplit(t, opts)...)
		} else {
			results = append(results, t)
		}
		accum = ""
	}

	for _, b := range blocks {
		if accum == "" {
			accum = b
			continue
		}
		combined := accum + " " + b
		if len(combined) <= opts.TargetSize {
			accum = combined
		} else {
			flushAccum()
			accum = b
		}
	}
	flushAccum()

	return results
}

// hardSplit breaks a long line on sentence ends, then on words.
func hardSplit(text string, opts Options) []string {
	var results []string
	var current strings.Builder

	flush := func() {
		if t := strings.TrimSpace(current.String()); t != "" {
			results = append(results, t)
		}
		current.Reset()
	}

	for _, piece := range pieces(text) {
		if current.Len()+len(piece)+1 > opts.TargetSize && current.Len() > 0 {
			flush()
		}
		if len(piece) > opts.MaxSize {
			for _, w := range strings.Fields(piece) {
				if current.Len()+len(w)+1 > opts.MaxSize && current.Len() > 0 {
					flush()
				}
				if current.Len() > 0 {
					current.WriteByte(' ')
				}
				current.WriteString(w)
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(piece)
	}
	flush()

	return results
}

// pieces splits text after '.', '!', '?' or ';' followed by a space.
func pieces(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?', ';':
			if text[i+1] == ' ' {
				out = append(out, strings.TrimSpace(text[start:i+1]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
