// Package calc holds the arithmetic and conversion helpers behind ghost's
// math, BMI, currency and unit commands.
package calc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidChars means the expression holds something other than
	// digits, + - * / ( ) . and whitespace.
	ErrInvalidChars = errors.New("invalid characters in math expression")
	// ErrNotFinite means the result is infinite or NaN, e.g. division by zero.
	ErrNotFinite = errors.New("result is not a finite number")
	// ErrSyntax means the expression is made of allowed characters but is malformed.
	ErrSyntax = errors.New("malformed math expression")
)

var (
	allowedChars = regexp.MustCompile(`^[0-9+\-*/().\s]+$`)
	timesBetween = regexp.MustCompile(`(\d|\))\s*[xX×]\s*(\d|\(|\.)`)
	hasOperator  = regexp.MustCompile(`[\d).]\s*[+\-*/x×÷]\s*[\d(.+\-]`)
	looksNumeric = regexp.MustCompile(`^[\s\d+\-*/().x×÷]+$`)
)

// Normalize rewrites the spoken/typed multiplication and division signs
// (x, ×, ÷) into * and /.
func Normalize(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimSuffix(expr, "?")
	expr = strings.TrimSuffix(expr, "=")
	expr = strings.ReplaceAll(expr, "÷", "/")
	for timesBetween.MatchString(expr) {
		expr = timesBetween.ReplaceAllString(expr, "$1*$2")
	}
	return strings.TrimSpace(expr)
}

// IsExpression reports whether s is a bare arithmetic expression with at
// least one binary operator, e.g. "2+2*3" or "(4 - 1) x 3".
func IsExpression(s string) bool {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "?"))
	return looksNumeric.MatchString(s) && hasOperator.MatchString(s)
}

// MentionsArithmetic reports whether s contains a digit next to an operator,
// used to tell "what is 25 × 17" from "what is your name".
func MentionsArithmetic(s string) bool {
	return hasOperator.MatchString(s)
}

// Eval evaluates expr with standard precedence. Characters outside the
// allowed set are rejected before any parsing happens.
func Eval(expr string) (float64, error) {
	expr = Normalize(expr)
	if !allowedChars.MatchString(expr) {
		return 0, ErrInvalidChars
	}

	p := &parser{src: expr}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.src[p.pos:])
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// FormatNumber prints v without trailing zeros, rounded to 10 decimals.
func FormatNumber(v float64) string {
	r := math.Round(v*1e10) / 1e10
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// parser is a recursive-descent evaluator:
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = ("+" | "-") factor | number | "(" expr ")"
type parser struct {
	src   string
	pos   int
	depth int
}

const maxDepth = 64

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			left /= right
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return 0, fmt.Errorf("%w: nested too deeply", ErrSyntax)
	}

	switch c := p.peek(); {
	case c == '+' || c == '-':
		p.pos++
		v, err := p.parseFactor()
		if c == '-' {
			v = -v
		}
		return v, err
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("%w: missing )", ErrSyntax)
		}
		p.pos++
		return v, nil
	case c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == 0:
		return 0, fmt.Errorf("%w: unexpected end", ErrSyntax)
	default:
		return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, string(c))
	}
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	dots := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '.' {
			dots++
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	lit := p.src[start:p.pos]
	if dots > 1 || lit == "." {
		return 0, fmt.Errorf("%w: bad number %q", ErrSyntax, lit)
	}
	return strconv.ParseFloat(lit, 64)
}
