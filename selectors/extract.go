// Package selectors lists, decomposes, classifies and sorts CSS selectors of
// a parsed stylesheet.
//
// Complex selectors are collected from style rules (rules of keyframes blocks
// are ignored), decomposed into simple selectors (universal, type, id, class
// and attribute), stripped of pseudo-classes and pseudo-elements, deduplicated
// and sorted alphabetically ignoring case and category punctuation. The
// resulting Report may be projected to a subset of its lists with includes.
package selectors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Characters which end a compound selector.
func isCombinator(r rune) bool {
	return unicode.IsSpace(r) || r == '>' || r == '+' || r == '~'
}

// Characters which start a new simple selector (or pseudo argument) inside of
// a compound selector.
func isBoundary(r rune) bool {
	return r == '.' || r == '#' || r == '[' || r == '(' || r == ')'
}

// isName reports whether r may continue a simple selector name. Colon is
// excluded here: it starts a pseudo suffix, which is handled separately.
func isName(r rune) bool {
	return r != ':' && !isCombinator(r) && !isBoundary(r)
}

// tokenizer scans a single complex selector.
type tokenizer struct {
	src string
	pos int
}

func (t *tokenizer) eof() bool {
	return t.pos >= len(t.src)
}

func (t *tokenizer) peek() rune {
	if t.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(t.src[t.pos:])
	return r
}

func (t *tokenizer) advance() {
	if !t.eof() {
		_, size := utf8.DecodeRuneInString(t.src[t.pos:])
		t.pos += size
	}
}

// names consumes a run of name characters and returns its length in bytes.
func (t *tokenizer) names() int {
	start := t.pos
	for !t.eof() && isName(t.peek()) {
		t.advance()
	}
	return t.pos - start
}

// attribute consumes "[...]" up to the first closing bracket. Content is
// opaque, so combinators and boundaries inside of it do not split the token.
// Returns false (consuming nothing) when there is no closing bracket on the
// same line or brackets are empty.
func (t *tokenizer) attribute() bool {
	end := strings.IndexByte(t.src[t.pos+1:], ']')
	if end <= 0 || strings.ContainsAny(t.src[t.pos+1:t.pos+1+end], "\r\n") {
		return false
	}
	t.pos += end + 2
	return true
}

// group consumes parenthesized pseudo argument including nested parentheses
// and quoted strings. Unbalanced group runs to the end of selector.
func (t *tokenizer) group() {
	var (
		depth   int
		quote   rune
		escaped bool
	)
	for !t.eof() {
		r := t.peek()
		t.advance()
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth--; depth == 0 {
				return
			}
		}
	}
}

// pseudos consumes any chain of pseudo-classes and pseudo-elements, e.g.
// ":nth-child(2n+1):focus::before". Pseudo arguments are never decomposed.
func (t *tokenizer) pseudos() {
	for t.peek() == ':' {
		for t.peek() == ':' {
			t.advance()
		}
		t.names()
		if t.peek() == '(' {
			t.group()
		}
	}
}

// bare consumes chain of pseudos not attached to any simple selector and
// returns it without arguments, ":not(.b):hover" becomes ":not:hover".
func (t *tokenizer) bare() string {
	var b strings.Builder
	for t.peek() == ':' {
		for t.peek() == ':' {
			b.WriteByte(':')
			t.advance()
		}
		start := t.pos
		t.names()
		b.WriteString(t.src[start:t.pos])
		if t.peek() == '(' {
			t.group()
		}
	}
	return b.String()
}

// next returns the next simple selector (with its pseudo suffix, if any).
// ok is false when scanned characters did not form a simple selector.
func (t *tokenizer) next() (token string, ok bool) {
	start := t.pos

	switch r := t.peek(); {
	case r == '*':
		t.advance()
	case r == '[':
		if !t.attribute() {
			t.advance()
			return "", false
		}
	case r == '#' || r == '.':
		t.advance()
		if t.names() == 0 {
			return "", false
		}
	case r == ':':
		// pseudo without anything to attach to, e.g. ":root", is a name of
		// its own
		token = t.bare()
		return token, strings.Trim(token, ":") != ""
	case isName(r):
		t.names()
	default:
		// combinators and stray parentheses
		t.advance()
		return "", false
	}

	t.pseudos()
	return t.src[start:t.pos], true
}

// Extract decomposes complex selector into the simple selectors it consists
// of, in order and including repeats. Tokens keep their pseudo suffixes, use
// StripPseudos to remove them:
//
//	Extract("ul > li:first-child a[href]") // ["ul", "li:first-child", "a", "[href]"]
//	Extract(".a:not(.b)")                  // [".a:not(.b)"]
//	Extract(":root > :not(.b)")            // [":root", ":not"]
func Extract(selector string) []string {
	t := tokenizer{src: selector}

	var tokens []string
	for !t.eof() {
		if token, ok := t.next(); ok {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
