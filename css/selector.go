package css

import (
	"strings"
	"unicode"
)

// scanner state shared by selector text helpers: quoted strings and escapes
// are opaque, brackets and parentheses nest.
type textState struct {
	quote   rune
	escaped bool
	depth   int
}

// step consumes r and reports whether r is structural (outside of strings
// and not escaped).
func (st *textState) step(r rune) bool {
	switch {
	case st.escaped:
		st.escaped = false
		return false
	case r == '\\':
		st.escaped = true
		return false
	case st.quote != 0:
		if r == st.quote {
			st.quote = 0
		}
		return false
	case r == '"' || r == '\'':
		st.quote = r
		return false
	case r == '(' || r == '[':
		st.depth++
	case r == ')' || r == ']':
		if st.depth > 0 {
			st.depth--
		}
	}
	return true
}

// splitSelectorList splits selector list on top level commas, so commas in
// ":is(a, b)" or "[title='a,b']" are left alone.
func splitSelectorList(s string) []string {
	var (
		parts []string
		st    textState
		start int
	)
	for i, r := range s {
		depth := st.depth
		if st.step(r) && r == ',' && depth == 0 {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// normalizeSelector trims selector, collapses whitespace runs to a single
// space and puts exactly one space around top level combinators (">", "+",
// "~"), so "ul>li" and "ul  >\n li" both become "ul > li".
func normalizeSelector(s string) string {
	var (
		sb    strings.Builder
		st    textState
		space bool
	)
	for _, r := range strings.TrimSpace(s) {
		depth := st.depth
		structural := st.step(r)

		switch {
		case structural && unicode.IsSpace(r):
			space = true
			continue
		case structural && depth == 0 && (r == '>' || r == '+' || r == '~'):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(r)
			sb.WriteByte(' ')
			space = false
			continue
		}

		if space && sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}

// collapseWhitespace trims s and replaces every whitespace run with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
