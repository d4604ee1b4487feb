package selectors

// cutPseudo splits selector at the first colon which is not inside of an
// attribute selector, so "[href^='http:']" keeps its value intact.
func cutPseudo(s string) (before, after string, found bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

// StripPseudos removes pseudo-classes and pseudo-elements from a simple
// selector: everything from the first colon on is dropped. Chained suffixes
// collapse, "#foo:nth-child(7):focus::before" becomes "#foo". Should the
// selector start with a colon, the first non-empty segment is kept.
func StripPseudos(simple string) string {
	rest := simple
	for {
		before, after, found := cutPseudo(rest)
		if before != "" || !found {
			return before
		}
		rest = after
	}
}
