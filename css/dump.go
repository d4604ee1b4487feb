package css

import (
	"fmt"
	"strconv"
	"strings"
)

type treeWriter struct {
	w strings.Builder
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *treeWriter) text(depth int, label, value string) {
	if value == "" {
		tw.line(depth, "%s:", label)
		return
	}
	tw.line(depth, "%s: %s", label, strconv.Quote(value))
}

// Dump returns indented textual representation of stylesheet tree for
// debugging.
func (s *Stylesheet) Dump() string {
	var tw treeWriter
	if s == nil || s.Root == nil {
		return ""
	}
	tw.line(0, "%s", RootNode)
	dumpNodes(&tw, s.Root.Children, 1)
	for _, w := range s.Warnings {
		tw.text(0, "warning", w)
	}
	return tw.w.String()
}

func dumpNodes(tw *treeWriter, nodes []*Node, depth int) {
	for _, n := range nodes {
		switch n.Kind {
		case AtRuleNode:
			tw.line(depth, "%s @%s", n.Kind, n.Name)
			if n.Prelude != "" {
				tw.text(depth+1, "prelude", n.Prelude)
			}
		default:
			tw.line(depth, "%s", n.Kind)
		}
		for _, sel := range n.Selectors {
			tw.text(depth+1, "selector", sel)
		}
		dumpNodes(tw, n.Children, depth+1)
	}
}
