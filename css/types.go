package css

import (
	"strings"
)

// NodeKind discriminates nodes of the stylesheet tree.
type NodeKind int

const (
	RootNode   NodeKind = iota // Stylesheet root
	RuleNode                   // Style rule (selectors + declarations)
	AtRuleNode                 // @-rule, with or without a block
)

// String returns a human readable kind name.
func (k NodeKind) String() string {
	switch k {
	case RootNode:
		return "root"
	case RuleNode:
		return "rule"
	case AtRuleNode:
		return "atrule"
	default:
		return "unknown"
	}
}

// Node is a single node of the stylesheet tree.
type Node struct {
	Kind      NodeKind
	Name      string   // At-rule name without "@" (e.g., "media", "-webkit-keyframes")
	Prelude   string   // At-rule parameters (e.g., "screen and (min-width: 10em)")
	Selectors []string // Rule selectors in source order, one per comma separated item
	Parent    *Node
	Children  []*Node
}

// IsAtRule returns true if node is an @-rule.
func (n *Node) IsAtRule() bool {
	return n != nil && n.Kind == AtRuleNode
}

// IsRule returns true if node is a style rule.
func (n *Node) IsRule() bool {
	return n != nil && n.Kind == RuleNode
}

func (n *Node) append(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// Stylesheet represents a parsed CSS stylesheet as a tree of rules.
type Stylesheet struct {
	Root     *Node
	Warnings []string // Parser complaints, advisory only
}

// NewStylesheet returns an empty stylesheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{
		Root:     &Node{Kind: RootNode},
		Warnings: make([]string, 0),
	}
}

// Walk visits every node below the root depth first in document order.
// Returning false from fn skips the children of the visited node.
func (s *Stylesheet) Walk(fn func(n *Node) bool) {
	if s == nil || s.Root == nil {
		return
	}
	walk(s.Root.Children, fn)
}

func walk(nodes []*Node, fn func(n *Node) bool) {
	for _, n := range nodes {
		if fn(n) {
			walk(n.Children, fn)
		}
	}
}

// WalkRules visits style rules only, depth first in document order.
func (s *Stylesheet) WalkRules(fn func(rule *Node)) {
	s.Walk(func(n *Node) bool {
		if n.IsRule() {
			fn(n)
		}
		return true
	})
}

// AtRules returns all @-rules with the given name (without "@") in document order.
func (s *Stylesheet) AtRules(name string) []*Node {
	var found []*Node
	s.Walk(func(n *Node) bool {
		if n.IsAtRule() && strings.EqualFold(n.Name, name) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// RulesBySelector returns all rules (at any depth) having the given selector.
func (s *Stylesheet) RulesBySelector(selector string) []*Node {
	var matches []*Node
	s.WalkRules(func(rule *Node) {
		for _, sel := range rule.Selectors {
			if sel == selector {
				matches = append(matches, rule)
				return
			}
		}
	})
	return matches
}
