package selectors

import (
	"strings"

	"lsel/css"
)

// inKeyframes reports whether rule is a keyframe selector ("from", "50%")
// directly inside of @keyframes or any of its vendor prefixed variants.
func inKeyframes(rule *css.Node) bool {
	return rule.Parent.IsAtRule() && strings.Contains(rule.Parent.Name, "keyframes")
}

// Collect returns selectors of all style rules in document order, duplicates
// included. Rules directly inside of keyframes at-rules are ignored.
func Collect(sheet *css.Stylesheet) []string {
	var list []string
	sheet.WalkRules(func(rule *css.Node) {
		if inKeyframes(rule) {
			return
		}
		list = append(list, rule.Selectors...)
	})
	return list
}
