package css

import (
	"fmt"
)

// Warning is an advisory message produced while processing a stylesheet.
type Warning struct {
	Plugin string // Name of the plugin which produced the warning
	Text   string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	if w.Plugin == "" {
		return w.Text
	}
	return fmt.Sprintf("%s: %s", w.Plugin, w.Text)
}

// Result collects diagnostics while plugins process a stylesheet.
type Result struct {
	Warnings []Warning
}

// Warn attaches advisory message to the result.
func (r *Result) Warn(plugin, text string) {
	r.Warnings = append(r.Warnings, Warning{Plugin: plugin, Text: text})
}

// Plugin is a processing stage which gets a parsed stylesheet and a result to
// report to. Inspection plugins must not modify the stylesheet.
type Plugin interface {
	Name() string
	Process(sheet *Stylesheet, res *Result)
}

// Run passes stylesheet through plugins in order. Parser warnings recorded on
// the sheet are carried into the result first.
func Run(sheet *Stylesheet, plugins ...Plugin) *Result {
	res := &Result{}
	if sheet == nil {
		sheet = NewStylesheet()
	}
	for _, w := range sheet.Warnings {
		res.Warn("", w)
	}
	for _, p := range plugins {
		p.Process(sheet, res)
	}
	return res
}
