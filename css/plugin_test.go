package css

import (
	"slices"
	"testing"
)

type recorder struct {
	name  string
	calls *[]string
}

func (r recorder) Name() string { return r.name }

func (r recorder) Process(sheet *Stylesheet, res *Result) {
	*r.calls = append(*r.calls, r.name)
	res.Warn(r.name, "seen")
}

func TestRun(t *testing.T) {
	sheet := NewStylesheet()
	sheet.Warnings = append(sheet.Warnings, "css parse error: unexpected")

	var calls []string
	res := Run(sheet, recorder{"first", &calls}, recorder{"second", &calls})

	if !slices.Equal(calls, []string{"first", "second"}) {
		t.Errorf("plugins called in order %q", calls)
	}
	want := []Warning{
		{Text: "css parse error: unexpected"},
		{Plugin: "first", Text: "seen"},
		{Plugin: "second", Text: "seen"},
	}
	if !slices.Equal(res.Warnings, want) {
		t.Errorf("Warnings = %v, want %v", res.Warnings, want)
	}
}

func TestRun_NilSheet(t *testing.T) {
	var calls []string
	res := Run(nil, recorder{"only", &calls})
	if len(calls) != 1 || len(res.Warnings) != 1 {
		t.Errorf("Run(nil) calls = %q, warnings = %v", calls, res.Warnings)
	}
}

func TestWarning_String(t *testing.T) {
	if got := (Warning{Text: "plain"}).String(); got != "plain" {
		t.Errorf("String() = %q", got)
	}
	if got := (Warning{Plugin: "list-selectors", Text: "empty"}).String(); got != "list-selectors: empty" {
		t.Errorf("String() = %q", got)
	}
}
