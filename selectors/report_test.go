package selectors_test

import (
	"encoding/json"
	"maps"
	"slices"
	"testing"

	"lsel/css"
	"lsel/selectors"
)

func parse(t *testing.T, text string) *css.Stylesheet {
	t.Helper()
	return css.NewParser(nil).Parse([]byte(text))
}

func TestCollect(t *testing.T) {
	sheet := parse(t, `
a, b { color: red; }
@media print {
	.c { color: red; }
	@supports (display: grid) { #d { display: grid; } }
}
@keyframes spin { from { top: 0; } to { top: 1px; } }
@-moz-keyframes spin { from { top: 0; } }
a { color: blue; }
`)

	want := []string{"a", "b", ".c", "#d", "a"}
	if got := selectors.Collect(sheet); !slices.Equal(got, want) {
		t.Errorf("Collect() = %q, want %q", got, want)
	}
}

func TestCollectKeyframesOnly(t *testing.T) {
	sheet := parse(t, "@keyframes x { from { opacity: 0; } to { opacity: 1; } }")
	if got := selectors.Collect(sheet); len(got) != 0 {
		t.Errorf("Collect() = %q, want nothing", got)
	}
}

func TestCollectTree(t *testing.T) {
	// keyframe skipping looks at the immediate parent only
	sheet := css.NewStylesheet()
	media := &css.Node{Kind: css.AtRuleNode, Name: "media", Parent: sheet.Root}
	frames := &css.Node{Kind: css.AtRuleNode, Name: "keyframes", Parent: media}
	step := &css.Node{Kind: css.RuleNode, Selectors: []string{"50%"}, Parent: frames}
	rule := &css.Node{Kind: css.RuleNode, Selectors: []string{".x"}, Parent: media}
	upper := &css.Node{Kind: css.AtRuleNode, Name: "KEYFRAMES", Parent: sheet.Root}
	kept := &css.Node{Kind: css.RuleNode, Selectors: []string{"from"}, Parent: upper}

	frames.Children = []*css.Node{step}
	media.Children = []*css.Node{frames, rule}
	upper.Children = []*css.Node{kept}
	sheet.Root.Children = []*css.Node{media, upper}

	want := []string{".x", "from"}
	if got := selectors.Collect(sheet); !slices.Equal(got, want) {
		t.Errorf("Collect() = %q, want %q", got, want)
	}
}

func TestBuildEmpty(t *testing.T) {
	if r := selectors.Build(nil); r != nil {
		t.Errorf("Build(nil) = %+v, want nil", r)
	}
}

func TestBuild(t *testing.T) {
	r := selectors.Build([]string{"ul > li", "a:hover", "ul > li", "#Nav .item", "*"})
	if r == nil {
		t.Fatal("Build() returned nil")
	}

	if want := []string{"*", "a:hover", "#Nav .item", "ul > li"}; !slices.Equal(r.Selectors, want) {
		t.Errorf("Selectors = %q, want %q", r.Selectors, want)
	}
	if want := []string{"*", "a", ".item", "li", "#Nav", "ul"}; !slices.Equal(r.SimpleSelectors.All, want) {
		t.Errorf("All = %q, want %q", r.SimpleSelectors.All, want)
	}
	if want := []string{"a", "li", "ul"}; !slices.Equal(r.SimpleSelectors.Types, want) {
		t.Errorf("Types = %q, want %q", r.SimpleSelectors.Types, want)
	}
	if len(r.SimpleSelectors.Attributes) != 0 || r.SimpleSelectors.Attributes == nil {
		t.Errorf("Attributes = %#v, want empty non-nil slice", r.SimpleSelectors.Attributes)
	}
}

func TestBuildBarePseudos(t *testing.T) {
	r := selectors.Build([]string{":root", "html", "::selection", ":not(.x) > p"})
	if r == nil {
		t.Fatal("Build() = nil")
	}
	want := []string{"html", "not", "p", "root", "selection"}
	if !slices.Equal(r.SimpleSelectors.All, want) {
		t.Errorf("All = %q, want %q", r.SimpleSelectors.All, want)
	}
	if !slices.Equal(r.SimpleSelectors.Types, want) {
		t.Errorf("Types = %q, want %q", r.SimpleSelectors.Types, want)
	}
	if len(r.SimpleSelectors.Classes) != 0 {
		t.Errorf("Classes = %q, pseudo arguments must not be decomposed", r.SimpleSelectors.Classes)
	}
}

func TestBuildPartition(t *testing.T) {
	inputs := [][]string{
		{"*", "[attribute]", ".class.class2", ".class > .class4", "div", "#id", "#id2", "span", "* > p"},
		{"a[href] .b#c:hover", "svg|rect", "[x]::after", ":root", "li:nth-child(2n+1) a"},
	}

	for _, in := range inputs {
		r := selectors.Build(in)
		ss := r.SimpleSelectors

		seen := make(map[string]int)
		for _, bucket := range [][]string{ss.IDs, ss.Classes, ss.Attributes, ss.Types} {
			for _, s := range bucket {
				seen[s]++
			}
		}

		want := make(map[string]int)
		for _, s := range ss.All {
			if s != "*" {
				want[s] = 1
			}
		}
		if !maps.Equal(seen, want) {
			t.Errorf("buckets %v do not partition all %q", seen, ss.All)
		}

		// buckets follow the order of all
		for _, bucket := range [][]string{ss.IDs, ss.Classes, ss.Attributes, ss.Types} {
			last := -1
			for _, s := range bucket {
				i := slices.Index(ss.All, s)
				if i <= last {
					t.Errorf("bucket %q is out of order relative to %q", bucket, ss.All)
				}
				last = i
			}
		}

		// no duplicates anywhere
		if got := selectors.Unique(r.Selectors); len(got) != len(r.Selectors) {
			t.Errorf("Selectors has duplicates: %q", r.Selectors)
		}
		if got := selectors.Unique(ss.All); len(got) != len(ss.All) {
			t.Errorf("All has duplicates: %q", ss.All)
		}
	}
}

func TestReportJSON(t *testing.T) {
	r := selectors.Build([]string{"ul li"})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"selectors":["ul li"],"simpleSelectors":{"all":["li","ul"],"ids":[],"classes":[],"attributes":[],"types":["li","ul"]}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	empty, err := json.Marshal(selectors.Empty{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(empty) != "{}" {
		t.Errorf("Marshal(Empty{}) = %s, want {}", empty)
	}
}
