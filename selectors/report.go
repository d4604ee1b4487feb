package selectors

// Output is what processing of a single stylesheet produces: full *Report,
// *Projection of it, or Empty when no selectors were found at all.
type Output interface {
	output()
}

// Empty is the result for stylesheets without any selectors. It serializes to
// "{}".
type Empty struct{}

func (Empty) output() {}

// SimpleSelectors holds pseudo stripped simple selectors, all of them and
// broken down by category. Category lists follow the order of All.
type SimpleSelectors struct {
	All        []string `json:"all"`
	IDs        []string `json:"ids"`
	Classes    []string `json:"classes"`
	Attributes []string `json:"attributes"`
	Types      []string `json:"types"`
}

// Report is the full selector list of a stylesheet.
type Report struct {
	Selectors       []string        `json:"selectors"`
	SimpleSelectors SimpleSelectors `json:"simpleSelectors"`
}

func (*Report) output() {}

// Reduce decomposes complex selectors and returns pseudo stripped simple
// selectors in order of appearance, duplicates included.
func Reduce(list []string) []string {
	simple := make([]string, 0, len(list))
	for _, sel := range list {
		for _, token := range Extract(sel) {
			simple = append(simple, StripPseudos(token))
		}
	}
	return simple
}

// Build assembles report from collected complex selectors. It returns nil
// when there is nothing to report.
func Build(list []string) *Report {
	if len(list) == 0 {
		return nil
	}

	selectors := Canonical(list)
	all := Canonical(Reduce(selectors))

	return &Report{
		Selectors: selectors,
		SimpleSelectors: SimpleSelectors{
			All:        all,
			IDs:        IDs(all),
			Classes:    Classes(all),
			Attributes: Attributes(all),
			Types:      Types(all),
		},
	}
}
