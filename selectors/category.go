package selectors

// Category is a syntactic kind of simple selector.
type Category int

const (
	CategoryType      Category = iota // div, span, svg|a
	CategoryUniversal                 // *
	CategoryID                        // #name
	CategoryClass                     // .name
	CategoryAttribute                 // [name=value]
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryType:
		return "type"
	case CategoryUniversal:
		return "universal"
	case CategoryID:
		return "id"
	case CategoryClass:
		return "class"
	case CategoryAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Classify returns category of (pseudo stripped) simple selector looking at
// its first character only.
func Classify(simple string) Category {
	if len(simple) == 0 {
		return CategoryType
	}
	switch simple[0] {
	case '#':
		return CategoryID
	case '.':
		return CategoryClass
	case '[':
		return CategoryAttribute
	case '*':
		return CategoryUniversal
	default:
		return CategoryType
	}
}

// OfCategory returns selectors of the requested category preserving order.
// Result is never nil.
func OfCategory(list []string, c Category) []string {
	out := make([]string, 0)
	for _, s := range list {
		if Classify(s) == c {
			out = append(out, s)
		}
	}
	return out
}

// IDs returns id selectors from the list.
func IDs(list []string) []string { return OfCategory(list, CategoryID) }

// Classes returns class selectors from the list.
func Classes(list []string) []string { return OfCategory(list, CategoryClass) }

// Attributes returns attribute selectors from the list.
func Attributes(list []string) []string { return OfCategory(list, CategoryAttribute) }

// Types returns type selectors from the list.
func Types(list []string) []string { return OfCategory(list, CategoryType) }
