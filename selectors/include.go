package selectors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Include names a part of the report to project to.
type Include int

const (
	IncludeSelectors Include = iota
	IncludeSimpleSelectors
	IncludeSimple // synonym of IncludeSimpleSelectors
	IncludeClasses
	IncludeIDs
	IncludeAttributes
	IncludeTypes
)

var ErrInvalidInclude = errors.New("invalid include")

var _IncludeNames = []string{
	"selectors",
	"simpleSelectors",
	"simple",
	"classes",
	"ids",
	"attributes",
	"types",
}

// IncludeNames returns a list of possible string values of Include.
func IncludeNames() []string {
	tmp := make([]string, len(_IncludeNames))
	copy(tmp, _IncludeNames)
	return tmp
}

// String implements the Stringer interface.
func (x Include) String() string {
	if x >= 0 && int(x) < len(_IncludeNames) {
		return _IncludeNames[x]
	}
	return fmt.Sprintf("Include(%d)", x)
}

// IsValid provides a quick way to determine if the typed value is part of the
// allowed enumerated values.
func (x Include) IsValid() bool {
	return x >= 0 && int(x) < len(_IncludeNames)
}

// ParseInclude attempts to convert a string to an Include. Names are case
// sensitive, the same way they are spelled in JSON output.
func ParseInclude(name string) (Include, error) {
	for i, n := range _IncludeNames {
		if n == name {
			return Include(i), nil
		}
	}
	return Include(0), fmt.Errorf("%w %q passed, the possibilities are: %s",
		ErrInvalidInclude, name, strings.Join(_IncludeNames, ", "))
}

// MarshalText implements the text marshaller method.
func (x Include) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (x *Include) UnmarshalText(text []byte) error {
	tmp, err := ParseInclude(string(text))
	if err != nil {
		return err
	}
	*x = tmp
	return nil
}

// ParseIncludes converts externally supplied names. All invalid names are
// reported at once, valid ones are returned in order regardless.
func ParseIncludes(names []string) ([]Include, error) {
	var (
		includes []Include
		errs     error
	)
	for _, name := range names {
		incl, err := ParseInclude(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		includes = append(includes, incl)
	}
	return includes, errs
}

// Projection is a subset of report lists keyed by include names. Keys keep the
// order they were first requested in, including when serialized.
type Projection struct {
	keys   []string
	values map[string][]string
}

func (*Projection) output() {}

func (p *Projection) set(key string, values []string) {
	if p.values == nil {
		p.values = make(map[string][]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = values
}

// Keys returns projected keys in order.
func (p *Projection) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Get returns projected list by key.
func (p *Projection) Get(key string) ([]string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// MarshalJSON implements json.Marshaler. Selectors are written verbatim,
// without escaping of HTML sensitive characters like ">".
func (p *Projection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(p.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Filter projects report to requested includes. Without includes report is
// returned as is, otherwise a new Projection is made and report is left
// untouched.
func Filter(r *Report, includes []Include) Output {
	if len(includes) == 0 {
		return r
	}

	p := &Projection{}
	for _, incl := range includes {
		switch incl {
		case IncludeSelectors:
			p.set(IncludeSelectors.String(), r.Selectors)
		case IncludeSimpleSelectors, IncludeSimple:
			p.set(IncludeSimpleSelectors.String(), r.SimpleSelectors.All)
		case IncludeClasses:
			p.set(IncludeClasses.String(), r.SimpleSelectors.Classes)
		case IncludeIDs:
			p.set(IncludeIDs.String(), r.SimpleSelectors.IDs)
		case IncludeAttributes:
			p.set(IncludeAttributes.String(), r.SimpleSelectors.Attributes)
		case IncludeTypes:
			p.set(IncludeTypes.String(), r.SimpleSelectors.Types)
		}
	}
	return p
}
