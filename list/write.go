package list

import (
	"encoding/json"
	"io"
)

// Write serializes v as JSON. Selectors are written as they are, without HTML
// escaping. When pretty is requested output is indented with indent.
func Write(w io.Writer, v any, pretty bool, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}
