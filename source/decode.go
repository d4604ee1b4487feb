package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	errUnknownEncoding = errors.New("unknown encoding")
)

// charsetRule returns encoding label declared by leading @charset rule. The
// rule has to be at the very beginning and spelled exactly, like browsers
// expect it.
func charsetRule(data []byte) string {
	const prefix = `@charset "`
	if !bytes.HasPrefix(data, []byte(prefix)) {
		return ""
	}
	rest := data[len(prefix):]
	end := bytes.IndexByte(rest, '"')
	if end <= 0 || !bytes.HasPrefix(rest[end:], []byte(`";`)) {
		return ""
	}
	return string(rest[:end])
}

func contentTypeCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// forcedDecode converts data from encoding named by IANA name.
func forcedDecode(name string, data []byte) ([]byte, string, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, "", err
	}
	if enc == nil {
		return nil, "", fmt.Errorf("%w: %s is not supported", errUnknownEncoding, name)
	}
	canonical, _ := ianaindex.IANA.Name(enc)
	if strings.EqualFold(canonical, "UTF-8") {
		return data, "", nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", err
	}
	return out, canonical, nil
}

// labelDecode converts data from encoding named by WHATWG label, the way
// browsers interpret Content-Type parameters and @charset rules.
func labelDecode(label string, data []byte) ([]byte, string, error) {
	enc, canonical := charset.Lookup(label)
	if enc == nil {
		return nil, "", fmt.Errorf("%w: %s", errUnknownEncoding, label)
	}
	if canonical == "utf-8" {
		return data, "", nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	return out, canonical, nil
}

// decode converts source text to UTF-8. Forced encoding takes precedence over
// Content-Type header, which takes precedence over @charset rule. When
// conversion is impossible text is used as is.
func (l *Loader) decode(name string, data []byte, contentType string) Source {
	src := Source{Name: name, Data: bytes.TrimPrefix(data, utf8BOM)}
	if len(src.Data) == 0 {
		return src
	}

	var (
		out     []byte
		encName string
		err     error
	)
	if l.opts.Encoding != "" {
		out, encName, err = forcedDecode(l.opts.Encoding, src.Data)
	} else {
		label := contentTypeCharset(contentType)
		if label == "" {
			label = charsetRule(src.Data)
		}
		if label == "" {
			return src
		}
		out, encName, err = labelDecode(label, src.Data)
	}

	if err != nil {
		l.log.Warn("Unable to convert stylesheet to UTF-8, using it as is", zap.String("source", name), zap.Error(err))
		return src
	}
	if encName != "" {
		l.log.Debug("Converted stylesheet to UTF-8", zap.String("source", name), zap.String("charset", encName))
	}
	src.Data, src.Encoding = out, encName
	return src
}
