// Package source acquires stylesheet text: local files matched by glob
// patterns and remote stylesheets fetched over HTTP. Text is always returned
// as UTF-8.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"lsel/archive"
)

// Source is a single acquired stylesheet.
type Source struct {
	Name     string // file path or URL
	Data     []byte // UTF-8 text, may be empty
	Encoding string // name of encoding text was converted from, empty for UTF-8
}

// Options controls source acquisition.
type Options struct {
	Encoding  string        // forced IANA encoding of all sources
	Archive   string        // pattern of stylesheets inside of archives, archive.DefaultPattern when empty
	Timeout   time.Duration // per request
	UserAgent string
	AuthToken string // sent as bearer token when not empty
	CacheSize int    // number of remote stylesheets to keep, 0 disables caching
	MaxSize   int64  // largest accepted remote stylesheet, 0 means unlimited
}

// Loader reads and fetches stylesheets. Problems with individual sources are
// never fatal: they are logged as warnings and source text is left empty.
type Loader struct {
	log    *zap.Logger
	opts   Options
	client *http.Client
	cache  *lru.Cache[string, fetched]
}

type fetched struct {
	data        []byte
	contentType string
}

// NewLoader returns loader. Client may be nil, in which case a new one with
// requested timeout is used.
func NewLoader(log *zap.Logger, opts Options, client *http.Client) (*Loader, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	l := &Loader{log: log.Named("source"), opts: opts, client: client}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, fetched](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("unable to create fetch cache: %w", err)
		}
		l.cache = cache
	}
	return l, nil
}

// IsRemote reports whether source should be fetched rather than read.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load acquires all sources in argument order. Every local argument is a
// glob pattern (with "**" support) which may produce any number of sources,
// every URL produces exactly one. Only context cancellation is returned as an
// error.
func (l *Loader) Load(ctx context.Context, args []string) ([]Source, error) {
	var sources []Source
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if IsRemote(arg) {
			src, err := l.fetch(ctx, arg)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
			continue
		}
		sources = append(sources, l.glob(arg)...)
	}
	return sources, nil
}

func (l *Loader) glob(pattern string) []Source {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		l.log.Warn("Bad glob pattern", zap.String("pattern", pattern), zap.Error(err))
		return nil
	}
	if len(matches) == 0 {
		l.log.Warn("Failed to find any files matching your glob", zap.String("pattern", pattern))
		return nil
	}
	sort.Sort(natural.StringSlice(matches))

	sources := make([]Source, 0, len(matches))
	for _, name := range matches {
		data, err := os.ReadFile(name)
		if err != nil {
			l.log.Warn("Unable to read file, skipping", zap.String("file", name), zap.Error(err))
			continue
		}
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			if kind == matchers.TypeZip || kind == matchers.TypeEpub {
				sources = append(sources, l.unpack(name)...)
				continue
			}
			l.log.Warn("Not a stylesheet, skipping", zap.String("file", name), zap.String("type", kind.MIME.Value))
			continue
		}
		sources = append(sources, l.decode(name, data, ""))
	}
	return sources
}

// unpack lists stylesheets stored in zip archive in archive order. Entry names
// are reported as "archive!entry".
func (l *Loader) unpack(name string) []Source {
	pattern := l.opts.Archive
	if pattern == "" {
		pattern = archive.DefaultPattern
	}

	var sources []Source
	err := archive.Walk(name, pattern, func(arc, entry string, data []byte) error {
		sources = append(sources, l.decode(arc+"!"+entry, data, ""))
		return nil
	})
	if err != nil {
		l.log.Warn("Unable to read archive, skipping", zap.String("file", name), zap.Error(err))
		return nil
	}
	if len(sources) == 0 {
		l.log.Warn("Failed to find any stylesheets in archive", zap.String("file", name), zap.String("pattern", pattern))
	}
	return sources
}

func (l *Loader) fetch(ctx context.Context, url string) (Source, error) {
	if l.cache != nil {
		if f, ok := l.cache.Get(url); ok {
			l.log.Debug("Using cached stylesheet", zap.String("url", url))
			return l.decode(url, f.data, f.contentType), nil
		}
	}

	empty := Source{Name: url, Data: []byte{}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.log.Warn("Failed to fetch stylesheet. Maybe you flubbed the url?", zap.String("url", url), zap.Error(err))
		return empty, nil
	}
	if l.opts.UserAgent != "" {
		req.Header.Set("User-Agent", l.opts.UserAgent)
	}
	if l.opts.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+l.opts.AuthToken)
	}
	req.Header.Set("Accept", "text/css,*/*;q=0.1")

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Source{}, ctxErr
		}
		l.log.Warn("Failed to fetch stylesheet. Maybe you flubbed the url?", zap.String("url", url), zap.Error(err))
		return empty, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.log.Warn("Failed to fetch stylesheet. Maybe you flubbed the url?",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return empty, nil
	}

	body := io.Reader(resp.Body)
	if l.opts.MaxSize > 0 {
		body = io.LimitReader(resp.Body, l.opts.MaxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Source{}, ctxErr
		}
		l.log.Warn("Failed to read stylesheet", zap.String("url", url), zap.Error(err))
		return empty, nil
	}
	if l.opts.MaxSize > 0 && int64(len(data)) > l.opts.MaxSize {
		l.log.Warn("Stylesheet is too large, ignoring", zap.String("url", url), zap.Int64("limit", l.opts.MaxSize))
		return empty, nil
	}

	ct := resp.Header.Get("Content-Type")
	l.log.Debug("Fetched stylesheet", zap.String("url", url), zap.Int("bytes", len(data)),
		zap.String("content-type", ct), zap.Duration("elapsed", time.Since(start)))

	if l.cache != nil {
		l.cache.Add(url, fetched{data: data, contentType: ct})
	}
	return l.decode(url, data, ct), nil
}

// Concat joins texts of all sources into a single stylesheet.
func Concat(sources []Source) []byte {
	var buf bytes.Buffer
	for i, src := range sources {
		if i > 0 && buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.Write(src.Data)
	}
	return buf.Bytes()
}
