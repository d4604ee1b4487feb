// Package list implements "list" command: acquires stylesheets and produces
// their selector lists.
package list

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lsel/css"
	"lsel/selectors"
	"lsel/source"
)

// Entry is the result for a single source when sources are processed
// separately.
type Entry struct {
	Source string           `json:"source"`
	Result selectors.Output `json:"result"`
}

// Lister turns acquired sources into selector lists.
type Lister struct {
	log  *zap.Logger
	proc *selectors.Processor
}

// NewLister returns lister logging to log (may be nil).
func NewLister(log *zap.Logger) *Lister {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lister{log: log, proc: selectors.NewProcessor(log)}
}

func (l *Lister) report(name string, warnings []css.Warning) {
	for _, w := range warnings {
		l.log.Warn(w.Text, zap.String("plugin", w.Plugin), zap.String("source", name))
	}
}

// Together concatenates all sources into one stylesheet and lists its
// selectors. No sources at all is the same as an empty stylesheet.
func (l *Lister) Together(sources []source.Source, opts selectors.Options) selectors.Output {
	name := "concatenated sources"
	if len(sources) == 1 {
		name = sources[0].Name
	}
	out, warnings := l.proc.ProcessText(source.Concat(sources), opts, name)
	l.report(name, warnings)
	return out
}

// Separately lists selectors of every source on its own, processing up to
// limit sources at the same time. Entries follow the order of sources.
func (l *Lister) Separately(ctx context.Context, sources []source.Source, opts selectors.Options, limit int) ([]Entry, error) {
	entries := make([]Entry, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, warnings := l.proc.ProcessText(src.Data, opts, src.Name)
			l.report(src.Name, warnings)
			entries[i] = Entry{Source: src.Name, Result: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
