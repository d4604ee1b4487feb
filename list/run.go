package list

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"lsel/config"
	"lsel/css"
	"lsel/selectors"
	"lsel/source"
	"lsel/state"
)

// Settings are effective options of a single run: configuration values
// overwritten by command line flags.
type Settings struct {
	Pretty      bool
	Indent      string
	Include     []string
	Separate    bool
	Concurrency int
	Destination string // empty means STDOUT
	Source      source.Options
}

// NewSettings takes defaults from configuration.
func NewSettings(cfg *config.Config) Settings {
	return Settings{
		Pretty:      cfg.Output.Pretty,
		Indent:      cfg.Output.Indent,
		Include:     cfg.Output.Include,
		Concurrency: cfg.Sources.Concurrency,
		Source: source.Options{
			Encoding:  cfg.Sources.Encoding,
			Archive:   cfg.Sources.Archive,
			Timeout:   cfg.Sources.Fetch.Timeout,
			UserAgent: cfg.Sources.Fetch.UserAgent,
			AuthToken: cfg.Sources.Fetch.AuthToken.Reveal(),
			CacheSize: cfg.Sources.Fetch.CacheSize,
			MaxSize:   cfg.Sources.Fetch.MaxSize,
		},
	}
}

func (s *Settings) apply(cmd *cli.Command) {
	if cmd.IsSet("pretty") {
		s.Pretty = cmd.Bool("pretty")
	}
	if cmd.IsSet("include") {
		s.Include = cmd.StringSlice("include")
	}
	if cmd.IsSet("separate") {
		s.Separate = cmd.Bool("separate")
	}
	if cmd.IsSet("encoding") {
		s.Source.Encoding = cmd.String("encoding")
	}
	if cmd.IsSet("output") {
		s.Destination = cmd.String("output")
	}
}

// Run is the action of "list" command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("list").With(zap.Stringer("run", env.RunID))

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("no sources have been specified")
	}

	settings := NewSettings(env.Cfg)
	settings.apply(cmd)

	var out io.Writer = cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	if len(settings.Destination) > 0 {
		f, err := os.Create(settings.Destination)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", settings.Destination, err)
		}
		defer f.Close()
		out = f
	}

	return Execute(ctx, log, env.Rpt, args, settings, out)
}

// Execute acquires sources, lists their selectors and writes JSON result to
// out. Acquired sources and the result are stored in debug report if it was
// requested (rpt is not nil).
func Execute(ctx context.Context, log *zap.Logger, rpt *config.Report, args []string, settings Settings, out io.Writer) error {
	loader, err := source.NewLoader(log, settings.Source, nil)
	if err != nil {
		return err
	}

	log.Debug("Acquiring sources", zap.Strings("args", args))
	sources, err := loader.Load(ctx, args)
	if err != nil {
		return fmt.Errorf("unable to acquire sources: %w", err)
	}
	if rpt != nil {
		parser := css.NewParser(zap.NewNop())
		for i, src := range sources {
			name := fmt.Sprintf("sources/%03d-%s", i+1, slug.Make(src.Name))
			rpt.StoreData(name+".css", src.Data)
			rpt.StoreData(name+".tree.txt", []byte(parser.Parse(src.Data).Dump()))
		}
	}

	lister := NewLister(log)
	opts := selectors.Options{Include: settings.Include}

	var result any
	if settings.Separate {
		if result, err = lister.Separately(ctx, sources, opts, settings.Concurrency); err != nil {
			return err
		}
	} else {
		result = lister.Together(sources, opts)
	}

	var buf bytes.Buffer
	if err := Write(&buf, result, settings.Pretty, settings.Indent); err != nil {
		return fmt.Errorf("unable to serialize result: %w", err)
	}
	rpt.StoreData("result.json", buf.Bytes())

	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	log.Debug("Listing completed", zap.Int("sources", len(sources)), zap.Bool("separate", settings.Separate))
	return nil
}
