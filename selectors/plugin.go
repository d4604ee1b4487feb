package selectors

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"lsel/css"
)

// PluginName identifies warnings produced by selector listing.
const PluginName = "list-selectors"

// Texts of advisory warnings.
const (
	msgNoSelectors = "Failed to find any selectors at all in the source files you provided. " +
		"You are going to get an empty selector list."
	msgFullList = "You'll get the full selector list now."
)

// Options controls what selector listing produces.
type Options struct {
	// Include names parts of the report to project to, see IncludeNames.
	// Empty means full report.
	Include []string
}

// Plugin lists selectors of a stylesheet as a css processing stage. It never
// modifies the stylesheet, the result is handed to the deliver callback.
type Plugin struct {
	log     *zap.Logger
	opts    Options
	deliver func(Output)
}

// NewPlugin returns selector listing stage. deliver is called exactly once per
// processed stylesheet.
func NewPlugin(log *zap.Logger, opts Options, deliver func(Output)) *Plugin {
	if log == nil {
		log = zap.NewNop()
	}
	if deliver == nil {
		deliver = func(Output) {}
	}
	return &Plugin{log: log.Named(PluginName), opts: opts, deliver: deliver}
}

var _ css.Plugin = (*Plugin)(nil)

// Name implements css.Plugin.
func (p *Plugin) Name() string {
	return PluginName
}

// Process implements css.Plugin.
func (p *Plugin) Process(sheet *css.Stylesheet, res *css.Result) {
	list := Collect(sheet)
	p.log.Debug("Collected selectors", zap.Int("count", len(list)))

	report := Build(list)
	if report == nil {
		res.Warn(PluginName, msgNoSelectors)
		p.deliver(Empty{})
		return
	}

	includes, err := ParseIncludes(p.opts.Include)
	if err != nil {
		// invalid names make whole projection void
		for _, e := range multierr.Errors(err) {
			res.Warn(PluginName, e.Error()+". "+msgFullList)
		}
		p.deliver(report)
		return
	}
	p.deliver(Filter(report, includes))
}
