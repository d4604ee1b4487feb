package selectors

import (
	"go.uber.org/zap"

	"lsel/css"
)

// Processor is the entry point for listing selectors of a single stylesheet,
// either already parsed or in its textual form. It keeps no state between
// calls and is safe for concurrent use.
type Processor struct {
	log    *zap.Logger
	parser *css.Parser
}

// NewProcessor returns a processor which logs to log (may be nil).
func NewProcessor(log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		log:    log,
		parser: css.NewParser(log),
	}
}

// ProcessSheet lists selectors of parsed stylesheet. Returned warnings are
// advisory, output is always usable.
func (p *Processor) ProcessSheet(sheet *css.Stylesheet, opts Options) (Output, []css.Warning) {
	var out Output = Empty{}
	res := css.Run(sheet, NewPlugin(p.log, opts, func(o Output) { out = o }))
	return out, res.Warnings
}

// ProcessText parses CSS text and lists its selectors. The optional source
// names the text for logging.
func (p *Processor) ProcessText(data []byte, opts Options, source ...string) (Output, []css.Warning) {
	return p.ProcessSheet(p.parser.Parse(data, source...), opts)
}
