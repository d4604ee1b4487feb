package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into a tree of rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Parsing never fails: problems are
// logged and recorded as sheet warnings, and whatever was parsed so far is
// returned.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := NewStylesheet()

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var (
		current = sheet.Root
		// selectors of a grouped rule arrive one by one before the block opens
		pending []string
	)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "css parse error: "+err.Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			current = current.append(p.parseAtRule(data, parser.Values()))
			p.log.Debug("Entering @-rule", zap.String("rule", current.Name), zap.String("prelude", current.Prelude))

		case css.AtRuleGrammar:
			// @-rule without block (e.g., @import, @charset)
			at := current.append(p.parseAtRule(data, parser.Values()))
			p.log.Debug("Parsed @-rule", zap.String("rule", at.Name), zap.String("prelude", at.Prelude))

		case css.EndAtRuleGrammar:
			for current.Parent != nil {
				closed := current
				current = current.Parent
				if closed.IsAtRule() {
					break
				}
			}

		case css.QualifiedRuleGrammar:
			pending = append(pending, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			current = current.append(&Node{Kind: RuleNode, Selectors: selectors})

		case css.EndRulesetGrammar:
			if current.IsRule() {
				current = current.Parent
			}
		}
	}
}

// parseAtRule creates @-rule node from its name and prelude tokens.
func (p *Parser) parseAtRule(data []byte, values []css.Token) *Node {
	return &Node{
		Kind:    AtRuleNode,
		Name:    strings.TrimPrefix(string(data), "@"),
		Prelude: collapseWhitespace(joinTokens(values)),
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	// Build full selector string from data and values
	var sb strings.Builder
	sb.Write(data)
	sb.WriteString(joinTokens(values))

	// Split by comma for grouped selectors
	var selectors []string
	for _, s := range splitSelectorList(sb.String()) {
		if s = normalizeSelector(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// joinTokens concatenates token data dropping comments.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.CommentToken {
			continue
		}
		sb.Write(t.Data)
	}
	return sb.String()
}
