// Package slog provides logging decorators for htmldom interfaces.
package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/htmldom"
)

// Ensure LoggingParser implements htmldom.Parser.
var _ htmldom.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with structured logging of parse outcomes.
type LoggingParser struct {
	next   htmldom.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next htmldom.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the result.
func (p *LoggingParser) Parse(r io.Reader) (*htmldom.Tree, error) {
	return p.log("parse document", p.next.Parse, r)
}

// ParseFragment delegates to the wrapped parser and logs the result.
func (p *LoggingParser) ParseFragment(r io.Reader) (*htmldom.Tree, error) {
	return p.log("parse fragment", p.next.ParseFragment, r)
}

func (p *LoggingParser) log(op string, fn func(io.Reader) (*htmldom.Tree, error), r io.Reader) (*htmldom.Tree, error) {
	begin := time.Now()
	tree, err := fn(r)
	if err != nil {
		p.logger.Error(op, "err", err)
		return nil, err
	}
	p.logger.Info(op,
		"nodes", tree.Len(),
		"diagnostics", len(tree.Diagnostics()),
		"quirks", tree.QuirksMode().String(),
		"duration", time.Since(begin),
	)
	return tree, nil
}
