// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"log/slog"
)

// DefaultMaxExpressionLength is the length limit, in characters, that the CLI
// and HTTP server apply to untrusted expressions. NewParser applies no limit
// unless WithMaxExpressionLength is given, since canonical output can be
// longer than the input it came from.
const DefaultMaxExpressionLength = 10000

// Parser turns filter expressions into descriptors.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	maxExpressionLength int
	logger              *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxExpressionLength sets the maximum expression length in characters.
// A value of zero or less disables the limit.
func WithMaxExpressionLength(maxLen int) Option {
	return func(p *Parser) {
		p.maxExpressionLength = maxLen
	}
}

// WithLogger sets the logger that receives rejected expressions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a Parser with no length limit and no logging.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses expr with the default Parser.
func Parse(expr string) ([]Descriptor, error) {
	return defaultParser.Parse(expr)
}

// Parse returns one descriptor per name(args) clause of expr, in source order.
//
// Any error is a *ParseError wrapping ErrStructural or ErrEscape. Parsing is
// all-or-nothing: no descriptors are returned alongside an error.
func (p *Parser) Parse(expr string) ([]Descriptor, error) {
	src := []rune(expr)

	if p.maxExpressionLength > 0 && len(src) > p.maxExpressionLength {
		err := newParseError(expr, CodeExpressionTooLong, 0, 0,
			"expression length %d exceeds maximum of %d", len(src), p.maxExpressionLength)
		p.logger.Debug("rejected filter expression", "code", err.Code, "length", len(src))
		return nil, err
	}

	filters, err := newScanner(expr, src).run()
	if err != nil {
		p.logger.Debug("rejected filter expression", "expression", expr, "error", err)
		return nil, err
	}

	p.logger.Debug("parsed filter expression", "expression", expr, "filters", len(filters))
	return filters, nil
}
