// Package paperbot compiles a compact search DSL into the boolean query
// grammar of the arXiv search API. The pipeline is pure and synchronous:
// tokenize, parse, transform, with each stage returning its first error.
package paperbot

import (
	"errors"
	"fmt"
	"time"

	"github.com/paperbot/paperbot/paperbot/query"
)

// Parser is the single entry point to the compilation pipeline. It is
// immutable after construction and safe for concurrent use.
type Parser struct {
	debug    bool
	maxInput int
	loc      *time.Location
}

// ParserOption configures a Parser at construction time.
type ParserOption func(*Parser)

// WithDebug makes Parse also return the token vector and AST on success.
func WithDebug() ParserOption {
	return func(p *Parser) { p.debug = true }
}

// WithMaxInput overrides the input length cap in bytes.
func WithMaxInput(n int) ParserOption {
	return func(p *Parser) { p.maxInput = n }
}

// WithTimezoneOffset sets the fixed offset, in hours, that date bounds are
// interpreted in.
func WithTimezoneOffset(hours int) ParserOption {
	return func(p *Parser) { p.loc = time.FixedZone("paperbot", hours*3600) }
}

// New creates a Parser with the default limits and timezone.
func New(opts ...ParserOption) *Parser {
	p := &Parser{
		maxInput: MaxInputBytes,
		loc:      query.DefaultZone(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse compiles one query string. On failure it returns a *Error carrying
// the stage, the source position when known, and a display-ready message.
func (p *Parser) Parse(input string) (*Result, error) {
	if len(input) > p.maxInput {
		msg := fmt.Sprintf("query exceeds maximum length of %d bytes", p.maxInput)
		return nil, newError(StageInput, -1, msg, nil)
	}

	tokens, err := query.Lex(input)
	if err != nil {
		var tokErr *query.TokenError
		if errors.As(err, &tokErr) {
			return nil, newError(StageTokenize, tokErr.Pos, tokErr.Message, err)
		}
		return nil, newError(StageTokenize, -1, err.Error(), err)
	}

	expr, opts, err := query.ParseIn(tokens, p.loc)
	if err != nil {
		var parseErr *query.ParseError
		if errors.As(err, &parseErr) {
			return nil, newError(StageParse, parseErr.Pos, parseErr.Message, err)
		}
		return nil, newError(StageParse, -1, err.Error(), err)
	}

	compiled, err := query.Transform(expr, opts)
	if err != nil {
		var transformErr *query.TransformError
		if errors.As(err, &transformErr) {
			return nil, newError(StageTransform, -1, transformErr.Message, err)
		}
		return nil, newError(StageTransform, -1, err.Error(), err)
	}

	result := &Result{
		Query: CompiledQuery{
			Query:      compiled.Query,
			MaxResults: compiled.MaxResults,
			SortBy:     compiled.SortBy,
			SortOrder:  compiled.SortOrder,
			Echo:       compiled.Echo,
		},
	}
	if p.debug {
		result.Tokens = tokens
		result.AST = expr
	}
	return result, nil
}
