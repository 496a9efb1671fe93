// Package parser builds multi-maps from MAML tokens. Object members are kept
// in source order and repeated keys are kept as separate entries.
package parser

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strconv"

	perrors "github.com/KimNorgaard/go-docboost/errors"
	"github.com/KimNorgaard/go-docboost/internal/lexer"
	"github.com/KimNorgaard/go-docboost/internal/token"
	"github.com/KimNorgaard/go-docboost/multimap"
)

// DefaultMaxDepth bounds how deeply objects and arrays may nest.
const DefaultMaxDepth = 1000

type prefixParseFn func() any

// Parser holds the state of the parser.
type Parser struct {
	l      *lexer.Lexer
	errors perrors.ParseErrors

	curToken  token.Token
	peekToken token.Token

	newMap   func() *multimap.Map
	depth    int
	maxDepth int

	prefixParseFns map[token.Type]prefixParseFn
}

// Option configures a Parser.
type Option func(*Parser)

// WithMapFactory sets the constructor used for every object in the document.
func WithMapFactory(fn func() *multimap.Map) Option {
	return func(p *Parser) { p.newMap = fn }
}

// WithMaxDepth sets the nesting limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// New creates a new parser.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:        l,
		newMap:   multimap.New,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:   p.parseIdentifier,
		token.INT:     p.parseInteger,
		token.FLOAT:   p.parseFloat,
		token.STRING:  p.parseString,
		token.TRUE:    p.parseBoolean,
		token.FALSE:   p.parseBoolean,
		token.NULL:    p.parseNull,
		token.LBRACK:  p.parseArray,
		token.LBRACE:  p.parseObject,
		token.ILLEGAL: p.parseIllegal,
	}

	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a whole document. The top-level value must be an object; an
// input holding only blank lines and comments yields an empty map.
func (p *Parser) Parse() (*multimap.Map, error) {
	p.skip(token.NEWLINE)
	if p.curTokenIs(token.EOF) {
		return p.newMap(), nil
	}

	var m *multimap.Map
	if p.curTokenIs(token.LBRACE) {
		m, _ = p.parseObject().(*multimap.Map)
	} else {
		p.errorf(p.curToken, "top-level value must be an object, got %s", p.curToken)
	}

	p.skip(token.NEWLINE)
	if len(p.errors) == 0 && !p.curTokenIs(token.EOF) {
		p.errorf(p.curToken, "unexpected token after main value: %s", p.curToken)
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return m, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) errorf(at token.Token, format string, args ...any) {
	p.errors = append(p.errors, perrors.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    at.Line,
		Column:  at.Column,
	})
}

// Every parse function is entered on the first token of its construct and
// returns with curToken on the token after it. A nil result with a new
// error recorded means the construct was malformed.

func (p *Parser) parseValue() (any, bool) {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "unexpected %s, expected a value", p.curToken)
		return nil, false
	}
	n := len(p.errors)
	v := prefix()
	return v, len(p.errors) == n
}

// parseIdentifier only sees malformed numbers and bare words; both are
// errors in value position.
func (p *Parser) parseIdentifier() any {
	lit := p.curToken.Literal
	if lit != "" && (lit[0] == '-' || (lit[0] >= '0' && lit[0] <= '9')) {
		p.errorf(p.curToken, "invalid number format: %s", lit)
	} else {
		p.errorf(p.curToken, "unquoted string value: %s", lit)
	}
	p.nextToken()
	return nil
}

func (p *Parser) parseInteger() any {
	tok := p.curToken
	p.nextToken()
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err == nil {
		return n
	}
	if errors.Is(err, strconv.ErrRange) {
		if b, ok := new(big.Int).SetString(tok.Literal, 10); ok {
			return b
		}
	}
	p.errorf(tok, "could not parse %q as integer: %s", tok.Literal, err)
	return nil
}

func (p *Parser) parseFloat() any {
	tok := p.curToken
	p.nextToken()
	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(tok, "could not parse %q as float: %s", tok.Literal, err)
		return nil
	}
	return f
}

func (p *Parser) parseString() any {
	s := p.curToken.Literal
	p.nextToken()
	return s
}

func (p *Parser) parseBoolean() any {
	b := p.curTokenIs(token.TRUE)
	p.nextToken()
	return b
}

func (p *Parser) parseNull() any {
	p.nextToken()
	return nil
}

func (p *Parser) parseIllegal() any {
	p.errorf(p.curToken, "%s", p.curToken.Literal)
	p.nextToken()
	return nil
}

func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.errorf(p.curToken, "exceeded max depth of %d", p.maxDepth)
		return false
	}
	return true
}

// parseArray returns []any, or []*multimap.Map when every element is an
// object.
func (p *Parser) parseArray() any {
	defer func() { p.depth-- }()
	if !p.enter() {
		p.skipNested()
		return nil
	}
	open := p.curToken
	p.nextToken() // Consume '['

	elems := []any{}
	p.skip(token.NEWLINE)
	for !p.curTokenIs(token.RBRACK) && !p.curTokenIs(token.EOF) {
		v, ok := p.parseValue()
		if !ok {
			p.resync(token.RBRACK)
		}
		elems = append(elems, v)
		p.skip(token.NEWLINE, token.COMMA)
	}

	if !p.curTokenIs(token.RBRACK) {
		p.errorf(open, "unterminated array, expected ']' got %s", p.curToken)
		return nil
	}
	p.nextToken() // Consume ']'
	return objectsOrValues(elems)
}

func objectsOrValues(elems []any) any {
	if len(elems) == 0 {
		return elems
	}
	maps := make([]*multimap.Map, len(elems))
	for i, e := range elems {
		m, ok := e.(*multimap.Map)
		if !ok {
			return elems
		}
		maps[i] = m
	}
	return maps
}

func (p *Parser) parseObject() any {
	defer func() { p.depth-- }()
	if !p.enter() {
		p.skipNested()
		return nil
	}
	open := p.curToken
	m := p.newMap()
	p.nextToken() // Consume '{'

	p.skip(token.NEWLINE)
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if key, v, ok := p.parseMember(); ok {
			m.Append(key, v)
		} else {
			p.resync(token.RBRACE)
		}
		p.skip(token.NEWLINE, token.COMMA)
	}

	if !p.curTokenIs(token.RBRACE) {
		p.errorf(open, "unterminated object, expected '}' got %s", p.curToken)
		return nil
	}
	p.nextToken() // Consume '}'
	return m
}

func (p *Parser) parseMember() (string, any, bool) {
	var key string
	switch p.curToken.Type {
	case token.STRING, token.IDENT, token.INT:
		// Numeric keys are plain identifiers.
		key = p.curToken.Literal
	case token.TRUE, token.FALSE, token.NULL:
		key = p.curToken.Literal
	default:
		p.errorf(p.curToken, "invalid token for object key: %s", p.curToken)
		p.nextToken()
		return "", nil, false
	}
	p.nextToken()

	if !p.curTokenIs(token.COLON) {
		p.errorf(p.curToken, "expected ':' after key %q, got %s", key, p.curToken)
		return "", nil, false
	}
	p.nextToken() // Consume ':'
	p.skip(token.NEWLINE)

	v, ok := p.parseValue()
	return key, v, ok
}

// resync skips to the next separator or the closing delimiter.
func (p *Parser) resync(end token.Type) {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.COMMA) && !p.curTokenIs(end) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

// skipNested consumes a construct that is too deep to parse, keeping the
// parser in step with its delimiters.
func (p *Parser) skipNested() {
	level := 0
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.LBRACE, token.LBRACK:
			level++
		case token.RBRACE, token.RBRACK:
			level--
		}
		p.nextToken()
		if level == 0 {
			return
		}
	}
}

func (p *Parser) skip(types ...token.Type) {
	for slices.Contains(types, p.curToken.Type) {
		p.nextToken()
	}
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}
