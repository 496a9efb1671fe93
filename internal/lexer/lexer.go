// Package lexer splits MAML source into tokens. Comments are dropped; line
// breaks are kept because they separate object members and array elements.
package lexer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-docboost/internal/token"
)

// Lexer scans a MAML document held in memory.
type Lexer struct {
	src    []byte
	pos    int // offset of ch
	next   int // offset after ch
	ch     rune
	line   int
	column int
	sb     strings.Builder
}

const eof = -1

// New returns a Lexer reading src.
func New(src []byte) *Lexer {
	l := &Lexer{src: src, line: 1}
	l.read()
	return l
}

// NextToken scans and returns the next token. Once the input is exhausted it
// keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	l.skipBlank()
	tok := token.Token{Line: l.line, Column: l.column}

	switch ch := l.ch; {
	case ch == eof:
		tok.Type = token.EOF
	case ch == '{' || ch == '}' || ch == '[' || ch == ']' || ch == ',' || ch == ':':
		tok.Type, tok.Literal = token.Type(ch), string(ch)
		l.read()
	case ch == '\n':
		tok.Type, tok.Literal = token.NEWLINE, "\n"
		l.read()
	case ch == '\r' && l.peek() == '\n':
		tok.Type, tok.Literal = token.NEWLINE, "\r\n"
		l.read()
		l.read()
	case ch == '"':
		lit, err := l.scanString()
		tok.Type, tok.Literal = token.STRING, lit
		if err != "" {
			tok.Type, tok.Literal = token.ILLEGAL, err
		}
	case isDigit(ch) || (ch == '-' && (isDigit(l.peek()) || l.peek() == '.')):
		tok.Literal = l.scanWhile(isNumberChar)
		if typ, ok := ParseAsNumber(tok.Literal); ok {
			tok.Type = typ
		} else {
			tok.Type = token.IDENT
		}
	case isIdentChar(ch):
		tok.Literal = l.scanWhile(isIdentChar)
		tok.Type = token.LookupIdent(tok.Literal)
	default:
		tok.Type, tok.Literal = token.ILLEGAL, string(ch)
		if ch == utf8.RuneError {
			tok.Literal = "invalid utf-8"
		}
		l.read()
	}
	return tok
}

func (l *Lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.next >= len(l.src) {
		l.pos = len(l.src)
		l.ch = eof
		l.column++
		return
	}
	r, size := utf8.DecodeRune(l.src[l.next:])
	l.pos, l.next = l.next, l.next+size
	l.ch = r
	l.column++
}

func (l *Lexer) peek() rune {
	if l.next >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRune(l.src[l.next:])
	return r
}

func (l *Lexer) hasPrefix(s string) bool {
	return bytes.HasPrefix(l.src[l.pos:], []byte(s))
}

// skipBlank skips spaces, tabs and comments. A comment runs to the end of
// the line; the line break itself is still returned as a token.
func (l *Lexer) skipBlank() {
	for {
		switch l.ch {
		case ' ', '\t':
			l.read()
		case '#':
			for l.ch != '\n' && l.ch != eof {
				l.read()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanWhile(accept func(rune) bool) string {
	start := l.pos
	for l.ch != eof && accept(l.ch) {
		l.read()
	}
	return string(l.src[start:l.pos])
}

// scanString scans a quoted string starting at the opening quote. On failure
// it returns a description of the problem as its second result.
func (l *Lexer) scanString() (string, string) {
	if l.hasPrefix(`"""`) {
		return l.scanRawString()
	}
	l.read()
	l.sb.Reset()
	for {
		switch {
		case l.ch == '"':
			l.read()
			return l.sb.String(), ""
		case l.ch == '\n' || l.ch == eof:
			return "", "unterminated string"
		case l.ch == '\\':
			r, err := l.scanEscape()
			if err != "" {
				return "", err
			}
			l.sb.WriteRune(r)
		case l.ch == utf8.RuneError:
			return "", "invalid utf-8 sequence in string"
		case isControl(l.ch):
			return "", fmt.Sprintf("forbidden control character U+%04X in string", l.ch)
		default:
			l.sb.WriteRune(l.ch)
		}
		l.read()
	}
}

// scanRawString scans a """-delimited string. A line break directly after
// the opening delimiter is not part of the value and no escapes apply.
func (l *Lexer) scanRawString() (string, string) {
	for range 3 {
		l.read()
	}
	if l.ch == '\n' {
		l.read()
	}
	l.sb.Reset()
	for {
		switch {
		case l.ch == eof:
			return "", "unterminated multiline string"
		case l.hasPrefix(`"""`):
			for range 3 {
				l.read()
			}
			return l.sb.String(), ""
		case l.ch == utf8.RuneError:
			return "", "invalid utf-8 sequence in multiline string"
		case l.ch != '\n' && isControl(l.ch):
			return "", fmt.Sprintf("forbidden control character U+%04X in multiline string", l.ch)
		}
		l.sb.WriteRune(l.ch)
		l.read()
	}
}

// scanEscape reads the escape sequence at the current backslash and leaves
// the lexer on its last character.
func (l *Lexer) scanEscape() (rune, string) {
	l.read()
	switch l.ch {
	case 'b':
		return '\b', ""
	case 'f':
		return '\f', ""
	case 'n':
		return '\n', ""
	case 'r':
		return '\r', ""
	case 't':
		return '\t', ""
	case '"', '\\', '/':
		return l.ch, ""
	case 'u':
		var r rune
		for range 4 {
			l.read()
			d, ok := hexValue(l.ch)
			if !ok {
				return 0, "invalid unicode escape"
			}
			r = r<<4 | d
		}
		if r >= 0xD800 && r <= 0xDFFF {
			return 0, "invalid unicode scalar value (surrogate pair)"
		}
		return r, ""
	}
	return 0, fmt.Sprintf("invalid escape sequence \\%c", l.ch)
}

func hexValue(ch rune) (rune, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

func isControl(ch rune) bool {
	return (ch >= 0x00 && ch <= 0x08) || (ch >= 0x0A && ch <= 0x1F) || ch == 0x7F
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// IsIdentChar reports whether ch may appear in an unquoted key.
func IsIdentChar(ch rune) bool {
	return isIdentChar(ch)
}

func isIdentChar(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || isDigit(ch) || ch == '_' || ch == '-'
}

func isNumberChar(ch rune) bool {
	return isIdentChar(ch) || ch == '.' || ch == '+'
}

// ParseAsNumber reports whether s is a MAML number and, if so, whether it is
// an INT or a FLOAT. Leading zeros, a bare sign and a trailing dot are
// rejected.
func ParseAsNumber(s string) (token.Type, bool) {
	i, n := 0, len(s)
	digits := func() int {
		start := i
		for i < n && isDigit(rune(s[i])) {
			i++
		}
		return i - start
	}

	if i < n && s[i] == '-' {
		i++
	}
	start := i
	if digits() == 0 || (i-start > 1 && s[start] == '0') {
		return token.ILLEGAL, false
	}

	typ := token.INT
	if i < n && s[i] == '.' {
		i++
		if digits() == 0 {
			return token.ILLEGAL, false
		}
		typ = token.FLOAT
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return token.ILLEGAL, false
		}
		typ = token.FLOAT
	}
	if i != n {
		return token.ILLEGAL, false
	}
	return typ, true
}
