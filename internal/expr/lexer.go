package expr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdentifier
	tokenNumber
	tokenString
	tokenTrue
	tokenFalse
	tokenNull
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
	tokenBang
	tokenBangEqual
	tokenEqualEqual
	tokenGreater
	tokenGreaterEqual
	tokenLess
	tokenLessEqual
	tokenAnd
	tokenOr
	tokenQuestion
	tokenColon
	tokenCoalesce
)

// token is one lexeme. text is set for identifiers and strings, num
// for numbers, pos is the byte offset of the first character.
type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) errorf(pos int, format string, args ...any) error {
	return &Error{Code: CodeInvalidSyntax, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) advance() byte {
	c := l.peek()
	if c != 0 {
		l.pos++
	}
	return c
}

// match consumes the next byte if it equals expected.
func (l *lexer) match(expected byte) bool {
	if l.peek() != expected {
		return false
	}
	l.pos++
	return true
}

func (l *lexer) skipSpace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Identifiers are dotted state keys, so '.' and '-' are part of the
// identifier alphabet.
func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.' || c == '-'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: start}, nil
	}
	c := l.advance()

	switch {
	case isIdentStart(c):
		return l.scanIdentifier(start), nil
	case isDigit(c) || (c == '.' && isDigit(l.peek())):
		return l.scanNumber(start)
	}

	switch c {
	case '"', '\'':
		return l.scanString(start, c)
	case '+':
		return token{kind: tokenPlus, pos: start}, nil
	case '-':
		return token{kind: tokenMinus, pos: start}, nil
	case '*':
		return token{kind: tokenStar, pos: start}, nil
	case '/':
		return token{kind: tokenSlash, pos: start}, nil
	case '(':
		return token{kind: tokenLParen, pos: start}, nil
	case ')':
		return token{kind: tokenRParen, pos: start}, nil
	case '!':
		if l.match('=') {
			return token{kind: tokenBangEqual, pos: start}, nil
		}
		return token{kind: tokenBang, pos: start}, nil
	case '=':
		if l.match('=') {
			return token{kind: tokenEqualEqual, pos: start}, nil
		}
	case '>':
		if l.match('=') {
			return token{kind: tokenGreaterEqual, pos: start}, nil
		}
		return token{kind: tokenGreater, pos: start}, nil
	case '<':
		if l.match('=') {
			return token{kind: tokenLessEqual, pos: start}, nil
		}
		return token{kind: tokenLess, pos: start}, nil
	case '&':
		if l.match('&') {
			return token{kind: tokenAnd, pos: start}, nil
		}
	case '|':
		if l.match('|') {
			return token{kind: tokenOr, pos: start}, nil
		}
	case '?':
		if l.match('?') {
			return token{kind: tokenCoalesce, pos: start}, nil
		}
		return token{kind: tokenQuestion, pos: start}, nil
	case ':':
		return token{kind: tokenColon, pos: start}, nil
	}
	return token{}, l.errorf(start, "unexpected character %q", c)
}

func (l *lexer) scanIdentifier(start int) token {
	for isIdentChar(l.peek()) {
		l.pos++
	}
	text := l.input[start:l.pos]
	switch strings.ToLower(text) {
	case "true":
		return token{kind: tokenTrue, pos: start}
	case "false":
		return token{kind: tokenFalse, pos: start}
	case "null":
		return token{kind: tokenNull, pos: start}
	}
	return token{kind: tokenIdentifier, text: text, pos: start}
}

func (l *lexer) scanNumber(start int) (token, error) {
	hasDot := l.input[start] == '.'
	for isDigit(l.peek()) || (!hasDot && l.peek() == '.') {
		if l.peek() == '.' {
			hasDot = true
		}
		l.pos++
	}
	text := l.input[start:l.pos]
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, l.errorf(start, "malformed number %q", text)
	}
	return token{kind: tokenNumber, num: f, pos: start}, nil
}

func (l *lexer) scanString(start int, quote byte) (token, error) {
	var b strings.Builder
	for l.pos < len(l.input) {
		c := l.advance()
		if c == quote {
			return token{kind: tokenString, text: b.String(), pos: start}, nil
		}
		if c == '\\' && l.pos < len(l.input) {
			switch next := l.advance(); next {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			default:
				c = next
			}
		}
		b.WriteByte(c)
	}
	return token{}, l.errorf(start, "unterminated string")
}
