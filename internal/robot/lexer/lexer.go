// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     lexer
// Description: Splits test data files into lines of character-class tokens
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package lexer converts Robot Framework test data into the per-line token
// stream consumed by the context recognizers. Every byte of the input ends
// up in exactly one token, so concatenating all token texts and line
// terminators reproduces the input.
package lexer

import (
	"github.com/msto63/tabwerk/internal/robot/token"
)

// Lexer performs lexical analysis of one test data file
type Lexer struct {
	input  string // Input string
	pos    int    // Current byte position in input
	lineNo int    // Current line number (1-based)
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	return &Lexer{
		input:  input,
		lineNo: 1,
	}
}

// Tokenize is a shorthand for New(input).Lines()
func Tokenize(input string) []*token.Line {
	return New(input).Lines()
}

// Lines returns all lines of the input. The last line always carries an
// EOF terminator, so an input ending in a newline yields a trailing empty
// line.
func (l *Lexer) Lines() []*token.Line {
	var lines []*token.Line
	for {
		line := l.NextLine()
		lines = append(lines, line)
		if line.EOL.Kind == token.EOF {
			return lines
		}
	}
}

// NextLine reads the next physical line including its terminator
func (l *Lexer) NextLine() *token.Line {
	line := &token.Line{
		Number: l.lineNo,
		Offset: l.pos,
	}

	// escaped: the previous token is an unescaped backslash
	// solid: the token before that backslash is cell content
	escaped, solid := false, false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\n' || ch == '\r' {
			line.EOL = l.readEndOfLine(line)
			l.lineNo++
			return line
		}
		escapeSpace := escaped && (solid || l.spaceBeforeContent())
		tok := l.readToken(line, escapeSpace)
		if tok.Kind == token.Backslash && !escaped {
			escaped = true
		} else {
			escaped = false
			solid = !tok.Kind.IsWhitespace() || (escapeSpace && tok.Kind == token.SingleSpace)
		}
		line.Tokens = append(line.Tokens, tok)
	}

	line.EOL = token.Token{
		Kind: token.EOF,
		Pos:  l.position(line, l.pos),
	}
	return line
}

// readToken reads one token starting at the current position. An
// escaped space is a token of its own.
func (l *Lexer) readToken(line *token.Line, escaped bool) token.Token {
	start := l.pos
	ch := l.input[l.pos]

	var kind token.Kind
	switch ch {
	case '*':
		n := l.readRun('*')
		kind = token.SingleAsterisk
		if n > 1 {
			kind = token.ManyAsterisks
		}
	case ' ':
		if escaped {
			l.pos++
			kind = token.SingleSpace
			break
		}
		n := l.readRun(' ')
		kind = token.SingleSpace
		if n > 1 {
			kind = token.DoubleSpace
		}
	case '.':
		n := l.readRun('.')
		kind = token.Dot
		if n > 1 {
			kind = token.ManyDots
		}
	case '\t':
		l.pos++
		kind = token.Tab
	default:
		if k, ok := singleChars[ch]; ok {
			l.pos++
			kind = k
		} else {
			l.readWord()
			kind = token.Word
		}
	}

	return token.Token{
		Kind: kind,
		Text: l.input[start:l.pos],
		Pos:  l.position(line, start),
	}
}

// readEndOfLine consumes \n, \r or \r\n
func (l *Lexer) readEndOfLine(line *token.Line) token.Token {
	start := l.pos
	kind := token.LineFeed
	if l.input[l.pos] == '\r' {
		kind = token.CarriageReturn
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '\n' {
			kind = token.CarriageReturnLineFeed
			l.pos++
		}
	}
	l.pos++

	return token.Token{
		Kind: kind,
		Text: l.input[start:l.pos],
		Pos:  l.position(line, start),
	}
}

// spaceBeforeContent reports whether the current position holds a single
// space directly followed by cell content. A backslash that opens a cell
// escapes such a space only, a lone backslash followed by a separator is
// an empty cell.
func (l *Lexer) spaceBeforeContent() bool {
	next := l.pos + 1
	if l.input[l.pos] != ' ' || next >= len(l.input) {
		return false
	}
	switch l.input[next] {
	case ' ', '\t', '|', '\r', '\n':
		return false
	}
	return true
}

// readRun consumes consecutive copies of ch and returns their count
func (l *Lexer) readRun(ch byte) int {
	n := 0
	for l.pos < len(l.input) && l.input[l.pos] == ch {
		l.pos++
		n++
	}
	return n
}

// readWord consumes characters up to the next special character
func (l *Lexer) readWord() {
	for l.pos < len(l.input) && !isSpecial(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) position(line *token.Line, offset int) token.Position {
	return token.Position{
		Line:   line.Number,
		Column: offset - line.Offset,
		Offset: offset,
	}
}

// Utility functions

var singleChars = map[byte]token.Kind{
	'|':  token.Pipe,
	'#':  token.Hash,
	'$':  token.Dollar,
	'@':  token.At,
	'&':  token.Ampersand,
	'%':  token.Percent,
	'{':  token.LeftCurly,
	'}':  token.RightCurly,
	'[':  token.LeftSquare,
	']':  token.RightSquare,
	'\\': token.Backslash,
	':':  token.Colon,
	'=':  token.Equals,
	'"':  token.Quote,
}

// isSpecial reports whether ch ends a word
func isSpecial(ch byte) bool {
	switch ch {
	case '*', ' ', '.', '\t', '\n', '\r':
		return true
	}
	_, ok := singleChars[ch]
	return ok
}
