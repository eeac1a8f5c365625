// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     token
// Description: Character-class token stream produced by the lexer
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package token

import (
	"fmt"
	"strings"
)

// Kind represents the character class of a lexical token
type Kind int

const (
	// Special tokens
	Illegal Kind = iota

	// Text
	Word // any run of characters without special meaning

	// Asterisks
	SingleAsterisk // *
	ManyAsterisks  // ***

	// Whitespace
	SingleSpace // " "
	DoubleSpace // two or more spaces
	Tab         // \t

	// Single character classes
	Pipe        // |
	Hash        // #
	Dollar      // $
	At          // @
	Ampersand   // &
	Percent     // %
	LeftCurly   // {
	RightCurly  // }
	LeftSquare  // [
	RightSquare // ]
	Backslash   // \
	Colon       // :
	Equals      // =
	Dot         // .
	ManyDots    // ...
	Quote       // "

	// End of line classes
	LineFeed               // \n
	CarriageReturn         // \r
	CarriageReturnLineFeed // \r\n
	EOF
)

var kindNames = map[Kind]string{
	Illegal:                "ILLEGAL",
	Word:                   "WORD",
	SingleAsterisk:         "SINGLE_ASTERISK",
	ManyAsterisks:          "MANY_ASTERISKS",
	SingleSpace:            "SINGLE_SPACE",
	DoubleSpace:            "DOUBLE_SPACE",
	Tab:                    "TABULATOR",
	Pipe:                   "PIPE",
	Hash:                   "HASH",
	Dollar:                 "DOLLAR",
	At:                     "AT",
	Ampersand:              "AMPERSAND",
	Percent:                "PERCENT",
	LeftCurly:              "LEFT_CURLY",
	RightCurly:             "RIGHT_CURLY",
	LeftSquare:             "LEFT_SQUARE",
	RightSquare:            "RIGHT_SQUARE",
	Backslash:              "BACKSLASH",
	Colon:                  "COLON",
	Equals:                 "EQUALS",
	Dot:                    "DOT",
	ManyDots:               "MANY_DOTS",
	Quote:                  "QUOTE",
	LineFeed:               "LF",
	CarriageReturn:         "CR",
	CarriageReturnLineFeed: "CRLF",
	EOF:                    "EOF",
}

// String returns a string representation of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsWhitespace reports whether the kind is a space or tabulator class
func (k Kind) IsWhitespace() bool {
	return k == SingleSpace || k == DoubleSpace || k == Tab
}

// IsEndOfLine reports whether the kind terminates a line
func (k Kind) IsEndOfLine() bool {
	return k == LineFeed || k == CarriageReturn || k == CarriageReturnLineFeed || k == EOF
}

// Token is one element of the per-line token stream
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// End returns the position directly behind the token
func (t Token) End() Position {
	if !t.Pos.IsSet() {
		return Unset
	}
	return Position{
		Line:   t.Pos.Line,
		Column: t.Pos.Column + len(t.Text),
		Offset: t.Pos.Offset + len(t.Text),
	}
}

// Line is one physical line of the source with its terminator
type Line struct {
	Number int // 1-based
	Offset int // byte offset of the first character
	Tokens []Token
	EOL    Token
}

// Text reassembles the raw line content without the terminator
func (l *Line) Text() string {
	var sb strings.Builder
	for _, t := range l.Tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// IsBlank reports whether the line holds only whitespace
func (l *Line) IsBlank() bool {
	for _, t := range l.Tokens {
		if !t.Kind.IsWhitespace() {
			return false
		}
	}
	return true
}

// FirstNonWhitespace returns the index of the first token that is not
// whitespace, or -1
func (l *Line) FirstNonWhitespace() int {
	for i, t := range l.Tokens {
		if !t.Kind.IsWhitespace() {
			return i
		}
	}
	return -1
}

// Interval is a half-open range [Start, End) of line indices
type Interval struct {
	Start int
	End   int
}

// All returns the interval covering every line
func All(lines []*Line) Interval {
	return Interval{Start: 0, End: len(lines)}
}

// Clamp restricts the interval to the given number of lines
func (iv Interval) Clamp(n int) Interval {
	if iv.Start < 0 {
		iv.Start = 0
	}
	if iv.End > n {
		iv.End = n
	}
	if iv.End < iv.Start {
		iv.End = iv.Start
	}
	return iv
}

// Format is the textual layout of a whole file, selected by its extension
type Format int

const (
	FormatTxt Format = iota // .robot and .txt
	FormatTsv               // .tsv
)

// String returns a string representation of the format
func (f Format) String() string {
	if f == FormatTsv {
		return "tsv"
	}
	return "txt"
}

// FormatForFile picks the format from a file name
func FormatForFile(name string) Format {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return FormatTsv
	}
	return FormatTxt
}

// Dialect is the separator style of a single line
type Dialect int

const (
	DialectSpace Dialect = iota // tabulator or two or more spaces
	DialectPipe                 // | cell | cell |
	DialectTsv                  // one tabulator per cell
)

// String returns a string representation of the dialect
func (d Dialect) String() string {
	switch d {
	case DialectPipe:
		return "pipe"
	case DialectTsv:
		return "tsv"
	default:
		return "space"
	}
}

// Dialect returns the separator style of the line within a file of the
// given format. A txt line is pipe separated when it starts with a pipe
// followed by whitespace or the end of the line.
func (l *Line) Dialect(f Format) Dialect {
	if f == FormatTsv {
		return DialectTsv
	}
	if len(l.Tokens) > 0 && l.Tokens[0].Kind == Pipe {
		if len(l.Tokens) == 1 || l.Tokens[1].Kind.IsWhitespace() {
			return DialectPipe
		}
	}
	return DialectSpace
}
