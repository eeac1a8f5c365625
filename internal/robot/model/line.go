package model

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// Line is one physical line: its elements and the line terminator
type Line struct {
	Number   int // 1-based
	Offset   int // byte offset of the first element
	Elements []*Token
	EOL      *Token
}

// NewLine creates an empty line starting at offset
func NewLine(number, offset int) *Line {
	return &Line{Number: number, Offset: offset}
}

// Append adds t at the end of the line and assigns its position
func (l *Line) Append(t *Token) {
	t.pos = token.Position{
		Line:   l.Number,
		Column: l.width(),
		Offset: l.Offset + l.width(),
	}
	l.Elements = append(l.Elements, t)
}

// SetEOL sets the line terminator and assigns its position
func (l *Line) SetEOL(t *Token) {
	t.pos = token.Position{
		Line:   l.Number,
		Column: l.width(),
		Offset: l.Offset + l.width(),
	}
	l.EOL = t
}

func (l *Line) width() int {
	n := 0
	for _, e := range l.Elements {
		n += len(e.raw)
	}
	return n
}

// Text returns the raw line without terminator
func (l *Line) Text() string {
	var sb strings.Builder
	for _, e := range l.Elements {
		sb.WriteString(e.raw)
	}
	return sb.String()
}

// Raw returns the raw line including its terminator
func (l *Line) Raw() string {
	if l.EOL == nil {
		return l.Text()
	}
	return l.Text() + l.EOL.raw
}

// End returns the offset directly behind the terminator
func (l *Line) End() int {
	return l.Offset + len(l.Raw())
}

// Dialect reports pipe when the first element is a pipe separator
func (l *Line) Dialect() token.Dialect {
	if len(l.Elements) > 0 && l.Elements[0].Type == TypeSeparatorPipe {
		return token.DialectPipe
	}
	return token.DialectSpace
}

// IsEOF reports whether the line ends the file
func (l *Line) IsEOF() bool {
	return l.EOL == nil || l.EOL.raw == ""
}

// Content returns the elements that carry data
func (l *Line) Content() []*Token {
	var out []*Token
	for _, e := range l.Elements {
		if !e.Type.IsLayout() {
			out = append(out, e)
		}
	}
	return out
}

// IndexOf returns the element index of t or -1
func (l *Line) IndexOf(t *Token) int {
	for i, e := range l.Elements {
		if e == t {
			return i
		}
	}
	return -1
}

// IsBlank reports whether the line holds layout only
func (l *Line) IsBlank() bool {
	return len(l.Content()) == 0
}
