// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     model
// Description: In-memory document model of a parsed test data file
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package model holds the document model: line elements, tables and their
// elements. Tokens read from a file keep their raw text and source position;
// tokens changed or created by a caller are marked dirty so the dumper knows
// which parts of a file it has to render again.
package model

import (
	"github.com/msto63/tabwerk/internal/robot/token"
)

// TokenType is the role of a line element
type TokenType int

const (
	TypeUnknown TokenType = iota

	// Layout
	TypeSeparatorSpace
	TypeSeparatorPipe
	TypePrettyAlign
	TypeContinuation
	TypeEndOfLine

	// Content
	TypeHeader
	TypeHeaderColumn
	TypeComment
	TypeDeclaration
	TypeName
	TypeAction
	TypeArgument
	TypeText
)

var typeNames = map[TokenType]string{
	TypeUnknown:        "UNKNOWN",
	TypeSeparatorSpace: "SEPARATOR_SPACE",
	TypeSeparatorPipe:  "SEPARATOR_PIPE",
	TypePrettyAlign:    "PRETTY_ALIGN",
	TypeContinuation:   "CONTINUATION",
	TypeEndOfLine:      "END_OF_LINE",
	TypeHeader:         "HEADER",
	TypeHeaderColumn:   "HEADER_COLUMN",
	TypeComment:        "COMMENT",
	TypeDeclaration:    "DECLARATION",
	TypeName:           "NAME",
	TypeAction:         "ACTION",
	TypeArgument:       "ARGUMENT",
	TypeText:           "TEXT",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsSeparator reports whether the type separates cells
func (t TokenType) IsSeparator() bool {
	return t == TypeSeparatorSpace || t == TypeSeparatorPipe
}

// IsLayout reports whether the type carries no data
func (t TokenType) IsLayout() bool {
	return t >= TypeSeparatorSpace && t <= TypeEndOfLine
}

// Token is one element of a model line
type Token struct {
	Type  TokenType
	raw   string
	text  string
	pos   token.Position
	dirty bool
}

// NewToken creates a token that was not read from a file. It is dirty and
// has no position.
func NewToken(t TokenType, text string) *Token {
	return &Token{
		Type:  t,
		raw:   text,
		text:  text,
		pos:   token.Unset,
		dirty: true,
	}
}

// SourceToken creates a clean token read from a file
func SourceToken(t TokenType, raw string, pos token.Position) *Token {
	return &Token{
		Type: t,
		raw:  raw,
		text: raw,
		pos:  pos,
	}
}

// Raw returns the text as written in the file
func (t *Token) Raw() string {
	return t.raw
}

// Text returns the value of the token
func (t *Token) Text() string {
	return t.text
}

// Position returns the source position, token.Unset for new tokens
func (t *Token) Position() token.Position {
	return t.pos
}

// IsDirty reports whether the token was changed after parsing
func (t *Token) IsDirty() bool {
	return t.dirty
}

// SetText changes the value and marks the token dirty
func (t *Token) SetText(text string) {
	t.text = text
	t.raw = text
	t.dirty = true
}

// SetRaw changes the file text and marks the token dirty
func (t *Token) SetRaw(raw string) {
	t.raw = raw
	t.dirty = true
}

// Touch marks the token dirty without changing it
func (t *Token) Touch() {
	t.dirty = true
}

// IsSeparator reports whether the token separates cells
func (t *Token) IsSeparator() bool {
	return t.Type.IsSeparator()
}

// SeparatorStyle returns the dialect of a separator token
func (t *Token) SeparatorStyle() token.Dialect {
	if t.Type == TypeSeparatorPipe {
		return token.DialectPipe
	}
	return token.DialectSpace
}

// Clone returns a clean copy without position
func (t *Token) Clone() *Token {
	return &Token{
		Type: t.Type,
		raw:  t.raw,
		text: t.text,
		pos:  token.Unset,
	}
}

// String returns a debug representation
func (t *Token) String() string {
	return t.Type.String() + "(" + t.raw + ")"
}
